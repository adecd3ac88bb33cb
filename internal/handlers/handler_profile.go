package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/dto"
	"github.com/paycove/payroll_engine/internal/middleware"
)

// profileHandler handles HTTP requests for employee pay profiles.
type profileHandler struct {
	profileService portssvc.ProfileSvcFacade
}

func newProfileHandler(profileService portssvc.ProfileSvcFacade) *profileHandler {
	return &profileHandler{profileService: profileService}
}

// registerProfileRoutes wires the pay profile endpoints.
func registerProfileRoutes(group *gin.RouterGroup, profileService portssvc.ProfileSvcFacade) {
	h := newProfileHandler(profileService)

	profiles := group.Group("/pay-profiles")
	{
		profiles.POST("", h.upsertProfile)
		profiles.GET("/:employeeID", h.getActiveProfile)
	}
}

func (h *profileHandler) upsertProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for UpsertProfile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	profile, err := h.profileService.UpsertProfile(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, logger, err, "save pay profile")
		return
	}

	logger.Info("Pay profile saved",
		slog.String("profile_id", profile.ProfileID),
		slog.String("employee_id", profile.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToProfileResponse(profile))
}

func (h *profileHandler) getActiveProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		parsed, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf parameter, expected RFC3339"})
			return
		}
		asOf = parsed
	}

	profile, err := h.profileService.GetActiveProfile(c.Request.Context(), orgID, c.Param("employeeID"), asOf)
	if err != nil {
		respondError(c, logger, err, "get pay profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}
