package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/dto"
	"github.com/paycove/payroll_engine/internal/middleware"
)

// adjustmentHandler handles HTTP requests for the adjustment ledger.
type adjustmentHandler struct {
	adjustmentService portssvc.AdjustmentSvcFacade
}

func newAdjustmentHandler(adjustmentService portssvc.AdjustmentSvcFacade) *adjustmentHandler {
	return &adjustmentHandler{adjustmentService: adjustmentService}
}

func (h *adjustmentHandler) addAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for AddAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	adjustment, err := h.adjustmentService.AddAdjustment(c.Request.Context(), orgID, c.Param("runID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "add adjustment")
		return
	}

	logger.Info("Adjustment added", slog.String("adjustment_id", adjustment.AdjustmentID))
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adjustment))
}

func (h *adjustmentHandler) approveAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	adjustmentID := c.Param("adjustmentID")
	adjustment, err := h.adjustmentService.ApproveAdjustment(c.Request.Context(), orgID, adjustmentID, userID)
	if err != nil {
		respondError(c, logger, err, "approve adjustment")
		return
	}

	logger.Info("Adjustment approved", slog.String("adjustment_id", adjustmentID))
	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adjustment))
}

func (h *adjustmentHandler) listAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	adjustments, err := h.adjustmentService.ListAdjustments(c.Request.Context(), orgID, c.Param("runID"))
	if err != nil {
		respondError(c, logger, err, "list adjustments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"adjustments": dto.ToAdjustmentResponses(adjustments)})
}
