package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/dto"
	"github.com/paycove/payroll_engine/internal/middleware"
)

// configHandler handles HTTP requests for payroll configuration.
type configHandler struct {
	configService portssvc.ConfigSvcFacade
}

func newConfigHandler(configService portssvc.ConfigSvcFacade) *configHandler {
	return &configHandler{configService: configService}
}

// registerConfigRoutes wires the configuration endpoints.
func registerConfigRoutes(group *gin.RouterGroup, configService portssvc.ConfigSvcFacade) {
	h := newConfigHandler(configService)

	config := group.Group("/config")
	{
		config.GET("", h.getConfiguration)
		config.PUT("", h.updateConfiguration)
	}
}

func (h *configHandler) getConfiguration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	config, err := h.configService.GetConfiguration(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, logger, err, "get configuration")
		return
	}
	c.JSON(http.StatusOK, dto.ToConfigResponse(config))
}

func (h *configHandler) updateConfiguration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for UpdateConfiguration", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	config, err := h.configService.UpdateConfiguration(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, logger, err, "update configuration")
		return
	}

	logger.Info("Configuration updated", slog.String("config_id", config.ConfigID))
	c.JSON(http.StatusOK, dto.ToConfigResponse(config))
}
