package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/dto"
	"github.com/paycove/payroll_engine/internal/middleware"
)

// componentHandler handles HTTP requests for the component catalog.
type componentHandler struct {
	componentService portssvc.ComponentSvcFacade
}

func newComponentHandler(componentService portssvc.ComponentSvcFacade) *componentHandler {
	return &componentHandler{componentService: componentService}
}

// registerComponentRoutes wires the catalog endpoints.
func registerComponentRoutes(group *gin.RouterGroup, componentService portssvc.ComponentSvcFacade) {
	h := newComponentHandler(componentService)

	components := group.Group("/components")
	{
		components.POST("", h.createComponent)
		components.GET("", h.listComponents)
		components.GET("/:componentID", h.getComponent)
		components.PUT("/:componentID", h.updateComponent)
	}
}

func (h *componentHandler) createComponent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateComponent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	component, err := h.componentService.CreateComponent(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, logger, err, "create component")
		return
	}

	logger.Info("Component created", slog.String("component_id", component.ComponentID))
	c.JSON(http.StatusCreated, dto.ToComponentResponse(component))
}

func (h *componentHandler) listComponents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	activeOnly := c.Query("activeOnly") == "true"
	components, err := h.componentService.ListComponents(c.Request.Context(), orgID, activeOnly)
	if err != nil {
		respondError(c, logger, err, "list components")
		return
	}
	c.JSON(http.StatusOK, gin.H{"components": dto.ToComponentResponses(components)})
}

func (h *componentHandler) getComponent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	component, err := h.componentService.GetComponent(c.Request.Context(), orgID, c.Param("componentID"))
	if err != nil {
		respondError(c, logger, err, "get component")
		return
	}
	c.JSON(http.StatusOK, dto.ToComponentResponse(component))
}

func (h *componentHandler) updateComponent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for UpdateComponent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	component, err := h.componentService.UpdateComponent(c.Request.Context(), orgID, c.Param("componentID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "update component")
		return
	}

	logger.Info("Component updated", slog.String("component_id", component.ComponentID))
	c.JSON(http.StatusOK, dto.ToComponentResponse(component))
}
