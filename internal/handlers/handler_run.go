package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/paycove/payroll_engine/internal/apperrors"
	"github.com/paycove/payroll_engine/internal/core/domain"
	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/dto"
	"github.com/paycove/payroll_engine/internal/middleware"
)

// runHandler handles HTTP requests for the payroll run lifecycle.
type runHandler struct {
	runService portssvc.RunSvcFacade
}

func newRunHandler(runService portssvc.RunSvcFacade) *runHandler {
	return &runHandler{runService: runService}
}

// registerRunRoutes wires the run lifecycle endpoints.
func registerRunRoutes(group *gin.RouterGroup, runService portssvc.RunSvcFacade, adjustmentService portssvc.AdjustmentSvcFacade) {
	h := newRunHandler(runService)
	ah := newAdjustmentHandler(adjustmentService)

	runs := group.Group("/runs")
	{
		runs.POST("", h.createRun)
		runs.GET("", h.listRuns)
		runs.GET("/:runID", h.getRun)
		runs.POST("/:runID/process", h.processRun)
		runs.POST("/:runID/approve", h.approveRun)
		runs.POST("/:runID/pay", h.payRun)
		runs.POST("/:runID/cancel", h.cancelRun)
		runs.GET("/:runID/records", h.getRunRecords)
		runs.GET("/:runID/errors", h.getRunErrors)
		runs.POST("/:runID/adjustments", ah.addAdjustment)
		runs.GET("/:runID/adjustments", ah.listAdjustments)
	}
	group.POST("/adjustments/:adjustmentID/approve", ah.approveAdjustment)
}

func (h *runHandler) createRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateRun", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	run, err := h.runService.CreateRun(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, logger, err, "create run")
		return
	}

	logger.Info("Run created", slog.String("run_id", run.RunID))
	c.JSON(http.StatusCreated, dto.ToRunResponse(run))
}

func (h *runHandler) listRuns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	params := dto.ListRunsParams{}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	resp, err := h.runService.ListRuns(c.Request.Context(), orgID, params)
	if err != nil {
		respondError(c, logger, err, "list runs")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *runHandler) getRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	run, err := h.runService.GetRun(c.Request.Context(), orgID, c.Param("runID"))
	if err != nil {
		respondError(c, logger, err, "get run")
		return
	}
	c.JSON(http.StatusOK, dto.ToRunResponse(run))
}

func (h *runHandler) processRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	runID := c.Param("runID")
	run, err := h.runService.ProcessRun(c.Request.Context(), orgID, runID, userID)
	if err != nil {
		if h.replayCompleted(c, orgID, runID, domain.RunReview, err) {
			return
		}
		respondError(c, logger, err, "process run")
		return
	}

	logger.Info("Run processed", slog.String("run_id", runID), slog.String("status", string(run.Status)))
	c.JSON(http.StatusOK, dto.ToRunResponse(run))
}

func (h *runHandler) approveRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	runID := c.Param("runID")
	run, err := h.runService.ApproveRun(c.Request.Context(), orgID, runID, userID)
	if err != nil {
		if h.replayCompleted(c, orgID, runID, domain.RunApproved, err) {
			return
		}
		respondError(c, logger, err, "approve run")
		return
	}

	logger.Info("Run approved", slog.String("run_id", runID))
	c.JSON(http.StatusOK, dto.ToRunResponse(run))
}

func (h *runHandler) payRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	runID := c.Param("runID")
	run, err := h.runService.PayRun(c.Request.Context(), orgID, runID, userID)
	if err != nil {
		if h.replayCompleted(c, orgID, runID, domain.RunPaid, err) {
			return
		}
		respondError(c, logger, err, "pay run")
		return
	}

	logger.Info("Run paid", slog.String("run_id", runID))
	c.JSON(http.StatusOK, dto.ToRunResponse(run))
}

func (h *runHandler) cancelRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	runID := c.Param("runID")
	run, err := h.runService.CancelRun(c.Request.Context(), orgID, runID, userID)
	if err != nil {
		respondError(c, logger, err, "cancel run")
		return
	}

	logger.Info("Run cancelled", slog.String("run_id", runID))
	c.JSON(http.StatusOK, dto.ToRunResponse(run))
}

// replayCompleted turns a replayed lifecycle transition into a no-op: if the
// transition failed because the run already reached the target status, the
// current state is returned instead of a conflict.
func (h *runHandler) replayCompleted(c *gin.Context, orgID, runID string, target domain.RunStatus, err error) bool {
	if !errors.Is(err, apperrors.ErrInvalidTransition) {
		return false
	}
	run, getErr := h.runService.GetRun(c.Request.Context(), orgID, runID)
	if getErr != nil || run.Status != target {
		return false
	}
	c.JSON(http.StatusOK, dto.ToRunResponse(run))
	return true
}

func (h *runHandler) getRunRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	records, err := h.runService.GetRunRecords(c.Request.Context(), orgID, c.Param("runID"))
	if err != nil {
		respondError(c, logger, err, "get run records")
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": dto.ToRecordResponses(records)})
}

func (h *runHandler) getRunErrors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	runErrors, err := h.runService.GetRunErrors(c.Request.Context(), orgID, c.Param("runID"))
	if err != nil {
		respondError(c, logger, err, "get run errors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"errors": runErrors})
}
