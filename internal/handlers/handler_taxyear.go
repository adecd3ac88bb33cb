package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/dto"
	"github.com/paycove/payroll_engine/internal/middleware"
)

// taxYearHandler handles HTTP requests for tax year snapshots.
type taxYearHandler struct {
	taxYearService portssvc.TaxYearSvcFacade
}

func newTaxYearHandler(taxYearService portssvc.TaxYearSvcFacade) *taxYearHandler {
	return &taxYearHandler{taxYearService: taxYearService}
}

// registerTaxYearRoutes wires the tax year endpoints.
func registerTaxYearRoutes(group *gin.RouterGroup, taxYearService portssvc.TaxYearSvcFacade) {
	h := newTaxYearHandler(taxYearService)

	taxYears := group.Group("/tax-years")
	{
		taxYears.POST("", h.createTaxYear)
		taxYears.GET("/:year", h.getTaxYear)
	}
}

func (h *taxYearHandler) createTaxYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTaxYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateTaxYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	taxYear, err := h.taxYearService.CreateTaxYear(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, logger, err, "create tax year")
		return
	}

	logger.Info("Tax year created", slog.String("tax_year_id", taxYear.TaxYearID), slog.Int("year", taxYear.Year))
	c.JSON(http.StatusCreated, dto.ToTaxYearResponse(taxYear))
}

func (h *taxYearHandler) getTaxYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, orgID, ok := identity(c, logger)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year parameter"})
		return
	}

	taxYear, err := h.taxYearService.GetTaxYear(c.Request.Context(), orgID, year)
	if err != nil {
		respondError(c, logger, err, "get tax year")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaxYearResponse(taxYear))
}
