package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/paycove/payroll_engine/internal/core/ports/services"
	"github.com/paycove/payroll_engine/internal/middleware"
	"github.com/paycove/payroll_engine/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if !cfg.IsProduction {
		registerDevTokenRoute(r, cfg)
	}

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerRunRoutes(v1, services.Run, services.Adjustment)
	registerComponentRoutes(v1, services.Component)
	registerProfileRoutes(v1, services.Profile)
	registerTaxYearRoutes(v1, services.TaxYear)
	registerConfigRoutes(v1, services.Config)
}
