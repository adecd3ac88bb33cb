package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paycove/payroll_engine/internal/middleware"
	"github.com/paycove/payroll_engine/internal/platform/config"
)

type devTokenRequest struct {
	UserID         string `json:"userID" binding:"required"`
	OrganizationID string `json:"organizationID" binding:"required"`
}

// registerDevTokenRoute exposes a token minting endpoint for local
// development. It is never registered in production; real deployments receive
// tokens from the upstream identity service.
func registerDevTokenRoute(r *gin.Engine, cfg *config.Config) {
	r.POST("/dev/token", func(c *gin.Context) {
		var req devTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		token, err := middleware.GenerateToken(req.UserID, req.OrganizationID, cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiryDuration)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	})
}
