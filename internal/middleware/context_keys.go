package middleware

import "github.com/gin-gonic/gin"

const (
	userIDKey = contextKey("userID")
	orgIDKey  = contextKey("organizationID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetOrganizationIDFromContext retrieves the authenticated user's
// organization ID from the request context.
func GetOrganizationIDFromContext(c *gin.Context) (string, bool) {
	orgID, ok := c.Request.Context().Value(orgIDKey).(string)
	if !ok || orgID == "" {
		return "", false
	}
	return orgID, true
}
