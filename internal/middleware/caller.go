package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
)

const (
	CallerIDHeader   = "X-Caller-ID"
	CallerRoleHeader = "X-Caller-Role"

	callerKey = "caller"
)

// CallerMiddleware reads the caller the gateway already authenticated.
// Requests without a recognised caller are rejected.
func CallerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(CallerIDHeader))
		role := domain.Role(strings.ToUpper(strings.TrimSpace(c.GetHeader(CallerRoleHeader))))

		switch role {
		case domain.RoleCustomer, domain.RoleDriver, domain.RoleAdmin:
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown caller role"})
			return
		}
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing caller id"})
			return
		}

		c.Set(callerKey, domain.Caller{UserID: id, Role: role})
		c.Next()
	}
}

// Require rejects callers that lack the capability.
func Require(capability domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok || !caller.Can(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "missing capability " + string(capability)})
			return
		}
		c.Next()
	}
}

// CallerFrom returns the caller stored by CallerMiddleware.
func CallerFrom(c *gin.Context) (domain.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return domain.Caller{}, false
	}
	caller, ok := v.(domain.Caller)
	return caller, ok
}
