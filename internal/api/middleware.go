package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planora/event-management-backend/internal/auth"
	"github.com/planora/event-management-backend/internal/user"
)

// RequireSystemAdmin ensures the authenticated user is a system admin.
// It MUST be used after auth.AuthRequired middleware.
func RequireSystemAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.GetUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !c.GetBool("isSysAdmin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: system admin access required"})
			return
		}

		c.Next()
	}
}

// RequireRole ensures the authenticated user has the given role. System
// admins pass regardless. It MUST be used after auth.AuthRequired middleware.
func RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.GetUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if c.GetBool("isSysAdmin") {
			c.Next()
			return
		}

		if user.Role(auth.GetUserRole(c)) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: " + string(role) + " access required"})
			return
		}

		c.Next()
	}
}
