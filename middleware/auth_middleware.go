package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sapphire-cosmetics/storefront/models"
	"github.com/sapphire-cosmetics/storefront/services"
)

const PrincipalContextKey = "principal"

// SessionRequired gates views behind an authenticated session and makes
// the principal available to handlers.
func SessionRequired(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Unauthorized",
				"redirect": "/login",
			})
			return
		}

		principal, _ := sessions.Current()
		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// AdminRequired restricts the back-office views to admin principals.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok || principal.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	val, exists := c.Get(PrincipalContextKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := val.(models.Principal)
	return principal, ok
}
