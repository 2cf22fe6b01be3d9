package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientScopeKey is the gin context key for the resolved storage scope.
const ClientScopeKey = "clientScope"

const scopeCookie = "doit_client"

// Cookie lifetime in seconds; long-lived so the scope survives the
// round trip through the card processor and later visits.
const scopeCookieMaxAge = 180 * 24 * 60 * 60

// ClientScopeMiddleware resolves the durable-storage scope for the calling
// browser. Tokens and drafts are keyed by it, so it has to be stable across
// requests and across the payment redirect. A header wins (native clients),
// otherwise a cookie, otherwise a fresh ID is minted and set.
func ClientScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := c.GetHeader("X-Client-ID")
		if scope == "" {
			if cookie, err := c.Cookie(scopeCookie); err == nil && cookie != "" {
				scope = cookie
			}
		}
		if scope == "" {
			scope = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(scopeCookie, scope, scopeCookieMaxAge, "/", "", false, true)
		}

		c.Set(ClientScopeKey, scope)
		c.Next()
	}
}

// ClientScope returns the scope resolved for this request.
func ClientScope(c *gin.Context) string {
	return c.GetString(ClientScopeKey)
}
