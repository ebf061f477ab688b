package middleware

import (
	"net/http"

	"inkboard/pkg/access"
	"inkboard/pkg/session"

	"github.com/gin-gonic/gin"
)

// AccessMiddleware gates page navigation with redirects rather than error codes.
func AccessMiddleware(policy *access.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticated, role := session.Read(c.Request)

		outcome := policy.Decide(c.Request.URL.Path, authenticated, role)
		if outcome.Decision != access.Allow {
			c.Redirect(http.StatusTemporaryRedirect, outcome.Location)
			c.Abort()
			return
		}

		c.Set("user_role", string(role))
		c.Next()
	}
}
