// Package session owns the browser cookies that carry sign-in state.
package session

import (
	"net/http"
	"time"

	"inkboard/pkg/access"

	"github.com/gin-gonic/gin"
)

const (
	CookieAuthenticated = "isAuthenticated"
	CookieRole          = "userRole"
	CookieToken         = "auth_token"

	MaxAge = 7 * 24 * time.Hour
)

type Cookies struct {
	Secure bool
}

// Set writes the sign-in cookies: 7 days, root path, SameSite=Strict.
// isAuthenticated and userRole stay readable by page scripts.
func (s Cookies) Set(c *gin.Context, role access.Role, token string) {
	maxAge := int(MaxAge.Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieAuthenticated, "true", maxAge, "/", "", s.Secure, false)
	c.SetCookie(CookieRole, string(role), maxAge, "/", "", s.Secure, false)
	if token != "" {
		c.SetCookie(CookieToken, token, maxAge, "/", "", s.Secure, true)
	}
}

func (s Cookies) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieAuthenticated, "", -1, "/", "", s.Secure, false)
	c.SetCookie(CookieRole, "", -1, "/", "", s.Secure, false)
	c.SetCookie(CookieToken, "", -1, "/", "", s.Secure, true)
}

// Read returns the two signals the access policy consumes.
func Read(r *http.Request) (authenticated bool, role access.Role) {
	if cookie, err := r.Cookie(CookieAuthenticated); err == nil {
		authenticated = cookie.Value == "true"
	}
	if cookie, err := r.Cookie(CookieRole); err == nil {
		role = access.ParseRole(cookie.Value)
	}
	return authenticated, role
}
