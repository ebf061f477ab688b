package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inkboard/pkg/access"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCookies_Set(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)

	Cookies{}.Set(c, access.RoleAdmin, "signed-token")

	cookies := w.Result().Cookies()
	auth := cookieByName(cookies, CookieAuthenticated)
	require.NotNil(t, auth)
	assert.Equal(t, "true", auth.Value)
	assert.Equal(t, "/", auth.Path)
	assert.Equal(t, int(MaxAge.Seconds()), auth.MaxAge)
	assert.Equal(t, http.SameSiteStrictMode, auth.SameSite)
	assert.False(t, auth.HttpOnly)

	role := cookieByName(cookies, CookieRole)
	require.NotNil(t, role)
	assert.Equal(t, "admin", role.Value)

	token := cookieByName(cookies, CookieToken)
	require.NotNil(t, token)
	assert.True(t, token.HttpOnly)
}

func TestCookies_Clear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/logout", nil)

	Cookies{}.Clear(c)

	for _, name := range []string{CookieAuthenticated, CookieRole, CookieToken} {
		cookie := cookieByName(w.Result().Cookies(), name)
		require.NotNil(t, cookie, name)
		assert.Empty(t, cookie.Value, name)
		assert.Less(t, cookie.MaxAge, 0, name)
	}
}

func TestRead(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieAuthenticated, Value: "true"})
	req.AddCookie(&http.Cookie{Name: CookieRole, Value: "user"})

	authenticated, role := Read(req)
	assert.True(t, authenticated)
	assert.Equal(t, access.RoleUser, role)
}

func TestRead_NoCookies(t *testing.T) {
	authenticated, role := Read(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.False(t, authenticated)
	assert.Equal(t, access.RoleNone, role)
}

func TestRead_NonTrueFlag(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieAuthenticated, Value: "yes"})

	authenticated, _ := Read(req)
	assert.False(t, authenticated)
}
