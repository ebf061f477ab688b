package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_UnauthenticatedProtectedPath(t *testing.T) {
	policy := DefaultPolicy()

	outcome := policy.Decide("/dashboard/new-post", false, RoleNone)

	assert.Equal(t, RedirectToLogin, outcome.Decision)
	assert.Equal(t, "/login?returnUrl=/dashboard/new-post", outcome.Location)
}

func TestDecide_NonAdminOnAdminOnlyPath(t *testing.T) {
	policy := DefaultPolicy()

	outcome := policy.Decide("/dashboard/new-post", true, RoleUser)

	assert.Equal(t, RedirectToRoleHome, outcome.Decision)
	assert.Equal(t, "/dashboard/user", outcome.Location)
}

func TestDecide_AdminAlwaysAllowed(t *testing.T) {
	policy := DefaultPolicy()

	for _, path := range []string{"/dashboard", "/dashboard/", "/dashboard/user", "/dashboard/admin", "/dashboard/new-post", "/dashboard/new-post/preview"} {
		outcome := policy.Decide(path, true, RoleAdmin)
		assert.Equal(t, Allow, outcome.Decision, path)
		assert.Empty(t, outcome.Location, path)
	}
}

func TestDecide_AdminOverridesExplicitMapping(t *testing.T) {
	policy := DefaultPolicy()
	policy.Permissions["/dashboard/reports"] = []Role{RoleUser}

	assert.Equal(t, Allow, policy.Decide("/dashboard/reports", true, RoleAdmin).Decision)
}

func TestDecide_UserOnUserPaths(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, Allow, policy.Decide("/dashboard/user", true, RoleUser).Decision)
	assert.Equal(t, Allow, policy.Decide("/dashboard", true, RoleUser).Decision)
}

func TestDecide_LoginWhileAuthenticated(t *testing.T) {
	policy := DefaultPolicy()

	admin := policy.Decide("/login", true, RoleAdmin)
	assert.Equal(t, RedirectToRoleHome, admin.Decision)
	assert.Equal(t, "/dashboard/admin", admin.Location)

	user := policy.Decide("/login", true, RoleUser)
	assert.Equal(t, RedirectToRoleHome, user.Decision)
	assert.Equal(t, "/dashboard/user", user.Location)
}

func TestDecide_LoginWhileAnonymous(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, Allow, policy.Decide("/login", false, RoleNone).Decision)
}

func TestDecide_UnprotectedPaths(t *testing.T) {
	policy := DefaultPolicy()

	for _, path := range []string{"/", "/api/posts", "/dashboards", "/logout"} {
		assert.Equal(t, Allow, policy.Decide(path, false, RoleNone).Decision, path)
	}
}

func TestDecide_AuthenticatedWithoutRole(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name     string
		path     string
		role     Role
		decision Decision
		location string
	}{
		{"admin only path", "/dashboard/new-post", RoleNone, RedirectToRoleHome, "/dashboard/user"},
		{"user home", "/dashboard/user", RoleNone, Allow, ""},
		{"admin home", "/dashboard/admin", RoleNone, RedirectToRoleHome, "/dashboard/user"},
		{"login", "/login", RoleNone, RedirectToRoleHome, "/dashboard/user"},
		{"unknown role value", "/dashboard/new-post", ParseRole("superuser"), RedirectToRoleHome, "/dashboard/user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := policy.Decide(tt.path, true, tt.role)
			assert.Equal(t, tt.decision, outcome.Decision)
			assert.Equal(t, tt.location, outcome.Location)
			assert.NotEqual(t, RedirectToLogin, outcome.Decision)
		})
	}
}

func TestDecide_RedirectsSettle(t *testing.T) {
	policy := DefaultPolicy()

	for _, role := range []Role{RoleNone, RoleUser, RoleAdmin} {
		path := "/login"
		for i := 0; i < 3; i++ {
			outcome := policy.Decide(path, true, role)
			if outcome.Decision == Allow {
				break
			}
			path = outcome.Location
		}
		assert.Equal(t, Allow, policy.Decide(path, true, role).Decision, "role %q", role)
	}
}

func TestDecide_IsPure(t *testing.T) {
	policy := DefaultPolicy()

	first := policy.Decide("/dashboard/new-post", true, RoleUser)
	second := policy.Decide("/dashboard/new-post", true, RoleUser)

	assert.Equal(t, first, second)
	assert.Len(t, policy.Permissions, 2)
}

func TestLoginURL_EscapesQueryCharacters(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, "/login?returnUrl=/dashboard/a%26b", policy.LoginURL("/dashboard/a&b"))
}

func TestRequiredRoles_LongestPrefix(t *testing.T) {
	policy := DefaultPolicy()

	roles, ok := policy.RequiredRoles("/dashboard/new-post")
	assert.True(t, ok)
	assert.Equal(t, []Role{RoleAdmin}, roles)

	roles, ok = policy.RequiredRoles("/dashboard/user")
	assert.True(t, ok)
	assert.Equal(t, []Role{RoleUser, RoleAdmin}, roles)

	_, ok = policy.RequiredRoles("/dashboard")
	assert.False(t, ok)

	roles, ok = policy.RequiredRoles("/dashboard/new-postings")
	assert.True(t, ok)
	assert.Equal(t, []Role{RoleUser, RoleAdmin}, roles)
}

func TestRole_Satisfies(t *testing.T) {
	assert.True(t, RoleAdmin.Satisfies(RoleUser))
	assert.True(t, RoleAdmin.Satisfies(RoleAdmin))
	assert.True(t, RoleUser.Satisfies(RoleUser))
	assert.False(t, RoleUser.Satisfies(RoleAdmin))
	assert.False(t, RoleNone.Satisfies(RoleNone))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleNone, ParseRole("Admin"))
	assert.Equal(t, RoleNone, ParseRole(""))
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "redirect-to-login", RedirectToLogin.String())
	assert.Equal(t, "redirect-to-role-home", RedirectToRoleHome.String())
}
