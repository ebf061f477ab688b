// Package access decides whether a browser navigation may proceed, must go to
// the login page, or must be bounced to the caller's role home page.
package access

import (
	"net/url"
	"strings"
)

type Role string

const (
	RoleNone  Role = ""
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a cookie value onto a known role; anything else is RoleNone.
func ParseRole(value string) Role {
	switch Role(value) {
	case RoleUser:
		return RoleUser
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleNone
	}
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Satisfies reports whether r may act as required. Admin satisfies every role.
func (r Role) Satisfies(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r.Valid() && r == required
}

type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToRoleHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToRoleHome:
		return "redirect-to-role-home"
	default:
		return "unknown"
	}
}

type Outcome struct {
	Decision Decision
	// Location is empty for Allow.
	Location string
}

type Policy struct {
	ProtectedPrefix string
	LoginPath       string
	ReturnURLParam  string
	AdminHome       string
	UserHome        string
	// Permissions maps a route prefix to the roles allowed under it. The
	// longest matching prefix wins.
	Permissions map[string][]Role
}

func DefaultPolicy() *Policy {
	return &Policy{
		ProtectedPrefix: "/dashboard",
		LoginPath:       "/login",
		ReturnURLParam:  "returnUrl",
		AdminHome:       "/dashboard/admin",
		UserHome:        "/dashboard/user",
		Permissions: map[string][]Role{
			"/dashboard/new-post": {RoleAdmin},
			"/dashboard/":         {RoleUser, RoleAdmin},
		},
	}
}

// Decide evaluates one navigation. The role home pages are exempt from the
// role check, so a session without a recognised role settles on the user home.
func (p *Policy) Decide(path string, authenticated bool, role Role) Outcome {
	protected := matchPrefix(path, p.ProtectedPrefix)

	switch {
	case protected && !authenticated:
		return Outcome{Decision: RedirectToLogin, Location: p.LoginURL(path)}
	case path == p.LoginPath && authenticated:
		return Outcome{Decision: RedirectToRoleHome, Location: p.HomeFor(role)}
	case protected && authenticated:
		home := p.HomeFor(role)
		if path == home {
			break
		}
		if allowed, ok := p.RequiredRoles(path); ok && !roleIn(role, allowed) {
			return Outcome{Decision: RedirectToRoleHome, Location: home}
		}
	}
	return Outcome{Decision: Allow}
}

func (p *Policy) HomeFor(role Role) string {
	if role == RoleAdmin {
		return p.AdminHome
	}
	return p.UserHome
}

// LoginURL keeps slashes in the return path readable: /login?returnUrl=/dashboard/new-post.
func (p *Policy) LoginURL(returnPath string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(returnPath), "%2F", "/")
	return p.LoginPath + "?" + p.ReturnURLParam + "=" + escaped
}

// RequiredRoles returns the role set of the longest permission prefix matching path.
func (p *Policy) RequiredRoles(path string) ([]Role, bool) {
	best := ""
	var roles []Role
	found := false
	for prefix, allowed := range p.Permissions {
		if matchPrefix(path, prefix) && len(prefix) > len(best) {
			best, roles, found = prefix, allowed, true
		}
	}
	return roles, found
}

func roleIn(role Role, allowed []Role) bool {
	for _, r := range allowed {
		if role.Satisfies(r) {
			return true
		}
	}
	return false
}

// matchPrefix matches whole path segments: /dashboard matches /dashboard and
// /dashboard/x but not /dashboards. A prefix ending in "/" only matches below it.
func matchPrefix(path, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(path, prefix) {
		return false
	}
	if strings.HasSuffix(prefix, "/") || len(path) == len(prefix) {
		return true
	}
	return path[len(prefix)] == '/'
}
