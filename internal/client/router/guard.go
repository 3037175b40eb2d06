// Package router holds the client's route table and the navigation guard that
// enforces authentication and role allow-lists before any page is entered.
package router

import (
	"github.com/hockeyclub/club-system/internal/core/domain"
)

const (
	PathLogin            = "/login"
	PathRoot             = "/"
	PathAdminDashboard   = "/admin/dashboard"
	PathAthleteDashboard = "/athlete/dashboard"
)

// Meta is the static access-control metadata attached to a route.
// A nil RequiresAuth means true; an empty AllowedRoles list admits any
// authenticated role.
type Meta struct {
	RequiresAuth *bool
	AllowedRoles []domain.Role
}

// Route is a declarative route definition; consulted, never mutated.
type Route struct {
	Path string
	Name string
	Meta Meta
}

// Decision is the outcome of a single navigation attempt.
type Decision struct {
	Allowed    bool
	RedirectTo string
	// ReturnTo carries the originally requested path when redirecting to
	// login, so the user lands where they were headed after signing in.
	ReturnTo string
}

// Session is the slice of the session store the guard consults.
type Session interface {
	IsAuthenticated() bool
	Role() domain.Role
}

// DefaultRoutes is the Phase-1 route table: login, role-resolved root, and the
// two dashboard shells.
func DefaultRoutes() []Route {
	noAuth := false
	return []Route{
		{Path: PathLogin, Name: "Login", Meta: Meta{RequiresAuth: &noAuth}},
		{Path: PathRoot, Name: "Root"},
		{Path: PathAdminDashboard, Name: "AdminDashboard", Meta: Meta{AllowedRoles: []domain.Role{domain.RoleAdmin}}},
		{Path: PathAthleteDashboard, Name: "AthleteDashboard", Meta: Meta{AllowedRoles: []domain.Role{domain.RoleAthlete}}},
	}
}

// Guard gates every navigation against the session. Decisions are computed
// per attempt and never stored.
type Guard struct {
	routes  map[string]Route
	session Session
}

func NewGuard(session Session, routes []Route) *Guard {
	byPath := make(map[string]Route, len(routes))
	for _, r := range routes {
		byPath[r.Path] = r
	}
	return &Guard{routes: byPath, session: session}
}

// Check decides a navigation to path. The authentication check runs strictly
// before the role check: an unauthenticated session has no role to test.
func (g *Guard) Check(path string) Decision {
	route, known := g.routes[path]
	if !known {
		// Unknown paths fall through to the not-found page, which still
		// requires authentication by default.
		route = Route{Path: path, Name: "NotFound"}
	}

	authed := g.session.IsAuthenticated()

	if requiresAuth(route.Meta) && !authed {
		return Decision{RedirectTo: PathLogin, ReturnTo: path}
	}

	// An authenticated user has no business on the login page, and the root
	// path resolves to the role dashboard.
	if authed && (route.Path == PathLogin || route.Path == PathRoot) {
		return Decision{RedirectTo: DashboardFor(g.session.Role())}
	}

	if len(route.Meta.AllowedRoles) > 0 && !roleAllowed(route.Meta.AllowedRoles, g.session.Role()) {
		// Silent downgrade, not an error: send the user to their own
		// dashboard.
		return Decision{RedirectTo: DashboardFor(g.session.Role())}
	}

	return Decision{Allowed: true}
}

// Resolve returns the route registered at path, if any.
func (g *Guard) Resolve(path string) (Route, bool) {
	r, ok := g.routes[path]
	return r, ok
}

// DashboardFor maps a role to its dashboard path.
func DashboardFor(role domain.Role) string {
	if role == domain.RoleAdmin {
		return PathAdminDashboard
	}
	return PathAthleteDashboard
}

func requiresAuth(m Meta) bool {
	if m.RequiresAuth == nil {
		return true
	}
	return *m.RequiresAuth
}

func roleAllowed(allowed []domain.Role, role domain.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
