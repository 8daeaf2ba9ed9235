// Package lifecycle holds the registration/approval state table: which
// completion step an account still owes, which routes and nav entries its
// (role, status) pair unlocks, and where each role lands after login.
// Everything here is pure and recomputed per request.
package lifecycle

import "vrisa/internal/domain"

// Route constants used by guards and redirect hints.
const (
	RouteLanding   = "/"
	RouteHome      = "/home"
	RouteDashboard = "/dashboard"
	RouteAdmin     = "/admin"
	RouteStation   = "/station"
	RouteReports   = "/reports"
	RouteProfile   = "/profile"
	RouteAirQual   = "/air-quality"

	RouteCompleteStation     = "/register/station"
	RouteCompleteResearcher  = "/register/researcher"
	RouteCompleteInstitution = "/register/institution"
)

type NavItem string

const (
	NavHome             NavItem = "home"
	NavDashboard        NavItem = "dashboard"
	NavAirQuality       NavItem = "air_quality"
	NavReports          NavItem = "reports"
	NavProfile          NavItem = "profile"
	NavMyStation        NavItem = "my_station"
	NavInstitutionPanel NavItem = "institution_panel"
	NavAdminPanel       NavItem = "admin_panel"
)

// View is the derived UI state for one session.
type View struct {
	BannerVisible   bool      `json:"banner_visible"`
	CompletionRoute string    `json:"completion_route,omitempty"`
	NavItems        []NavItem `json:"nav_items"`
	AllowedRoutes   []string  `json:"allowed_routes"`
	Rejected        bool      `json:"rejected"`
}

// NeedsCompletion reports whether the account still owes its role-specific
// registration form. Citizens never do, whatever their status says.
func NeedsCompletion(role domain.Role, status domain.RoleStatus) bool {
	if role == domain.RoleCitizen {
		return false
	}
	return role.IsOrganizational() && status == domain.StatusPending
}

// CompletionRoute returns the role-specific completion form route. There is
// no generic form: each organizational role has its own.
func CompletionRoute(role domain.Role) string {
	switch role {
	case domain.RoleStationAdmin:
		return RouteCompleteStation
	case domain.RoleResearcher:
		return RouteCompleteResearcher
	case domain.RoleInstitutionMember:
		return RouteCompleteInstitution
	default:
		return ""
	}
}

// LandingRoute is where a fresh login is sent.
func LandingRoute(role domain.Role) string {
	if role == domain.RoleSuperAdmin {
		return RouteAdmin
	}
	return RouteHome
}

// IsInstitutionScoped reports whether the stations list must be scoped to an
// institution. The institution-id leg is a deliberate fallback: an account
// with a generic role but an institution attached is still treated as
// institution-scoped.
func IsInstitutionScoped(role domain.Role, institutionID *int64) bool {
	return role == domain.RoleInstitutionHead || role == domain.RoleSuperAdmin || institutionID != nil
}

// Derive computes the full UI state from the (role, status) pair. A REJECTED
// status collapses to the unprivileged base set with no banner; re-requesting
// the role is a manual path, see DESIGN.md.
func Derive(role domain.Role, status domain.RoleStatus, institutionID *int64) View {
	v := View{
		NavItems:      []NavItem{NavHome, NavDashboard, NavAirQuality, NavReports, NavProfile},
		AllowedRoutes: []string{RouteHome, RouteDashboard, RouteAirQual, RouteReports, RouteProfile},
	}

	if status == domain.StatusRejected && role != domain.RoleCitizen {
		v.Rejected = true
		return v
	}

	if NeedsCompletion(role, status) {
		v.BannerVisible = true
		v.CompletionRoute = CompletionRoute(role)
		v.AllowedRoutes = append(v.AllowedRoutes, v.CompletionRoute)
		return v
	}

	switch role {
	case domain.RoleStationAdmin:
		v.NavItems = append(v.NavItems, NavMyStation)
		v.AllowedRoutes = append(v.AllowedRoutes, RouteStation)
	case domain.RoleInstitutionHead:
		v.NavItems = append(v.NavItems, NavInstitutionPanel)
		v.AllowedRoutes = append(v.AllowedRoutes, RouteAdmin)
	case domain.RoleSuperAdmin:
		v.NavItems = append(v.NavItems, NavInstitutionPanel, NavAdminPanel)
		v.AllowedRoutes = append(v.AllowedRoutes, RouteAdmin)
	}

	return v
}
