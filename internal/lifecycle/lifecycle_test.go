package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vrisa/internal/domain"
)

func TestNeedsCompletion_CitizenNeverNeedsIt(t *testing.T) {
	for _, status := range []domain.RoleStatus{domain.StatusApproved, domain.StatusPending, domain.StatusRejected, ""} {
		assert.False(t, NeedsCompletion(domain.RoleCitizen, status), "citizen with status %q", status)
	}
}

func TestNeedsCompletion_OrgRoles(t *testing.T) {
	cases := []struct {
		role   domain.Role
		status domain.RoleStatus
		want   bool
	}{
		{domain.RoleStationAdmin, domain.StatusPending, true},
		{domain.RoleResearcher, domain.StatusPending, true},
		{domain.RoleInstitutionMember, domain.StatusPending, true},
		{domain.RoleStationAdmin, domain.StatusApproved, false},
		{domain.RoleResearcher, domain.StatusApproved, false},
		{domain.RoleInstitutionMember, domain.StatusRejected, false},
		{domain.RoleSuperAdmin, domain.StatusPending, false},
		{domain.RoleInstitutionHead, domain.StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NeedsCompletion(tc.role, tc.status), "%s/%s", tc.role, tc.status)
	}
}

func TestCompletionRoute_IsRoleSpecific(t *testing.T) {
	assert.Equal(t, RouteCompleteStation, CompletionRoute(domain.RoleStationAdmin))
	assert.Equal(t, RouteCompleteResearcher, CompletionRoute(domain.RoleResearcher))
	assert.Equal(t, RouteCompleteInstitution, CompletionRoute(domain.RoleInstitutionMember))
	assert.Empty(t, CompletionRoute(domain.RoleCitizen))
	assert.Empty(t, CompletionRoute(domain.RoleSuperAdmin))
}

func TestDerive_PendingOrgRoleShowsBannerWithItsOwnRoute(t *testing.T) {
	for role, route := range map[domain.Role]string{
		domain.RoleStationAdmin:      RouteCompleteStation,
		domain.RoleResearcher:        RouteCompleteResearcher,
		domain.RoleInstitutionMember: RouteCompleteInstitution,
	} {
		v := Derive(role, domain.StatusPending, nil)
		assert.True(t, v.BannerVisible, "banner for %s", role)
		assert.Equal(t, route, v.CompletionRoute, "route for %s", role)
		assert.Contains(t, v.AllowedRoutes, route)
		assert.NotContains(t, v.NavItems, NavMyStation)
	}
}

func TestDerive_ApprovedRolesUnlockScopedNav(t *testing.T) {
	v := Derive(domain.RoleStationAdmin, domain.StatusApproved, nil)
	assert.False(t, v.BannerVisible)
	assert.Contains(t, v.NavItems, NavMyStation)
	assert.Contains(t, v.AllowedRoutes, RouteStation)

	v = Derive(domain.RoleInstitutionHead, domain.StatusApproved, nil)
	assert.Contains(t, v.NavItems, NavInstitutionPanel)
	assert.NotContains(t, v.NavItems, NavAdminPanel)
	assert.Contains(t, v.AllowedRoutes, RouteAdmin)

	v = Derive(domain.RoleSuperAdmin, domain.StatusApproved, nil)
	assert.Contains(t, v.NavItems, NavInstitutionPanel)
	assert.Contains(t, v.NavItems, NavAdminPanel)
}

func TestDerive_CitizenGetsBaseSetOnly(t *testing.T) {
	v := Derive(domain.RoleCitizen, domain.StatusApproved, nil)
	assert.False(t, v.BannerVisible)
	assert.False(t, v.Rejected)
	assert.ElementsMatch(t, []NavItem{NavHome, NavDashboard, NavAirQuality, NavReports, NavProfile}, v.NavItems)
	assert.NotContains(t, v.AllowedRoutes, RouteAdmin)
}

func TestDerive_RejectedFallsBackToUnprivileged(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleStationAdmin, domain.RoleResearcher, domain.RoleInstitutionMember} {
		v := Derive(role, domain.StatusRejected, nil)
		assert.True(t, v.Rejected, "%s", role)
		assert.False(t, v.BannerVisible, "%s", role)
		assert.NotContains(t, v.NavItems, NavMyStation)
		assert.NotContains(t, v.AllowedRoutes, RouteAdmin)
	}
}

func TestIsInstitutionScoped_ExplicitOrCondition(t *testing.T) {
	instID := int64(7)

	assert.True(t, IsInstitutionScoped(domain.RoleInstitutionHead, nil))
	assert.True(t, IsInstitutionScoped(domain.RoleSuperAdmin, nil))
	// fallback-inference: generic role with an institution attached
	assert.True(t, IsInstitutionScoped(domain.RoleCitizen, &instID))
	assert.True(t, IsInstitutionScoped(domain.RoleResearcher, &instID))

	assert.False(t, IsInstitutionScoped(domain.RoleCitizen, nil))
	assert.False(t, IsInstitutionScoped(domain.RoleStationAdmin, nil))
}

func TestLandingRoute(t *testing.T) {
	assert.Equal(t, RouteAdmin, LandingRoute(domain.RoleSuperAdmin))
	for _, role := range []domain.Role{domain.RoleCitizen, domain.RoleStationAdmin, domain.RoleResearcher, domain.RoleInstitutionMember, domain.RoleInstitutionHead} {
		assert.Equal(t, RouteHome, LandingRoute(role))
	}
}

func TestNormalizeRole_DefaultsToCitizen(t *testing.T) {
	assert.Equal(t, domain.RoleCitizen, domain.NormalizeRole("banana"))
	assert.Equal(t, domain.RoleSuperAdmin, domain.NormalizeRole("super_admin"))
}
