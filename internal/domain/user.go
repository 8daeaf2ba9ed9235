package domain

import "time"

type Role string

const (
	RoleCitizen           Role = "citizen"
	RoleStationAdmin      Role = "station_admin"
	RoleResearcher        Role = "researcher"
	RoleInstitutionMember Role = "institution_member"
	RoleInstitutionHead   Role = "institution_head"
	RoleSuperAdmin        Role = "super_admin"
)

// NormalizeRole maps unknown role strings to citizen, the unprivileged default.
func NormalizeRole(s string) Role {
	switch Role(s) {
	case RoleCitizen, RoleStationAdmin, RoleResearcher, RoleInstitutionMember, RoleInstitutionHead, RoleSuperAdmin:
		return Role(s)
	default:
		return RoleCitizen
	}
}

// IsOrganizational reports whether the role is one of the self-selected
// organizational roles that require a completion form and admin approval.
func (r Role) IsOrganizational() bool {
	return r == RoleStationAdmin || r == RoleResearcher || r == RoleInstitutionMember
}

type RoleStatus string

const (
	StatusApproved RoleStatus = "APPROVED"
	StatusPending  RoleStatus = "PENDING"
	StatusRejected RoleStatus = "REJECTED"
)

type User struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name,omitempty"`
	Role          Role       `json:"role"`
	RoleStatus    RoleStatus `json:"role_status,omitempty"`
	InstitutionID *int64     `json:"institution_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// PlatformStats is the admin dashboard counters payload from /users/stats/.
type PlatformStats struct {
	TotalUsers          int `json:"total_users"`
	TotalInstitutions   int `json:"total_institutions"`
	TotalStations       int `json:"total_stations"`
	PendingInstitutions int `json:"pending_institutions"`
	PendingStations     int `json:"pending_stations"`
	PendingResearchers  int `json:"pending_researchers"`
}
