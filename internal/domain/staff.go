package domain

import "time"

// StaffRole enumerates administrative roles, strictly ordered by privilege:
// super_admin > admin > supervisor > agent.
type StaffRole string

const (
	StaffRoleSuperAdmin StaffRole = "super_admin"
	StaffRoleAdmin      StaffRole = "admin"
	StaffRoleSupervisor StaffRole = "supervisor"
	StaffRoleAgent      StaffRole = "agent"
)

// Valid reports whether the role is a known staff role.
func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleSuperAdmin, StaffRoleAdmin, StaffRoleSupervisor, StaffRoleAgent:
		return true
	}
	return false
}

// RegionScoped reports whether the role only sees its assigned home region.
func (r StaffRole) RegionScoped() bool {
	return r == StaffRoleSupervisor || r == StaffRoleAgent
}

// Staff models an administrative account. Role and Region are immutable after
// provisioning; no operation in this service mutates them.
type Staff struct {
	ID           string
	Username     string
	PasswordHash string
	Role         StaffRole
	FirstName    string
	LastName     string
	Region       *string
	CreatedAt    time.Time
}

// FullName concatenates first and last name for display.
func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}
