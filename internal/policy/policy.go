// Package policy is the pure decision component for staff authorization.
// Permissions live in one declarative table keyed by (action, role) instead
// of inline checks scattered across handlers, so the table itself is the
// artifact under test.
package policy

import (
	"github.com/spec-kit/vignette-service/internal/domain"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

// Action enumerates the privileged operations gated by the engine.
type Action string

const (
	ActionViewDashboard      Action = "view_dashboard"
	ActionViewVehicles       Action = "view_vehicles"
	ActionViewStickers       Action = "view_stickers"
	ActionViewTaxConfigs     Action = "view_tax_configs"
	ActionManageStaff        Action = "manage_staff"
	ActionViewPaymentReports Action = "view_payment_reports"
	ActionViewAuditLogs      Action = "view_audit_logs"
	ActionCreateInspection   Action = "create_inspection"
	ActionViewInspections    Action = "view_inspections"
)

// permissions is the authoritative per-action role table. Operation
// capability does not coincide with rank: agents have the narrowest set
// despite outranking nobody, and audit-log access stops above admin.
var permissions = map[Action]map[domain.StaffRole]bool{
	ActionViewDashboard: {
		domain.StaffRoleSuperAdmin: true,
		domain.StaffRoleAdmin:      true,
		domain.StaffRoleSupervisor: true,
	},
	ActionViewVehicles: {
		domain.StaffRoleSuperAdmin: true,
		domain.StaffRoleAdmin:      true,
		domain.StaffRoleSupervisor: true,
	},
	ActionViewStickers: {
		domain.StaffRoleSuperAdmin: true,
		domain.StaffRoleAdmin:      true,
		domain.StaffRoleSupervisor: true,
	},
	ActionViewTaxConfigs: {
		domain.StaffRoleSuperAdmin: true,
		domain.StaffRoleAdmin:      true,
	},
	ActionManageStaff: {
		domain.StaffRoleSuperAdmin: true,
		domain.StaffRoleAdmin:      true,
	},
	ActionViewPaymentReports: {
		domain.StaffRoleSuperAdmin: true,
		domain.StaffRoleAdmin:      true,
		domain.StaffRoleSupervisor: true,
	},
	ActionViewAuditLogs: {
		domain.StaffRoleSuperAdmin: true,
	},
	ActionCreateInspection: {
		domain.StaffRoleSuperAdmin: true,
		domain.StaffRoleAdmin:      true,
		domain.StaffRoleSupervisor: true,
		domain.StaffRoleAgent:      true,
	},
	ActionViewInspections: {
		domain.StaffRoleSuperAdmin: true,
		domain.StaffRoleAdmin:      true,
		domain.StaffRoleSupervisor: true,
		domain.StaffRoleAgent:      true,
	},
}

// Allowed reports whether the role may perform the action.
func Allowed(role domain.StaffRole, action Action) bool {
	return permissions[action][role]
}

// Authorize fails closed: any (role, action) pair not explicitly allowed in
// the table is denied, before any side effect can occur.
func Authorize(actor *domain.Staff, action Action) error {
	if actor == nil || !Allowed(actor.Role, action) {
		return apperrors.NewForbidden("insufficient role")
	}
	return nil
}

// Scope returns the region restriction for a staff principal: nil means all
// regions, otherwise queries must be constrained to the returned region.
// Applied uniformly to every region-bearing collection so a scoped principal
// cannot observe another region through any derived statistic.
func Scope(actor *domain.Staff) *string {
	if actor == nil {
		return nil
	}
	if actor.Role.RegionScoped() {
		return actor.Region
	}
	return nil
}

// creatableRoles governs staff-account provisioning, which follows its own
// rules distinct from the action table: super_admin creates any role, admin
// creates supervisors only, everyone else creates nobody.
var creatableRoles = map[domain.StaffRole]map[domain.StaffRole]bool{
	domain.StaffRoleSuperAdmin: {
		domain.StaffRoleSuperAdmin: true,
		domain.StaffRoleAdmin:      true,
		domain.StaffRoleSupervisor: true,
		domain.StaffRoleAgent:      true,
	},
	domain.StaffRoleAdmin: {
		domain.StaffRoleSupervisor: true,
	},
}

// CanCreateStaff reports whether actor's role may provision an account with
// the given role.
func CanCreateStaff(actor domain.StaffRole, newRole domain.StaffRole) bool {
	return creatableRoles[actor][newRole]
}
