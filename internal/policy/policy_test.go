package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/vignette-service/internal/domain"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

var allRoles = []domain.StaffRole{
	domain.StaffRoleSuperAdmin,
	domain.StaffRoleAdmin,
	domain.StaffRoleSupervisor,
	domain.StaffRoleAgent,
}

func TestPermissionTable(t *testing.T) {
	expected := map[Action]map[domain.StaffRole]bool{
		ActionViewDashboard:      {domain.StaffRoleSuperAdmin: true, domain.StaffRoleAdmin: true, domain.StaffRoleSupervisor: true},
		ActionViewVehicles:       {domain.StaffRoleSuperAdmin: true, domain.StaffRoleAdmin: true, domain.StaffRoleSupervisor: true},
		ActionViewStickers:       {domain.StaffRoleSuperAdmin: true, domain.StaffRoleAdmin: true, domain.StaffRoleSupervisor: true},
		ActionViewTaxConfigs:     {domain.StaffRoleSuperAdmin: true, domain.StaffRoleAdmin: true},
		ActionManageStaff:        {domain.StaffRoleSuperAdmin: true, domain.StaffRoleAdmin: true},
		ActionViewPaymentReports: {domain.StaffRoleSuperAdmin: true, domain.StaffRoleAdmin: true, domain.StaffRoleSupervisor: true},
		ActionViewAuditLogs:      {domain.StaffRoleSuperAdmin: true},
		ActionCreateInspection:   {domain.StaffRoleSuperAdmin: true, domain.StaffRoleAdmin: true, domain.StaffRoleSupervisor: true, domain.StaffRoleAgent: true},
		ActionViewInspections:    {domain.StaffRoleSuperAdmin: true, domain.StaffRoleAdmin: true, domain.StaffRoleSupervisor: true, domain.StaffRoleAgent: true},
	}

	for action, roles := range expected {
		for _, role := range allRoles {
			assert.Equalf(t, roles[role], Allowed(role, action),
				"action %s role %s", action, role)
		}
	}
}

func TestAuditLogsSuperAdminOnly(t *testing.T) {
	assert.True(t, Allowed(domain.StaffRoleSuperAdmin, ActionViewAuditLogs))
	assert.False(t, Allowed(domain.StaffRoleAdmin, ActionViewAuditLogs))
	assert.False(t, Allowed(domain.StaffRoleSupervisor, ActionViewAuditLogs))
	assert.False(t, Allowed(domain.StaffRoleAgent, ActionViewAuditLogs))
}

func TestAuthorizeFailsClosed(t *testing.T) {
	err := Authorize(nil, ActionViewDashboard)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	agent := &domain.Staff{ID: "s1", Role: domain.StaffRoleAgent}
	err = Authorize(agent, ActionViewDashboard)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	// unknown action has no table row and is denied for everyone
	err = Authorize(&domain.Staff{Role: domain.StaffRoleSuperAdmin}, Action("drop_tables"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestScope(t *testing.T) {
	niamey := "Niamey"

	assert.Nil(t, Scope(&domain.Staff{Role: domain.StaffRoleSuperAdmin}))
	assert.Nil(t, Scope(&domain.Staff{Role: domain.StaffRoleAdmin, Region: &niamey}))

	supervisor := &domain.Staff{Role: domain.StaffRoleSupervisor, Region: &niamey}
	require.NotNil(t, Scope(supervisor))
	assert.Equal(t, "Niamey", *Scope(supervisor))

	agent := &domain.Staff{Role: domain.StaffRoleAgent, Region: &niamey}
	require.NotNil(t, Scope(agent))
	assert.Equal(t, "Niamey", *Scope(agent))
}

func TestCanCreateStaff(t *testing.T) {
	cases := []struct {
		actor   domain.StaffRole
		newRole domain.StaffRole
		allowed bool
	}{
		{domain.StaffRoleSuperAdmin, domain.StaffRoleSuperAdmin, true},
		{domain.StaffRoleSuperAdmin, domain.StaffRoleAdmin, true},
		{domain.StaffRoleSuperAdmin, domain.StaffRoleSupervisor, true},
		{domain.StaffRoleSuperAdmin, domain.StaffRoleAgent, true},
		{domain.StaffRoleAdmin, domain.StaffRoleSupervisor, true},
		{domain.StaffRoleAdmin, domain.StaffRoleAdmin, false},
		{domain.StaffRoleAdmin, domain.StaffRoleSuperAdmin, false},
		{domain.StaffRoleAdmin, domain.StaffRoleAgent, false},
		{domain.StaffRoleSupervisor, domain.StaffRoleAgent, false},
		{domain.StaffRoleSupervisor, domain.StaffRoleSupervisor, false},
		{domain.StaffRoleAgent, domain.StaffRoleAgent, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, CanCreateStaff(tc.actor, tc.newRole),
			"%s creating %s", tc.actor, tc.newRole)
	}
}
