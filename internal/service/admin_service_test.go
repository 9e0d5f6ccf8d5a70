package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/vignette-service/internal/domain"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

func TestCreateStaffRoleRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	superAdmin := env.createStaff(t, "root", domain.StaffRoleSuperAdmin, nil)
	admin := env.createStaff(t, "chief", domain.StaffRoleAdmin, nil)
	supervisor := env.createStaff(t, "lead", domain.StaffRoleSupervisor, strptr("Niamey"))

	cases := []struct {
		name     string
		actor    *domain.Staff
		role     domain.StaffRole
		region   *string
		wantCode string
	}{
		{"super_admin creates admin", superAdmin, domain.StaffRoleAdmin, nil, ""},
		{"super_admin creates agent", superAdmin, domain.StaffRoleAgent, strptr("Dosso"), ""},
		{"admin creates supervisor", admin, domain.StaffRoleSupervisor, strptr("Maradi"), ""},
		{"admin cannot create admin", admin, domain.StaffRoleAdmin, nil, "FORBIDDEN"},
		{"admin cannot create super_admin", admin, domain.StaffRoleSuperAdmin, nil, "FORBIDDEN"},
		{"admin cannot create agent", admin, domain.StaffRoleAgent, strptr("Dosso"), "FORBIDDEN"},
		{"supervisor cannot create anyone", supervisor, domain.StaffRoleAgent, strptr("Niamey"), "FORBIDDEN"},
		{"supervisor requires region", superAdmin, domain.StaffRoleSupervisor, nil, "VALIDATION_FAILED"},
		{"agent requires region", superAdmin, domain.StaffRoleAgent, nil, "VALIDATION_FAILED"},
		{"blank region rejected", superAdmin, domain.StaffRoleAgent, strptr("  "), "VALIDATION_FAILED"},
		{"unknown role rejected", superAdmin, domain.StaffRole("owner"), nil, "VALIDATION_FAILED"},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			created, err := env.admin.CreateStaff(ctx, tc.actor, StaffCreateInput{
				Username:  "user" + string(rune('a'+i)),
				Password:  "password",
				Role:      tc.role,
				FirstName: "New",
				LastName:  "Staff",
				Region:    tc.region,
			})
			if tc.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.role, created.Role)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, tc.wantCode), "got %v", err)
		})
	}
}

func TestCreateStaffDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	superAdmin := env.createStaff(t, "root", domain.StaffRoleSuperAdmin, nil)

	input := StaffCreateInput{
		Username:  "inspector",
		Password:  "password",
		Role:      domain.StaffRoleAgent,
		FirstName: "First",
		LastName:  "Agent",
		Region:    strptr("Niamey"),
	}
	_, err := env.admin.CreateStaff(ctx, superAdmin, input)
	require.NoError(t, err)

	_, err = env.admin.CreateStaff(ctx, superAdmin, input)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestRegionScopedListings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	citizen := env.createCitizen(t, "+22790000020")
	niameyVehicle := env.createVehicle(t, citizen, "NE-0001-NI", "Niamey", domain.VehicleCategoryCar)
	env.createVehicle(t, citizen, "NE-0002-ZI", "Zinder", domain.VehicleCategoryTruck)

	_, err := env.stickers.Purchase(ctx, citizen, PurchaseInput{VehicleID: niameyVehicle.ID, ValidityYears: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	admin := env.createStaff(t, "chief", domain.StaffRoleAdmin, nil)
	supervisor := env.createStaff(t, "lead", domain.StaffRoleSupervisor, strptr("Niamey"))

	all, err := env.admin.ListVehicles(ctx, admin, 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := env.admin.ListVehicles(ctx, supervisor, 50, 0)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Niamey", scoped[0].Region)

	stickers, err := env.admin.ListStickers(ctx, supervisor, 50, 0)
	require.NoError(t, err)
	require.Len(t, stickers, 1)
	assert.Equal(t, niameyVehicle.ID, stickers[0].VehicleID)

	payments, err := env.admin.PaymentReports(ctx, supervisor, nil, 50, 0)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestAgentCannotViewCollections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	agent := env.createStaff(t, "inspector", domain.StaffRoleAgent, strptr("Niamey"))

	_, err := env.admin.ListVehicles(ctx, agent, 50, 0)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	_, err = env.admin.Dashboard(ctx, agent)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	_, err = env.admin.PaymentReports(ctx, agent, nil, 50, 0)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestDashboardScoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	citizen := env.createCitizen(t, "+22790000021")
	niameyVehicle := env.createVehicle(t, citizen, "NE-0003-NI", "Niamey", domain.VehicleCategoryCar)
	zinderVehicle := env.createVehicle(t, citizen, "NE-0004-ZI", "Zinder", domain.VehicleCategoryTruck)

	_, err := env.stickers.Purchase(ctx, citizen, PurchaseInput{VehicleID: niameyVehicle.ID, ValidityYears: 1, PaymentMethod: "cash"})
	require.NoError(t, err)
	_, err = env.stickers.Purchase(ctx, citizen, PurchaseInput{VehicleID: zinderVehicle.ID, ValidityYears: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	admin := env.createStaff(t, "chief", domain.StaffRoleAdmin, nil)
	global, err := env.admin.Dashboard(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), global.TotalVehicles)
	assert.Equal(t, int64(2), global.ActiveStickers)
	assert.Equal(t, float64(75000), global.TotalRevenue)
	assert.Equal(t, float64(75000), global.TodayRevenue)
	assert.Nil(t, global.Region)

	supervisor := env.createStaff(t, "lead", domain.StaffRoleSupervisor, strptr("Niamey"))
	scoped, err := env.admin.Dashboard(ctx, supervisor)
	require.NoError(t, err)
	assert.Equal(t, int64(1), scoped.TotalVehicles)
	assert.Equal(t, int64(1), scoped.ActiveStickers)
	assert.Equal(t, float64(25000), scoped.TotalRevenue)
	require.NotNil(t, scoped.Region)
	assert.Equal(t, "Niamey", *scoped.Region)
}

func TestAuditLogAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	superAdmin := env.createStaff(t, "root", domain.StaffRoleSuperAdmin, nil)
	admin := env.createStaff(t, "chief", domain.StaffRoleAdmin, nil)

	_, err := env.admin.CreateStaff(ctx, superAdmin, StaffCreateInput{
		Username: "lead", Password: "password", Role: domain.StaffRoleSupervisor,
		FirstName: "Team", LastName: "Lead", Region: strptr("Maradi"),
	})
	require.NoError(t, err)

	entries, err := env.admin.AuditLogs(ctx, superAdmin, 100, 0)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "CREATE", entries[0].Action)
	assert.Equal(t, "users", entries[0].Module)

	_, err = env.admin.AuditLogs(ctx, admin, 100, 0)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestTaxConfigAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.store.SeedTaxConfigs([]domain.TaxConfig{
		{ID: "t1", VehicleCategory: domain.VehicleCategoryCar, BaseAmount: 25000, Status: "active"},
	})

	admin := env.createStaff(t, "chief", domain.StaffRoleAdmin, nil)
	configs, err := env.admin.TaxConfigs(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, configs, 1)

	supervisor := env.createStaff(t, "lead", domain.StaffRoleSupervisor, strptr("Niamey"))
	_, err = env.admin.TaxConfigs(ctx, supervisor)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestInspections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	agent := env.createStaff(t, "inspector", domain.StaffRoleAgent, strptr("Niamey"))

	lat, lng := 13.5127, 2.1126
	inspection, err := env.admin.CreateInspection(ctx, agent, InspectionInput{
		VehicleRegistration: "ne-4321-ba",
		StatusAtControl:     "valid",
		Latitude:            &lat,
		Longitude:           &lng,
	})
	require.NoError(t, err)
	assert.Equal(t, "NE-4321-BA", inspection.VehicleRegistration)
	assert.Equal(t, agent.ID, inspection.AgentID)
	assert.Equal(t, env.clock.Now(), inspection.Timestamp)

	list, err := env.admin.ListInspections(ctx, agent, 50, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = env.admin.CreateInspection(ctx, agent, InspectionInput{VehicleRegistration: "", StatusAtControl: "valid"})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}
