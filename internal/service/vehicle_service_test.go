package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/vignette-service/internal/domain"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

func TestRegisterVehicleNormalizesPlate(t *testing.T) {
	env := newTestEnv(t)
	citizen := env.createCitizen(t, "+22790000030")

	vehicle, err := env.vehicles.Register(context.Background(), citizen, VehicleRegisterInput{
		RegistrationNumber: "  ne-1234-ab ",
		Region:             "Niamey",
	})
	require.NoError(t, err)
	assert.Equal(t, "NE-1234-AB", vehicle.RegistrationNumber)
	assert.Equal(t, domain.VehicleCategoryCar, vehicle.Category)
	assert.Equal(t, citizen.ID, vehicle.OwnerID)
}

func TestRegisterVehicleDuplicatePlate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	citizen := env.createCitizen(t, "+22790000031")
	env.createVehicle(t, citizen, "NE-1234-AB", "Niamey", domain.VehicleCategoryCar)

	// same plate, different case
	_, err := env.vehicles.Register(ctx, citizen, VehicleRegisterInput{
		RegistrationNumber: "ne-1234-ab",
		Region:             "Zinder",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestRegisterVehicleValidation(t *testing.T) {
	env := newTestEnv(t)
	citizen := env.createCitizen(t, "+22790000032")

	_, err := env.vehicles.Register(context.Background(), citizen, VehicleRegisterInput{Region: "Niamey"})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = env.vehicles.Register(context.Background(), citizen, VehicleRegisterInput{RegistrationNumber: "NE-1-A"})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestListOwnVehicles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createCitizen(t, "+22790000033")
	other := env.createCitizen(t, "+22790000034")
	env.createVehicle(t, owner, "NE-0001-AA", "Niamey", domain.VehicleCategoryCar)
	env.createVehicle(t, other, "NE-0002-BB", "Niamey", domain.VehicleCategoryCar)

	list, err := env.vehicles.ListOwn(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "NE-0001-AA", list[0].RegistrationNumber)
}

func TestGetOwnFoldsOwnershipIntoNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createCitizen(t, "+22790000035")
	other := env.createCitizen(t, "+22790000036")
	vehicle := env.createVehicle(t, owner, "NE-0003-CC", "Niamey", domain.VehicleCategoryCar)

	got, err := env.vehicles.GetOwn(ctx, owner.ID, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, vehicle.ID, got.ID)

	_, err = env.vehicles.GetOwn(ctx, other.ID, vehicle.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	_, err = env.vehicles.GetOwn(ctx, owner.ID, "missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
