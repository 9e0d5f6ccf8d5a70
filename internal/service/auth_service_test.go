package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/vignette-service/internal/domain"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

func TestRegisterAndLoginCitizen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	citizen, token, _, err := env.auth.RegisterCitizen(ctx, CitizenRegisterInput{
		Phone:     "+22791112233",
		Password:  "secret123",
		FirstName: "Fatima",
		LastName:  "Souley",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "fr", citizen.Language)
	assert.Equal(t, 0, citizen.LoyaltyPoints)

	loggedIn, token, _, err := env.auth.LoginCitizen(ctx, "+22791112233", "secret123")
	require.NoError(t, err)
	assert.Equal(t, citizen.ID, loggedIn.ID)

	claims, err := env.auth.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectTypeCitizen, claims.Subject)
	assert.Equal(t, domain.RoleCitizen, claims.Role)
}

func TestRegisterCitizenDuplicatePhone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCitizen(t, "+22791112244")

	_, _, _, err := env.auth.RegisterCitizen(ctx, CitizenRegisterInput{
		Phone:     "+22791112244",
		Password:  "secret123",
		FirstName: "Other",
		LastName:  "Person",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestRegisterCitizenValidation(t *testing.T) {
	env := newTestEnv(t)

	_, _, _, err := env.auth.RegisterCitizen(context.Background(), CitizenRegisterInput{
		Phone: "+22791112255", Password: "x", FirstName: "", LastName: "Y",
	})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestLoginUniformFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCitizen(t, "+22791112266")

	_, _, _, wrongPassword := env.auth.LoginCitizen(ctx, "+22791112266", "bad")
	_, _, _, unknownPhone := env.auth.LoginCitizen(ctx, "+22700000000", "bad")

	require.Error(t, wrongPassword)
	require.Error(t, unknownPhone)
	assert.Equal(t, wrongPassword.Error(), unknownPhone.Error())
	assert.True(t, apperrors.IsCode(wrongPassword, "UNAUTHORIZED"))
	assert.True(t, apperrors.IsCode(unknownPhone, "UNAUTHORIZED"))
}

func TestLoginStaffCarriesRoleAndRegion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	superAdmin := env.createStaff(t, "root", domain.StaffRoleSuperAdmin, nil)

	created, err := env.admin.CreateStaff(ctx, superAdmin, StaffCreateInput{
		Username:  "lead",
		Password:  "secret123",
		Role:      domain.StaffRoleSupervisor,
		FirstName: "Team",
		LastName:  "Lead",
		Region:    strptr("Agadez"),
	})
	require.NoError(t, err)

	staff, token, _, err := env.auth.LoginStaff(ctx, "lead", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, staff.ID)

	claims, err := env.auth.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectTypeStaff, claims.Subject)
	assert.Equal(t, string(domain.StaffRoleSupervisor), claims.Role)
	require.NotNil(t, claims.Region)
	assert.Equal(t, "Agadez", *claims.Region)
}

func TestLoginStaffWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	superAdmin := env.createStaff(t, "root", domain.StaffRoleSuperAdmin, nil)

	_, err := env.admin.CreateStaff(ctx, superAdmin, StaffCreateInput{
		Username: "clerk", Password: "secret123", Role: domain.StaffRoleAdmin,
		FirstName: "Desk", LastName: "Clerk",
	})
	require.NoError(t, err)

	_, _, _, err = env.auth.LoginStaff(ctx, "clerk", "bad")
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}
