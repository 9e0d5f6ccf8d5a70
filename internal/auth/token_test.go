package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/vignette-service/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	region := "Zinder"

	token, exp, err := tm.GenerateToken("staff-1", domain.SubjectTypeStaff, string(domain.StaffRoleSupervisor), &region)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.SubjectID)
	assert.Equal(t, domain.SubjectTypeStaff, claims.Subject)
	assert.Equal(t, string(domain.StaffRoleSupervisor), claims.Role)
	require.NotNil(t, claims.Region)
	assert.Equal(t, "Zinder", *claims.Region)
}

func TestCitizenTokenHasNoRegion(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, _, err := tm.GenerateToken("citizen-1", domain.SubjectTypeCitizen, domain.RoleCitizen, nil)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectTypeCitizen, claims.Subject)
	assert.Nil(t, claims.Region)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	tm.ttl = -time.Minute

	token, _, err := tm.GenerateToken("staff-1", domain.SubjectTypeStaff, string(domain.StaffRoleAdmin), nil)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("different-secret", 60)

	token, _, err := tm.GenerateToken("staff-1", domain.SubjectTypeStaff, string(domain.StaffRoleAdmin), nil)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestDefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	assert.Equal(t, 24*time.Hour, tm.ttl)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
