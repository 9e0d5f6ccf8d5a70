package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/vignette-service/internal/auth"
	"github.com/spec-kit/vignette-service/internal/config"
	"github.com/spec-kit/vignette-service/internal/domain"
	"github.com/spec-kit/vignette-service/internal/repository"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

// AuthService coordinates citizen registration and the two login flows.
// Failed logins surface one uniform message; callers cannot tell a missing
// account from a wrong password.
type AuthService struct {
	citizens   repository.CitizenRepository
	staff      repository.StaffRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	CitizenRepo repository.CitizenRepository
	StaffRepo   repository.StaffRepository
}

// CitizenRegisterInput describes the citizen signup payload.
type CitizenRegisterInput struct {
	Phone      string
	Password   string
	FirstName  string
	LastName   string
	Email      *string
	NationalID *string
	Language   string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		citizens:   deps.CitizenRepo,
		staff:      deps.StaffRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterCitizen creates a citizen account with a unique phone number.
func (s *AuthService) RegisterCitizen(ctx context.Context, input CitizenRegisterInput) (*domain.Citizen, string, time.Time, error) {
	phone := strings.TrimSpace(input.Phone)
	if phone == "" || input.Password == "" || strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("phone, password, first_name and last_name are required", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	language := input.Language
	if language == "" {
		language = "fr"
	}

	citizen := &domain.Citizen{
		ID:           uuid.NewString(),
		Phone:        phone,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        input.Email,
		NationalID:   input.NationalID,
		Language:     language,
	}
	if err := s.citizens.Create(ctx, citizen); err != nil {
		if err == repository.ErrDuplicate {
			return nil, "", time.Time{}, apperrors.NewConflict("phone already registered", map[string]any{"phone": phone})
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(citizen.ID, domain.SubjectTypeCitizen, domain.RoleCitizen, nil)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return citizen, token, exp, nil
}

// LoginCitizen authenticates a citizen by phone and password.
func (s *AuthService) LoginCitizen(ctx context.Context, phone, password string) (*domain.Citizen, string, time.Time, error) {
	citizen, err := s.citizens.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(citizen.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(citizen.ID, domain.SubjectTypeCitizen, domain.RoleCitizen, nil)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return citizen, token, exp, nil
}

// LoginStaff authenticates staff by username and returns a token carrying the
// role and, for region-scoped roles, the home region.
func (s *AuthService) LoginStaff(ctx context.Context, username, password string) (*domain.Staff, string, time.Time, error) {
	staff, err := s.staff.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(staff.ID, domain.SubjectTypeStaff, string(staff.Role), staff.Region)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return staff, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
