package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/vignette-service/internal/api/dto"
	"github.com/spec-kit/vignette-service/internal/auth"
	"github.com/spec-kit/vignette-service/internal/domain"
	"github.com/spec-kit/vignette-service/internal/service"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

// AuthHandler exposes registration, the two login flows, and /auth/me.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.CitizenRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	citizen, token, _, err := h.auth.RegisterCitizen(c.Context(), service.CitizenRegisterInput{
		Phone:      req.Phone,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		NationalID: req.NationalID,
		Language:   req.Language,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        citizenSummary(citizen),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CitizenLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	citizen, token, _, err := h.auth.LoginCitizen(c.Context(), req.Phone, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        citizenSummary(citizen),
	})
}

// StaffLogin handles POST /api/auth/admin/login.
func (h *AuthHandler) StaffLogin(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	staff, token, _, err := h.auth.LoginStaff(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        staffSummary(staff),
	})
}

// Me handles GET /api/auth/me for any authenticated principal.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	switch {
	case principal.Citizen != nil:
		return c.JSON(fiber.Map{"user": citizenSummary(principal.Citizen), "subject": principal.SubjectType})
	case principal.Staff != nil:
		return c.JSON(fiber.Map{"user": staffSummary(principal.Staff), "subject": principal.SubjectType})
	}
	return apperrors.NewUnauthorized("not authenticated")
}

func citizenSummary(citizen *domain.Citizen) dto.CitizenSummary {
	return dto.CitizenSummary{
		ID:            citizen.ID,
		Phone:         citizen.Phone,
		FirstName:     citizen.FirstName,
		LastName:      citizen.LastName,
		Role:          domain.RoleCitizen,
		LoyaltyPoints: citizen.LoyaltyPoints,
	}
}

func staffSummary(staff *domain.Staff) dto.StaffSummary {
	return dto.StaffSummary{
		ID:        staff.ID,
		Username:  staff.Username,
		Role:      string(staff.Role),
		FirstName: staff.FirstName,
		LastName:  staff.LastName,
		Region:    staff.Region,
	}
}
