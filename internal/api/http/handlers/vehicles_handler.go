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

// VehiclesHandler exposes citizen vehicle endpoints.
type VehiclesHandler struct {
	vehicles *service.VehicleService
}

// NewVehiclesHandler constructs handler.
func NewVehiclesHandler(vehicleService *service.VehicleService) *VehiclesHandler {
	return &VehiclesHandler{vehicles: vehicleService}
}

// Register handles POST /api/vehicles.
func (h *VehiclesHandler) Register(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Citizen == nil {
		return apperrors.NewForbidden("citizen account required")
	}

	var req dto.VehicleRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	vehicle, err := h.vehicles.Register(c.Context(), principal.Citizen, service.VehicleRegisterInput{
		RegistrationNumber: req.RegistrationNumber,
		Category:           domain.VehicleCategory(req.Category),
		Make:               req.Make,
		Model:              req.Model,
		EnergyType:         req.EnergyType,
		EnginePower:        req.EnginePower,
		ChassisNumber:      req.ChassisNumber,
		YearOfManufacture:  req.YearOfManufacture,
		Region:             req.Region,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(vehicleResponse(vehicle))
}

// List handles GET /api/vehicles.
func (h *VehiclesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Citizen == nil {
		return apperrors.NewForbidden("citizen account required")
	}

	list, err := h.vehicles.ListOwn(c.Context(), principal.Citizen.ID)
	if err != nil {
		return err
	}
	out := make([]dto.VehicleResponse, 0, len(list))
	for i := range list {
		out = append(out, vehicleResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"vehicles": out})
}

// Get handles GET /api/vehicles/:id.
func (h *VehiclesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Citizen == nil {
		return apperrors.NewForbidden("citizen account required")
	}

	vehicle, err := h.vehicles.GetOwn(c.Context(), principal.Citizen.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(vehicleResponse(vehicle))
}

func vehicleResponse(vehicle *domain.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:                 vehicle.ID,
		RegistrationNumber: vehicle.RegistrationNumber,
		OwnerID:            vehicle.OwnerID,
		Category:           string(vehicle.Category),
		Make:               vehicle.Make,
		Model:              vehicle.Model,
		EnergyType:         vehicle.EnergyType,
		EnginePower:        vehicle.EnginePower,
		ChassisNumber:      vehicle.ChassisNumber,
		YearOfManufacture:  vehicle.YearOfManufacture,
		Region:             vehicle.Region,
		CreatedAt:          vehicle.CreatedAt,
	}
}
