package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/vignette-service/internal/domain"
	"github.com/spec-kit/vignette-service/internal/events"
	"github.com/spec-kit/vignette-service/internal/repository"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

// VehicleService handles citizen-owned vehicle registration and lookups.
type VehicleService struct {
	vehicles   repository.VehicleRepository
	dispatcher events.Dispatcher
	audit      *AuditService
}

// VehicleRegisterInput describes the registration payload.
type VehicleRegisterInput struct {
	RegistrationNumber string
	Category           domain.VehicleCategory
	Make               string
	Model              string
	EnergyType         string
	EnginePower        int
	ChassisNumber      string
	YearOfManufacture  int
	Region             string
}

// NewVehicleService constructs the service.
func NewVehicleService(vehicles repository.VehicleRepository, dispatcher events.Dispatcher, audit *AuditService) *VehicleService {
	return &VehicleService{vehicles: vehicles, dispatcher: dispatcher, audit: audit}
}

// Register creates a vehicle owned by the citizen. The plate is normalized
// before the uniqueness check so lookups are case-insensitive.
func (s *VehicleService) Register(ctx context.Context, citizen *domain.Citizen, input VehicleRegisterInput) (*domain.Vehicle, error) {
	plate := domain.NormalizePlate(input.RegistrationNumber)
	if plate == "" {
		return nil, apperrors.NewValidationError("registration_number is required", nil)
	}
	if strings.TrimSpace(input.Region) == "" {
		return nil, apperrors.NewValidationError("region is required", nil)
	}
	category := input.Category
	if category == "" {
		category = domain.VehicleCategoryCar
	}

	vehicle := &domain.Vehicle{
		ID:                 uuid.NewString(),
		RegistrationNumber: plate,
		OwnerID:            citizen.ID,
		Category:           category,
		Make:               input.Make,
		Model:              input.Model,
		EnergyType:         input.EnergyType,
		EnginePower:        input.EnginePower,
		ChassisNumber:      input.ChassisNumber,
		YearOfManufacture:  input.YearOfManufacture,
		Region:             strings.TrimSpace(input.Region),
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		if err == repository.ErrDuplicate {
			return nil, apperrors.NewConflict("registration number already exists", map[string]any{"registration_number": plate})
		}
		return nil, apperrors.MapError(err)
	}

	s.audit.Record(ctx, &citizen.ID, "CREATE", "vehicles", map[string]any{
		"vehicle_id":          vehicle.ID,
		"registration_number": vehicle.RegistrationNumber,
	})
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventVehicleRegistered,
		SubjectID: vehicle.ID,
		Actor:     citizenActor(citizen.ID),
		Payload: events.VehicleRegisteredPayload{
			RegistrationNumber: vehicle.RegistrationNumber,
			Category:           vehicle.Category,
			Region:             vehicle.Region,
		},
	})
	return vehicle, nil
}

// ListOwn returns the citizen's vehicles.
func (s *VehicleService) ListOwn(ctx context.Context, citizenID string) ([]domain.Vehicle, error) {
	list, err := s.vehicles.List(ctx, repository.VehicleFilter{OwnerID: &citizenID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// GetOwn fetches a vehicle by id for its owner. A vehicle owned by someone
// else is indistinguishable from a missing one.
func (s *VehicleService) GetOwn(ctx context.Context, citizenID, vehicleID string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("vehicle", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if vehicle.OwnerID != citizenID {
		return nil, apperrors.NewNotFound("vehicle", nil)
	}
	return vehicle, nil
}
