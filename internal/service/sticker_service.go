package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/vignette-service/internal/domain"
	"github.com/spec-kit/vignette-service/internal/events"
	"github.com/spec-kit/vignette-service/internal/persistence"
	"github.com/spec-kit/vignette-service/internal/repository"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

// StickerService issues stickers and answers public plate verifications.
// Every validity computation takes its instant from the injected clock, never
// from an ambient call, so tests control time directly.
type StickerService struct {
	stickers   repository.StickerRepository
	vehicles   repository.VehicleRepository
	citizens   repository.CitizenRepository
	cache      *persistence.VerificationCache
	dispatcher events.Dispatcher
	audit      *AuditService
	logger     *zap.Logger
	now        func() time.Time
}

// StickerDependencies bundles collaborators for the sticker service.
type StickerDependencies struct {
	StickerRepo repository.StickerRepository
	VehicleRepo repository.VehicleRepository
	CitizenRepo repository.CitizenRepository
	Cache       *persistence.VerificationCache
	Dispatcher  events.Dispatcher
	Audit       *AuditService
	Logger      *zap.Logger
}

// PurchaseInput describes the purchase payload.
type PurchaseInput struct {
	VehicleID     string
	ValidityYears int
	PaymentMethod string
}

// NewStickerService constructs the service.
func NewStickerService(deps StickerDependencies) *StickerService {
	return &StickerService{
		stickers:   deps.StickerRepo,
		vehicles:   deps.VehicleRepo,
		citizens:   deps.CitizenRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		audit:      deps.Audit,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// WithClock overrides the time source.
func (s *StickerService) WithClock(now func() time.Time) *StickerService {
	s.now = now
	return s
}

// Purchase issues a sticker for a vehicle owned by the citizen. A vehicle
// owned by someone else reads as not found so plate ownership never leaks.
// The persisted sticker, its payment, and the loyalty increment land
// atomically; a vehicle holding a live sticker yields a conflict.
func (s *StickerService) Purchase(ctx context.Context, citizen *domain.Citizen, input PurchaseInput) (*domain.Sticker, error) {
	if input.ValidityYears < 1 {
		return nil, apperrors.NewValidationError("validity_years must be a positive integer", nil)
	}
	if input.PaymentMethod == "" {
		return nil, apperrors.NewValidationError("payment_method is required", nil)
	}

	vehicle, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("vehicle", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if vehicle.OwnerID != citizen.ID {
		return nil, apperrors.NewNotFound("vehicle", nil)
	}

	now := s.now()
	start, end := domain.ValidityWindow(now, input.ValidityYears)
	amount := domain.StickerPrice(vehicle.Category, input.ValidityYears)
	points := domain.LoyaltyPointsFor(amount)
	txnRef := domain.NewTransactionID()

	sticker := &domain.Sticker{
		ID:                 uuid.NewString(),
		VehicleID:          vehicle.ID,
		OwnerID:            citizen.ID,
		RegistrationNumber: vehicle.RegistrationNumber,
		Status:             domain.StickerStatusValid,
		StartDate:          start,
		EndDate:            end,
		AmountPaid:         amount,
		PaymentMethod:      input.PaymentMethod,
		TransactionID:      txnRef,
		LoyaltyPoints:      points,
	}
	sticker.QRCode = domain.QRPayload(vehicle.RegistrationNumber, sticker.ID, end)

	payment := &domain.Payment{
		ID:             uuid.NewString(),
		CitizenID:      citizen.ID,
		StickerID:      sticker.ID,
		Amount:         amount,
		PaymentMethod:  input.PaymentMethod,
		Status:         domain.PaymentStatusCompleted,
		TransactionRef: txnRef,
	}

	if err := s.stickers.Purchase(ctx, sticker, payment); err != nil {
		if err == repository.ErrAlreadyLive {
			return nil, apperrors.NewConflict("vehicle already has a valid sticker", map[string]any{"vehicle_id": vehicle.ID})
		}
		return nil, apperrors.MapError(err)
	}

	s.audit.Record(ctx, &citizen.ID, "CREATE", "stickers", map[string]any{
		"sticker_id":          sticker.ID,
		"vehicle_id":          vehicle.ID,
		"registration_number": vehicle.RegistrationNumber,
		"amount_paid":         amount,
		"transaction_id":      txnRef,
	})

	if err := s.cache.Invalidate(ctx, vehicle.RegistrationNumber); err != nil {
		s.logger.Warn("verification cache invalidation failed",
			zap.String("registration_number", vehicle.RegistrationNumber), zap.Error(err))
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventStickerPurchased,
		SubjectID: sticker.ID,
		Actor:     citizenActor(citizen.ID),
		Payload: events.StickerPurchasedPayload{
			StickerID:          sticker.ID,
			CitizenID:          citizen.ID,
			RegistrationNumber: vehicle.RegistrationNumber,
			Amount:             amount,
			EndDate:            end,
		},
	})
	return sticker, nil
}

// ListOwn returns the citizen's stickers, newest first.
func (s *StickerService) ListOwn(ctx context.Context, citizenID string) ([]domain.Sticker, error) {
	list, err := s.stickers.ListByOwner(ctx, citizenID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// Verify answers a public plate lookup. It always produces a result: an
// unregistered plate classifies as inactive/red instead of erroring, and a
// missing owner record substitutes the sentinel name.
func (s *StickerService) Verify(ctx context.Context, registrationNumber string) (*domain.VerificationResult, error) {
	plate := domain.NormalizePlate(registrationNumber)

	if cached, err := s.cache.Get(ctx, plate); err != nil {
		s.logger.Warn("verification cache read failed", zap.String("registration_number", plate), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	result, err := s.classify(ctx, plate)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, plate, result); err != nil {
		s.logger.Warn("verification cache write failed", zap.String("registration_number", plate), zap.Error(err))
	}
	return result, nil
}

func (s *StickerService) classify(ctx context.Context, plate string) (*domain.VerificationResult, error) {
	vehicle, err := s.vehicles.GetByPlate(ctx, plate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &domain.VerificationResult{
				RegistrationNumber: plate,
				OwnerName:          "not found",
				Status:             domain.VerificationStatusInactive,
				StatusColor:        domain.VerificationColorRed,
			}, nil
		}
		return nil, apperrors.MapError(err)
	}

	ownerName := "unknown"
	if owner, err := s.citizens.GetByID(ctx, vehicle.OwnerID); err == nil {
		ownerName = owner.FullName()
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	result := &domain.VerificationResult{
		RegistrationNumber: plate,
		OwnerName:          ownerName,
		VehicleCategory:    string(vehicle.Category),
		Make:               vehicle.Make,
		Model:              vehicle.Model,
	}

	sticker, err := s.stickers.GetLatestByVehicle(ctx, vehicle.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			result.Status = domain.VerificationStatusInactive
			result.StatusColor = domain.VerificationColorRed
			return result, nil
		}
		return nil, apperrors.MapError(err)
	}

	start, end := sticker.StartDate, sticker.EndDate
	result.ValidFrom = &start
	result.ValidUntil = &end
	if sticker.IsLive(s.now()) {
		result.Status = domain.VerificationStatusValid
		result.StatusColor = domain.VerificationColorGreen
	} else {
		result.Status = domain.VerificationStatusInvalid
		result.StatusColor = domain.VerificationColorOrange
	}
	return result, nil
}
