package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/vignette-service/internal/domain"
	"github.com/spec-kit/vignette-service/internal/events"
	"github.com/spec-kit/vignette-service/internal/repository"
)

// NotificationService records outbound notification attempts for domain
// events. Actual delivery is an external collaborator; this service keeps the
// log rows and emits delivery stubs to the logger.
type NotificationService struct {
	dispatcher    events.Dispatcher
	notifications repository.NotificationRepository
	citizens      repository.CitizenRepository
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, notifications repository.NotificationRepository, citizens repository.CitizenRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher:    dispatcher,
		notifications: notifications,
		citizens:      citizens,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventStickerPurchased, n.handleStickerPurchased)
}

func (n *NotificationService) handleStickerPurchased(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.StickerPurchasedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for sticker purchase event", zap.String("event_id", event.ID))
		return nil
	}

	recipient := ""
	if citizen, err := n.citizens.GetByID(ctx, payload.CitizenID); err == nil {
		recipient = citizen.Phone
	}

	record := &domain.NotificationRecord{
		ID:        uuid.NewString(),
		CitizenID: payload.CitizenID,
		StickerID: payload.StickerID,
		Type:      "sticker_purchased",
		Channel:   "sms",
		Recipient: recipient,
		Status:    "queued",
		SentAt:    event.Timestamp,
	}
	if err := n.notifications.Create(ctx, record); err != nil {
		n.logger.Error("notification log write failed", zap.String("sticker_id", payload.StickerID), zap.Error(err))
		return err
	}

	n.logger.Info("StickerPurchased",
		zap.String("sticker_id", payload.StickerID),
		zap.String("registration_number", payload.RegistrationNumber),
		zap.Float64("amount", payload.Amount))
	return nil
}
