package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/vignette-service/internal/domain"
)

// NotificationRepository logs outbound notification attempts.
type NotificationRepository interface {
	Create(ctx context.Context, record *domain.NotificationRecord) error
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository instantiates the repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, record *domain.NotificationRecord) error {
	const query = `
        INSERT INTO notification_logs (id, citizen_id, sticker_id, type, channel, recipient, status, sent_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.CitizenID,
		record.StickerID,
		record.Type,
		record.Channel,
		record.Recipient,
		record.Status,
		record.SentAt,
	)
	return err
}
