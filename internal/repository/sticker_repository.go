package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/vignette-service/internal/domain"
)

// StickerFilter captures admin listing parameters. Region scoping goes
// through the vehicle the sticker is bound to.
type StickerFilter struct {
	Region  *string
	OwnerID *string
	Limit   int
	Offset  int
}

// StickerRepository encapsulates sticker persistence.
type StickerRepository interface {
	// Purchase persists the sticker and its payment and increments the
	// owner's loyalty points as one atomic unit. It fails with
	// ErrAlreadyLive when the vehicle holds a sticker that is live at the
	// sticker's start instant; the check and the insert are serialized so
	// concurrent purchases for the same vehicle cannot both succeed.
	Purchase(ctx context.Context, sticker *domain.Sticker, payment *domain.Payment) error
	GetLatestByVehicle(ctx context.Context, vehicleID string) (*domain.Sticker, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Sticker, error)
	List(ctx context.Context, filter StickerFilter) ([]domain.Sticker, error)
	CountLive(ctx context.Context, region *string, now time.Time) (int64, error)
}

type stickerRepository struct {
	pool *pgxpool.Pool
}

// NewStickerRepository instantiates repository.
func NewStickerRepository(pool *pgxpool.Pool) StickerRepository {
	return &stickerRepository{pool: pool}
}

func (r *stickerRepository) Purchase(ctx context.Context, sticker *domain.Sticker, payment *domain.Payment) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Lock the vehicle row so the liveness check and the insert act as one
	// unit with respect to concurrent purchases for the same vehicle.
	var vehicleID string
	if err := tx.QueryRow(ctx, `SELECT id FROM vehicles WHERE id=$1 FOR UPDATE`, sticker.VehicleID).Scan(&vehicleID); err != nil {
		return err
	}

	var live bool
	err = tx.QueryRow(ctx, `
        SELECT EXISTS(
            SELECT 1 FROM stickers
            WHERE vehicle_id=$1 AND status=$2 AND end_date > $3
        )`, sticker.VehicleID, domain.StickerStatusValid, sticker.StartDate).Scan(&live)
	if err != nil {
		return err
	}
	if live {
		return ErrAlreadyLive
	}

	err = tx.QueryRow(ctx, `
        INSERT INTO stickers (id, vehicle_id, owner_id, registration_number, status, start_date, end_date, amount_paid, payment_method, transaction_id, qr_code, loyalty_points)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING created_at`,
		sticker.ID,
		sticker.VehicleID,
		sticker.OwnerID,
		sticker.RegistrationNumber,
		sticker.Status,
		sticker.StartDate,
		sticker.EndDate,
		sticker.AmountPaid,
		sticker.PaymentMethod,
		sticker.TransactionID,
		sticker.QRCode,
		sticker.LoyaltyPoints,
	).Scan(&sticker.CreatedAt)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
        INSERT INTO payments (id, citizen_id, sticker_id, amount, payment_method, status, transaction_ref)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at`,
		payment.ID,
		payment.CitizenID,
		payment.StickerID,
		payment.Amount,
		payment.PaymentMethod,
		payment.Status,
		payment.TransactionRef,
	).Scan(&payment.CreatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE citizens SET loyalty_points = loyalty_points + $1 WHERE id=$2`,
		sticker.LoyaltyPoints, sticker.OwnerID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const stickerSelect = `
        SELECT id, vehicle_id, owner_id, registration_number, status, start_date, end_date, amount_paid, payment_method, transaction_id, qr_code, loyalty_points, created_at
        FROM stickers`

func (r *stickerRepository) GetLatestByVehicle(ctx context.Context, vehicleID string) (*domain.Sticker, error) {
	// id is an arbitrary but stable tie-break for identical creation
	// timestamps; the business rule for that case is unspecified.
	query := stickerSelect + ` WHERE vehicle_id=$1 ORDER BY created_at DESC, id DESC LIMIT 1`
	var sticker domain.Sticker
	if err := scanSticker(r.pool.QueryRow(ctx, query, vehicleID), &sticker); err != nil {
		return nil, err
	}
	return &sticker, nil
}

func (r *stickerRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Sticker, error) {
	query := stickerSelect + ` WHERE owner_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStickers(rows)
}

func (r *stickerRepository) List(ctx context.Context, filter StickerFilter) ([]domain.Sticker, error) {
	base := `
        SELECT s.id, s.vehicle_id, s.owner_id, s.registration_number, s.status, s.start_date, s.end_date, s.amount_paid, s.payment_method, s.transaction_id, s.qr_code, s.loyalty_points, s.created_at
        FROM stickers s`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Region != nil {
		base += ` JOIN vehicles v ON v.id = s.vehicle_id`
		args = append(args, *filter.Region)
		clauses = append(clauses, fmt.Sprintf("v.region=$%d", len(args)))
	}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("s.owner_id=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY s.created_at DESC LIMIT %d OFFSET %d",
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStickers(rows)
}

func (r *stickerRepository) CountLive(ctx context.Context, region *string, now time.Time) (int64, error) {
	var count int64
	if region != nil {
		err := r.pool.QueryRow(ctx, `
            SELECT COUNT(*) FROM stickers s
            JOIN vehicles v ON v.id = s.vehicle_id
            WHERE s.status=$1 AND s.end_date > $2 AND v.region=$3`,
			domain.StickerStatusValid, now, *region).Scan(&count)
		return count, err
	}
	err := r.pool.QueryRow(ctx, `
        SELECT COUNT(*) FROM stickers WHERE status=$1 AND end_date > $2`,
		domain.StickerStatusValid, now).Scan(&count)
	return count, err
}

func scanSticker(row pgx.Row, sticker *domain.Sticker) error {
	return row.Scan(
		&sticker.ID,
		&sticker.VehicleID,
		&sticker.OwnerID,
		&sticker.RegistrationNumber,
		&sticker.Status,
		&sticker.StartDate,
		&sticker.EndDate,
		&sticker.AmountPaid,
		&sticker.PaymentMethod,
		&sticker.TransactionID,
		&sticker.QRCode,
		&sticker.LoyaltyPoints,
		&sticker.CreatedAt,
	)
}

func scanStickers(rows pgx.Rows) ([]domain.Sticker, error) {
	var result []domain.Sticker
	for rows.Next() {
		var sticker domain.Sticker
		if err := scanSticker(rows, &sticker); err != nil {
			return nil, err
		}
		result = append(result, sticker)
	}
	return result, rows.Err()
}
