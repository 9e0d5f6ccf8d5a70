package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/vignette-service/internal/domain"
)

// PaymentFilter captures reporting parameters. Region scoping goes through
// the sticker's vehicle.
type PaymentFilter struct {
	Region *string
	From   *time.Time
	Limit  int
	Offset int
}

// PaymentRepository provides read access for reporting. Payments are only
// ever written inside the purchase transaction.
type PaymentRepository interface {
	List(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error)
	SumAmount(ctx context.Context, region *string, from *time.Time) (float64, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository instantiates repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) List(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error) {
	base := `
        SELECT p.id, p.citizen_id, p.sticker_id, p.amount, p.payment_method, p.status, p.transaction_ref, p.created_at
        FROM payments p`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Region != nil {
		base += ` JOIN stickers s ON s.id = p.sticker_id JOIN vehicles v ON v.id = s.vehicle_id`
		args = append(args, *filter.Region)
		clauses = append(clauses, fmt.Sprintf("v.region=$%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("p.created_at >= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY p.created_at DESC LIMIT %d OFFSET %d",
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.CitizenID,
			&payment.StickerID,
			&payment.Amount,
			&payment.PaymentMethod,
			&payment.Status,
			&payment.TransactionRef,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, payment)
	}
	return result, rows.Err()
}

func (r *paymentRepository) SumAmount(ctx context.Context, region *string, from *time.Time) (float64, error) {
	base := `SELECT COALESCE(SUM(p.amount), 0) FROM payments p`
	clauses := []string{"1=1"}
	args := []any{}

	if region != nil {
		base += ` JOIN stickers s ON s.id = p.sticker_id JOIN vehicles v ON v.id = s.vehicle_id`
		args = append(args, *region)
		clauses = append(clauses, fmt.Sprintf("v.region=$%d", len(args)))
	}
	if from != nil {
		args = append(args, *from)
		clauses = append(clauses, fmt.Sprintf("p.created_at >= $%d", len(args)))
	}

	query := base + " WHERE " + strings.Join(clauses, " AND ")

	var total float64
	err := r.pool.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}
