package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/vignette-service/internal/domain"
)

// StaffRepository handles persistence for staff accounts.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
	GetByUsername(ctx context.Context, username string) (*domain.Staff, error)
	List(ctx context.Context, limit, offset int) ([]domain.Staff, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	// The unique index on username is the backstop for concurrent creations
	// racing past the service-level existence check.
	const query = `
        INSERT INTO staff_accounts (id, username, password_hash, role, first_name, last_name, region)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		staff.ID,
		staff.Username,
		staff.PasswordHash,
		staff.Role,
		staff.FirstName,
		staff.LastName,
		staff.Region,
	).Scan(&staff.CreatedAt)
	return mapUniqueViolation(err)
}

const staffSelect = `
        SELECT id, username, password_hash, role, first_name, last_name, region, created_at
        FROM staff_accounts`

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	return r.fetchSingle(ctx, staffSelect+` WHERE id=$1`, id)
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	return r.fetchSingle(ctx, staffSelect+` WHERE username=$1`, username)
}

func (r *staffRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Staff, error) {
	var staff domain.Staff
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&staff.ID,
		&staff.Username,
		&staff.PasswordHash,
		&staff.Role,
		&staff.FirstName,
		&staff.LastName,
		&staff.Region,
		&staff.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context, limit, offset int) ([]domain.Staff, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := staffSelect + ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Staff
	for rows.Next() {
		var staff domain.Staff
		if err := rows.Scan(
			&staff.ID,
			&staff.Username,
			&staff.PasswordHash,
			&staff.Role,
			&staff.FirstName,
			&staff.LastName,
			&staff.Region,
			&staff.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}
