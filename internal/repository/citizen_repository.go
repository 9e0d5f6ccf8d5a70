package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/vignette-service/internal/domain"
)

// CitizenRepository defines persistence access for citizen accounts.
type CitizenRepository interface {
	Create(ctx context.Context, citizen *domain.Citizen) error
	GetByID(ctx context.Context, id string) (*domain.Citizen, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Citizen, error)
}

type citizenRepository struct {
	pool *pgxpool.Pool
}

// NewCitizenRepository returns a Postgres-backed implementation.
func NewCitizenRepository(pool *pgxpool.Pool) CitizenRepository {
	return &citizenRepository{pool: pool}
}

func (r *citizenRepository) Create(ctx context.Context, citizen *domain.Citizen) error {
	const query = `
        INSERT INTO citizens (id, phone, password_hash, first_name, last_name, email, national_id, language, loyalty_points)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		citizen.ID,
		citizen.Phone,
		citizen.PasswordHash,
		citizen.FirstName,
		citizen.LastName,
		citizen.Email,
		citizen.NationalID,
		citizen.Language,
		citizen.LoyaltyPoints,
	).Scan(&citizen.CreatedAt)
	return mapUniqueViolation(err)
}

func (r *citizenRepository) GetByID(ctx context.Context, id string) (*domain.Citizen, error) {
	const query = citizenSelect + ` WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *citizenRepository) GetByPhone(ctx context.Context, phone string) (*domain.Citizen, error) {
	const query = citizenSelect + ` WHERE phone=$1`
	return r.fetchSingle(ctx, query, phone)
}

const citizenSelect = `
        SELECT id, phone, password_hash, first_name, last_name, email, national_id, language, loyalty_points, created_at
        FROM citizens`

func (r *citizenRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Citizen, error) {
	var citizen domain.Citizen
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&citizen.ID,
		&citizen.Phone,
		&citizen.PasswordHash,
		&citizen.FirstName,
		&citizen.LastName,
		&citizen.Email,
		&citizen.NationalID,
		&citizen.Language,
		&citizen.LoyaltyPoints,
		&citizen.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &citizen, nil
}

// mapUniqueViolation translates postgres unique-constraint failures so
// services can report conflicts without inspecting driver errors.
func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
