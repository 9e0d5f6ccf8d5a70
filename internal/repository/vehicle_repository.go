package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/vignette-service/internal/domain"
)

// VehicleFilter captures admin listing parameters. Region nil means all
// regions; the policy engine decides which it is for a given principal.
type VehicleFilter struct {
	Region  *string
	OwnerID *string
	Limit   int
	Offset  int
}

// VehicleRepository encapsulates vehicle persistence.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	GetByPlate(ctx context.Context, registrationNumber string) (*domain.Vehicle, error)
	List(ctx context.Context, filter VehicleFilter) ([]domain.Vehicle, error)
	Count(ctx context.Context, region *string) (int64, error)
}

type vehicleRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository instantiates repository.
func NewVehicleRepository(pool *pgxpool.Pool) VehicleRepository {
	return &vehicleRepository{pool: pool}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        INSERT INTO vehicles (id, registration_number, owner_id, category, make, model, energy_type, engine_power, chassis_number, year_of_manufacture, region)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		vehicle.ID,
		vehicle.RegistrationNumber,
		vehicle.OwnerID,
		vehicle.Category,
		vehicle.Make,
		vehicle.Model,
		vehicle.EnergyType,
		vehicle.EnginePower,
		vehicle.ChassisNumber,
		vehicle.YearOfManufacture,
		vehicle.Region,
	).Scan(&vehicle.CreatedAt)
	return mapUniqueViolation(err)
}

const vehicleSelect = `
        SELECT id, registration_number, owner_id, category, make, model, energy_type, engine_power, chassis_number, year_of_manufacture, region, created_at
        FROM vehicles`

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return r.fetchSingle(ctx, vehicleSelect+` WHERE id=$1`, id)
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, registrationNumber string) (*domain.Vehicle, error) {
	return r.fetchSingle(ctx, vehicleSelect+` WHERE registration_number=$1`, registrationNumber)
}

func (r *vehicleRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&vehicle.ID,
		&vehicle.RegistrationNumber,
		&vehicle.OwnerID,
		&vehicle.Category,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.EnergyType,
		&vehicle.EnginePower,
		&vehicle.ChassisNumber,
		&vehicle.YearOfManufacture,
		&vehicle.Region,
		&vehicle.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context, filter VehicleFilter) ([]domain.Vehicle, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Region != nil {
		args = append(args, *filter.Region)
		clauses = append(clauses, fmt.Sprintf("region=$%d", len(args)))
	}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("owner_id=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		vehicleSelect, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVehicles(rows)
}

func (r *vehicleRepository) Count(ctx context.Context, region *string) (int64, error) {
	var count int64
	if region != nil {
		err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles WHERE region=$1`, *region).Scan(&count)
		return count, err
	}
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&count)
	return count, err
}

func scanVehicles(rows pgx.Rows) ([]domain.Vehicle, error) {
	var result []domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(
			&vehicle.ID,
			&vehicle.RegistrationNumber,
			&vehicle.OwnerID,
			&vehicle.Category,
			&vehicle.Make,
			&vehicle.Model,
			&vehicle.EnergyType,
			&vehicle.EnginePower,
			&vehicle.ChassisNumber,
			&vehicle.YearOfManufacture,
			&vehicle.Region,
			&vehicle.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, vehicle)
	}
	return result, rows.Err()
}
