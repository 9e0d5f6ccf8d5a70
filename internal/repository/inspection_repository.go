package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/vignette-service/internal/domain"
)

// InspectionRepository persists roadside control records.
type InspectionRepository interface {
	Create(ctx context.Context, inspection *domain.Inspection) error
	List(ctx context.Context, limit, offset int) ([]domain.Inspection, error)
}

type inspectionRepository struct {
	pool *pgxpool.Pool
}

// NewInspectionRepository instantiates the repository.
func NewInspectionRepository(pool *pgxpool.Pool) InspectionRepository {
	return &inspectionRepository{pool: pool}
}

func (r *inspectionRepository) Create(ctx context.Context, inspection *domain.Inspection) error {
	const query = `
        INSERT INTO inspections (id, agent_id, vehicle_registration, status_at_control, latitude, longitude, notes, ts)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.pool.Exec(ctx, query,
		inspection.ID,
		inspection.AgentID,
		inspection.VehicleRegistration,
		inspection.StatusAtControl,
		inspection.Latitude,
		inspection.Longitude,
		inspection.Notes,
		inspection.Timestamp,
	)
	return err
}

func (r *inspectionRepository) List(ctx context.Context, limit, offset int) ([]domain.Inspection, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, agent_id, vehicle_registration, status_at_control, latitude, longitude, notes, ts
        FROM inspections ORDER BY ts DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Inspection
	for rows.Next() {
		var inspection domain.Inspection
		if err := rows.Scan(
			&inspection.ID,
			&inspection.AgentID,
			&inspection.VehicleRegistration,
			&inspection.StatusAtControl,
			&inspection.Latitude,
			&inspection.Longitude,
			&inspection.Notes,
			&inspection.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, inspection)
	}
	return result, rows.Err()
}
