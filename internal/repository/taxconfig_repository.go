package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/vignette-service/internal/domain"
)

// TaxConfigRepository reads the rate table. No mutation operation exists in
// this service; rows are seeded by migration.
type TaxConfigRepository interface {
	List(ctx context.Context) ([]domain.TaxConfig, error)
}

type taxConfigRepository struct {
	pool *pgxpool.Pool
}

// NewTaxConfigRepository instantiates the repository.
func NewTaxConfigRepository(pool *pgxpool.Pool) TaxConfigRepository {
	return &taxConfigRepository{pool: pool}
}

func (r *taxConfigRepository) List(ctx context.Context) ([]domain.TaxConfig, error) {
	const query = `
        SELECT id, vehicle_category, engine_power_min, engine_power_max, base_amount, multi_year_discount, status, effective_date
        FROM tax_configs ORDER BY vehicle_category, engine_power_min`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaxConfig
	for rows.Next() {
		var cfg domain.TaxConfig
		if err := rows.Scan(
			&cfg.ID,
			&cfg.VehicleCategory,
			&cfg.EnginePowerMin,
			&cfg.EnginePowerMax,
			&cfg.BaseAmount,
			&cfg.MultiYearDiscount,
			&cfg.Status,
			&cfg.EffectiveDate,
		); err != nil {
			return nil, err
		}
		result = append(result, cfg)
	}
	return result, rows.Err()
}
