package domain

import "time"

// TaxConfig is the rate table keyed by vehicle category and engine-power
// band. Read-only in this service; pricing currently uses the fixed
// per-category base amount.
type TaxConfig struct {
	ID                string
	VehicleCategory   VehicleCategory
	EnginePowerMin    int
	EnginePowerMax    int
	BaseAmount        float64
	MultiYearDiscount float64
	Status            string
	EffectiveDate     time.Time
}
