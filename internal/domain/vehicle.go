package domain

import (
	"strings"
	"time"
)

// VehicleCategory drives the base sticker tariff.
type VehicleCategory string

const (
	VehicleCategoryCar        VehicleCategory = "car"
	VehicleCategoryMotorcycle VehicleCategory = "motorcycle"
	VehicleCategoryTruck      VehicleCategory = "truck"
)

// Vehicle is owned by exactly one citizen and carries the region assigned at
// registration, independent of the owner's own location.
type Vehicle struct {
	ID                 string
	RegistrationNumber string
	OwnerID            string
	Category           VehicleCategory
	Make               string
	Model              string
	EnergyType         string
	EnginePower        int
	ChassisNumber      string
	YearOfManufacture  int
	Region             string
	CreatedAt          time.Time
}

// NormalizePlate upper-cases and trims a registration number so lookups and
// uniqueness checks are case-insensitive.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
