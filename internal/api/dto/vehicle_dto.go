package dto

import "time"

// VehicleRegisterRequest payload for vehicle registration.
type VehicleRegisterRequest struct {
	RegistrationNumber string `json:"registration_number"`
	Category           string `json:"category"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	EnergyType         string `json:"energy_type"`
	EnginePower        int    `json:"engine_power"`
	ChassisNumber      string `json:"chassis_number"`
	YearOfManufacture  int    `json:"year_of_manufacture"`
	Region             string `json:"region"`
}

// VehicleResponse is the vehicle representation returned to callers.
type VehicleResponse struct {
	ID                 string    `json:"id"`
	RegistrationNumber string    `json:"registration_number"`
	OwnerID            string    `json:"owner_id"`
	Category           string    `json:"category"`
	Make               string    `json:"make"`
	Model              string    `json:"model"`
	EnergyType         string    `json:"energy_type"`
	EnginePower        int       `json:"engine_power"`
	ChassisNumber      string    `json:"chassis_number"`
	YearOfManufacture  int       `json:"year_of_manufacture"`
	Region             string    `json:"region"`
	CreatedAt          time.Time `json:"created_at"`
}
