package domain

import "time"

// Verification status labels and display colors, a compatibility contract
// with the public scanner UI.
const (
	VerificationStatusValid    = "valid"
	VerificationStatusInvalid  = "invalid"
	VerificationStatusInactive = "inactive"

	VerificationColorGreen  = "green"
	VerificationColorOrange = "orange"
	VerificationColorRed    = "red"
)

// VerificationResult is the public answer to a plate lookup. It is always
// produced, even for unregistered plates.
type VerificationResult struct {
	RegistrationNumber string     `json:"registration_number"`
	OwnerName          string     `json:"owner_name"`
	Status             string     `json:"status"`
	StatusColor        string     `json:"status_color"`
	ValidFrom          *time.Time `json:"valid_from,omitempty"`
	ValidUntil         *time.Time `json:"valid_until,omitempty"`
	VehicleCategory    string     `json:"vehicle_type"`
	Make               string     `json:"make"`
	Model              string     `json:"model"`
}
