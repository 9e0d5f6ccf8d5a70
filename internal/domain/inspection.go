package domain

import "time"

// Inspection is a roadside control record. The plate is free text and is not
// required to match a registered vehicle.
type Inspection struct {
	ID                  string
	AgentID             string
	VehicleRegistration string
	StatusAtControl     string
	Latitude            *float64
	Longitude           *float64
	Notes               *string
	Timestamp           time.Time
}
