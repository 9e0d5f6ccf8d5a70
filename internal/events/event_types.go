package events

import (
	"time"

	"github.com/spec-kit/vignette-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStickerPurchased    EventType = "sticker_purchased"
	EventVehicleRegistered   EventType = "vehicle_registered"
	EventInspectionRecorded  EventType = "inspection_recorded"
	EventStaffAccountCreated EventType = "staff_account_created"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type      domain.SubjectType `json:"type"`
	CitizenID *string            `json:"citizen_id,omitempty"`
	StaffID   *string            `json:"staff_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StickerPurchasedPayload payload.
type StickerPurchasedPayload struct {
	StickerID          string    `json:"sticker_id"`
	CitizenID          string    `json:"citizen_id"`
	RegistrationNumber string    `json:"registration_number"`
	Amount             float64   `json:"amount"`
	EndDate            time.Time `json:"end_date"`
}

// VehicleRegisteredPayload payload.
type VehicleRegisteredPayload struct {
	RegistrationNumber string                 `json:"registration_number"`
	Category           domain.VehicleCategory `json:"category"`
	Region             string                 `json:"region"`
}

// InspectionRecordedPayload payload.
type InspectionRecordedPayload struct {
	VehicleRegistration string `json:"vehicle_registration"`
	StatusAtControl     string `json:"status_at_control"`
}

// StaffAccountCreatedPayload payload.
type StaffAccountCreatedPayload struct {
	Username string           `json:"username"`
	Role     domain.StaffRole `json:"role"`
	Region   *string          `json:"region,omitempty"`
}
