package domain

import "time"

// PaymentStatus for payments created in this service. Only completed payments
// are produced; a sticker purchase either fully succeeds or leaves nothing.
type PaymentStatus string

const PaymentStatusCompleted PaymentStatus = "completed"

// Payment records the accounting side of a sticker purchase. It shares the
// sticker's transaction reference and is created atomically with it.
type Payment struct {
	ID             string
	CitizenID      string
	StickerID      string
	Amount         float64
	PaymentMethod  string
	Status         PaymentStatus
	TransactionRef string
	CreatedAt      time.Time
}
