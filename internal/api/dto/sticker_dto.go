package dto

import "time"

// PurchaseRequest payload for sticker purchase.
type PurchaseRequest struct {
	VehicleID     string `json:"vehicle_id"`
	ValidityYears int    `json:"validity_years"`
	PaymentMethod string `json:"payment_method"`
}

// StickerResponse is the sticker representation returned to callers.
type StickerResponse struct {
	ID                 string    `json:"id"`
	VehicleID          string    `json:"vehicle_id"`
	RegistrationNumber string    `json:"registration_number"`
	Status             string    `json:"status"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	AmountPaid         float64   `json:"amount_paid"`
	PaymentMethod      string    `json:"payment_method"`
	TransactionID      string    `json:"transaction_id"`
	QRCode             string    `json:"qr_code"`
	LoyaltyPoints      int       `json:"loyalty_points"`
	CreatedAt          time.Time `json:"created_at"`
}
