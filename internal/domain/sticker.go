package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// StickerStatus is the stored label. "expired" is never written by any
// operation here; liveness is the derived property that matters.
type StickerStatus string

const (
	StickerStatusValid   StickerStatus = "valid"
	StickerStatusExpired StickerStatus = "expired"
)

// Sticker is the digital tax credential bound to a vehicle for a validity
// window.
type Sticker struct {
	ID                 string
	VehicleID          string
	OwnerID            string
	RegistrationNumber string
	Status             StickerStatus
	StartDate          time.Time
	EndDate            time.Time
	AmountPaid         float64
	PaymentMethod      string
	TransactionID      string
	QRCode             string
	LoyaltyPoints      int
	CreatedAt          time.Time
}

// IsLive reports whether the sticker is currently valid. The stored status
// alone is not authoritative: a sticker whose end date has passed is expired
// even if no process ever rewrote the label.
func (s *Sticker) IsLive(now time.Time) bool {
	return s.Status == StickerStatusValid && s.EndDate.After(now)
}

// BaseAmount returns the per-category tariff in currency units. The tax
// config table is the generalization point for rule data; the present rule is
// this fixed mapping.
func BaseAmount(category VehicleCategory) float64 {
	switch category {
	case VehicleCategoryMotorcycle:
		return 10000
	case VehicleCategoryTruck:
		return 50000
	default:
		return 25000
	}
}

// StickerPrice computes the total amount for a purchase.
func StickerPrice(category VehicleCategory, validityYears int) float64 {
	return BaseAmount(category) * float64(validityYears)
}

// LoyaltyPointsFor returns the points accrued for a paid amount.
func LoyaltyPointsFor(amount float64) int {
	return int(amount / 1000)
}

// ValidityWindow returns the start and end instants for a purchase made at
// now. Years are counted as fixed 365-day periods, no leap adjustment.
func ValidityWindow(now time.Time, validityYears int) (time.Time, time.Time) {
	return now, now.Add(time.Duration(validityYears) * 365 * 24 * time.Hour)
}

const transactionIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewTransactionID generates a payment reference in the TXN- format scanners
// and reconciliation tooling expect: TXN- followed by 12 uppercase
// alphanumerics. Collisions are accepted as negligible.
func NewTransactionID() string {
	buf := make([]byte, 12)
	max := big.NewInt(int64(len(transactionIDCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			panic(err)
		}
		buf[i] = transactionIDCharset[n.Int64()]
	}
	return "TXN-" + string(buf)
}

// QRPayload builds the pipe-delimited payload scanners rely on. The date
// component is the end date only, no time part.
func QRPayload(registrationNumber, stickerID string, endDate time.Time) string {
	return fmt.Sprintf("NIGER-VIGNETTE|%s|%s|%s", registrationNumber, stickerID, endDate.Format("2006-01-02"))
}
