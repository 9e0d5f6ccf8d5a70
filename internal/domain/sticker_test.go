package domain

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStickerPrice(t *testing.T) {
	cases := []struct {
		category VehicleCategory
		years    int
		amount   float64
		points   int
	}{
		{VehicleCategoryMotorcycle, 1, 10000, 10},
		{VehicleCategoryMotorcycle, 3, 30000, 30},
		{VehicleCategoryCar, 1, 25000, 25},
		{VehicleCategoryCar, 2, 50000, 50},
		{VehicleCategoryTruck, 1, 50000, 50},
		{VehicleCategoryTruck, 2, 100000, 100},
		{VehicleCategoryTruck, 3, 150000, 150},
		// unknown categories fall back to the car tariff
		{VehicleCategory("bus"), 1, 25000, 25},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_%dy", tc.category, tc.years), func(t *testing.T) {
			amount := StickerPrice(tc.category, tc.years)
			assert.Equal(t, tc.amount, amount)
			assert.Equal(t, tc.points, LoyaltyPointsFor(amount))
		})
	}
}

func TestValidityWindow(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	start, end := ValidityWindow(now, 1)
	assert.Equal(t, now, start)
	assert.Equal(t, now.Add(365*24*time.Hour), end)

	_, end2 := ValidityWindow(now, 2)
	assert.Equal(t, now.Add(2*365*24*time.Hour), end2)
}

func TestStickerIsLive(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	live := &Sticker{Status: StickerStatusValid, EndDate: now.Add(time.Hour)}
	assert.True(t, live.IsLive(now))

	// stored label valid but window elapsed
	stale := &Sticker{Status: StickerStatusValid, EndDate: now.Add(-time.Hour)}
	assert.False(t, stale.IsLive(now))

	// end strictly after now; equality is not live
	boundary := &Sticker{Status: StickerStatusValid, EndDate: now}
	assert.False(t, boundary.IsLive(now))

	expired := &Sticker{Status: StickerStatusExpired, EndDate: now.Add(time.Hour)}
	assert.False(t, expired.IsLive(now))
}

func TestNewTransactionID(t *testing.T) {
	pattern := regexp.MustCompile(`^TXN-[A-Z0-9]{12}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewTransactionID()
		require.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate transaction id %s", id)
		seen[id] = true
	}
}

func TestQRPayload(t *testing.T) {
	end := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	payload := QRPayload("NE-1234-AB", "sticker-42", end)
	assert.Equal(t, "NIGER-VIGNETTE|NE-1234-AB|sticker-42|2025-03-01", payload)
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "NE-1234-AB", NormalizePlate("  ne-1234-ab "))
	assert.Equal(t, "", NormalizePlate("   "))
}
