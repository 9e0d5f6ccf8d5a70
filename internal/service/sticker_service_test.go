package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/vignette-service/internal/domain"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

func TestPurchaseIssuesLiveSticker(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	citizen := env.createCitizen(t, "+22790000001")
	vehicle := env.createVehicle(t, citizen, "ne-1234-ab", "Niamey", domain.VehicleCategoryCar)

	sticker, err := env.stickers.Purchase(ctx, citizen, PurchaseInput{
		VehicleID:     vehicle.ID,
		ValidityYears: 1,
		PaymentMethod: "mobile_money",
	})
	require.NoError(t, err)

	assert.Equal(t, float64(25000), sticker.AmountPaid)
	assert.Equal(t, 25, sticker.LoyaltyPoints)
	assert.Equal(t, domain.StickerStatusValid, sticker.Status)
	assert.True(t, sticker.IsLive(env.clock.Now()))
	assert.Equal(t, env.clock.Now(), sticker.StartDate)
	assert.Equal(t, env.clock.Now().Add(365*24*time.Hour), sticker.EndDate)
	assert.Regexp(t, `^TXN-[A-Z0-9]{12}$`, sticker.TransactionID)
	assert.Equal(t, "NIGER-VIGNETTE|NE-1234-AB|"+sticker.ID+"|2025-03-01", sticker.QRCode)

	// owner's balance reflects the purchase
	updated, err := env.store.Citizens.GetByID(ctx, citizen.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.LoyaltyPoints)

	// payment shares the transaction reference
	payments, err := env.store.Payments.List(ctx, paymentFilterAll())
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, sticker.TransactionID, payments[0].TransactionRef)
	assert.Equal(t, sticker.AmountPaid, payments[0].Amount)
}

func TestPurchaseTruckTwoYears(t *testing.T) {
	env := newTestEnv(t)
	citizen := env.createCitizen(t, "+22790000002")
	vehicle := env.createVehicle(t, citizen, "NE-9876-ZZ", "Zinder", domain.VehicleCategoryTruck)

	sticker, err := env.stickers.Purchase(context.Background(), citizen, PurchaseInput{
		VehicleID:     vehicle.ID,
		ValidityYears: 2,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, float64(100000), sticker.AmountPaid)
	assert.Equal(t, 100, sticker.LoyaltyPoints)
}

func TestPurchaseBlockedWhileLive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	citizen := env.createCitizen(t, "+22790000003")
	vehicle := env.createVehicle(t, citizen, "NE-1111-AA", "Niamey", domain.VehicleCategoryCar)

	_, err := env.stickers.Purchase(ctx, citizen, PurchaseInput{VehicleID: vehicle.ID, ValidityYears: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	_, err = env.stickers.Purchase(ctx, citizen, PurchaseInput{VehicleID: vehicle.ID, ValidityYears: 1, PaymentMethod: "cash"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestPurchaseAllowedAfterExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	citizen := env.createCitizen(t, "+22790000004")
	vehicle := env.createVehicle(t, citizen, "NE-2222-BB", "Niamey", domain.VehicleCategoryCar)

	_, err := env.stickers.Purchase(ctx, citizen, PurchaseInput{VehicleID: vehicle.ID, ValidityYears: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	env.clock.Advance(366 * 24 * time.Hour)

	_, err = env.stickers.Purchase(ctx, citizen, PurchaseInput{VehicleID: vehicle.ID, ValidityYears: 1, PaymentMethod: "cash"})
	require.NoError(t, err)
}

func TestPurchaseOwnershipFoldsIntoNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createCitizen(t, "+22790000005")
	other := env.createCitizen(t, "+22790000006")
	vehicle := env.createVehicle(t, owner, "NE-3333-CC", "Niamey", domain.VehicleCategoryCar)

	_, err := env.stickers.Purchase(ctx, other, PurchaseInput{VehicleID: vehicle.ID, ValidityYears: 1, PaymentMethod: "cash"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	_, err = env.stickers.Purchase(ctx, other, PurchaseInput{VehicleID: "missing", ValidityYears: 1, PaymentMethod: "cash"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestPurchaseValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	citizen := env.createCitizen(t, "+22790000007")
	vehicle := env.createVehicle(t, citizen, "NE-4444-DD", "Niamey", domain.VehicleCategoryCar)

	_, err := env.stickers.Purchase(context.Background(), citizen, PurchaseInput{VehicleID: vehicle.ID, ValidityYears: 0, PaymentMethod: "cash"})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = env.stickers.Purchase(context.Background(), citizen, PurchaseInput{VehicleID: vehicle.ID, ValidityYears: 1})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestConcurrentPurchasesExactlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	citizen := env.createCitizen(t, "+22790000008")
	vehicle := env.createVehicle(t, citizen, "NE-5555-EE", "Niamey", domain.VehicleCategoryCar)

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.stickers.Purchase(ctx, citizen, PurchaseInput{
				VehicleID:     vehicle.ID,
				ValidityYears: 1,
				PaymentMethod: "cash",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes, conflicts := 0, 0
	for err := range errs {
		if err == nil {
			successes++
			continue
		}
		require.True(t, apperrors.IsCode(err, "CONFLICT"), "unexpected error: %v", err)
		conflicts++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestPurchaseRecordsAuditAndNotification(t *testing.T) {
	env := newTestEnv(t)
	citizen := env.createCitizen(t, "+22790000009")
	vehicle := env.createVehicle(t, citizen, "NE-6666-FF", "Niamey", domain.VehicleCategoryCar)

	sticker, err := env.stickers.Purchase(context.Background(), citizen, PurchaseInput{
		VehicleID: vehicle.ID, ValidityYears: 1, PaymentMethod: "cash",
	})
	require.NoError(t, err)

	var found bool
	for _, entry := range env.store.AuditEntries() {
		if entry.Action == "CREATE" && entry.Module == "stickers" {
			found = true
			require.NotNil(t, entry.ActorID)
			assert.Equal(t, citizen.ID, *entry.ActorID)
		}
	}
	assert.True(t, found, "expected sticker audit entry")

	records := env.store.NotificationRecords()
	require.Len(t, records, 1)
	assert.Equal(t, sticker.ID, records[0].StickerID)
	assert.Equal(t, citizen.Phone, records[0].Recipient)
}

func TestVerifyUnregisteredPlate(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.stickers.Verify(context.Background(), "ne-0000-xx")
	require.NoError(t, err)
	assert.Equal(t, "NE-0000-XX", result.RegistrationNumber)
	assert.Equal(t, domain.VerificationStatusInactive, result.Status)
	assert.Equal(t, domain.VerificationColorRed, result.StatusColor)
	assert.Equal(t, "not found", result.OwnerName)
}

func TestVerifyVehicleWithoutSticker(t *testing.T) {
	env := newTestEnv(t)
	citizen := env.createCitizen(t, "+22790000010")
	env.createVehicle(t, citizen, "NE-7777-GG", "Niamey", domain.VehicleCategoryCar)

	result, err := env.stickers.Verify(context.Background(), "NE-7777-GG")
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusInactive, result.Status)
	assert.Equal(t, domain.VerificationColorRed, result.StatusColor)
	assert.Equal(t, "Amadou Diallo", result.OwnerName)
	assert.Nil(t, result.ValidFrom)
}

func TestVerifyLiveSticker(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	citizen := env.createCitizen(t, "+22790000011")
	vehicle := env.createVehicle(t, citizen, "NE-8888-HH", "Niamey", domain.VehicleCategoryCar)

	sticker, err := env.stickers.Purchase(ctx, citizen, PurchaseInput{VehicleID: vehicle.ID, ValidityYears: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	result, err := env.stickers.Verify(ctx, "NE-8888-HH")
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusValid, result.Status)
	assert.Equal(t, domain.VerificationColorGreen, result.StatusColor)
	require.NotNil(t, result.ValidUntil)
	assert.Equal(t, sticker.EndDate, *result.ValidUntil)
	assert.Equal(t, "car", result.VehicleCategory)
}

func TestVerifyExpiredSticker(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	citizen := env.createCitizen(t, "+22790000012")
	vehicle := env.createVehicle(t, citizen, "NE-9999-II", "Niamey", domain.VehicleCategoryCar)

	_, err := env.stickers.Purchase(ctx, citizen, PurchaseInput{VehicleID: vehicle.ID, ValidityYears: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	env.clock.Advance(366 * 24 * time.Hour)

	result, err := env.stickers.Verify(ctx, "NE-9999-II")
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusInvalid, result.Status)
	assert.Equal(t, domain.VerificationColorOrange, result.StatusColor)
}
