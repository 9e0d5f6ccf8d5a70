package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/vignette-service/internal/config"
	"github.com/spec-kit/vignette-service/internal/domain"
	"github.com/spec-kit/vignette-service/internal/events"
	"github.com/spec-kit/vignette-service/internal/repository"
)

// testEnv wires the services against the in-memory store with a controllable
// clock.
type testEnv struct {
	store    *repository.MemoryStore
	auth     *AuthService
	vehicles *VehicleService
	stickers *StickerService
	admin    *AdminService
	clock    *fakeClock
}

type fakeClock struct {
	current time.Time
}

func (f *fakeClock) Now() time.Time { return f.current }

func (f *fakeClock) Advance(d time.Duration) { f.current = f.current.Add(d) }

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repository.NewMemoryStore()
	logger := zap.NewNop()
	clock := &fakeClock{current: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	dispatcher := events.NewInMemoryDispatcher()
	cfg := testConfig()

	audit := NewAuditService(store.Audit, logger)
	authService := NewAuthService(cfg, AuthDependencies{
		CitizenRepo: store.Citizens,
		StaffRepo:   store.Staff,
	})
	vehicleService := NewVehicleService(store.Vehicles, dispatcher, audit)
	stickerService := NewStickerService(StickerDependencies{
		StickerRepo: store.Stickers,
		VehicleRepo: store.Vehicles,
		CitizenRepo: store.Citizens,
		Dispatcher:  dispatcher,
		Audit:       audit,
		Logger:      logger,
	}).WithClock(clock.Now)
	adminService := NewAdminService(cfg, AdminDependencies{
		StaffRepo:      store.Staff,
		VehicleRepo:    store.Vehicles,
		StickerRepo:    store.Stickers,
		PaymentRepo:    store.Payments,
		TaxConfigRepo:  store.TaxConfigs,
		AuditRepo:      store.Audit,
		InspectionRepo: store.Inspections,
		Dispatcher:     dispatcher,
		Audit:          audit,
	}).WithClock(clock.Now)

	notification := NewNotificationService(dispatcher, store.Notifications, store.Citizens, logger)
	notification.RegisterHandlers()

	return &testEnv{
		store:    store,
		auth:     authService,
		vehicles: vehicleService,
		stickers: stickerService,
		admin:    adminService,
		clock:    clock,
	}
}

func (e *testEnv) createCitizen(t *testing.T, phone string) *domain.Citizen {
	t.Helper()
	citizen, _, _, err := e.auth.RegisterCitizen(context.Background(), CitizenRegisterInput{
		Phone:     phone,
		Password:  "password",
		FirstName: "Amadou",
		LastName:  "Diallo",
	})
	require.NoError(t, err)
	return citizen
}

func (e *testEnv) createVehicle(t *testing.T, owner *domain.Citizen, plate, region string, category domain.VehicleCategory) *domain.Vehicle {
	t.Helper()
	vehicle, err := e.vehicles.Register(context.Background(), owner, VehicleRegisterInput{
		RegistrationNumber: plate,
		Category:           category,
		Make:               "Toyota",
		Model:              "Hilux",
		Region:             region,
	})
	require.NoError(t, err)
	return vehicle
}

func (e *testEnv) createStaff(t *testing.T, username string, role domain.StaffRole, region *string) *domain.Staff {
	t.Helper()
	staff := &domain.Staff{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		FirstName:    "Staff",
		LastName:     "Member",
		Region:       region,
	}
	require.NoError(t, e.store.Staff.Create(context.Background(), staff))
	return staff
}

func paymentFilterAll() repository.PaymentFilter { return repository.PaymentFilter{} }

func strptr(s string) *string { return &s }
