package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/vignette-service/internal/api/http"
	"github.com/spec-kit/vignette-service/internal/api/http/handlers"
	"github.com/spec-kit/vignette-service/internal/auth"
	"github.com/spec-kit/vignette-service/internal/config"
	"github.com/spec-kit/vignette-service/internal/domain"
	"github.com/spec-kit/vignette-service/internal/events"
	"github.com/spec-kit/vignette-service/internal/observability"
	"github.com/spec-kit/vignette-service/internal/persistence"
	"github.com/spec-kit/vignette-service/internal/repository"
	"github.com/spec-kit/vignette-service/internal/service"
	"github.com/spec-kit/vignette-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	verifyCache := persistence.NewVerificationCache(redis, cfg.Redis.VerifyCacheTTL())

	metrics := observability.NewMetrics()
	go func() {
		if err := metrics.Serve(cfg.Metrics.Addr, logger); err != nil {
			logger.Error("metrics listener stopped", zap.Error(err))
		}
	}()

	var (
		citizenRepo      repository.CitizenRepository
		staffRepo        repository.StaffRepository
		vehicleRepo      repository.VehicleRepository
		stickerRepo      repository.StickerRepository
		paymentRepo      repository.PaymentRepository
		taxConfigRepo    repository.TaxConfigRepository
		auditRepo        repository.AuditRepository
		inspectionRepo   repository.InspectionRepository
		notificationRepo repository.NotificationRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		citizenRepo = repository.NewCitizenRepository(pool)
		staffRepo = repository.NewStaffRepository(pool)
		vehicleRepo = repository.NewVehicleRepository(pool)
		stickerRepo = repository.NewStickerRepository(pool)
		paymentRepo = repository.NewPaymentRepository(pool)
		taxConfigRepo = repository.NewTaxConfigRepository(pool)
		auditRepo = repository.NewAuditRepository(pool)
		inspectionRepo = repository.NewInspectionRepository(pool)
		notificationRepo = repository.NewNotificationRepository(pool)
	} else {
		logger.Warn("running with in-memory store; data is not persisted")
		store := repository.NewMemoryStore()
		citizenRepo = store.Citizens
		staffRepo = store.Staff
		vehicleRepo = store.Vehicles
		stickerRepo = store.Stickers
		paymentRepo = store.Payments
		taxConfigRepo = store.TaxConfigs
		auditRepo = store.Audit
		inspectionRepo = store.Inspections
		notificationRepo = store.Notifications
	}

	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(auditRepo, logger)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		CitizenRepo: citizenRepo,
		StaffRepo:   staffRepo,
	})
	vehicleService := service.NewVehicleService(vehicleRepo, dispatcher, auditService)
	stickerService := service.NewStickerService(service.StickerDependencies{
		StickerRepo: stickerRepo,
		VehicleRepo: vehicleRepo,
		CitizenRepo: citizenRepo,
		Cache:       verifyCache,
		Dispatcher:  dispatcher,
		Audit:       auditService,
		Logger:      logger,
	})
	adminService := service.NewAdminService(*cfg, service.AdminDependencies{
		StaffRepo:      staffRepo,
		VehicleRepo:    vehicleRepo,
		StickerRepo:    stickerRepo,
		PaymentRepo:    paymentRepo,
		TaxConfigRepo:  taxConfigRepo,
		AuditRepo:      auditRepo,
		InspectionRepo: inspectionRepo,
		Dispatcher:     dispatcher,
		Audit:          auditService,
	})
	notificationService := service.NewNotificationService(dispatcher, notificationRepo, citizenRepo, logger)
	worker.StartNotificationWorker(notificationService)

	bootstrapSuperAdmin(ctx, cfg, staffRepo, logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), citizenRepo, staffRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Vehicles:       handlers.NewVehiclesHandler(vehicleService),
		Stickers:       handlers.NewStickersHandler(stickerService),
		Admin:          handlers.NewAdminHandler(adminService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// bootstrapSuperAdmin provisions the first super_admin account when no staff
// exists yet. Disabled unless a bootstrap password is configured.
func bootstrapSuperAdmin(ctx context.Context, cfg *config.Config, staffRepo repository.StaffRepository, logger *zap.Logger) {
	if cfg.Auth.BootstrapAdminPassword == "" {
		return
	}

	existing, err := staffRepo.List(ctx, 1, 0)
	if err != nil {
		logger.Error("bootstrap check failed", zap.Error(err))
		return
	}
	if len(existing) > 0 {
		return
	}

	hash, err := auth.HashPassword(cfg.Auth.BootstrapAdminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Error("bootstrap hash failed", zap.Error(err))
		return
	}
	staff := &domain.Staff{
		ID:           uuid.NewString(),
		Username:     cfg.Auth.BootstrapAdminUsername,
		PasswordHash: hash,
		Role:         domain.StaffRoleSuperAdmin,
		FirstName:    "System",
		LastName:     "Administrator",
	}
	if err := staffRepo.Create(ctx, staff); err != nil {
		logger.Error("bootstrap create failed", zap.Error(err))
		return
	}
	logger.Info("bootstrap super_admin provisioned", zap.String("username", staff.Username))
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
