package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/vignette-service/internal/auth"
	"github.com/spec-kit/vignette-service/internal/config"
	"github.com/spec-kit/vignette-service/internal/domain"
	"github.com/spec-kit/vignette-service/internal/events"
	"github.com/spec-kit/vignette-service/internal/policy"
	"github.com/spec-kit/vignette-service/internal/repository"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

// AdminService covers the staff-facing operations: account provisioning,
// dashboards, listings, reports, audit reads, and inspections. Every entry
// point authorizes through the policy table before touching a repository, and
// region scoping is applied through policy.Scope so a scoped principal cannot
// reach another region through any listing or aggregate.
type AdminService struct {
	staff       repository.StaffRepository
	vehicles    repository.VehicleRepository
	stickers    repository.StickerRepository
	payments    repository.PaymentRepository
	taxConfigs  repository.TaxConfigRepository
	auditRepo   repository.AuditRepository
	inspections repository.InspectionRepository
	dispatcher  events.Dispatcher
	audit       *AuditService
	bcryptCost  int
	now         func() time.Time
}

// AdminDependencies bundles collaborators for the admin service.
type AdminDependencies struct {
	StaffRepo      repository.StaffRepository
	VehicleRepo    repository.VehicleRepository
	StickerRepo    repository.StickerRepository
	PaymentRepo    repository.PaymentRepository
	TaxConfigRepo  repository.TaxConfigRepository
	AuditRepo      repository.AuditRepository
	InspectionRepo repository.InspectionRepository
	Dispatcher     events.Dispatcher
	Audit          *AuditService
}

// StaffCreateInput describes the staff provisioning payload.
type StaffCreateInput struct {
	Username  string
	Password  string
	Role      domain.StaffRole
	FirstName string
	LastName  string
	Region    *string
}

// DashboardStats is the region-scoped summary for staff dashboards.
type DashboardStats struct {
	TotalVehicles  int64
	ActiveStickers int64
	TotalRevenue   float64
	TodayRevenue   float64
	Region         *string
}

// InspectionInput describes a roadside control record.
type InspectionInput struct {
	VehicleRegistration string
	StatusAtControl     string
	Latitude            *float64
	Longitude           *float64
	Notes               *string
}

// NewAdminService constructs the service.
func NewAdminService(cfg config.Config, deps AdminDependencies) *AdminService {
	return &AdminService{
		staff:       deps.StaffRepo,
		vehicles:    deps.VehicleRepo,
		stickers:    deps.StickerRepo,
		payments:    deps.PaymentRepo,
		taxConfigs:  deps.TaxConfigRepo,
		auditRepo:   deps.AuditRepo,
		inspections: deps.InspectionRepo,
		dispatcher:  deps.Dispatcher,
		audit:       deps.Audit,
		bcryptCost:  cfg.Auth.BcryptCost,
		now:         time.Now,
	}
}

// WithClock overrides the time source.
func (s *AdminService) WithClock(now func() time.Time) *AdminService {
	s.now = now
	return s
}

// CreateStaff provisions a staff account. Authorization is decided first,
// then field validation, both before any record exists: super_admin creates
// any role, admin creates supervisors only, region-scoped roles require an
// explicit non-empty region, and a taken username conflicts regardless of the
// requester's rank.
func (s *AdminService) CreateStaff(ctx context.Context, actor *domain.Staff, input StaffCreateInput) (*domain.Staff, error) {
	if err := policy.Authorize(actor, policy.ActionManageStaff); err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("unknown staff role", map[string]any{"role": string(input.Role)})
	}
	if !policy.CanCreateStaff(actor.Role, input.Role) {
		return nil, apperrors.NewForbidden("role not creatable by requester")
	}

	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("username and password are required", nil)
	}

	var region *string
	if input.Region != nil {
		trimmed := strings.TrimSpace(*input.Region)
		if trimmed != "" {
			region = &trimmed
		}
	}
	if input.Role.RegionScoped() && region == nil {
		return nil, apperrors.NewValidationError("region is required for this role", map[string]any{"role": string(input.Role)})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	staff := &domain.Staff{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         input.Role,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Region:       region,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		if err == repository.ErrDuplicate {
			return nil, apperrors.NewConflict("username already exists", map[string]any{"username": username})
		}
		return nil, apperrors.MapError(err)
	}

	s.audit.Record(ctx, &actor.ID, "CREATE", "users", map[string]any{
		"staff_id": staff.ID,
		"username": staff.Username,
		"role":     string(staff.Role),
	})
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventStaffAccountCreated,
		SubjectID: staff.ID,
		Actor:     staffActor(actor.ID),
		Payload: events.StaffAccountCreatedPayload{
			Username: staff.Username,
			Role:     staff.Role,
			Region:   staff.Region,
		},
	})
	return staff, nil
}

// ListStaff returns staff accounts, newest first.
func (s *AdminService) ListStaff(ctx context.Context, actor *domain.Staff, limit, offset int) ([]domain.Staff, error) {
	if err := policy.Authorize(actor, policy.ActionManageStaff); err != nil {
		return nil, err
	}
	list, err := s.staff.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// Dashboard aggregates counts and revenue within the actor's region scope.
// Today's revenue starts at the midnight of the evaluation day.
func (s *AdminService) Dashboard(ctx context.Context, actor *domain.Staff) (*DashboardStats, error) {
	if err := policy.Authorize(actor, policy.ActionViewDashboard); err != nil {
		return nil, err
	}
	region := policy.Scope(actor)
	now := s.now()

	totalVehicles, err := s.vehicles.Count(ctx, region)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	activeStickers, err := s.stickers.CountLive(ctx, region, now)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	totalRevenue, err := s.payments.SumAmount(ctx, region, nil)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayRevenue, err := s.payments.SumAmount(ctx, region, &midnight)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &DashboardStats{
		TotalVehicles:  totalVehicles,
		ActiveStickers: activeStickers,
		TotalRevenue:   totalRevenue,
		TodayRevenue:   todayRevenue,
		Region:         region,
	}, nil
}

// ListVehicles returns vehicles within the actor's region scope.
func (s *AdminService) ListVehicles(ctx context.Context, actor *domain.Staff, limit, offset int) ([]domain.Vehicle, error) {
	if err := policy.Authorize(actor, policy.ActionViewVehicles); err != nil {
		return nil, err
	}
	list, err := s.vehicles.List(ctx, repository.VehicleFilter{
		Region: policy.Scope(actor),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// ListStickers returns stickers within the actor's region scope.
func (s *AdminService) ListStickers(ctx context.Context, actor *domain.Staff, limit, offset int) ([]domain.Sticker, error) {
	if err := policy.Authorize(actor, policy.ActionViewStickers); err != nil {
		return nil, err
	}
	list, err := s.stickers.List(ctx, repository.StickerFilter{
		Region: policy.Scope(actor),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// PaymentReports returns payments within the actor's region scope.
func (s *AdminService) PaymentReports(ctx context.Context, actor *domain.Staff, from *time.Time, limit, offset int) ([]domain.Payment, error) {
	if err := policy.Authorize(actor, policy.ActionViewPaymentReports); err != nil {
		return nil, err
	}
	list, err := s.payments.List(ctx, repository.PaymentFilter{
		Region: policy.Scope(actor),
		From:   from,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// AuditLogs returns the audit trail, newest first. Super admin only.
func (s *AdminService) AuditLogs(ctx context.Context, actor *domain.Staff, limit, offset int) ([]domain.AuditEntry, error) {
	if err := policy.Authorize(actor, policy.ActionViewAuditLogs); err != nil {
		return nil, err
	}
	list, err := s.auditRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// TaxConfigs returns the rate table.
func (s *AdminService) TaxConfigs(ctx context.Context, actor *domain.Staff) ([]domain.TaxConfig, error) {
	if err := policy.Authorize(actor, policy.ActionViewTaxConfigs); err != nil {
		return nil, err
	}
	list, err := s.taxConfigs.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// CreateInspection records a roadside control. The plate is free text and
// does not have to match a registered vehicle.
func (s *AdminService) CreateInspection(ctx context.Context, actor *domain.Staff, input InspectionInput) (*domain.Inspection, error) {
	if err := policy.Authorize(actor, policy.ActionCreateInspection); err != nil {
		return nil, err
	}
	plate := domain.NormalizePlate(input.VehicleRegistration)
	if plate == "" {
		return nil, apperrors.NewValidationError("vehicle_registration is required", nil)
	}
	if strings.TrimSpace(input.StatusAtControl) == "" {
		return nil, apperrors.NewValidationError("status_at_control is required", nil)
	}

	inspection := &domain.Inspection{
		ID:                  uuid.NewString(),
		AgentID:             actor.ID,
		VehicleRegistration: plate,
		StatusAtControl:     strings.TrimSpace(input.StatusAtControl),
		Latitude:            input.Latitude,
		Longitude:           input.Longitude,
		Notes:               input.Notes,
		Timestamp:           s.now(),
	}
	if err := s.inspections.Create(ctx, inspection); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.audit.Record(ctx, &actor.ID, "CREATE", "inspections", map[string]any{
		"inspection_id":        inspection.ID,
		"vehicle_registration": plate,
		"status_at_control":    inspection.StatusAtControl,
	})
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventInspectionRecorded,
		SubjectID: inspection.ID,
		Actor:     staffActor(actor.ID),
		Payload: events.InspectionRecordedPayload{
			VehicleRegistration: plate,
			StatusAtControl:     inspection.StatusAtControl,
		},
	})
	return inspection, nil
}

// ListInspections returns recorded inspections, newest first.
func (s *AdminService) ListInspections(ctx context.Context, actor *domain.Staff, limit, offset int) ([]domain.Inspection, error) {
	if err := policy.Authorize(actor, policy.ActionViewInspections); err != nil {
		return nil, err
	}
	list, err := s.inspections.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}
