package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/vignette-service/internal/api/dto"
	"github.com/spec-kit/vignette-service/internal/auth"
	"github.com/spec-kit/vignette-service/internal/domain"
	"github.com/spec-kit/vignette-service/internal/service"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

// AdminHandler exposes the staff-facing endpoints. Role decisions live in the
// policy engine behind the service; the handler only resolves the principal
// and maps payloads.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

func staffFromContext(c *fiber.Ctx) (*domain.Staff, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return nil, apperrors.NewForbidden("staff account required")
	}
	return principal.Staff, nil
}

// CreateStaff handles POST /api/admin/users.
func (h *AdminHandler) CreateStaff(c *fiber.Ctx) error {
	actor, err := staffFromContext(c)
	if err != nil {
		return err
	}

	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	staff, err := h.admin.CreateStaff(c.Context(), actor, service.StaffCreateInput{
		Username:  req.Username,
		Password:  req.Password,
		Role:      domain.StaffRole(req.Role),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Region:    req.Region,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(staffSummary(staff))
}

// ListStaff handles GET /api/admin/users.
func (h *AdminHandler) ListStaff(c *fiber.Ctx) error {
	actor, err := staffFromContext(c)
	if err != nil {
		return err
	}
	list, err := h.admin.ListStaff(c.Context(), actor, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	out := make([]dto.StaffSummary, 0, len(list))
	for i := range list {
		out = append(out, staffSummary(&list[i]))
	}
	return c.JSON(fiber.Map{"users": out})
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	actor, err := staffFromContext(c)
	if err != nil {
		return err
	}
	stats, err := h.admin.Dashboard(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(dto.DashboardResponse{
		TotalVehicles:  stats.TotalVehicles,
		ActiveStickers: stats.ActiveStickers,
		TotalRevenue:   stats.TotalRevenue,
		TodayRevenue:   stats.TodayRevenue,
		Region:         stats.Region,
	})
}

// ListVehicles handles GET /api/admin/vehicles.
func (h *AdminHandler) ListVehicles(c *fiber.Ctx) error {
	actor, err := staffFromContext(c)
	if err != nil {
		return err
	}
	list, err := h.admin.ListVehicles(c.Context(), actor, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	out := make([]dto.VehicleResponse, 0, len(list))
	for i := range list {
		out = append(out, vehicleResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"vehicles": out})
}

// ListStickers handles GET /api/admin/stickers.
func (h *AdminHandler) ListStickers(c *fiber.Ctx) error {
	actor, err := staffFromContext(c)
	if err != nil {
		return err
	}
	list, err := h.admin.ListStickers(c.Context(), actor, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	out := make([]dto.StickerResponse, 0, len(list))
	for i := range list {
		out = append(out, stickerResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"stickers": out})
}

// PaymentReports handles GET /api/admin/reports/payments.
func (h *AdminHandler) PaymentReports(c *fiber.Ctx) error {
	actor, err := staffFromContext(c)
	if err != nil {
		return err
	}

	var from *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return apperrors.NewValidationError("from must be RFC3339", map[string]any{"from": raw})
		}
		from = &parsed
	}

	list, err := h.admin.PaymentReports(c.Context(), actor, from, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, payment := range list {
		out = append(out, dto.PaymentResponse{
			ID:             payment.ID,
			CitizenID:      payment.CitizenID,
			StickerID:      payment.StickerID,
			Amount:         payment.Amount,
			PaymentMethod:  payment.PaymentMethod,
			Status:         string(payment.Status),
			TransactionRef: payment.TransactionRef,
			CreatedAt:      payment.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"payments": out})
}

// AuditLogs handles GET /api/admin/audit-logs.
func (h *AdminHandler) AuditLogs(c *fiber.Ctx) error {
	actor, err := staffFromContext(c)
	if err != nil {
		return err
	}
	list, err := h.admin.AuditLogs(c.Context(), actor, c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	out := make([]dto.AuditEntryResponse, 0, len(list))
	for _, entry := range list {
		out = append(out, dto.AuditEntryResponse{
			ID:        entry.ID,
			ActorID:   entry.ActorID,
			Action:    entry.Action,
			Module:    entry.Module,
			Details:   entry.Details,
			Timestamp: entry.Timestamp,
		})
	}
	return c.JSON(fiber.Map{"audit_logs": out})
}

// TaxConfigs handles GET /api/admin/tax-configs.
func (h *AdminHandler) TaxConfigs(c *fiber.Ctx) error {
	actor, err := staffFromContext(c)
	if err != nil {
		return err
	}
	list, err := h.admin.TaxConfigs(c.Context(), actor)
	if err != nil {
		return err
	}
	out := make([]dto.TaxConfigResponse, 0, len(list))
	for _, cfg := range list {
		out = append(out, dto.TaxConfigResponse{
			ID:                cfg.ID,
			VehicleCategory:   string(cfg.VehicleCategory),
			EnginePowerMin:    cfg.EnginePowerMin,
			EnginePowerMax:    cfg.EnginePowerMax,
			BaseAmount:        cfg.BaseAmount,
			MultiYearDiscount: cfg.MultiYearDiscount,
			Status:            cfg.Status,
			EffectiveDate:     cfg.EffectiveDate,
		})
	}
	return c.JSON(fiber.Map{"tax_configs": out})
}

// CreateInspection handles POST /api/inspections.
func (h *AdminHandler) CreateInspection(c *fiber.Ctx) error {
	actor, err := staffFromContext(c)
	if err != nil {
		return err
	}

	var req dto.InspectionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	inspection, err := h.admin.CreateInspection(c.Context(), actor, service.InspectionInput{
		VehicleRegistration: req.VehicleRegistration,
		StatusAtControl:     req.StatusAtControl,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		Notes:               req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(inspectionResponse(inspection))
}

// ListInspections handles GET /api/inspections.
func (h *AdminHandler) ListInspections(c *fiber.Ctx) error {
	actor, err := staffFromContext(c)
	if err != nil {
		return err
	}
	list, err := h.admin.ListInspections(c.Context(), actor, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	out := make([]dto.InspectionResponse, 0, len(list))
	for i := range list {
		out = append(out, inspectionResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"inspections": out})
}

func inspectionResponse(inspection *domain.Inspection) dto.InspectionResponse {
	return dto.InspectionResponse{
		ID:                  inspection.ID,
		AgentID:             inspection.AgentID,
		VehicleRegistration: inspection.VehicleRegistration,
		StatusAtControl:     inspection.StatusAtControl,
		Latitude:            inspection.Latitude,
		Longitude:           inspection.Longitude,
		Notes:               inspection.Notes,
		Timestamp:           inspection.Timestamp,
	}
}
