package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/vignette-service/internal/api/dto"
	"github.com/spec-kit/vignette-service/internal/auth"
	"github.com/spec-kit/vignette-service/internal/domain"
	"github.com/spec-kit/vignette-service/internal/service"
	apperrors "github.com/spec-kit/vignette-service/pkg/util"
)

// StickersHandler exposes citizen sticker endpoints and the public
// verification lookup.
type StickersHandler struct {
	stickers *service.StickerService
}

// NewStickersHandler constructs handler.
func NewStickersHandler(stickerService *service.StickerService) *StickersHandler {
	return &StickersHandler{stickers: stickerService}
}

// Purchase handles POST /api/stickers/purchase.
func (h *StickersHandler) Purchase(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Citizen == nil {
		return apperrors.NewForbidden("citizen account required")
	}

	var req dto.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sticker, err := h.stickers.Purchase(c.Context(), principal.Citizen, service.PurchaseInput{
		VehicleID:     req.VehicleID,
		ValidityYears: req.ValidityYears,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(stickerResponse(sticker))
}

// List handles GET /api/stickers.
func (h *StickersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Citizen == nil {
		return apperrors.NewForbidden("citizen account required")
	}

	list, err := h.stickers.ListOwn(c.Context(), principal.Citizen.ID)
	if err != nil {
		return err
	}
	out := make([]dto.StickerResponse, 0, len(list))
	for i := range list {
		out = append(out, stickerResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"stickers": out})
}

// Verify handles GET /api/verify/:registration_number. Public; always 200.
func (h *StickersHandler) Verify(c *fiber.Ctx) error {
	result, err := h.stickers.Verify(c.Context(), c.Params("registration_number"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func stickerResponse(sticker *domain.Sticker) dto.StickerResponse {
	return dto.StickerResponse{
		ID:                 sticker.ID,
		VehicleID:          sticker.VehicleID,
		RegistrationNumber: sticker.RegistrationNumber,
		Status:             string(sticker.Status),
		StartDate:          sticker.StartDate,
		EndDate:            sticker.EndDate,
		AmountPaid:         sticker.AmountPaid,
		PaymentMethod:      sticker.PaymentMethod,
		TransactionID:      sticker.TransactionID,
		QRCode:             sticker.QRCode,
		LoyaltyPoints:      sticker.LoyaltyPoints,
		CreatedAt:          sticker.CreatedAt,
	}
}
