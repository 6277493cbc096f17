package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Acueducto-api/internal/application/dto"
	"github.com/jhoicas/Acueducto-api/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// Orden importa: el primer error que coincide con errors.Is define la respuesta.
var errorMappings = []errorMapping{
	{domain.ErrInvalidConsumption, fiber.StatusBadRequest, "INVALID_CONSUMPTION"},
	{domain.ErrInvalidPaymentAmount, fiber.StatusBadRequest, "INVALID_PAYMENT_AMOUNT"},
	{domain.ErrStaleReading, fiber.StatusBadRequest, "STALE_READING"},
	{domain.ErrNoRateScheduleFound, fiber.StatusUnprocessableEntity, "NO_RATE_SCHEDULE"},
	{domain.ErrOverlappingTierRange, fiber.StatusConflict, "OVERLAPPING_TIER_RANGE"},
	{domain.ErrGapInTierRange, fiber.StatusConflict, "GAP_IN_TIER_RANGE"},
	{domain.ErrDuplicateBillingPeriod, fiber.StatusConflict, "DUPLICATE_BILLING_PERIOD"},
	{domain.ErrBillAlreadySettled, fiber.StatusConflict, "BILL_ALREADY_SETTLED"},
	{domain.ErrOverpaymentRejected, fiber.StatusConflict, "OVERPAYMENT_REJECTED"},
	{domain.ErrInvalidStatusTransition, fiber.StatusConflict, "INVALID_STATUS_TRANSITION"},
	{domain.ErrBillVoided, fiber.StatusConflict, "BILL_VOIDED"},
	{domain.ErrBillHasPayments, fiber.StatusConflict, "BILL_HAS_PAYMENTS"},
	{domain.ErrConcurrentModification, fiber.StatusConflict, "CONCURRENT_MODIFICATION"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
}

// writeError traduce un error de dominio a status HTTP y dto.ErrorResponse.
// Errores no reconocidos responden 500 INTERNAL.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validationError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}
