package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/application/dto"
)

// PaymentHandler registra pagos sobre facturas (protegido).
type PaymentHandler struct {
	orch *billing.Orchestrator
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(orch *billing.Orchestrator) *PaymentHandler {
	return &PaymentHandler{orch: orch}
}

// Apply godoc
// @Summary      Aplicar un pago a una factura
// @Description  Rechaza montos no positivos, facturas saldadas o anuladas y pagos mayores al saldo.
// @Description  El recaudador se toma del token.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyPaymentRequest  true  "bill_id, amount, method (cash, card, bank_transfer, mobile_payment, cheque)"
// @Success      201   {object}  dto.ApplyPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Apply(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.BillID == "" {
		return validationError(c, "bill_id requerido")
	}
	in.CollectorID = userID
	in.CollectorName = GetUserName(c)
	out, err := h.orch.ApplyPayment(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
