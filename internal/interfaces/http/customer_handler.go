package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/application/dto"
)

// CustomerHandler consultas de cartera por cliente (protegido). Los clientes se
// administran en otro servicio; aquí solo se leen.
type CustomerHandler struct {
	orch *billing.Orchestrator
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(orch *billing.Orchestrator) *CustomerHandler {
	return &CustomerHandler{orch: orch}
}

// Statement godoc
// @Summary      Facturas pendientes del cliente
// @Description  Facturas abiertas con saldo, total adeudado y monto vencido.
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Customer ID"
// @Success      200  {object}  dto.CustomerStatementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/bills [get]
func (h *CustomerHandler) Statement(c *fiber.Ctx) error {
	out, err := h.orch.CustomerStatement(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PaymentHistory godoc
// @Summary      Historial de pagos del cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "Customer ID"
// @Param        from   query  string  false  "Desde YYYY-MM-DD"
// @Param        to     query  string  false  "Hasta YYYY-MM-DD (día incluido)"
// @Param        limit  query  int     false  "Máximo de pagos (por defecto 50, máx. 100)"
// @Success      200    {object}  dto.PaymentHistoryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/payments [get]
func (h *CustomerHandler) PaymentHistory(c *fiber.Ctx) error {
	from, err := optionalDate(c.Query("from"))
	if err != nil {
		return validationError(c, "from inválido")
	}
	to, err := optionalDate(c.Query("to"))
	if err != nil {
		return validationError(c, "to inválido")
	}
	if to != nil && len(c.Query("to")) == len(dto.DateLayout) {
		// Fecha sin hora: incluye el día completo; el límite es la medianoche siguiente.
		end := to.AddDate(0, 0, 1)
		to = &end
	}
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(billing.DefaultHistoryLimit)))
	out, err := h.orch.PaymentHistory(c.Context(), c.Params("id"), from, to, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func optionalDate(s string) (*time.Time, error) {
	t, err := dto.ParseDate(s)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}
