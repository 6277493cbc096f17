package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/application/dto"
)

// BillHandler maneja la generación y el ciclo de vida de las facturas (protegido).
type BillHandler struct {
	orch *billing.Orchestrator
	pdf  *billing.PDFUseCase
}

// NewBillHandler construye el handler. pdf puede ser nil si no se expone el recibo.
func NewBillHandler(orch *billing.Orchestrator, pdf *billing.PDFUseCase) *BillHandler {
	return &BillHandler{orch: orch, pdf: pdf}
}

// Create godoc
// @Summary      Facturar una lectura
// @Description  Calcula el cargo por bloques de la lectura y crea la factura del periodo.
// @Description  Sin period_from/period_to se factura el mes calendario de la lectura.
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BillReadingRequest  true  "reading_id y cargos externos"
// @Success      201   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.BillReadingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ReadingID == "" {
		return validationError(c, "reading_id requerido")
	}
	bill, err := h.orch.BillReading(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bill)
}

// CreateBatch godoc
// @Summary      Facturar un lote de lecturas
// @Description  Cada lectura se factura en su propia transacción; el resultado es por elemento.
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchBillRequest  true  "lecturas a facturar (máx. 500)"
// @Success      200   {object}  dto.BatchBillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bills/batch [post]
func (h *BillHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.BatchBillRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.orch.BillReadings(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListDue godoc
// @Summary      Facturas enviadas con vencimiento cumplido
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        as_of  query  string  false  "Fecha de corte YYYY-MM-DD (por defecto hoy)"
// @Success      200    {array}   dto.BillResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/bills/due [get]
func (h *BillHandler) ListDue(c *fiber.Ctx) error {
	asOf, err := dto.ParseDate(c.Query("as_of"))
	if err != nil {
		return validationError(c, "as_of inválido")
	}
	bills, err := h.orch.ListBillsDue(c.Context(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(bills)
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Bill ID"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	bill, err := h.orch.GetBill(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(bill)
}

// GetPDF godoc
// @Summary      Descargar el recibo PDF de la factura
// @Tags         bills
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Bill ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/pdf [get]
func (h *BillHandler) GetPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "PDF_DISABLED", Message: "generación de PDF no configurada"})
	}
	pdfBytes, filename, err := h.pdf.BillPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// MarkSent godoc
// @Summary      Marcar factura como enviada
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Bill ID"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/send [post]
func (h *BillHandler) MarkSent(c *fiber.Ctx) error {
	bill, err := h.orch.MarkSent(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(bill)
}

// MarkOverdue godoc
// @Summary      Marcar factura como vencida
// @Description  Solo aplica a facturas en estado sent.
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Bill ID"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/overdue [post]
func (h *BillHandler) MarkOverdue(c *fiber.Ctx) error {
	bill, err := h.orch.MarkOverdue(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(bill)
}

// Void godoc
// @Summary      Anular factura
// @Description  Solo facturas sin pagos. Libera el periodo para volver a facturar.
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Bill ID"
// @Param        body  body  dto.VoidBillRequest  true  "motivo de anulación"
// @Success      200   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/void [post]
func (h *BillHandler) Void(c *fiber.Ctx) error {
	var in dto.VoidBillRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	bill, err := h.orch.VoidBill(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(bill)
}

// ListPayments godoc
// @Summary      Pagos aplicados a la factura
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Bill ID"
// @Success      200  {array}   dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/payments [get]
func (h *BillHandler) ListPayments(c *fiber.Ctx) error {
	payments, err := h.orch.ListPayments(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(payments)
}
