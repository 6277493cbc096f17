package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/application/dto"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

// RateHandler expone el esquema tarifario por bloques (protegido).
type RateHandler struct {
	svc *billing.RateScheduleService
}

// NewRateHandler construye el handler.
func NewRateHandler(svc *billing.RateScheduleService) *RateHandler {
	return &RateHandler{svc: svc}
}

// Lookup godoc
// @Summary      Tramos vigentes de una clase de cliente
// @Description  Devuelve los tramos activos y vigentes en as_of (por defecto hoy), ordenados por tier_from.
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Param        class  query  string  true   "Clase de cliente (residential, commercial, industrial...)"
// @Param        as_of  query  string  false  "Fecha de consulta YYYY-MM-DD"
// @Success      200    {array}   dto.RateTierResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/rates [get]
func (h *RateHandler) Lookup(c *fiber.Ctx) error {
	class := entity.CustomerClass(c.Query("class"))
	if !class.IsValid() {
		return validationError(c, "class inválida")
	}
	asOf, err := dto.ParseDate(c.Query("as_of"))
	if err != nil {
		return validationError(c, "as_of inválido")
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}
	tiers, err := h.svc.LookupTiers(c.Context(), class, asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(billing.ToRateTierResponses(tiers))
}

// History godoc
// @Summary      Historial de versiones tarifarias
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Param        class  path  string  true  "Clase de cliente"
// @Success      200    {array}   dto.RateTierResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/rates/{class}/history [get]
func (h *RateHandler) History(c *fiber.Ctx) error {
	class := entity.CustomerClass(c.Params("class"))
	if !class.IsValid() {
		return validationError(c, "class inválida")
	}
	tiers, err := h.svc.History(c.Context(), class)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(billing.ToRateTierResponses(tiers))
}

// InsertTier godoc
// @Summary      Agregar un tramo tarifario
// @Description  Rechaza tramos que se superpongan o dejen huecos con los vigentes de la misma clase.
// @Tags         rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RateTierRequest  true  "customer_class, tier_from, tier_to (null = abierto), rate_per_unit, fixed_charge, effective_from"
// @Success      201   {object}  dto.RateTierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rates/tiers [post]
func (h *RateHandler) InsertTier(c *fiber.Ctx) error {
	var in dto.RateTierRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	tier, err := billing.FromRateTierRequest(in)
	if err != nil {
		return writeError(c, err)
	}
	created, err := h.svc.InsertTier(c.Context(), tier)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(billing.ToRateTierResponse(created))
}

// PublishSchedule godoc
// @Summary      Publicar una nueva versión del esquema tarifario
// @Description  Cierra la versión vigente en effective_from e inserta la partición completa de tramos.
// @Tags         rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PublishScheduleRequest  true  "customer_class, effective_from y tramos"
// @Success      201   {array}   dto.RateTierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rates/schedules [post]
func (h *RateHandler) PublishSchedule(c *fiber.Ctx) error {
	var in dto.PublishScheduleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	effectiveFrom, err := dto.ParseDate(in.EffectiveFrom)
	if err != nil || effectiveFrom.IsZero() {
		return validationError(c, "effective_from requerido (YYYY-MM-DD)")
	}
	tiers := make([]*entity.RateTier, 0, len(in.Tiers))
	for _, tr := range in.Tiers {
		tr.EffectiveFrom = ""
		tr.EffectiveTo = ""
		t, err := billing.FromRateTierRequest(tr)
		if err != nil {
			return writeError(c, err)
		}
		tiers = append(tiers, t)
	}
	published, err := h.svc.PublishSchedule(c.Context(), entity.CustomerClass(in.CustomerClass), effectiveFrom, tiers)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(billing.ToRateTierResponses(published))
}

// Quote godoc
// @Summary      Simular el cargo de un consumo
// @Tags         rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteRequest  true  "customer_class, consumption, as_of opcional"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/rates/quote [post]
func (h *RateHandler) Quote(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	asOf, err := dto.ParseDate(in.AsOf)
	if err != nil {
		return validationError(c, "as_of inválido")
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}
	class := entity.CustomerClass(in.CustomerClass)
	charge, err := h.svc.Quote(c.Context(), class, in.Consumption, asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(billing.ToQuoteResponse(class, asOf, charge))
}
