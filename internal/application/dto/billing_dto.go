package dto

import "github.com/shopspring/decimal"

// ── Tarifas ──────────────────────────────────────────────────────────────────

// RateTierRequest body para POST /api/rates/tiers y tramos de un esquema.
type RateTierRequest struct {
	Name          string           `json:"name"`
	CustomerClass string           `json:"customer_class"`
	TierFrom      decimal.Decimal  `json:"tier_from"`
	TierTo        *decimal.Decimal `json:"tier_to,omitempty"` // nil = tramo abierto
	RatePerUnit   decimal.Decimal  `json:"rate_per_unit"`
	FixedCharge   decimal.Decimal  `json:"fixed_charge"`
	EffectiveFrom string           `json:"effective_from"`
	EffectiveTo   string           `json:"effective_to,omitempty"`
	Active        *bool            `json:"active,omitempty"` // por defecto true
	Description   string           `json:"description,omitempty"`
}

// PublishScheduleRequest body para POST /api/rates/schedules: nueva versión completa.
type PublishScheduleRequest struct {
	CustomerClass string            `json:"customer_class"`
	EffectiveFrom string            `json:"effective_from"`
	Tiers         []RateTierRequest `json:"tiers"`
}

// RateTierResponse tramo en respuestas.
type RateTierResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	CustomerClass string           `json:"customer_class"`
	TierFrom      decimal.Decimal  `json:"tier_from"`
	TierTo        *decimal.Decimal `json:"tier_to"`
	RatePerUnit   decimal.Decimal  `json:"rate_per_unit"`
	FixedCharge   decimal.Decimal  `json:"fixed_charge"`
	EffectiveFrom string           `json:"effective_from"`
	EffectiveTo   *string          `json:"effective_to"`
	Active        bool             `json:"active"`
	Description   string           `json:"description,omitempty"`
}

// QuoteRequest body para POST /api/rates/quote.
type QuoteRequest struct {
	CustomerClass string          `json:"customer_class"`
	Consumption   decimal.Decimal `json:"consumption"`
	AsOf          string          `json:"as_of,omitempty"` // por defecto hoy
}

// TierChargeResponse desglose por tramo.
type TierChargeResponse struct {
	TierID      string           `json:"tier_id"`
	Name        string           `json:"name,omitempty"`
	TierFrom    decimal.Decimal  `json:"tier_from"`
	TierTo      *decimal.Decimal `json:"tier_to"`
	Units       decimal.Decimal  `json:"units"`
	RatePerUnit decimal.Decimal  `json:"rate_per_unit"`
	Amount      decimal.Decimal  `json:"amount"`
	FixedCharge decimal.Decimal  `json:"fixed_charge"`
}

// QuoteResponse cargo calculado para un consumo.
type QuoteResponse struct {
	CustomerClass string               `json:"customer_class"`
	AsOf          string               `json:"as_of"`
	Consumption   decimal.Decimal      `json:"consumption"`
	WaterCharges  decimal.Decimal      `json:"water_charges"`
	FixedCharges  decimal.Decimal      `json:"fixed_charges"`
	Total         decimal.Decimal      `json:"total"`
	Breakdown     []TierChargeResponse `json:"breakdown"`
}

// ── Facturas ─────────────────────────────────────────────────────────────────

// BillReadingRequest body para POST /api/bills: factura una lectura ya registrada.
// ServiceCharges, LateFees, Taxes y Adjustments son valores externos, no se calculan.
type BillReadingRequest struct {
	ReadingID      string          `json:"reading_id"`
	PeriodFrom     string          `json:"period_from,omitempty"` // por defecto el mes de la lectura
	PeriodTo       string          `json:"period_to,omitempty"`
	ServiceCharges decimal.Decimal `json:"service_charges"`
	LateFees       decimal.Decimal `json:"late_fees"`
	Taxes          decimal.Decimal `json:"taxes"`
	Adjustments    decimal.Decimal `json:"adjustments"`
}

// BatchBillRequest body para POST /api/bills/batch.
type BatchBillRequest struct {
	Readings []BillReadingRequest `json:"readings"`
}

// BatchBillResult resultado por lectura del lote.
type BatchBillResult struct {
	Index  int           `json:"index"`
	Status string        `json:"status"` // success | failed
	Bill   *BillResponse `json:"bill,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// BatchSummary totales del lote.
type BatchSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BatchBillResponse respuesta del lote.
type BatchBillResponse struct {
	Results []BatchBillResult `json:"results"`
	Summary BatchSummary      `json:"summary"`
}

// BillingPeriod rango de fechas de la factura.
type BillingPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// BillCharges componentes de cargo.
type BillCharges struct {
	WaterCharges   decimal.Decimal `json:"water_charges"`
	FixedCharges   decimal.Decimal `json:"fixed_charges"`
	ServiceCharges decimal.Decimal `json:"service_charges"`
	LateFees       decimal.Decimal `json:"late_fees"`
	Taxes          decimal.Decimal `json:"taxes"`
	Adjustments    decimal.Decimal `json:"adjustments"`
}

// BillResponse factura para la capa de presentación (recibos, PDF, app móvil).
type BillResponse struct {
	ID             string          `json:"id"`
	BillNumber     string          `json:"bill_number"`
	CustomerID     string          `json:"customer_id"`
	MeterID        string          `json:"meter_id"`
	MeterReadingID string          `json:"meter_reading_id"`
	BillDate       string          `json:"bill_date"`
	DueDate        string          `json:"due_date"`
	BillingPeriod  BillingPeriod   `json:"billing_period"`
	Consumption    decimal.Decimal `json:"consumption"`
	Charges        BillCharges     `json:"charges"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	BalanceAmount  decimal.Decimal `json:"balance_amount"`
	Status         string          `json:"status"`
	IsOverdue      bool            `json:"is_overdue"`
	DaysOverdue    int             `json:"days_overdue"`
	Voided         bool            `json:"voided"`
	VoidReason     string          `json:"void_reason,omitempty"`
	PaidAt         *string         `json:"paid_at"`
}

// VoidBillRequest body para POST /api/bills/:id/void.
type VoidBillRequest struct {
	Reason string `json:"reason"`
}

// ── Pagos ────────────────────────────────────────────────────────────────────

// ApplyPaymentRequest body para POST /api/payments. El recaudador sale del token.
type ApplyPaymentRequest struct {
	BillID        string          `json:"bill_id"`
	CustomerID    string          `json:"customer_id,omitempty"` // si viene, se verifica contra la factura
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	PaidAt        string          `json:"paid_at,omitempty"` // por defecto ahora
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CollectorID   string          `json:"-"`
	CollectorName string          `json:"-"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID            string          `json:"id"`
	BillID        string          `json:"bill_id"`
	CustomerID    string          `json:"customer_id"`
	Sequence      int             `json:"sequence"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	PaidAt        string          `json:"paid_at"`
	CollectorID   string          `json:"collector_id,omitempty"`
	CollectorName string          `json:"collector_name,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	ReceiptNumber string          `json:"receipt_number"`
}

// ApplyPaymentResponse pago y factura actualizada.
type ApplyPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Bill    BillResponse    `json:"bill"`
}

// ── Cliente ──────────────────────────────────────────────────────────────────

// CustomerSummary datos del cliente en estados de cuenta.
type CustomerSummary struct {
	ID            string `json:"id"`
	AccountNumber string `json:"account_number"`
	Name          string `json:"name"`
	CustomerClass string `json:"customer_class"`
	Address       string `json:"address,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// StatementSummary totales de cartera del cliente.
type StatementSummary struct {
	TotalBills       int             `json:"total_bills"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	OverdueBills     int             `json:"overdue_bills"`
	OverdueAmount    decimal.Decimal `json:"overdue_amount"`
}

// CustomerStatementResponse facturas pendientes del cliente para recaudo.
type CustomerStatementResponse struct {
	Customer CustomerSummary  `json:"customer"`
	Bills    []BillResponse   `json:"bills"`
	Summary  StatementSummary `json:"summary"`
}

// PaymentHistoryResponse historial de pagos del cliente.
type PaymentHistoryResponse struct {
	Customer   CustomerSummary   `json:"customer"`
	Payments   []PaymentResponse `json:"payments"`
	TotalPaid  decimal.Decimal   `json:"total_paid"`
	TotalCount int               `json:"total_count"`
}
