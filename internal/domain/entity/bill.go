package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus estado de cobro de una factura.
type BillStatus string

// Estados de factura. paid es terminal.
const (
	BillStatusGenerated BillStatus = "generated"
	BillStatusSent      BillStatus = "sent"
	BillStatusOverdue   BillStatus = "overdue"
	BillStatusPaid      BillStatus = "paid"
)

// IsValid verifica que el estado sea uno de los conocidos.
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusGenerated, BillStatusSent, BillStatusOverdue, BillStatusPaid:
		return true
	}
	return false
}

// IsTerminal indica si ya no se admiten transiciones.
func (s BillStatus) IsTerminal() bool {
	return s == BillStatusPaid
}

// CanTransitionTo aplica la máquina de estados generated -> sent -> overdue -> paid.
// Cualquier estado abierto puede pasar a paid cuando el saldo llega a cero.
func (s BillStatus) CanTransitionTo(next BillStatus) bool {
	switch s {
	case BillStatusGenerated:
		return next == BillStatusSent || next == BillStatusPaid
	case BillStatusSent:
		return next == BillStatusOverdue || next == BillStatusPaid
	case BillStatusOverdue:
		return next == BillStatusPaid
	}
	return false
}

// Bill factura de consumo de agua. Es dueña de su desglose de cargos.
// PaidAmount, BalanceAmount y Status solo los modifica el PaymentLedger.
type Bill struct {
	ID                string
	BillNumber        string
	CustomerID        string
	MeterID           string
	MeterReadingID    string
	BillDate          time.Time
	BillingPeriodFrom time.Time
	BillingPeriodTo   time.Time
	Consumption       decimal.Decimal
	WaterCharges      decimal.Decimal
	FixedCharges      decimal.Decimal
	ServiceCharges    decimal.Decimal
	LateFees          decimal.Decimal
	Taxes             decimal.Decimal
	Adjustments       decimal.Decimal
	TotalAmount       decimal.Decimal
	PaidAmount        decimal.Decimal
	BalanceAmount     decimal.Decimal
	Status            BillStatus
	DueDate           time.Time
	PaidAt            *time.Time
	VoidedAt          *time.Time
	VoidReason        string
	Version           int // bloqueo optimista
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ChargesTotal suma todos los componentes de cargo.
func (b *Bill) ChargesTotal() decimal.Decimal {
	return b.WaterCharges.
		Add(b.FixedCharges).
		Add(b.ServiceCharges).
		Add(b.LateFees).
		Add(b.Taxes).
		Add(b.Adjustments)
}

// IsVoided indica si la factura fue anulada.
func (b *Bill) IsVoided() bool {
	return b.VoidedAt != nil
}

// IsSettled indica si no queda saldo por cobrar.
func (b *Bill) IsSettled() bool {
	return b.Status == BillStatusPaid || !b.BalanceAmount.IsPositive()
}

// IsOverdueAt indica si la factura está vencida en asOf y aún tiene saldo.
func (b *Bill) IsOverdueAt(asOf time.Time) bool {
	return !b.IsSettled() && b.DueDate.Before(asOf)
}

// DaysOverdue días transcurridos desde el vencimiento (0 si no está vencida).
func (b *Bill) DaysOverdue(asOf time.Time) int {
	if !b.IsOverdueAt(asOf) {
		return 0
	}
	return int(asOf.Sub(b.DueDate).Hours() / 24)
}
