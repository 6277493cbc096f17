package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod medio de pago aceptado en recaudo.
type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "cash"
	PaymentMethodCard          PaymentMethod = "card"
	PaymentMethodBankTransfer  PaymentMethod = "bank_transfer"
	PaymentMethodMobilePayment PaymentMethod = "mobile_payment"
	PaymentMethodCheque        PaymentMethod = "cheque"
)

// IsValid verifica el medio de pago.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer,
		PaymentMethodMobilePayment, PaymentMethodCheque:
		return true
	}
	return false
}

// Payment registro append-only de un abono a una factura. Referencia la factura por ID.
type Payment struct {
	ID            string
	BillID        string
	CustomerID    string
	Sequence      int // consecutivo por factura
	Amount        decimal.Decimal
	Method        PaymentMethod
	PaidAt        time.Time
	CollectorID   string
	CollectorName string
	Reference     string
	Notes         string
	ReceiptNumber string
	CreatedAt     time.Time
}
