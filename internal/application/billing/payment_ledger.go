package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/domain/tariff"
	"github.com/jhoicas/Acueducto-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Límites del historial de pagos.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100
)

// ApplyPaymentInput datos de un abono.
type ApplyPaymentInput struct {
	BillID        string
	CustomerID    string // opcional: si viene debe coincidir con la factura
	Amount        decimal.Decimal
	Method        entity.PaymentMethod
	PaidAt        time.Time // cero = ahora
	CollectorID   string
	CollectorName string
	Reference     string
	Notes         string
}

// PaymentLedger es el único que modifica PaidAmount, BalanceAmount y Status de una factura.
// Cada escritura compara la versión leída; si otra transacción la cambió devuelve
// ErrConcurrentModification y el caller decide si reintenta.
type PaymentLedger struct {
	tx  TxRunner
	log *logger.Logger
	now Clock
}

// NewPaymentLedger construye el ledger.
func NewPaymentLedger(tx TxRunner, log *logger.Logger) *PaymentLedger {
	return &PaymentLedger{tx: tx, log: log.Component("ledger"), now: time.Now}
}

// ApplyPayment registra el pago y actualiza la factura en una sola transacción.
// El sobrepago se rechaza: el monto no puede superar el saldo.
func (l *PaymentLedger) ApplyPayment(ctx context.Context, in ApplyPaymentInput) (*entity.Bill, *entity.Payment, error) {
	if in.BillID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	amount := in.Amount
	if !amount.IsPositive() {
		return nil, nil, domain.ErrInvalidPaymentAmount
	}
	// Solo montos en centavos: 0.001 no puede convertirse en un pago de 0.00.
	if !amount.Equal(tariff.RoundMoney(amount)) {
		return nil, nil, fmt.Errorf("%w: %s tiene más de dos decimales", domain.ErrInvalidPaymentAmount, amount)
	}
	if in.Method == "" {
		in.Method = entity.PaymentMethodCash
	}
	if !in.Method.IsValid() {
		return nil, nil, fmt.Errorf("%w: medio de pago %q", domain.ErrInvalidInput, in.Method)
	}
	now := l.now()
	if in.PaidAt.IsZero() {
		in.PaidAt = now
	}

	var bill *entity.Bill
	var payment *entity.Payment
	err := l.tx.RunInTx(ctx, func(r TxRepos) error {
		b, err := r.Bills.GetByID(ctx, in.BillID)
		if err != nil {
			return fmt.Errorf("get bill: %w", err)
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if in.CustomerID != "" && in.CustomerID != b.CustomerID {
			return domain.ErrForbidden
		}
		if b.IsVoided() {
			return domain.ErrBillVoided
		}
		if b.IsSettled() {
			return domain.ErrBillAlreadySettled
		}
		if amount.GreaterThan(b.BalanceAmount) {
			return fmt.Errorf("%w: saldo %s, pago %s", domain.ErrOverpaymentRejected, b.BalanceAmount, amount)
		}
		count, err := r.Payments.CountByBill(ctx, b.ID)
		if err != nil {
			return fmt.Errorf("count payments: %w", err)
		}

		expected := b.Version
		b.PaidAmount = b.PaidAmount.Add(amount)
		b.BalanceAmount = b.TotalAmount.Sub(b.PaidAmount)
		if !b.BalanceAmount.IsPositive() {
			b.Status = entity.BillStatusPaid
			paidAt := in.PaidAt
			b.PaidAt = &paidAt
		}
		b.Version = expected + 1
		b.UpdatedAt = now
		// La factura se guarda antes del pago: si otra transacción ganó, el CAS falla aquí.
		if err := r.Bills.SavePayment(ctx, b, expected); err != nil {
			return err
		}

		seq := count + 1
		p := &entity.Payment{
			ID:            uuid.New().String(),
			BillID:        b.ID,
			CustomerID:    b.CustomerID,
			Sequence:      seq,
			Amount:        amount,
			Method:        in.Method,
			PaidAt:        in.PaidAt,
			CollectorID:   in.CollectorID,
			CollectorName: in.CollectorName,
			Reference:     in.Reference,
			Notes:         in.Notes,
			ReceiptNumber: receiptNumber(in.PaidAt, b.BillNumber, seq),
			CreatedAt:     now,
		}
		if err := r.Payments.Append(ctx, p); err != nil {
			return err
		}
		bill, payment = b, p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	l.log.Info().
		Str("bill_id", bill.ID).
		Str("payment_id", payment.ID).
		Str("amount", payment.Amount.String()).
		Str("balance", bill.BalanceAmount.String()).
		Str("status", string(bill.Status)).
		Msg("pago aplicado")
	return bill, payment, nil
}

// MarkSent pasa una factura generated a sent (la notificación al cliente salió).
func (l *PaymentLedger) MarkSent(ctx context.Context, billID string) (*entity.Bill, error) {
	return l.transition(ctx, billID, entity.BillStatusSent)
}

// MarkOverdue pasa una factura sent a overdue. Cualquier otro estado es una transición inválida.
func (l *PaymentLedger) MarkOverdue(ctx context.Context, billID string) (*entity.Bill, error) {
	return l.transition(ctx, billID, entity.BillStatusOverdue)
}

func (l *PaymentLedger) transition(ctx context.Context, billID string, next entity.BillStatus) (*entity.Bill, error) {
	var bill *entity.Bill
	err := l.tx.RunInTx(ctx, func(r TxRepos) error {
		b, err := r.Bills.GetByID(ctx, billID)
		if err != nil {
			return fmt.Errorf("get bill: %w", err)
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.IsVoided() {
			return domain.ErrBillVoided
		}
		if !b.Status.CanTransitionTo(next) || next == entity.BillStatusPaid {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, b.Status, next)
		}
		expected := b.Version
		b.Status = next
		b.Version = expected + 1
		b.UpdatedAt = l.now()
		if err := r.Bills.SaveStatus(ctx, b, expected); err != nil {
			return err
		}
		bill = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.log.Info().Str("bill_id", bill.ID).Str("status", string(next)).Msg("estado de factura actualizado")
	return bill, nil
}

// VoidBill anula una factura sin pagos. El periodo queda libre para volver a facturar.
func (l *PaymentLedger) VoidBill(ctx context.Context, billID, reason string) (*entity.Bill, error) {
	if billID == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var bill *entity.Bill
	err := l.tx.RunInTx(ctx, func(r TxRepos) error {
		b, err := r.Bills.GetByID(ctx, billID)
		if err != nil {
			return fmt.Errorf("get bill: %w", err)
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.IsVoided() {
			return domain.ErrBillVoided
		}
		count, err := r.Payments.CountByBill(ctx, b.ID)
		if err != nil {
			return fmt.Errorf("count payments: %w", err)
		}
		if count > 0 || b.PaidAmount.IsPositive() {
			return domain.ErrBillHasPayments
		}
		now := l.now()
		expected := b.Version
		b.VoidedAt = &now
		b.VoidReason = reason
		b.Version = expected + 1
		b.UpdatedAt = now
		if err := r.Bills.SaveStatus(ctx, b, expected); err != nil {
			return err
		}
		bill = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.log.Warn().Str("bill_id", bill.ID).Str("reason", reason).Msg("factura anulada")
	return bill, nil
}

// ListBillsDueForStatusTransition facturas enviadas cuyo vencimiento es anterior a asOf.
func (l *PaymentLedger) ListBillsDueForStatusTransition(ctx context.Context, asOf time.Time) ([]*entity.Bill, error) {
	if asOf.IsZero() {
		asOf = l.now()
	}
	var bills []*entity.Bill
	err := l.tx.RunInTx(ctx, func(r TxRepos) error {
		var err error
		bills, err = r.Bills.ListDueForStatusTransition(ctx, asOf)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list due bills: %w", err)
	}
	return bills, nil
}

// GetBill devuelve la factura o ErrNotFound.
func (l *PaymentLedger) GetBill(ctx context.Context, billID string) (*entity.Bill, error) {
	var bill *entity.Bill
	err := l.tx.RunInTx(ctx, func(r TxRepos) error {
		b, err := r.Bills.GetByID(ctx, billID)
		if err != nil {
			return fmt.Errorf("get bill: %w", err)
		}
		if b == nil {
			return domain.ErrNotFound
		}
		bill = b
		return nil
	})
	return bill, err
}

// ListPayments pagos de una factura en orden de consecutivo.
func (l *PaymentLedger) ListPayments(ctx context.Context, billID string) ([]*entity.Payment, error) {
	var payments []*entity.Payment
	err := l.tx.RunInTx(ctx, func(r TxRepos) error {
		b, err := r.Bills.GetByID(ctx, billID)
		if err != nil {
			return fmt.Errorf("get bill: %w", err)
		}
		if b == nil {
			return domain.ErrNotFound
		}
		payments, err = r.Payments.ListByBill(ctx, billID)
		if err != nil {
			return fmt.Errorf("list bill payments: %w", err)
		}
		return nil
	})
	return payments, err
}

// PaymentHistory historial de pagos del cliente en [from, to), más recientes primero.
func (l *PaymentLedger) PaymentHistory(ctx context.Context, customerID string, from, to *time.Time, limit int) ([]*entity.Payment, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	var payments []*entity.Payment
	err := l.tx.RunInTx(ctx, func(r TxRepos) error {
		var err error
		payments, err = r.Payments.ListByCustomer(ctx, customerID, from, to, limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list customer payments: %w", err)
	}
	return payments, nil
}

// receiptNumber formato RCP<yyyymmdd><número de factura>-<consecutivo>.
func receiptNumber(paidAt time.Time, billNumber string, seq int) string {
	return fmt.Sprintf("RCP%s%s-%02d", paidAt.Format("20060102"), billNumber, seq)
}
