package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/application/dto"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

// billWithTotal factura la lectura base y ajusta los cargos externos para llegar al total pedido.
func billWithTotal(t *testing.T, f *fixture, total string) *dto.BillResponse {
	t.Helper()
	// 8 m³ = 130 de agua y cargo fijo.
	bill, err := f.orch.BillReading(context.Background(), dto.BillReadingRequest{
		ReadingID:      readingID,
		ServiceCharges: dec(total).Sub(dec("130")),
	})
	require.NoError(t, err)
	require.True(t, bill.TotalAmount.Equal(dec(total)), "total: %s", bill.TotalAmount)
	return bill
}

func pay(f *fixture, billID, amount string) (*entity.Bill, *entity.Payment, error) {
	return f.ledger.ApplyPayment(context.Background(), billing.ApplyPaymentInput{
		BillID: billID, Amount: dec(amount), Method: entity.PaymentMethodCash,
	})
}

func TestApplyPayment_PagoTotal(t *testing.T) {
	f := newFixture(t)
	bill := billWithTotal(t, f, "500.00")

	updated, payment, err := pay(f, bill.ID, "500.00")
	require.NoError(t, err)
	assert.True(t, updated.BalanceAmount.IsZero())
	assert.Equal(t, entity.BillStatusPaid, updated.Status)
	require.NotNil(t, updated.PaidAt)
	assert.Equal(t, 1, payment.Sequence)
	assert.Contains(t, payment.ReceiptNumber, updated.BillNumber)

	_, _, err = pay(f, bill.ID, "1")
	assert.ErrorIs(t, err, domain.ErrBillAlreadySettled)
}

func TestApplyPayment_PagoParcialConservaEstado(t *testing.T) {
	f := newFixture(t)
	bill := billWithTotal(t, f, "500.00")
	_, err := f.ledger.MarkSent(context.Background(), bill.ID)
	require.NoError(t, err)

	updated, _, err := pay(f, bill.ID, "300.00")
	require.NoError(t, err)
	assert.True(t, updated.BalanceAmount.Equal(dec("200")))
	assert.Equal(t, entity.BillStatusSent, updated.Status)
	assert.Nil(t, updated.PaidAt)
}

func TestApplyPayment_SobrepagoRechazado(t *testing.T) {
	f := newFixture(t)
	bill := billWithTotal(t, f, "500.00")

	_, _, err := pay(f, bill.ID, "600.00")
	assert.ErrorIs(t, err, domain.ErrOverpaymentRejected)

	got, err := f.ledger.GetBill(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.IsZero(), "el rechazo no deja escrituras")
	payments, err := f.ledger.ListPayments(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestApplyPayment_Conservacion(t *testing.T) {
	f := newFixture(t)
	bill := billWithTotal(t, f, "500.00")

	amounts := []string{"0.01", "99.99", "150", "49.50", "200.49"}
	sum := decimal.Zero
	for _, a := range amounts {
		updated, _, err := pay(f, bill.ID, a)
		require.NoError(t, err)
		sum = sum.Add(dec(a))
		assert.True(t, updated.PaidAmount.Equal(sum))
		assert.True(t, updated.BalanceAmount.Equal(updated.TotalAmount.Sub(updated.PaidAmount)))
		assert.False(t, updated.BalanceAmount.IsNegative())
	}

	payments, err := f.ledger.ListPayments(context.Background(), bill.ID)
	require.NoError(t, err)
	require.Len(t, payments, len(amounts))
	logged := decimal.Zero
	for i, p := range payments {
		assert.Equal(t, i+1, p.Sequence)
		logged = logged.Add(p.Amount)
	}
	got, err := f.ledger.GetBill(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(logged))
	assert.True(t, got.BalanceAmount.Equal(dec("0.01")))
}

func TestApplyPayment_Validaciones(t *testing.T) {
	f := newFixture(t)
	bill := billWithTotal(t, f, "500.00")
	ctx := context.Background()

	_, _, err := pay(f, bill.ID, "0")
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentAmount)
	_, _, err = pay(f, bill.ID, "-10")
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentAmount)
	_, _, err = pay(f, "no-existe", "10")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = f.ledger.ApplyPayment(ctx, billing.ApplyPaymentInput{BillID: bill.ID, Amount: dec("10"), Method: "bitcoin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = f.ledger.ApplyPayment(ctx, billing.ApplyPaymentInput{BillID: bill.ID, CustomerID: "otro", Amount: dec("10")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Medio vacío se registra como efectivo.
	_, p, err := f.ledger.ApplyPayment(ctx, billing.ApplyPaymentInput{BillID: bill.ID, Amount: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodCash, p.Method)
}

func TestApplyPayment_MontoConFraccionDeCentavo(t *testing.T) {
	f := newFixture(t)
	bill := billWithTotal(t, f, "500.00")
	before, err := f.ledger.GetBill(context.Background(), bill.ID)
	require.NoError(t, err)

	for _, amount := range []string{"0.001", "0.004", "10.125"} {
		_, _, err := pay(f, bill.ID, amount)
		assert.ErrorIs(t, err, domain.ErrInvalidPaymentAmount, amount)
	}

	got, err := f.ledger.GetBill(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.IsZero())
	assert.Equal(t, before.Version, got.Version, "un pago rechazado no toca la factura")
	payments, err := f.ledger.ListPayments(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	// Ceros a la derecha no cambian el monto.
	_, p, err := pay(f, bill.ID, "10.500")
	require.NoError(t, err)
	assert.True(t, p.Amount.Equal(dec("10.5")))
}

func TestApplyPayment_ReferenciaDuplicada(t *testing.T) {
	f := newFixture(t)
	bill := billWithTotal(t, f, "500.00")
	in := billing.ApplyPaymentInput{BillID: bill.ID, Amount: dec("50"), Reference: "MOV-778"}

	_, _, err := f.ledger.ApplyPayment(context.Background(), in)
	require.NoError(t, err)
	_, _, err = f.ledger.ApplyPayment(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := f.ledger.GetBill(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(dec("50")), "el reenvío no se cobra dos veces")
}

func TestStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bill := billWithTotal(t, f, "500.00")

	_, err := f.ledger.MarkOverdue(ctx, bill.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "generated -> overdue")

	sent, err := f.ledger.MarkSent(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusSent, sent.Status)

	_, err = f.ledger.MarkSent(ctx, bill.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "sent -> sent")

	due, err := f.ledger.ListBillsDueForStatusTransition(ctx, sent.DueDate)
	require.NoError(t, err)
	assert.Empty(t, due, "el vencimiento es estricto")
	due, err = f.ledger.ListBillsDueForStatusTransition(ctx, sent.DueDate.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 1)

	overdue, err := f.ledger.MarkOverdue(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusOverdue, overdue.Status)

	paid, _, err := pay(f, bill.ID, "500")
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusPaid, paid.Status)

	_, err = f.ledger.MarkOverdue(ctx, bill.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "nada sale de paid")
}

func TestVoidBill(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bill := billWithTotal(t, f, "500.00")

	_, err := f.ledger.VoidBill(ctx, bill.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	voided, err := f.ledger.VoidBill(ctx, bill.ID, "lectura digitada mal")
	require.NoError(t, err)
	assert.True(t, voided.IsVoided())

	_, _, err = pay(f, bill.ID, "10")
	assert.ErrorIs(t, err, domain.ErrBillVoided)
	_, err = f.ledger.VoidBill(ctx, bill.ID, "otra vez")
	assert.ErrorIs(t, err, domain.ErrBillVoided)

	// Con el periodo libre se vuelve a facturar y esa factura ya no se puede anular con pagos.
	rebilled := billWithTotal(t, f, "500.00")
	_, _, err = pay(f, rebilled.ID, "1")
	require.NoError(t, err)
	_, err = f.ledger.VoidBill(ctx, rebilled.ID, "error")
	assert.ErrorIs(t, err, domain.ErrBillHasPayments)
}

func TestPaymentHistory_Limites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bill := billWithTotal(t, f, "500.00")

	base := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, _, err := f.ledger.ApplyPayment(ctx, billing.ApplyPaymentInput{
			BillID: bill.ID, Amount: dec("10"), PaidAt: base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	all, err := f.ledger.PaymentHistory(ctx, customerID, nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.True(t, all[0].PaidAt.After(all[4].PaidAt), "más recientes primero")

	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 3)
	window, err := f.ledger.PaymentHistory(ctx, customerID, &from, &to, 0)
	require.NoError(t, err)
	assert.Len(t, window, 2, "to es exclusivo")

	limited, err := f.ledger.PaymentHistory(ctx, customerID, nil, nil, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
