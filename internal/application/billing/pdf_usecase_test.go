package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

type fakePDF struct {
	bill     *entity.Bill
	customer *entity.Customer
	meter    *entity.WaterMeter
	payments []*entity.Payment
}

func (f *fakePDF) GenerateBillPDF(_ context.Context, bill *entity.Bill, customer *entity.Customer, meter *entity.WaterMeter, payments []*entity.Payment) ([]byte, error) {
	f.bill, f.customer, f.meter, f.payments = bill, customer, meter, payments
	return []byte("%PDF-1.4"), nil
}

func TestBillPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gen := &fakePDF{}
	uc := billing.NewPDFUseCase(f.store, gen)

	bill := billWithTotal(t, f, "500.00")
	_, _, err := pay(f, bill.ID, "100")
	require.NoError(t, err)

	pdf, filename, err := uc.BillPDF(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Equal(t, "factura_"+bill.BillNumber+".pdf", filename)
	assert.Equal(t, customerID, gen.customer.ID)
	assert.Equal(t, meterID, gen.meter.ID)
	assert.Len(t, gen.payments, 1)

	_, _, err = uc.BillPDF(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBillPDF_Anulada(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewPDFUseCase(f.store, &fakePDF{})
	bill := billWithTotal(t, f, "500.00")
	_, err := f.ledger.VoidBill(context.Background(), bill.ID, "error de lectura")
	require.NoError(t, err)

	_, _, err = uc.BillPDF(context.Background(), bill.ID)
	assert.ErrorIs(t, err, domain.ErrBillVoided)
}
