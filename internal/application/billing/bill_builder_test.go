package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/domain/tariff"
)

func residentialCustomer() *entity.Customer {
	return &entity.Customer{ID: customerID, CustomerClass: entity.ClassResidential, Status: entity.CustomerStatusActive}
}

func generate(t *testing.T, f *fixture, in billing.GenerateBillInput) (*entity.Bill, *tariff.Charge, error) {
	t.Helper()
	var (
		bill   *entity.Bill
		charge *tariff.Charge
	)
	err := f.store.RunInTx(context.Background(), func(r billing.TxRepos) error {
		var err error
		bill, charge, err = billing.NewBillBuilder(billing.DefaultGraceDays).GenerateBill(context.Background(), r, in)
		return err
	})
	return bill, charge, err
}

func TestMonthOf(t *testing.T) {
	p := billing.MonthOf(time.Date(2024, 2, 17, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), p.From)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), p.To, "año bisiesto")
	assert.NoError(t, p.Validate())

	assert.ErrorIs(t, billing.Period{From: p.To, To: p.From}.Validate(), domain.ErrInvalidInput)
}

func TestGenerateBill_IdentidadDelTotal(t *testing.T) {
	f := newFixture(t)
	reading := putReading(t, f.store, "r-total", "0", "14", time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC))

	bill, charge, err := generate(t, f, billing.GenerateBillInput{
		Customer:       residentialCustomer(),
		Reading:        reading,
		Period:         billing.MonthOf(reading.ReadingDate),
		ServiceCharges: dec("12.50"),
		LateFees:       dec("3.10"),
		Taxes:          dec("19.99"),
		Adjustments:    dec("-5.01"),
	})
	require.NoError(t, err)
	require.NotNil(t, charge)

	assert.True(t, bill.WaterCharges.Equal(dec("135")))
	assert.True(t, bill.FixedCharges.Equal(dec("100")))
	want := bill.WaterCharges.Add(bill.FixedCharges).Add(bill.ServiceCharges).
		Add(bill.LateFees).Add(bill.Taxes).Add(bill.Adjustments)
	assert.True(t, bill.TotalAmount.Equal(want))
	assert.True(t, bill.TotalAmount.Equal(dec("265.58")), "total: %s", bill.TotalAmount)
	assert.True(t, bill.BalanceAmount.Equal(bill.TotalAmount))
	assert.True(t, bill.PaidAmount.IsZero())
	assert.Equal(t, entity.BillStatusGenerated, bill.Status)
	assert.Equal(t, 1, bill.Version)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), bill.DueDate)
	assert.Regexp(t, `^BILL\d{6}[0-9A-F]{6}$`, bill.BillNumber)
}

func TestGenerateBill_Errores(t *testing.T) {
	f := newFixture(t)
	jan := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	ok := putReading(t, f.store, "r-ok", "0", "3", jan)

	cases := []struct {
		name string
		in   billing.GenerateBillInput
		want error
	}{
		{
			name: "lectura sin consumo",
			in: billing.GenerateBillInput{
				Customer: residentialCustomer(),
				Reading:  &entity.MeterReading{ID: "stale", MeterID: meterID, ReadingDate: jan},
				Period:   billing.MonthOf(jan),
			},
			want: domain.ErrStaleReading,
		},
		{
			name: "periodo invertido",
			in: billing.GenerateBillInput{
				Customer: residentialCustomer(),
				Reading:  ok,
				Period:   billing.Period{From: jan, To: jan.AddDate(0, 0, -1)},
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "impuesto negativo",
			in: billing.GenerateBillInput{
				Customer: residentialCustomer(),
				Reading:  ok,
				Period:   billing.MonthOf(jan),
				Taxes:    dec("-1"),
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "ajuste deja total negativo",
			in: billing.GenerateBillInput{
				Customer:    residentialCustomer(),
				Reading:     ok,
				Period:      billing.MonthOf(jan),
				Adjustments: dec("-500"),
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "clase sin esquema",
			in: billing.GenerateBillInput{
				Customer: &entity.Customer{ID: customerID, CustomerClass: entity.ClassIndustrial},
				Reading:  ok,
				Period:   billing.MonthOf(jan),
			},
			want: domain.ErrNoRateScheduleFound,
		},
		{
			name: "periodo anterior al esquema",
			in: billing.GenerateBillInput{
				Customer: residentialCustomer(),
				Reading:  ok,
				Period:   billing.MonthOf(jan.AddDate(0, -1, 0)),
			},
			want: domain.ErrNoRateScheduleFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := generate(t, f, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// Ningún intento fallido dejó factura: el periodo sigue libre.
	_, _, err := generate(t, f, billing.GenerateBillInput{Customer: residentialCustomer(), Reading: ok, Period: billing.MonthOf(jan)})
	assert.NoError(t, err)
}

func TestGenerateBill_PeriodoDuplicado(t *testing.T) {
	f := newFixture(t)
	reading := putReading(t, f.store, "r-dup", "0", "8", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	in := billing.GenerateBillInput{Customer: residentialCustomer(), Reading: reading, Period: billing.MonthOf(reading.ReadingDate)}

	_, _, err := generate(t, f, in)
	require.NoError(t, err)
	_, _, err = generate(t, f, in)
	assert.ErrorIs(t, err, domain.ErrDuplicateBillingPeriod)

	// Otro periodo del mismo medidor sí se factura.
	in.Period = billing.Period{From: in.Period.From, To: in.Period.To.AddDate(0, 0, -15)}
	_, _, err = generate(t, f, in)
	assert.NoError(t, err)
}
