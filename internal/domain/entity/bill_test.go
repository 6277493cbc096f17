package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

func TestBillStatus_CanTransitionTo(t *testing.T) {
	allowed := map[entity.BillStatus][]entity.BillStatus{
		entity.BillStatusGenerated: {entity.BillStatusSent, entity.BillStatusPaid},
		entity.BillStatusSent:      {entity.BillStatusOverdue, entity.BillStatusPaid},
		entity.BillStatusOverdue:   {entity.BillStatusPaid},
		entity.BillStatusPaid:      {},
	}
	all := []entity.BillStatus{entity.BillStatusGenerated, entity.BillStatusSent, entity.BillStatusOverdue, entity.BillStatusPaid}

	for from, targets := range allowed {
		for _, to := range all {
			want := false
			for _, ok := range targets {
				if ok == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.True(t, entity.BillStatusPaid.IsTerminal())
	assert.False(t, entity.BillStatus("cancelled").IsValid())
}

func TestBill_TotalesYVencimiento(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	b := &entity.Bill{
		WaterCharges:   decimal.RequireFromString("30"),
		FixedCharges:   decimal.RequireFromString("100"),
		ServiceCharges: decimal.RequireFromString("5.50"),
		Taxes:          decimal.RequireFromString("12.25"),
		Adjustments:    decimal.RequireFromString("-2.75"),
		BalanceAmount:  decimal.RequireFromString("145"),
		Status:         entity.BillStatusSent,
		DueDate:        due,
	}
	assert.True(t, b.ChargesTotal().Equal(decimal.RequireFromString("145")))

	assert.False(t, b.IsOverdueAt(due))
	assert.True(t, b.IsOverdueAt(due.AddDate(0, 0, 10)))
	assert.Equal(t, 10, b.DaysOverdue(due.AddDate(0, 0, 10)))

	b.BalanceAmount = decimal.Zero
	assert.True(t, b.IsSettled())
	assert.Equal(t, 0, b.DaysOverdue(due.AddDate(0, 0, 10)))
}

func TestNewMeterReading(t *testing.T) {
	at := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	r, err := entity.NewMeterReading("r1", "m1", decimal.NewFromInt(120), decimal.NewFromInt(128), at, "", "", "")
	require.NoError(t, err)
	c, err := r.BillableConsumption()
	require.NoError(t, err)
	assert.True(t, c.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, entity.ReadingTypeActual, r.ReadingType)

	// Medidor reiniciado: el consumo se recorta a cero.
	r, err = entity.NewMeterReading("r2", "m1", decimal.NewFromInt(9990), decimal.NewFromInt(5), at, "", "", entity.ReadingTypeEstimated)
	require.NoError(t, err)
	c, err = r.BillableConsumption()
	require.NoError(t, err)
	assert.True(t, c.IsZero())

	_, err = entity.NewMeterReading("r3", "", decimal.Zero, decimal.Zero, at, "", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = entity.NewMeterReading("r4", "m1", decimal.Zero, decimal.Zero, at, "", "", "photo")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stale := &entity.MeterReading{ID: "r5", MeterID: "m1"}
	_, err = stale.BillableConsumption()
	assert.ErrorIs(t, err, domain.ErrStaleReading)
}
