package tariff_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/domain/tariff"
)

var effective = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func tier(from string, to *decimal.Decimal, rate, fixed string) *entity.RateTier {
	return &entity.RateTier{
		ID:            "tier-" + from,
		CustomerClass: entity.ClassResidential,
		TierFrom:      d(from),
		TierTo:        to,
		RatePerUnit:   d(rate),
		FixedCharge:   d(fixed),
		EffectiveFrom: effective,
		Active:        true,
	}
}

// sampleSchedule cargo básico fijo, 5 m³ gratuitos y dos bloques progresivos.
func sampleSchedule() []*entity.RateTier {
	return []*entity.RateTier{
		tier("0", dp("0"), "0", "100"),
		tier("0", dp("5"), "0", "0"),
		tier("6", dp("10"), "15", "0"),
		tier("11", nil, "25", "0"),
	}
}

func TestComputeCharge_Escenarios(t *testing.T) {
	cases := []struct {
		name        string
		consumption string
		water       string
		fixed       string
	}{
		{"consumo cero paga cargo básico", "0", "0", "100"},
		{"dentro del bloque gratuito", "5", "0", "100"},
		{"segundo bloque", "8", "30", "100"},
		{"borde superior del segundo bloque", "10", "60", "100"},
		{"bloque abierto", "14", "135", "100"},
		{"consumo fraccionario", "7.5", "22.5", "100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := tariff.ComputeCharge(d(tc.consumption), sampleSchedule())
			require.NoError(t, err)
			assert.True(t, c.WaterCharges.Equal(d(tc.water)), "water: %s", c.WaterCharges)
			assert.True(t, c.FixedCharges.Equal(d(tc.fixed)), "fixed: %s", c.FixedCharges)
			assert.True(t, c.Total().Equal(d(tc.water).Add(d(tc.fixed))))
		})
	}
}

func TestComputeCharge_Desglose(t *testing.T) {
	c, err := tariff.ComputeCharge(d("8"), sampleSchedule())
	require.NoError(t, err)

	require.Len(t, c.Breakdown, 3, "el bloque abierto no se alcanza con 8 m³")
	assert.True(t, c.Breakdown[0].FixedCharge.Equal(d("100")))
	assert.True(t, c.Breakdown[1].Units.Equal(d("5")))
	assert.True(t, c.Breakdown[2].Units.Equal(d("2")))
	assert.True(t, c.Breakdown[2].Amount.Equal(d("30")))
}

func TestComputeCharge_PasoEntreBandas(t *testing.T) {
	// Las bandas son de unidades enteras: lo que cae en el paso entre TierTo y el TierFrom
	// siguiente no se cobra, y el tramo siguiente arranca a cobrar desde su TierFrom.
	cases := []struct {
		consumption string
		water       string
		tiers       int
	}{
		{"5.5", "0", 2},
		{"5.99", "0", 2},
		{"6", "0", 3},
		{"6.5", "7.5", 3},
		{"10.5", "60", 3},
		{"11", "60", 4},
		{"11.5", "72.5", 4},
	}
	for _, tc := range cases {
		t.Run(tc.consumption, func(t *testing.T) {
			c, err := tariff.ComputeCharge(d(tc.consumption), sampleSchedule())
			require.NoError(t, err)
			assert.True(t, c.WaterCharges.Equal(d(tc.water)), "water: %s", c.WaterCharges)
			assert.Len(t, c.Breakdown, tc.tiers)
		})
	}
}

func TestComputeCharge_Monotonia(t *testing.T) {
	prev := decimal.Zero
	for i := 0; i <= 400; i++ {
		consumption := decimal.New(int64(i), -1) // 0.0 .. 40.0
		c, err := tariff.ComputeCharge(consumption, sampleSchedule())
		require.NoError(t, err)
		assert.False(t, c.WaterCharges.LessThan(prev),
			"el cargo no puede bajar al aumentar el consumo: %s -> %s", consumption, c.WaterCharges)
		prev = c.WaterCharges
	}
}

func TestComputeCharge_Errores(t *testing.T) {
	_, err := tariff.ComputeCharge(d("-1"), sampleSchedule())
	assert.ErrorIs(t, err, domain.ErrInvalidConsumption)

	_, err = tariff.ComputeCharge(d("3"), nil)
	assert.ErrorIs(t, err, domain.ErrNoRateScheduleFound)

	// Sin tramo abierto el consumo por encima del último tramo no tiene tarifa.
	closed := []*entity.RateTier{tier("0", dp("10"), "10", "0")}
	_, err = tariff.ComputeCharge(d("12"), closed)
	assert.ErrorIs(t, err, domain.ErrNoRateScheduleFound)
}

func TestComputeCharge_OrdenDeEntradaIrrelevante(t *testing.T) {
	tiers := sampleSchedule()
	reversed := []*entity.RateTier{tiers[3], tiers[2], tiers[1], tiers[0]}

	a, err := tariff.ComputeCharge(d("13"), tiers)
	require.NoError(t, err)
	b, err := tariff.ComputeCharge(d("13"), reversed)
	require.NoError(t, err)
	assert.True(t, a.Total().Equal(b.Total()))
}
