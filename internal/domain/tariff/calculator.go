package tariff

import (
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MoneyPlaces decimales de los montos monetarios.
const MoneyPlaces = 2

// RoundMoney redondea un monto a MoneyPlaces decimales.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// TierCharge desglose del cargo de un tramo.
type TierCharge struct {
	TierID      string
	Name        string
	TierFrom    decimal.Decimal
	TierTo      *decimal.Decimal
	Units       decimal.Decimal
	RatePerUnit decimal.Decimal
	Amount      decimal.Decimal
	FixedCharge decimal.Decimal
}

// Charge resultado del cálculo por consumo.
type Charge struct {
	Consumption  decimal.Decimal
	WaterCharges decimal.Decimal
	FixedCharges decimal.Decimal
	Breakdown    []TierCharge
}

// Total cargo por agua más cargos fijos.
func (c Charge) Total() decimal.Decimal {
	return c.WaterCharges.Add(c.FixedCharges)
}

// ComputeCharge calcula el cargo por bloques progresivos.
//
// Por cada tramo (en orden de TierFrom) se cobran max(0, min(TierTo, consumo) - TierFrom)
// unidades a RatePerUnit. El cargo fijo se suma en cada tramo alcanzado (consumo >= TierFrom),
// así un consumo 0 sigue pagando el cargo básico del tramo 0. El recorrido termina en el
// tramo abierto o en el primero cuyo TierTo cubre el consumo.
func ComputeCharge(consumption decimal.Decimal, tiers []*entity.RateTier) (Charge, error) {
	if consumption.IsNegative() {
		return Charge{}, domain.ErrInvalidConsumption
	}
	if len(tiers) == 0 {
		return Charge{}, domain.ErrNoRateScheduleFound
	}

	out := Charge{
		Consumption:  consumption,
		WaterCharges: decimal.Zero,
		FixedCharges: decimal.Zero,
		Breakdown:    make([]TierCharge, 0, len(tiers)),
	}
	allocated := false
	for _, t := range SortTiers(tiers) {
		if consumption.LessThan(t.TierFrom) {
			// Cae en el paso de unidad entre dos bandas: ya quedó cubierto.
			allocated = true
			break
		}
		upper := consumption
		if t.TierTo != nil && t.TierTo.LessThan(consumption) {
			upper = *t.TierTo
		}
		units := upper.Sub(t.TierFrom)
		if units.IsNegative() {
			units = decimal.Zero
		}
		amount := RoundMoney(units.Mul(t.RatePerUnit))
		fixed := RoundMoney(t.FixedCharge)

		out.WaterCharges = out.WaterCharges.Add(amount)
		out.FixedCharges = out.FixedCharges.Add(fixed)
		out.Breakdown = append(out.Breakdown, TierCharge{
			TierID:      t.ID,
			Name:        t.Name,
			TierFrom:    t.TierFrom,
			TierTo:      t.TierTo,
			Units:       units,
			RatePerUnit: t.RatePerUnit,
			Amount:      amount,
			FixedCharge: fixed,
		})

		if t.TierTo == nil || consumption.LessThanOrEqual(*t.TierTo) {
			allocated = true
			break
		}
	}
	if !allocated {
		// Consumo por encima del último tramo finito sin tramo abierto que lo absorba.
		return Charge{}, domain.ErrNoRateScheduleFound
	}
	return out, nil
}
