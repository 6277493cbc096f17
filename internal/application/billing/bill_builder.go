package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/domain/tariff"
	"github.com/shopspring/decimal"
)

// DefaultGraceDays plazo de pago por defecto después del cierre del periodo.
const DefaultGraceDays = 30

// Period periodo de facturación [From, To], ambos inclusive a nivel de día.
type Period struct {
	From time.Time
	To   time.Time
}

// Validate exige fechas presentes y To >= From.
func (p Period) Validate() error {
	if p.From.IsZero() || p.To.IsZero() || p.To.Before(p.From) {
		return fmt.Errorf("%w: periodo de facturación inválido", domain.ErrInvalidInput)
	}
	return nil
}

// MonthOf devuelve el mes calendario que contiene t (del día 1 al último día).
func MonthOf(t time.Time) Period {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Period{From: from, To: from.AddDate(0, 1, -1)}
}

// GenerateBillInput datos para construir una factura. Los cargos externos (servicio,
// mora, impuestos y ajustes) llegan calculados; aquí solo se suman.
type GenerateBillInput struct {
	Customer       *entity.Customer
	Reading        *entity.MeterReading
	Period         Period
	ServiceCharges decimal.Decimal
	LateFees       decimal.Decimal
	Taxes          decimal.Decimal
	Adjustments    decimal.Decimal // puede ser negativo (notas crédito)
}

// BillBuilder construye y persiste facturas a partir de lecturas.
type BillBuilder struct {
	graceDays int
	now       Clock
}

// NewBillBuilder construye el builder. graceDays <= 0 usa DefaultGraceDays.
func NewBillBuilder(graceDays int) *BillBuilder {
	if graceDays <= 0 {
		graceDays = DefaultGraceDays
	}
	return &BillBuilder{graceDays: graceDays, now: time.Now}
}

// GenerateBill calcula y persiste la factura usando los repositorios de la transacción del
// caller. El esquema tarifario es el vigente al cierre del periodo. Si ya existe una
// factura vigente para el medidor y periodo devuelve ErrDuplicateBillingPeriod.
func (b *BillBuilder) GenerateBill(ctx context.Context, repos TxRepos, in GenerateBillInput) (*entity.Bill, *tariff.Charge, error) {
	if in.Customer == nil || in.Reading == nil {
		return nil, nil, domain.ErrInvalidInput
	}
	if err := in.Period.Validate(); err != nil {
		return nil, nil, err
	}
	for _, c := range []decimal.Decimal{in.ServiceCharges, in.LateFees, in.Taxes} {
		if c.IsNegative() {
			return nil, nil, fmt.Errorf("%w: cargo externo negativo", domain.ErrInvalidInput)
		}
	}
	consumption, err := in.Reading.BillableConsumption()
	if err != nil {
		return nil, nil, err
	}

	existing, err := repos.Bills.FindActiveByPeriod(ctx, in.Reading.MeterID, in.Period.From, in.Period.To)
	if err != nil {
		return nil, nil, fmt.Errorf("find bill by period: %w", err)
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrDuplicateBillingPeriod, existing.BillNumber)
	}

	tiers, err := lookupTiersInTx(ctx, repos.Rates, in.Customer.CustomerClass, in.Period.To)
	if err != nil {
		return nil, nil, err
	}
	charge, err := tariff.ComputeCharge(consumption, tiers)
	if err != nil {
		return nil, nil, err
	}

	now := b.now()
	bill := &entity.Bill{
		ID:                uuid.New().String(),
		BillNumber:        newBillNumber(now),
		CustomerID:        in.Customer.ID,
		MeterID:           in.Reading.MeterID,
		MeterReadingID:    in.Reading.ID,
		BillDate:          now,
		BillingPeriodFrom: in.Period.From,
		BillingPeriodTo:   in.Period.To,
		Consumption:       consumption,
		WaterCharges:      charge.WaterCharges,
		FixedCharges:      charge.FixedCharges,
		ServiceCharges:    tariff.RoundMoney(in.ServiceCharges),
		LateFees:          tariff.RoundMoney(in.LateFees),
		Taxes:             tariff.RoundMoney(in.Taxes),
		Adjustments:       tariff.RoundMoney(in.Adjustments),
		PaidAmount:        decimal.Zero,
		Status:            entity.BillStatusGenerated,
		DueDate:           in.Period.To.AddDate(0, 0, b.graceDays),
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	bill.TotalAmount = bill.ChargesTotal()
	if bill.TotalAmount.IsNegative() {
		return nil, nil, fmt.Errorf("%w: los ajustes dejan el total en negativo", domain.ErrInvalidInput)
	}
	bill.BalanceAmount = bill.TotalAmount

	if err := repos.Bills.Create(ctx, bill); err != nil {
		return nil, nil, err
	}
	return bill, &charge, nil
}

// newBillNumber formato BILL<yyyymm><6 hex>.
func newBillNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return "BILL" + at.Format("200601") + suffix
}
