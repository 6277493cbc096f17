package billing

import (
	"fmt"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/application/dto"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/domain/tariff"
)

// ToBillResponse convierte la factura a DTO; asOf define IsOverdue y DaysOverdue.
func ToBillResponse(b *entity.Bill, asOf time.Time) dto.BillResponse {
	out := dto.BillResponse{
		ID:             b.ID,
		BillNumber:     b.BillNumber,
		CustomerID:     b.CustomerID,
		MeterID:        b.MeterID,
		MeterReadingID: b.MeterReadingID,
		BillDate:       b.BillDate.Format(dto.DateLayout),
		DueDate:        b.DueDate.Format(dto.DateLayout),
		BillingPeriod: dto.BillingPeriod{
			From: b.BillingPeriodFrom.Format(dto.DateLayout),
			To:   b.BillingPeriodTo.Format(dto.DateLayout),
		},
		Consumption: b.Consumption,
		Charges: dto.BillCharges{
			WaterCharges:   b.WaterCharges,
			FixedCharges:   b.FixedCharges,
			ServiceCharges: b.ServiceCharges,
			LateFees:       b.LateFees,
			Taxes:          b.Taxes,
			Adjustments:    b.Adjustments,
		},
		TotalAmount:   b.TotalAmount,
		PaidAmount:    b.PaidAmount,
		BalanceAmount: b.BalanceAmount,
		Status:        string(b.Status),
		IsOverdue:     !b.IsVoided() && b.IsOverdueAt(asOf),
		DaysOverdue:   b.DaysOverdue(asOf),
		Voided:        b.IsVoided(),
		VoidReason:    b.VoidReason,
	}
	if b.PaidAt != nil {
		s := b.PaidAt.Format(time.RFC3339)
		out.PaidAt = &s
	}
	return out
}

// ToBillResponses convierte una lista de facturas.
func ToBillResponses(bills []*entity.Bill, asOf time.Time) []dto.BillResponse {
	out := make([]dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, ToBillResponse(b, asOf))
	}
	return out
}

// ToPaymentResponse convierte un pago a DTO.
func ToPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            p.ID,
		BillID:        p.BillID,
		CustomerID:    p.CustomerID,
		Sequence:      p.Sequence,
		Amount:        p.Amount,
		Method:        string(p.Method),
		PaidAt:        p.PaidAt.Format(time.RFC3339),
		CollectorID:   p.CollectorID,
		CollectorName: p.CollectorName,
		Reference:     p.Reference,
		ReceiptNumber: p.ReceiptNumber,
	}
}

// ToPaymentResponses convierte una lista de pagos.
func ToPaymentResponses(payments []*entity.Payment) []dto.PaymentResponse {
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, ToPaymentResponse(p))
	}
	return out
}

// ToRateTierResponse convierte un tramo a DTO.
func ToRateTierResponse(t *entity.RateTier) dto.RateTierResponse {
	out := dto.RateTierResponse{
		ID:            t.ID,
		Name:          t.Name,
		CustomerClass: string(t.CustomerClass),
		TierFrom:      t.TierFrom,
		TierTo:        t.TierTo,
		RatePerUnit:   t.RatePerUnit,
		FixedCharge:   t.FixedCharge,
		EffectiveFrom: t.EffectiveFrom.Format(dto.DateLayout),
		Active:        t.Active,
		Description:   t.Description,
	}
	if t.EffectiveTo != nil {
		s := t.EffectiveTo.Format(dto.DateLayout)
		out.EffectiveTo = &s
	}
	return out
}

// ToRateTierResponses convierte una lista de tramos.
func ToRateTierResponses(tiers []*entity.RateTier) []dto.RateTierResponse {
	out := make([]dto.RateTierResponse, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, ToRateTierResponse(t))
	}
	return out
}

// ToQuoteResponse convierte el cálculo del cargo a DTO.
func ToQuoteResponse(class entity.CustomerClass, asOf time.Time, c tariff.Charge) dto.QuoteResponse {
	out := dto.QuoteResponse{
		CustomerClass: string(class),
		AsOf:          asOf.Format(dto.DateLayout),
		Consumption:   c.Consumption,
		WaterCharges:  c.WaterCharges,
		FixedCharges:  c.FixedCharges,
		Total:         c.Total(),
		Breakdown:     make([]dto.TierChargeResponse, 0, len(c.Breakdown)),
	}
	for _, tc := range c.Breakdown {
		out.Breakdown = append(out.Breakdown, dto.TierChargeResponse{
			TierID:      tc.TierID,
			Name:        tc.Name,
			TierFrom:    tc.TierFrom,
			TierTo:      tc.TierTo,
			Units:       tc.Units,
			RatePerUnit: tc.RatePerUnit,
			Amount:      tc.Amount,
			FixedCharge: tc.FixedCharge,
		})
	}
	return out
}

// FromRateTierRequest construye la entidad a partir del request. Active por defecto es true.
func FromRateTierRequest(in dto.RateTierRequest) (*entity.RateTier, error) {
	from, err := parseDate(in.EffectiveFrom)
	if err != nil {
		return nil, err
	}
	t := &entity.RateTier{
		Name:          in.Name,
		CustomerClass: entity.CustomerClass(in.CustomerClass),
		TierFrom:      in.TierFrom,
		TierTo:        in.TierTo,
		RatePerUnit:   in.RatePerUnit,
		FixedCharge:   in.FixedCharge,
		EffectiveFrom: from,
		Active:        in.Active == nil || *in.Active,
		Description:   in.Description,
	}
	if in.EffectiveTo != "" {
		to, err := parseDate(in.EffectiveTo)
		if err != nil {
			return nil, err
		}
		t.EffectiveTo = &to
	}
	return t, nil
}

func toCustomerSummary(c *entity.Customer) dto.CustomerSummary {
	return dto.CustomerSummary{
		ID:            c.ID,
		AccountNumber: c.AccountNumber,
		Name:          c.Name,
		CustomerClass: string(c.CustomerClass),
		Address:       c.Address,
		Phone:         c.Phone,
	}
}

// parseDate envuelve los errores de formato como ErrInvalidInput.
func parseDate(s string) (time.Time, error) {
	t, err := dto.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return t, nil
}
