package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/application/dto"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Valores por defecto del orquestador.
const (
	DefaultMaxRetries   = 3
	DefaultBatchWorkers = 4
	MaxBatchSize        = 500
)

// OrchestratorConfig parámetros operativos de facturación.
type OrchestratorConfig struct {
	MaxRetries   int // reintentos ante ErrConcurrentModification
	BatchWorkers int // lecturas facturadas en paralelo en un lote
}

// Orchestrator punto de entrada de facturación para HTTP y jobs: carga lecturas, corre el
// builder en una transacción y reintenta pagos ante conflictos de concurrencia.
type Orchestrator struct {
	tx         TxRunner
	builder    *BillBuilder
	ledger     *PaymentLedger
	log        *logger.Logger
	maxRetries int
	workers    int
	now        Clock
}

// NewOrchestrator construye el orquestador.
func NewOrchestrator(tx TxRunner, builder *BillBuilder, ledger *PaymentLedger, log *logger.Logger, cfg OrchestratorConfig) *Orchestrator {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = DefaultBatchWorkers
	}
	return &Orchestrator{
		tx:         tx,
		builder:    builder,
		ledger:     ledger,
		log:        log.Component("orchestrator"),
		maxRetries: cfg.MaxRetries,
		workers:    cfg.BatchWorkers,
		now:        time.Now,
	}
}

// BillReading factura una lectura ya persistida. Todo ocurre en una transacción: si falla
// cualquier paso no queda factura parcial y se devuelve el primer error.
func (o *Orchestrator) BillReading(ctx context.Context, in dto.BillReadingRequest) (*dto.BillResponse, error) {
	if in.ReadingID == "" {
		return nil, domain.ErrInvalidInput
	}
	override, err := parsePeriod(in.PeriodFrom, in.PeriodTo)
	if err != nil {
		return nil, err
	}

	var bill *entity.Bill
	err = o.tx.RunInTx(ctx, func(r TxRepos) error {
		reading, err := r.Readings.GetByID(ctx, in.ReadingID)
		if err != nil {
			return fmt.Errorf("get reading: %w", err)
		}
		if reading == nil {
			return fmt.Errorf("%w: lectura %s", domain.ErrNotFound, in.ReadingID)
		}
		meter, err := r.Meters.GetByID(ctx, reading.MeterID)
		if err != nil {
			return fmt.Errorf("get meter: %w", err)
		}
		if meter == nil {
			return fmt.Errorf("%w: medidor %s", domain.ErrNotFound, reading.MeterID)
		}
		customer, err := r.Customers.GetByID(ctx, meter.CustomerID)
		if err != nil {
			return fmt.Errorf("get customer: %w", err)
		}
		if customer == nil {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, meter.CustomerID)
		}
		if customer.Status == entity.CustomerStatusInactive {
			return fmt.Errorf("%w: cliente inactivo", domain.ErrInvalidInput)
		}

		period := MonthOf(reading.ReadingDate)
		if override != nil {
			period = *override
		}
		bill, _, err = o.builder.GenerateBill(ctx, r, GenerateBillInput{
			Customer:       customer,
			Reading:        reading,
			Period:         period,
			ServiceCharges: in.ServiceCharges,
			LateFees:       in.LateFees,
			Taxes:          in.Taxes,
			Adjustments:    in.Adjustments,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	o.log.Info().
		Str("bill_id", bill.ID).
		Str("bill_number", bill.BillNumber).
		Str("meter_id", bill.MeterID).
		Str("consumption", bill.Consumption.String()).
		Str("total", bill.TotalAmount.String()).
		Msg("factura generada")
	resp := ToBillResponse(bill, o.now())
	return &resp, nil
}

// BillReadings factura un lote de lecturas con concurrencia acotada. Cada lectura corre en
// su propia transacción: un fallo no afecta al resto y queda reportado en su resultado.
func (o *Orchestrator) BillReadings(ctx context.Context, in dto.BatchBillRequest) (*dto.BatchBillResponse, error) {
	if len(in.Readings) == 0 || len(in.Readings) > MaxBatchSize {
		return nil, fmt.Errorf("%w: el lote debe tener entre 1 y %d lecturas", domain.ErrInvalidInput, MaxBatchSize)
	}
	results := make([]dto.BatchBillResult, len(in.Readings))

	var g errgroup.Group
	g.SetLimit(o.workers)
	for i, req := range in.Readings {
		g.Go(func() error {
			res := dto.BatchBillResult{Index: i, Status: "success"}
			if err := ctx.Err(); err != nil {
				res.Status, res.Error = "failed", err.Error()
				results[i] = res
				return nil
			}
			bill, err := o.BillReading(ctx, req)
			if err != nil {
				res.Status, res.Error = "failed", err.Error()
			} else {
				res.Bill = bill
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	out := &dto.BatchBillResponse{Results: results, Summary: dto.BatchSummary{Total: len(results)}}
	for _, r := range results {
		if r.Status == "success" {
			out.Summary.Successful++
		} else {
			out.Summary.Failed++
		}
	}
	o.log.Info().
		Int("total", out.Summary.Total).
		Int("successful", out.Summary.Successful).
		Int("failed", out.Summary.Failed).
		Msg("lote de facturación procesado")
	return out, nil
}

// ApplyPayment aplica un pago reintentando hasta maxRetries veces si otra transacción
// modificó la factura en paralelo.
func (o *Orchestrator) ApplyPayment(ctx context.Context, in dto.ApplyPaymentRequest) (*dto.ApplyPaymentResponse, error) {
	paidAt, err := parseDate(in.PaidAt)
	if err != nil {
		return nil, err
	}
	input := ApplyPaymentInput{
		BillID:        in.BillID,
		CustomerID:    in.CustomerID,
		Amount:        in.Amount,
		Method:        entity.PaymentMethod(in.Method),
		PaidAt:        paidAt,
		CollectorID:   in.CollectorID,
		CollectorName: in.CollectorName,
		Reference:     in.Reference,
		Notes:         in.Notes,
	}

	for attempt := 1; ; attempt++ {
		bill, payment, err := o.ledger.ApplyPayment(ctx, input)
		if err == nil {
			return &dto.ApplyPaymentResponse{
				Payment: ToPaymentResponse(payment),
				Bill:    ToBillResponse(bill, o.now()),
			}, nil
		}
		if !errors.Is(err, domain.ErrConcurrentModification) || attempt >= o.maxRetries {
			return nil, err
		}
		o.log.Warn().
			Str("bill_id", in.BillID).
			Int("attempt", attempt).
			Msg("conflicto de concurrencia al aplicar pago, reintentando")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
	}
}

// GetBill devuelve la factura.
func (o *Orchestrator) GetBill(ctx context.Context, billID string) (*dto.BillResponse, error) {
	bill, err := o.ledger.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	resp := ToBillResponse(bill, o.now())
	return &resp, nil
}

// MarkSent marca la factura como enviada.
func (o *Orchestrator) MarkSent(ctx context.Context, billID string) (*dto.BillResponse, error) {
	return o.billResult(o.ledger.MarkSent(ctx, billID))
}

// MarkOverdue marca la factura como vencida.
func (o *Orchestrator) MarkOverdue(ctx context.Context, billID string) (*dto.BillResponse, error) {
	return o.billResult(o.ledger.MarkOverdue(ctx, billID))
}

// VoidBill anula la factura.
func (o *Orchestrator) VoidBill(ctx context.Context, billID string, in dto.VoidBillRequest) (*dto.BillResponse, error) {
	return o.billResult(o.ledger.VoidBill(ctx, billID, in.Reason))
}

// ListBillsDue facturas enviadas y vencidas en asOf, candidatas a overdue.
func (o *Orchestrator) ListBillsDue(ctx context.Context, asOf time.Time) ([]dto.BillResponse, error) {
	if asOf.IsZero() {
		asOf = o.now()
	}
	bills, err := o.ledger.ListBillsDueForStatusTransition(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return ToBillResponses(bills, asOf), nil
}

// ListPayments pagos de la factura.
func (o *Orchestrator) ListPayments(ctx context.Context, billID string) ([]dto.PaymentResponse, error) {
	payments, err := o.ledger.ListPayments(ctx, billID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

func (o *Orchestrator) billResult(bill *entity.Bill, err error) (*dto.BillResponse, error) {
	if err != nil {
		return nil, err
	}
	resp := ToBillResponse(bill, o.now())
	return &resp, nil
}

// parsePeriod devuelve nil si no se envió periodo; ambos extremos son obligatorios juntos.
func parsePeriod(from, to string) (*Period, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: period_from y period_to van juntos", domain.ErrInvalidInput)
	}
	f, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	t, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	p := Period{From: f, To: t}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
