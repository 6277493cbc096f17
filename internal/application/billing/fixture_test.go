package billing_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/domain/repository"
	"github.com/jhoicas/Acueducto-api/internal/infrastructure/memory"
	"github.com/jhoicas/Acueducto-api/pkg/logger"
)

const (
	customerID = "cust-1"
	meterID    = "meter-42"
	readingID  = "reading-1"
)

var scheduleStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

// sampleTiers cargo básico de 100, 5 m³ gratuitos, 15 por m³ hasta 10 y 25 desde 11.
func sampleTiers() []*entity.RateTier {
	return []*entity.RateTier{
		{Name: "Cargo básico", TierFrom: dec("0"), TierTo: decPtr("0"), RatePerUnit: dec("0"), FixedCharge: dec("100")},
		{Name: "Consumo básico", TierFrom: dec("0"), TierTo: decPtr("5"), RatePerUnit: dec("0")},
		{Name: "Bloque 1", TierFrom: dec("6"), TierTo: decPtr("10"), RatePerUnit: dec("15")},
		{Name: "Bloque 2", TierFrom: dec("11"), RatePerUnit: dec("25")},
	}
}

type fixture struct {
	store  *memory.Store
	rates  *billing.RateScheduleService
	ledger *billing.PaymentLedger
	orch   *billing.Orchestrator
}

// newFixture store en memoria con el esquema residencial publicado, un cliente activo,
// su medidor y una lectura de 8 m³ del 20 de enero de 2024.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()

	rates := billing.NewRateScheduleService(store, nil, log)
	_, err := rates.PublishSchedule(context.Background(), entity.ClassResidential, scheduleStart, sampleTiers())
	require.NoError(t, err)

	store.PutCustomer(&entity.Customer{
		ID: customerID, AccountNumber: "ACC-0001", Name: "Familia Rojas",
		CustomerClass: entity.ClassResidential, Status: entity.CustomerStatusActive,
	})
	store.PutMeter(&entity.WaterMeter{ID: meterID, CustomerID: customerID, MeterNumber: "M-42", Status: "active"})
	putReading(t, store, readingID, "120", "128", time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC))

	ledger := billing.NewPaymentLedger(store, log)
	orch := billing.NewOrchestrator(store, billing.NewBillBuilder(0), ledger, log, billing.OrchestratorConfig{})
	return &fixture{store: store, rates: rates, ledger: ledger, orch: orch}
}

func putReading(t *testing.T, store *memory.Store, id, prev, curr string, at time.Time) *entity.MeterReading {
	t.Helper()
	r, err := entity.NewMeterReading(id, meterID, dec(prev), dec(curr), at, "reader-1", "Lector", "")
	require.NoError(t, err)
	store.PutReading(r)
	return r
}

// flakyTx envuelve un TxRunner y hace fallar las primeras n escrituras de pago con
// ErrConcurrentModification, como si otra transacción hubiera ganado el CAS.
type flakyTx struct {
	inner    billing.TxRunner
	failures atomic.Int32
	attempts atomic.Int32
}

func (f *flakyTx) RunInTx(ctx context.Context, fn func(repos billing.TxRepos) error) error {
	return f.inner.RunInTx(ctx, func(r billing.TxRepos) error {
		r.Bills = &flakyBills{BillRepository: r.Bills, tx: f}
		return fn(r)
	})
}

type flakyBills struct {
	repository.BillRepository
	tx *flakyTx
}

func (b *flakyBills) SavePayment(ctx context.Context, bill *entity.Bill, expectedVersion int) error {
	b.tx.attempts.Add(1)
	if b.tx.failures.Add(-1) >= 0 {
		return domain.ErrConcurrentModification
	}
	return b.BillRepository.SavePayment(ctx, bill, expectedVersion)
}
