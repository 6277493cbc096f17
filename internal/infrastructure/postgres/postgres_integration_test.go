package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/application/dto"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Acueducto-api/pkg/config"
	"github.com/jhoicas/Acueducto-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

// startDB levanta PostgreSQL, aplica las migraciones y devuelve un pool listo.
func startDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("INTEGRATION_TESTS no definido")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("acueducto"),
		tcpostgres.WithUsername("acueducto"),
		tcpostgres.WithPassword("acueducto"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	mg, err := postgres.NewMigrator(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, mg.Up())
	require.NoError(t, mg.Close())

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// seedAccount inserta cliente, medidor y una lectura de 8 m³; esas tablas las alimentan otros servicios.
func seedAccount(t *testing.T, pool *pgxpool.Pool) (customerID, meterID, readingID string) {
	t.Helper()
	ctx := context.Background()
	customerID, meterID, readingID = uuid.NewString(), uuid.NewString(), uuid.NewString()

	_, err := pool.Exec(ctx, `INSERT INTO customers (id, account_number, name, customer_class) VALUES ($1, $2, $3, $4)`,
		customerID, "ACC-"+customerID[:8], "Familia Rojas", string(entity.ClassResidential))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO water_meters (id, customer_id, meter_number) VALUES ($1, $2, $3)`,
		meterID, customerID, "M-"+meterID[:8])
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		INSERT INTO meter_readings (id, meter_id, previous_reading, current_reading, consumption, reading_date)
		VALUES ($1, $2, 120, 128, 8, '2024-01-20')`, readingID, meterID)
	require.NoError(t, err)
	return customerID, meterID, readingID
}

func TestBillingFlow_Integration(t *testing.T) {
	pool := startDB(t)
	ctx := context.Background()
	log := logger.Nop()
	tx := postgres.NewTxRunner(pool)

	rates := billing.NewRateScheduleService(tx, nil, log)
	_, err := rates.PublishSchedule(ctx, entity.ClassResidential, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), []*entity.RateTier{
		{Name: "Cargo básico", TierFrom: dec("0"), TierTo: decPtr("0"), RatePerUnit: dec("0"), FixedCharge: dec("100")},
		{Name: "Consumo básico", TierFrom: dec("0"), TierTo: decPtr("5"), RatePerUnit: dec("0")},
		{Name: "Bloque 1", TierFrom: dec("6"), TierTo: decPtr("10"), RatePerUnit: dec("15")},
		{Name: "Bloque 2", TierFrom: dec("11"), RatePerUnit: dec("25")},
	})
	require.NoError(t, err)

	// Un tramo que pisa el bloque 1 se rechaza y no queda escrito.
	_, err = rates.InsertTier(ctx, &entity.RateTier{
		CustomerClass: entity.ClassResidential, TierFrom: dec("8"), TierTo: decPtr("12"),
		RatePerUnit: dec("1"), EffectiveFrom: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Active: true,
	})
	assert.ErrorIs(t, err, domain.ErrOverlappingTierRange)
	history, err := rates.History(ctx, entity.ClassResidential)
	require.NoError(t, err)
	assert.Len(t, history, 4)

	customerID, _, readingID := seedAccount(t, pool)
	ledger := billing.NewPaymentLedger(tx, log)
	orch := billing.NewOrchestrator(tx, billing.NewBillBuilder(0), ledger, log, billing.OrchestratorConfig{MaxRetries: 5})

	bill, err := orch.BillReading(ctx, dto.BillReadingRequest{ReadingID: readingID})
	require.NoError(t, err)
	assert.True(t, bill.TotalAmount.Equal(dec("130")), "total: %s", bill.TotalAmount)
	assert.Equal(t, "2024-01-31", bill.BillingPeriod.To)

	_, err = orch.BillReading(ctx, dto.BillReadingRequest{ReadingID: readingID})
	assert.ErrorIs(t, err, domain.ErrDuplicateBillingPeriod)

	// Pagos concurrentes: el CAS y los reintentos conservan la suma.
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := orch.ApplyPayment(ctx, dto.ApplyPaymentRequest{
				BillID: bill.ID, Amount: dec("20"), Reference: fmt.Sprintf("REF-%d", i),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := orch.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(dec("100")), "pagado: %s", got.PaidAmount)
	assert.True(t, got.BalanceAmount.Equal(dec("30")))

	_, err = orch.ApplyPayment(ctx, dto.ApplyPaymentRequest{BillID: bill.ID, Amount: dec("31")})
	assert.ErrorIs(t, err, domain.ErrOverpaymentRejected)

	paid, err := orch.ApplyPayment(ctx, dto.ApplyPaymentRequest{BillID: bill.ID, Amount: dec("30")})
	require.NoError(t, err)
	assert.Equal(t, string(entity.BillStatusPaid), paid.Bill.Status)
	assert.Equal(t, 6, paid.Payment.Sequence)

	hist, err := orch.PaymentHistory(ctx, customerID, nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, hist.TotalCount)
	assert.True(t, hist.TotalPaid.Equal(dec("130")))
}
