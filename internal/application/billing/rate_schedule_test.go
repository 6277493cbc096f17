package billing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/infrastructure/memory"
	"github.com/jhoicas/Acueducto-api/pkg/logger"
)

func commercialTier(from string, to *string, rate string) *entity.RateTier {
	t := &entity.RateTier{
		CustomerClass: entity.ClassCommercial,
		TierFrom:      dec(from),
		RatePerUnit:   dec(rate),
		FixedCharge:   dec("0"),
		EffectiveFrom: scheduleStart,
		Active:        true,
	}
	if to != nil {
		t.TierTo = decPtr(*to)
	}
	return t
}

func strPtr(s string) *string { return &s }

func TestRateSchedule_InsertTierHastaCompletarParticion(t *testing.T) {
	ctx := context.Background()
	svc := billing.NewRateScheduleService(memory.NewStore(), nil, logger.Nop())
	asOf := scheduleStart.AddDate(0, 1, 0)

	_, err := svc.InsertTier(ctx, commercialTier("0", strPtr("10"), "20"))
	require.NoError(t, err)

	// Sin tramo abierto el esquema todavía no es usable.
	_, err = svc.LookupTiers(ctx, entity.ClassCommercial, asOf)
	assert.ErrorIs(t, err, domain.ErrNoRateScheduleFound)

	_, err = svc.InsertTier(ctx, commercialTier("5", nil, "30"))
	assert.ErrorIs(t, err, domain.ErrOverlappingTierRange)

	_, err = svc.InsertTier(ctx, commercialTier("15", nil, "30"))
	assert.ErrorIs(t, err, domain.ErrGapInTierRange)

	_, err = svc.InsertTier(ctx, commercialTier("11", nil, "30"))
	require.NoError(t, err)

	tiers, err := svc.LookupTiers(ctx, entity.ClassCommercial, asOf)
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	assert.True(t, tiers[0].TierFrom.IsZero())
	assert.Nil(t, tiers[1].TierTo)

	history, err := svc.History(ctx, entity.ClassCommercial)
	require.NoError(t, err)
	assert.Len(t, history, 2, "los tramos rechazados no dejan rastro")
}

func TestRateSchedule_InsertTierInvalido(t *testing.T) {
	svc := billing.NewRateScheduleService(memory.NewStore(), nil, logger.Nop())
	bad := commercialTier("0", nil, "-1")
	_, err := svc.InsertTier(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRateSchedule_PublishScheduleVersiona(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	nextYear := scheduleStart.AddDate(1, 0, 0)

	tiers := sampleTiers()
	tiers[2].RatePerUnit = dec("18")
	tiers[3].RatePerUnit = dec("30")
	_, err := f.rates.PublishSchedule(ctx, entity.ClassResidential, nextYear, tiers)
	require.NoError(t, err)

	old, err := f.rates.Quote(ctx, entity.ClassResidential, dec("8"), nextYear.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.True(t, old.WaterCharges.Equal(dec("30")), "antes de la nueva versión: %s", old.WaterCharges)

	current, err := f.rates.Quote(ctx, entity.ClassResidential, dec("8"), nextYear)
	require.NoError(t, err)
	assert.True(t, current.WaterCharges.Equal(dec("36")), "desde la nueva versión: %s", current.WaterCharges)

	history, err := f.rates.History(ctx, entity.ClassResidential)
	require.NoError(t, err)
	assert.Len(t, history, 8)
	closed := 0
	for _, h := range history {
		if h.EffectiveTo != nil {
			assert.True(t, h.EffectiveTo.Equal(nextYear))
			closed++
		}
	}
	assert.Equal(t, 4, closed)

	// No se puede publicar una versión que arranque antes o igual a una existente.
	_, err = f.rates.PublishSchedule(ctx, entity.ClassResidential, nextYear, sampleTiers())
	assert.ErrorIs(t, err, domain.ErrOverlappingTierRange)
}

func TestRateSchedule_PublishScheduleRecortaTramosConFin(t *testing.T) {
	ctx := context.Background()
	svc := billing.NewRateScheduleService(memory.NewStore(), nil, logger.Nop())
	until := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cutover := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, tier := range []*entity.RateTier{
		commercialTier("0", strPtr("5"), "20"),
		commercialTier("6", nil, "30"),
	} {
		tier.EffectiveTo = &until
		_, err := svc.InsertTier(ctx, tier)
		require.NoError(t, err)
	}

	_, err := svc.PublishSchedule(ctx, entity.ClassCommercial, cutover, []*entity.RateTier{
		{TierFrom: dec("0"), TierTo: decPtr("10"), RatePerUnit: dec("25")},
		{TierFrom: dec("11"), RatePerUnit: dec("40")},
	})
	require.NoError(t, err)

	before, err := svc.Quote(ctx, entity.ClassCommercial, dec("8"), cutover.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.True(t, before.WaterCharges.Equal(dec("160")), "tramos anteriores: %s", before.WaterCharges)

	after, err := svc.Quote(ctx, entity.ClassCommercial, dec("8"), time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err, "la versión anterior no debe seguir vigente")
	assert.True(t, after.WaterCharges.Equal(dec("200")), "versión nueva: %s", after.WaterCharges)

	history, err := svc.History(ctx, entity.ClassCommercial)
	require.NoError(t, err)
	require.Len(t, history, 4)
	for _, h := range history[:2] {
		require.NotNil(t, h.EffectiveTo)
		assert.True(t, h.EffectiveTo.Equal(cutover), "el fin queda recortado al corte")
	}
}

func TestRateSchedule_PublishScheduleRechazaParticionIncompleta(t *testing.T) {
	svc := billing.NewRateScheduleService(memory.NewStore(), nil, logger.Nop())
	tiers := sampleTiers()[:3]
	_, err := svc.PublishSchedule(context.Background(), entity.ClassResidential, scheduleStart, tiers)
	assert.ErrorIs(t, err, domain.ErrGapInTierRange)

	_, err = svc.PublishSchedule(context.Background(), entity.ClassResidential, time.Time{}, sampleTiers())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRateSchedule_LookupIdempotente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	asOf := scheduleStart.AddDate(0, 2, 0)

	a, err := f.rates.LookupTiers(ctx, entity.ClassResidential, asOf)
	require.NoError(t, err)
	b, err := f.rates.LookupTiers(ctx, entity.ClassResidential, asOf)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = f.rates.LookupTiers(ctx, entity.ClassResidential, scheduleStart.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domain.ErrNoRateScheduleFound)

	// Una clase sin tarifas publicadas no es un error de entrada.
	_, err = f.rates.LookupTiers(ctx, entity.CustomerClass("hotel"), asOf)
	assert.ErrorIs(t, err, domain.ErrNoRateScheduleFound)

	_, err = f.rates.LookupTiers(ctx, entity.CustomerClass("Hotel"), asOf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// countingCache caché en memoria que cuenta cargas e invalidaciones.
type countingCache struct {
	mu          sync.Mutex
	entries     map[string][]*entity.RateTier
	loads       int
	invalidated []entity.CustomerClass
}

func (c *countingCache) GetOrLoad(ctx context.Context, class entity.CustomerClass, asOf time.Time, load billing.TierLoader) ([]*entity.RateTier, error) {
	key := string(class) + asOf.String()
	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()
	v, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads++
	c.entries[key] = v
	return v, nil
}

func (c *countingCache) Invalidate(_ context.Context, class entity.CustomerClass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, class)
	for k := range c.entries {
		delete(c.entries, k)
	}
}

func TestRateSchedule_CacheSeInvalidaAlPublicar(t *testing.T) {
	ctx := context.Background()
	cache := &countingCache{entries: map[string][]*entity.RateTier{}}
	svc := billing.NewRateScheduleService(memory.NewStore(), cache, logger.Nop())
	asOf := scheduleStart.AddDate(0, 1, 0)

	_, err := svc.PublishSchedule(ctx, entity.ClassResidential, scheduleStart, sampleTiers())
	require.NoError(t, err)
	assert.Equal(t, []entity.CustomerClass{entity.ClassResidential}, cache.invalidated)

	for i := 0; i < 3; i++ {
		_, err := svc.LookupTiers(ctx, entity.ClassResidential, asOf)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, cache.loads)

	_, err = svc.InsertTier(ctx, commercialTier("0", nil, "10"))
	require.NoError(t, err)
	assert.Len(t, cache.invalidated, 2)

	_, err = svc.LookupTiers(ctx, entity.ClassResidential, asOf)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.loads)
}
