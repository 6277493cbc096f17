package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/domain/repository"
	"github.com/jhoicas/Acueducto-api/internal/domain/tariff"
	"github.com/jhoicas/Acueducto-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// RateScheduleService administra los esquemas tarifarios por clase de cliente.
// Los tramos nunca se editan: una nueva versión cierra la anterior con EffectiveTo.
type RateScheduleService struct {
	tx    TxRunner
	cache TierCache // nil = sin caché
	log   *logger.Logger
	now   Clock
}

// NewRateScheduleService construye el servicio. cache puede ser nil.
func NewRateScheduleService(tx TxRunner, cache TierCache, log *logger.Logger) *RateScheduleService {
	return &RateScheduleService{tx: tx, cache: cache, log: log.Component("rates"), now: time.Now}
}

// LookupTiers devuelve los tramos activos y vigentes de la clase en asOf, ordenados por
// TierFrom. Un conjunto vacío o que no forma una partición válida es ErrNoRateScheduleFound.
func (s *RateScheduleService) LookupTiers(ctx context.Context, class entity.CustomerClass, asOf time.Time) ([]*entity.RateTier, error) {
	if !class.IsValid() || asOf.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	load := func(ctx context.Context) ([]*entity.RateTier, error) {
		var tiers []*entity.RateTier
		err := s.tx.RunInTx(ctx, func(r TxRepos) error {
			var err error
			tiers, err = lookupTiersInTx(ctx, r.Rates, class, asOf)
			return err
		})
		return tiers, err
	}
	if s.cache != nil {
		return s.cache.GetOrLoad(ctx, class, asOf, load)
	}
	return load(ctx)
}

// lookupTiersInTx consulta con bloqueo compartido de la clase: no ve una versión a medio publicar.
func lookupTiersInTx(ctx context.Context, rates repository.RateTierRepository, class entity.CustomerClass, asOf time.Time) ([]*entity.RateTier, error) {
	if err := rates.LockClass(ctx, class, true); err != nil {
		return nil, fmt.Errorf("lock rate class: %w", err)
	}
	tiers, err := rates.ListEffective(ctx, class, asOf)
	if err != nil {
		return nil, fmt.Errorf("list effective tiers: %w", err)
	}
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: clase %s en %s", domain.ErrNoRateScheduleFound, class, asOf.Format("2006-01-02"))
	}
	if err := tariff.ValidatePartition(tiers); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNoRateScheduleFound, err)
	}
	return tariff.SortTiers(tiers), nil
}

// InsertTier agrega un tramo a la clase. Bajo el bloqueo exclusivo de la clase se valida
// el conjunto vigente en cada instante que el nuevo tramo toca; un solape o hueco aborta
// la transacción sin dejar rastro.
func (s *RateScheduleService) InsertTier(ctx context.Context, tier *entity.RateTier) (*entity.RateTier, error) {
	if err := tariff.ValidateTier(tier); err != nil {
		return nil, err
	}
	if tier.ID == "" {
		tier.ID = uuid.New().String()
	}
	tier.CreatedAt = s.now()

	err := s.tx.RunInTx(ctx, func(r TxRepos) error {
		if err := r.Rates.LockClass(ctx, tier.CustomerClass, false); err != nil {
			return fmt.Errorf("lock rate class: %w", err)
		}
		existing, err := r.Rates.ListByClass(ctx, tier.CustomerClass)
		if err != nil {
			return fmt.Errorf("list class tiers: %w", err)
		}
		if tier.Active {
			candidate := append(existing, tier)
			for _, at := range tariff.Checkpoints(candidate, tier.EffectiveFrom, tier.EffectiveTo) {
				if err := tariff.ValidateRanges(tariff.EffectiveSet(candidate, at)); err != nil {
					return err
				}
			}
		}
		if err := r.Rates.Create(ctx, tier); err != nil {
			return fmt.Errorf("insert rate tier: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, tier.CustomerClass)
	s.log.Info().
		Str("tier_id", tier.ID).
		Str("class", string(tier.CustomerClass)).
		Str("tier_from", tier.TierFrom.String()).
		Time("effective_from", tier.EffectiveFrom).
		Msg("tramo tarifario insertado")
	return tier, nil
}

// PublishSchedule publica una versión completa del esquema de la clase a partir de
// effectiveFrom: cierra los tramos abiertos anteriores e inserta los nuevos en una sola
// transacción. El conjunto nuevo debe ser una partición completa.
func (s *RateScheduleService) PublishSchedule(ctx context.Context, class entity.CustomerClass, effectiveFrom time.Time, tiers []*entity.RateTier) ([]*entity.RateTier, error) {
	if !class.IsValid() || effectiveFrom.IsZero() || len(tiers) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := s.now()
	for _, t := range tiers {
		t.CustomerClass = class
		t.EffectiveFrom = effectiveFrom
		t.EffectiveTo = nil
		t.Active = true
		t.CreatedAt = now
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if err := tariff.ValidateTier(t); err != nil {
			return nil, err
		}
	}
	if err := tariff.ValidatePartition(tiers); err != nil {
		return nil, err
	}

	var closed int
	err := s.tx.RunInTx(ctx, func(r TxRepos) error {
		if err := r.Rates.LockClass(ctx, class, false); err != nil {
			return fmt.Errorf("lock rate class: %w", err)
		}
		existing, err := r.Rates.ListByClass(ctx, class)
		if err != nil {
			return fmt.Errorf("list class tiers: %w", err)
		}
		// Una versión que arranca en o después de effectiveFrom no se puede cerrar: se
		// solaparía con la nueva.
		for _, t := range existing {
			if t.Active && !t.EffectiveFrom.Before(effectiveFrom) {
				return fmt.Errorf("%w: ya existe una versión desde %s", domain.ErrOverlappingTierRange, t.EffectiveFrom.Format("2006-01-02"))
			}
		}
		closed, err = r.Rates.CloseVersion(ctx, class, effectiveFrom)
		if err != nil {
			return fmt.Errorf("close rate version: %w", err)
		}
		trimmed, err := r.Rates.ListByClass(ctx, class)
		if err != nil {
			return fmt.Errorf("list class tiers: %w", err)
		}
		// Desde effectiveFrom solo puede quedar vigente la versión nueva.
		candidate := append(trimmed, tiers...)
		for _, at := range tariff.Checkpoints(candidate, effectiveFrom, nil) {
			if err := tariff.ValidatePartition(tariff.EffectiveSet(candidate, at)); err != nil {
				return fmt.Errorf("schedule at %s: %w", at.Format("2006-01-02"), err)
			}
		}
		for _, t := range tiers {
			if err := r.Rates.Create(ctx, t); err != nil {
				return fmt.Errorf("insert rate tier: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, class)
	s.log.Info().
		Str("class", string(class)).
		Time("effective_from", effectiveFrom).
		Int("tiers", len(tiers)).
		Int("closed", closed).
		Msg("esquema tarifario publicado")
	return tariff.SortTiers(tiers), nil
}

// History devuelve todas las versiones de tramos de la clase.
func (s *RateScheduleService) History(ctx context.Context, class entity.CustomerClass) ([]*entity.RateTier, error) {
	if !class.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	var tiers []*entity.RateTier
	err := s.tx.RunInTx(ctx, func(r TxRepos) error {
		var err error
		tiers, err = r.Rates.ListByClass(ctx, class)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list class tiers: %w", err)
	}
	return tiers, nil
}

// Quote calcula el cargo de un consumo con el esquema vigente en asOf (simulador de tarifa).
func (s *RateScheduleService) Quote(ctx context.Context, class entity.CustomerClass, consumption decimal.Decimal, asOf time.Time) (tariff.Charge, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	tiers, err := s.LookupTiers(ctx, class, asOf)
	if err != nil {
		return tariff.Charge{}, err
	}
	return tariff.ComputeCharge(consumption, tiers)
}

func (s *RateScheduleService) invalidate(ctx context.Context, class entity.CustomerClass) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, class)
	}
}
