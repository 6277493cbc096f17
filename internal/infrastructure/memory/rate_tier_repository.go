package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

type rateTierRepo struct {
	tx *txState
}

// LockClass no hace nada: el mutex del store ya serializa las transacciones.
func (r *rateTierRepo) LockClass(_ context.Context, _ entity.CustomerClass, _ bool) error {
	return nil
}

func (r *rateTierRepo) Create(_ context.Context, tier *entity.RateTier) error {
	s := r.tx.store
	for _, t := range s.tiers {
		if t.ID == tier.ID {
			return domain.ErrDuplicate
		}
	}
	s.tiers = append(s.tiers, cloneTier(tier))
	n := len(s.tiers)
	r.tx.record(func() { s.tiers = s.tiers[:n-1] })
	return nil
}

func (r *rateTierRepo) CloseVersion(_ context.Context, class entity.CustomerClass, at time.Time) (int, error) {
	s := r.tx.store
	closed := 0
	for _, t := range s.tiers {
		if t.CustomerClass != class || !t.EffectiveFrom.Before(at) {
			continue
		}
		if t.EffectiveTo != nil && !t.EffectiveTo.After(at) {
			continue
		}
		tier, prev := t, t.EffectiveTo
		end := at
		tier.EffectiveTo = &end
		r.tx.record(func() { tier.EffectiveTo = prev })
		closed++
	}
	return closed, nil
}

func (r *rateTierRepo) ListEffective(_ context.Context, class entity.CustomerClass, asOf time.Time) ([]*entity.RateTier, error) {
	var out []*entity.RateTier
	for _, t := range r.tx.store.tiers {
		if t.CustomerClass == class && t.EffectiveAt(asOf) {
			out = append(out, cloneTier(t))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TierFrom.LessThan(out[j].TierFrom) })
	return out, nil
}

func (r *rateTierRepo) ListByClass(_ context.Context, class entity.CustomerClass) ([]*entity.RateTier, error) {
	var out []*entity.RateTier
	for _, t := range r.tx.store.tiers {
		if t.CustomerClass == class {
			out = append(out, cloneTier(t))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EffectiveFrom.Equal(out[j].EffectiveFrom) {
			return out[i].EffectiveFrom.Before(out[j].EffectiveFrom)
		}
		return out[i].TierFrom.LessThan(out[j].TierFrom)
	})
	return out, nil
}

func cloneTier(t *entity.RateTier) *entity.RateTier {
	cp := *t
	if t.TierTo != nil {
		to := *t.TierTo
		cp.TierTo = &to
	}
	if t.EffectiveTo != nil {
		end := *t.EffectiveTo
		cp.EffectiveTo = &end
	}
	return &cp
}
