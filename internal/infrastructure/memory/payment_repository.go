package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

type paymentRepo struct {
	tx *txState
}

func (r *paymentRepo) Append(_ context.Context, p *entity.Payment) error {
	s := r.tx.store
	for _, existing := range s.payments {
		if existing.BillID != p.BillID {
			continue
		}
		if existing.Sequence == p.Sequence {
			return domain.ErrConcurrentModification
		}
		if p.Reference != "" && existing.Reference == p.Reference {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	s.payments = append(s.payments, &cp)
	n := len(s.payments)
	r.tx.record(func() { s.payments = s.payments[:n-1] })
	return nil
}

func (r *paymentRepo) ListByBill(_ context.Context, billID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.tx.store.payments {
		if p.BillID == billID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (r *paymentRepo) ListByCustomer(_ context.Context, customerID string, from, to *time.Time, limit int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.tx.store.payments {
		if p.CustomerID != customerID {
			continue
		}
		if from != nil && p.PaidAt.Before(*from) {
			continue
		}
		if to != nil && !p.PaidAt.Before(*to) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *paymentRepo) CountByBill(_ context.Context, billID string) (int, error) {
	n := 0
	for _, p := range r.tx.store.payments {
		if p.BillID == billID {
			n++
		}
	}
	return n, nil
}
