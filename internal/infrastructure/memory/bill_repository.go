package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

type billRepo struct {
	tx *txState
}

func (r *billRepo) Create(_ context.Context, bill *entity.Bill) error {
	s := r.tx.store
	if _, ok := s.bills[bill.ID]; ok {
		return domain.ErrDuplicate
	}
	if findActive(s, bill.MeterID, bill.BillingPeriodFrom, bill.BillingPeriodTo) != nil {
		return domain.ErrDuplicateBillingPeriod
	}
	s.bills[bill.ID] = cloneBill(bill)
	id := bill.ID
	r.tx.record(func() { delete(s.bills, id) })
	return nil
}

func (r *billRepo) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	b, ok := r.tx.store.bills[id]
	if !ok {
		return nil, nil
	}
	return cloneBill(b), nil
}

func (r *billRepo) FindActiveByPeriod(_ context.Context, meterID string, from, to time.Time) (*entity.Bill, error) {
	if b := findActive(r.tx.store, meterID, from, to); b != nil {
		return cloneBill(b), nil
	}
	return nil, nil
}

func (r *billRepo) SavePayment(_ context.Context, bill *entity.Bill, expectedVersion int) error {
	return r.save(bill, expectedVersion, func(dst *entity.Bill) {
		dst.PaidAmount = bill.PaidAmount
		dst.BalanceAmount = bill.BalanceAmount
		dst.Status = bill.Status
		dst.PaidAt = bill.PaidAt
	})
}

func (r *billRepo) SaveStatus(_ context.Context, bill *entity.Bill, expectedVersion int) error {
	return r.save(bill, expectedVersion, func(dst *entity.Bill) {
		dst.Status = bill.Status
		dst.VoidedAt = bill.VoidedAt
		dst.VoidReason = bill.VoidReason
	})
}

// save aplica apply sobre la fila almacenada si su versión coincide (compare-and-swap).
func (r *billRepo) save(bill *entity.Bill, expectedVersion int, apply func(dst *entity.Bill)) error {
	s := r.tx.store
	stored, ok := s.bills[bill.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrConcurrentModification
	}
	before := cloneBill(stored)
	apply(stored)
	stored.Version = expectedVersion + 1
	stored.UpdatedAt = bill.UpdatedAt
	r.tx.record(func() { *stored = *before })
	return nil
}

func (r *billRepo) ListDueForStatusTransition(_ context.Context, asOf time.Time) ([]*entity.Bill, error) {
	var out []*entity.Bill
	for _, b := range r.tx.store.bills {
		if !b.IsVoided() && b.Status == entity.BillStatusSent && b.DueDate.Before(asOf) {
			out = append(out, cloneBill(b))
		}
	}
	sortBills(out)
	return out, nil
}

func (r *billRepo) ListByCustomer(_ context.Context, customerID string, statuses []entity.BillStatus) ([]*entity.Bill, error) {
	var out []*entity.Bill
	for _, b := range r.tx.store.bills {
		if b.CustomerID != customerID || b.IsVoided() {
			continue
		}
		if len(statuses) > 0 && !hasStatus(statuses, b.Status) {
			continue
		}
		out = append(out, cloneBill(b))
	}
	sortBills(out)
	return out, nil
}

func findActive(s *Store, meterID string, from, to time.Time) *entity.Bill {
	for _, b := range s.bills {
		if b.MeterID == meterID && !b.IsVoided() &&
			b.BillingPeriodFrom.Equal(from) && b.BillingPeriodTo.Equal(to) {
			return b
		}
	}
	return nil
}

func hasStatus(statuses []entity.BillStatus, st entity.BillStatus) bool {
	for _, s := range statuses {
		if s == st {
			return true
		}
	}
	return false
}

// sortBills ordena por vencimiento y luego por número.
func sortBills(bills []*entity.Bill) {
	sort.Slice(bills, func(i, j int) bool {
		if !bills[i].DueDate.Equal(bills[j].DueDate) {
			return bills[i].DueDate.Before(bills[j].DueDate)
		}
		return bills[i].BillNumber < bills[j].BillNumber
	})
}

func cloneBill(b *entity.Bill) *entity.Bill {
	cp := *b
	return &cp
}
