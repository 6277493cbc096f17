// Package memory implementa los repositorios de facturación en memoria. Las transacciones
// se serializan con un mutex global y se revierten con un log de deshacer; sirve para
// STORAGE_DRIVER=memory y para tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

// Store estado compartido de todos los repositorios.
type Store struct {
	mu        sync.Mutex
	tiers     []*entity.RateTier
	bills     map[string]*entity.Bill
	payments  []*entity.Payment
	customers map[string]*entity.Customer
	meters    map[string]*entity.WaterMeter
	readings  map[string]*entity.MeterReading
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		bills:     make(map[string]*entity.Bill),
		customers: make(map[string]*entity.Customer),
		meters:    make(map[string]*entity.WaterMeter),
		readings:  make(map[string]*entity.MeterReading),
	}
}

// RunInTx implementa billing.TxRunner. Si fn falla se deshacen sus cambios en orden inverso.
func (s *Store) RunInTx(ctx context.Context, fn func(repos billing.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txState{store: s}
	if err := fn(tx.repos()); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// PutCustomer registra un cliente (datos que en producción administra el módulo de clientes).
func (s *Store) PutCustomer(c *entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.customers[c.ID] = &cp
}

// PutMeter registra un medidor.
func (s *Store) PutMeter(m *entity.WaterMeter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.meters[m.ID] = &cp
}

// PutReading registra una lectura.
func (s *Store) PutReading(r *entity.MeterReading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.readings[r.ID] = &cp
}

// txState acumula las operaciones de deshacer de una transacción.
type txState struct {
	store *Store
	undo  []func()
}

func (t *txState) record(fn func()) {
	t.undo = append(t.undo, fn)
}

func (t *txState) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *txState) repos() billing.TxRepos {
	return billing.TxRepos{
		Rates:     &rateTierRepo{tx: t},
		Bills:     &billRepo{tx: t},
		Payments:  &paymentRepo{tx: t},
		Readings:  &readingRepo{tx: t},
		Meters:    &meterRepo{tx: t},
		Customers: &customerRepo{tx: t},
	}
}
