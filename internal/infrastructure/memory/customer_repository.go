package memory

import (
	"context"

	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

type customerRepo struct {
	tx *txState
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.tx.store.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

type meterRepo struct {
	tx *txState
}

func (r *meterRepo) GetByID(_ context.Context, id string) (*entity.WaterMeter, error) {
	m, ok := r.tx.store.meters[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

type readingRepo struct {
	tx *txState
}

func (r *readingRepo) GetByID(_ context.Context, id string) (*entity.MeterReading, error) {
	m, ok := r.tx.store.readings[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}
