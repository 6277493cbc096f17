package repository

import (
	"context"

	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

// CustomerRepository lectura de clientes (los administra el módulo de clientes).
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
}

// WaterMeterRepository lectura de medidores.
type WaterMeterRepository interface {
	GetByID(ctx context.Context, id string) (*entity.WaterMeter, error)
}

// MeterReadingRepository lectura de lecturas ya persistidas por el servicio de toma de lecturas.
type MeterReadingRepository interface {
	GetByID(ctx context.Context, id string) (*entity.MeterReading, error)
}
