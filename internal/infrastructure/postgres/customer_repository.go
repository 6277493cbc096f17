package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository     = (*CustomerRepo)(nil)
	_ repository.WaterMeterRepository   = (*WaterMeterRepo)(nil)
	_ repository.MeterReadingRepository = (*MeterReadingRepo)(nil)
)

// CustomerRepo lectura de clientes (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// GetByID obtiene un cliente por ID (nil si no existe).
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `
		SELECT id, account_number, name, customer_class, COALESCE(phone, ''), COALESCE(email, ''),
		       COALESCE(address, ''), status, created_at, updated_at
		FROM customers WHERE id = $1`
	var c entity.Customer
	var class string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.AccountNumber, &c.Name, &class, &c.Phone, &c.Email,
		&c.Address, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	c.CustomerClass = entity.CustomerClass(class)
	return &c, nil
}

// WaterMeterRepo lectura de medidores.
type WaterMeterRepo struct {
	q Querier
}

// NewWaterMeterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWaterMeterRepository(q Querier) *WaterMeterRepo {
	return &WaterMeterRepo{q: q}
}

// GetByID obtiene un medidor por ID (nil si no existe).
func (r *WaterMeterRepo) GetByID(ctx context.Context, id string) (*entity.WaterMeter, error) {
	query := `
		SELECT id, customer_id, meter_number, COALESCE(meter_type, ''), status
		FROM water_meters WHERE id = $1`
	var m entity.WaterMeter
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.CustomerID, &m.MeterNumber, &m.MeterType, &m.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get water meter: %w", err)
	}
	return &m, nil
}

// MeterReadingRepo lectura de lecturas de medidor.
type MeterReadingRepo struct {
	q Querier
}

// NewMeterReadingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMeterReadingRepository(q Querier) *MeterReadingRepo {
	return &MeterReadingRepo{q: q}
}

// GetByID obtiene una lectura por ID (nil si no existe). consumption puede venir NULL.
func (r *MeterReadingRepo) GetByID(ctx context.Context, id string) (*entity.MeterReading, error) {
	query := `
		SELECT id, meter_id, previous_reading, current_reading, consumption, reading_date,
		       COALESCE(reader_id, ''), COALESCE(reader_name, ''), reading_type, created_at
		FROM meter_readings WHERE id = $1`
	var m entity.MeterReading
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.MeterID, &m.PreviousReading, &m.CurrentReading, &m.Consumption, &m.ReadingDate,
		&m.ReaderID, &m.ReaderName, &m.ReadingType, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meter reading: %w", err)
	}
	return &m, nil
}
