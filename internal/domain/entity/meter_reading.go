package entity

import (
	"time"

	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Tipos de lectura.
const (
	ReadingTypeActual    = "actual"
	ReadingTypeEstimated = "estimated"
)

// MeterReading lectura de un medidor. La crea el servicio externo de toma de lecturas
// (app móvil o digitación manual) y nunca se edita: una corrección es una nueva lectura.
type MeterReading struct {
	ID              string
	MeterID         string
	PreviousReading decimal.Decimal
	CurrentReading  decimal.Decimal
	Consumption     *decimal.Decimal // nil cuando el origen no pudo calcularlo
	ReadingDate     time.Time
	ReaderID        string
	ReaderName      string
	ReadingType     string
	CreatedAt       time.Time
}

// NewMeterReading construye una lectura validada. El consumo es current - previous
// y se recorta a cero (un medidor reiniciado no genera consumo negativo).
func NewMeterReading(id, meterID string, previous, current decimal.Decimal, readingDate time.Time, readerID, readerName, readingType string) (*MeterReading, error) {
	if meterID == "" || readingDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if previous.IsNegative() || current.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if readingType == "" {
		readingType = ReadingTypeActual
	}
	if readingType != ReadingTypeActual && readingType != ReadingTypeEstimated {
		return nil, domain.ErrInvalidInput
	}
	consumption := current.Sub(previous)
	if consumption.IsNegative() {
		consumption = decimal.Zero
	}
	return &MeterReading{
		ID:              id,
		MeterID:         meterID,
		PreviousReading: previous,
		CurrentReading:  current,
		Consumption:     &consumption,
		ReadingDate:     readingDate,
		ReaderID:        readerID,
		ReaderName:      readerName,
		ReadingType:     readingType,
		CreatedAt:       time.Now(),
	}, nil
}

// BillableConsumption devuelve el consumo facturable o ErrStaleReading si la lectura no lo trae.
func (r *MeterReading) BillableConsumption() (decimal.Decimal, error) {
	if r.Consumption == nil || r.Consumption.IsNegative() {
		return decimal.Zero, domain.ErrStaleReading
	}
	return *r.Consumption, nil
}
