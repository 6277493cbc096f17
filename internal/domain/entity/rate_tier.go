package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerClass categoría de cliente que determina el esquema tarifario.
type CustomerClass string

// Clases de cliente conocidas (catálogo de tipos de cliente del acueducto).
const (
	ClassResidential  CustomerClass = "residential"
	ClassCommercial   CustomerClass = "commercial"
	ClassIndustrial   CustomerClass = "industrial"
	ClassAgricultural CustomerClass = "agricultural"
	ClassGovernment   CustomerClass = "government"
	ClassEducational  CustomerClass = "educational"
	ClassHealthcare   CustomerClass = "healthcare"
	ClassReligious    CustomerClass = "religious"
)

// IsValid acepta cualquier clase no vacía en minúsculas; el catálogo es extensible.
func (c CustomerClass) IsValid() bool {
	if c == "" {
		return false
	}
	for _, r := range string(c) {
		if !(r >= 'a' && r <= 'z' || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// RateTier tramo de una tarifa por bloques. Inmutable: una versión reemplazada solo
// recibe EffectiveTo y se inserta una nueva fila (versionado append-only).
type RateTier struct {
	ID            string
	Name          string
	CustomerClass CustomerClass
	TierFrom      decimal.Decimal
	TierTo        *decimal.Decimal // nil = tramo superior abierto
	RatePerUnit   decimal.Decimal  // puede ser 0 (consumo básico gratuito)
	FixedCharge   decimal.Decimal  // cargo fijo, una vez por factura
	EffectiveFrom time.Time
	EffectiveTo   *time.Time // nil = vigente
	Active        bool
	Description   string
	CreatedAt     time.Time
}

// IsOpenEnded indica si el tramo no tiene límite superior.
func (t *RateTier) IsOpenEnded() bool {
	return t.TierTo == nil
}

// EffectiveAt indica si el tramo está activo y vigente en asOf.
func (t *RateTier) EffectiveAt(asOf time.Time) bool {
	if !t.Active {
		return false
	}
	if t.EffectiveFrom.After(asOf) {
		return false
	}
	return t.EffectiveTo == nil || t.EffectiveTo.After(asOf)
}

// Overlaps indica si la vigencia del tramo se cruza con [from, to). to nil = sin fin.
func (t *RateTier) Overlaps(from time.Time, to *time.Time) bool {
	if to != nil && !t.EffectiveFrom.Before(*to) {
		return false
	}
	return t.EffectiveTo == nil || t.EffectiveTo.After(from)
}
