// Package tariff contiene la lógica pura de tarifas por bloques: validación de la
// partición de tramos y cálculo del cargo por consumo (servicios de dominio sin I/O).
package tariff

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var unitStep = decimal.NewFromInt(1)

// SortTiers devuelve una copia ordenada por TierFrom ascendente; a igual TierFrom va
// primero el tramo más corto y el tramo abierto al final.
func SortTiers(tiers []*entity.RateTier) []*entity.RateTier {
	out := make([]*entity.RateTier, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.TierFrom.Equal(b.TierFrom) {
			return a.TierFrom.LessThan(b.TierFrom)
		}
		if a.TierTo == nil {
			return false
		}
		if b.TierTo == nil {
			return true
		}
		return a.TierTo.LessThan(*b.TierTo)
	})
	return out
}

// ValidateTier valida los campos de un tramo individual.
func ValidateTier(t *entity.RateTier) error {
	if t == nil || !t.CustomerClass.IsValid() {
		return domain.ErrInvalidInput
	}
	if t.TierFrom.IsNegative() || t.RatePerUnit.IsNegative() || t.FixedCharge.IsNegative() {
		return domain.ErrInvalidInput
	}
	if t.TierTo != nil && t.TierTo.LessThan(t.TierFrom) {
		return domain.ErrInvalidInput
	}
	if t.EffectiveFrom.IsZero() {
		return domain.ErrInvalidInput
	}
	if t.EffectiveTo != nil && !t.EffectiveTo.After(t.EffectiveFrom) {
		return domain.ErrInvalidInput
	}
	return nil
}

// ValidatePartition exige una partición completa: arranca en 0, sin solapes ni huecos
// y con exactamente un tramo abierto, que es el último.
func ValidatePartition(tiers []*entity.RateTier) error {
	return validateRanges(tiers, true)
}

// ValidateRanges valida solapes y huecos sin exigir todavía el tramo abierto. Se usa al
// insertar tramos uno a uno: el esquema se completa con inserciones posteriores.
func ValidateRanges(tiers []*entity.RateTier) error {
	return validateRanges(tiers, false)
}

// Los tramos son bandas de unidades enteras: tras [0,5] el siguiente puede empezar en 5 o en 6.
func validateRanges(tiers []*entity.RateTier, requireOpenTop bool) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: esquema vacío", domain.ErrGapInTierRange)
	}
	sorted := SortTiers(tiers)
	if !sorted[0].TierFrom.IsZero() {
		return fmt.Errorf("%w: el primer tramo inicia en %s", domain.ErrGapInTierRange, sorted[0].TierFrom)
	}
	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		if prev.TierTo == nil {
			return fmt.Errorf("%w: tramo %s después del tramo abierto", domain.ErrOverlappingTierRange, next.TierFrom)
		}
		if next.TierFrom.LessThan(*prev.TierTo) {
			return fmt.Errorf("%w: %s-%s y %s", domain.ErrOverlappingTierRange, prev.TierFrom, prev.TierTo, next.TierFrom)
		}
		if next.TierFrom.GreaterThan(prev.TierTo.Add(unitStep)) {
			return fmt.Errorf("%w: entre %s y %s", domain.ErrGapInTierRange, prev.TierTo, next.TierFrom)
		}
	}
	if requireOpenTop && sorted[len(sorted)-1].TierTo != nil {
		return fmt.Errorf("%w: falta el tramo superior abierto", domain.ErrGapInTierRange)
	}
	return nil
}

// EffectiveSet filtra los tramos activos y vigentes en asOf.
func EffectiveSet(tiers []*entity.RateTier, asOf time.Time) []*entity.RateTier {
	out := make([]*entity.RateTier, 0, len(tiers))
	for _, t := range tiers {
		if t.EffectiveAt(asOf) {
			out = append(out, t)
		}
	}
	return out
}

// Checkpoints devuelve los instantes en que cambia el conjunto vigente dentro de
// [from, to): el propio from y cada inicio o fin de vigencia de otros tramos en el rango.
func Checkpoints(tiers []*entity.RateTier, from time.Time, to *time.Time) []time.Time {
	inRange := func(t time.Time) bool {
		return !t.Before(from) && (to == nil || t.Before(*to))
	}
	seen := map[int64]bool{from.UnixNano(): true}
	points := []time.Time{from}
	add := func(t time.Time) {
		if inRange(t) && !seen[t.UnixNano()] {
			seen[t.UnixNano()] = true
			points = append(points, t)
		}
	}
	for _, t := range tiers {
		add(t.EffectiveFrom)
		if t.EffectiveTo != nil {
			add(*t.EffectiveTo)
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Before(points[j]) })
	return points
}
