package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

// RateTierRepository define el puerto de persistencia de tramos tarifarios (append-only).
type RateTierRepository interface {
	// LockClass serializa escritores de la clase; con shared=true toma un bloqueo de lectura.
	LockClass(ctx context.Context, class entity.CustomerClass, shared bool) error
	Create(ctx context.Context, tier *entity.RateTier) error
	// CloseVersion fija effective_to = at en los tramos de la clase con effective_from < at
	// que siguen vigentes en at (abiertos o con effective_to > at).
	CloseVersion(ctx context.Context, class entity.CustomerClass, at time.Time) (int, error)
	// ListEffective tramos activos vigentes en asOf, ordenados por tier_from.
	ListEffective(ctx context.Context, class entity.CustomerClass, asOf time.Time) ([]*entity.RateTier, error)
	// ListByClass todas las versiones de la clase (historial).
	ListByClass(ctx context.Context, class entity.CustomerClass) ([]*entity.RateTier, error)
}
