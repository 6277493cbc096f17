package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/domain/repository"
)

var _ repository.RateTierRepository = (*RateTierRepo)(nil)

// rateLockNamespace primera llave de los advisory locks de tarifas.
const rateLockNamespace = 7301

const rateTierColumns = `
	id, name, customer_class, tier_from, tier_to, rate_per_unit, fixed_charge,
	effective_from, effective_to, active, description, created_at`

// RateTierRepo implementación de RateTierRepository sobre PostgreSQL.
type RateTierRepo struct {
	q Querier
}

// NewRateTierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRateTierRepository(q Querier) *RateTierRepo {
	return &RateTierRepo{q: q}
}

// LockClass toma un advisory lock de transacción por clase. Los escritores lo toman
// exclusivo y los lectores compartido, así una lectura nunca ve una versión a medias.
func (r *RateTierRepo) LockClass(ctx context.Context, class entity.CustomerClass, shared bool) error {
	query := `SELECT pg_advisory_xact_lock($1, hashtext($2))`
	if shared {
		query = `SELECT pg_advisory_xact_lock_shared($1, hashtext($2))`
	}
	if _, err := r.q.Exec(ctx, query, int32(rateLockNamespace), string(class)); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	return nil
}

// Create inserta un tramo.
func (r *RateTierRepo) Create(ctx context.Context, t *entity.RateTier) error {
	query := `
		INSERT INTO rate_tiers (` + rateTierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Name, string(t.CustomerClass), t.TierFrom, t.TierTo, t.RatePerUnit, t.FixedCharge,
		t.EffectiveFrom, t.EffectiveTo, t.Active, t.Description, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rate tier: %w", err)
	}
	return nil
}

// CloseVersion recorta a at los tramos que siguen vigentes en at, abiertos o con fin posterior.
func (r *RateTierRepo) CloseVersion(ctx context.Context, class entity.CustomerClass, at time.Time) (int, error) {
	query := `
		UPDATE rate_tiers SET effective_to = $2
		WHERE customer_class = $1 AND effective_from < $2
		  AND (effective_to IS NULL OR effective_to > $2)`
	tag, err := r.q.Exec(ctx, query, string(class), at)
	if err != nil {
		return 0, fmt.Errorf("close rate version: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ListEffective tramos activos vigentes en asOf.
func (r *RateTierRepo) ListEffective(ctx context.Context, class entity.CustomerClass, asOf time.Time) ([]*entity.RateTier, error) {
	query := `
		SELECT ` + rateTierColumns + `
		FROM rate_tiers
		WHERE customer_class = $1 AND active
		  AND effective_from <= $2
		  AND (effective_to IS NULL OR effective_to > $2)
		ORDER BY tier_from, tier_to NULLS LAST`
	rows, err := r.q.Query(ctx, query, string(class), asOf)
	if err != nil {
		return nil, fmt.Errorf("list effective tiers: %w", err)
	}
	return scanRateTiers(rows)
}

// ListByClass todas las versiones de la clase.
func (r *RateTierRepo) ListByClass(ctx context.Context, class entity.CustomerClass) ([]*entity.RateTier, error) {
	query := `
		SELECT ` + rateTierColumns + `
		FROM rate_tiers
		WHERE customer_class = $1
		ORDER BY effective_from, tier_from, tier_to NULLS LAST`
	rows, err := r.q.Query(ctx, query, string(class))
	if err != nil {
		return nil, fmt.Errorf("list class tiers: %w", err)
	}
	return scanRateTiers(rows)
}

func scanRateTiers(rows pgx.Rows) ([]*entity.RateTier, error) {
	defer rows.Close()
	var out []*entity.RateTier
	for rows.Next() {
		var t entity.RateTier
		var class string
		if err := rows.Scan(
			&t.ID, &t.Name, &class, &t.TierFrom, &t.TierTo, &t.RatePerUnit, &t.FixedCharge,
			&t.EffectiveFrom, &t.EffectiveTo, &t.Active, &t.Description, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rate tier: %w", err)
		}
		t.CustomerClass = entity.CustomerClass(class)
		out = append(out, &t)
	}
	return out, rows.Err()
}
