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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `
	id, bill_id, customer_id, sequence, amount, method, paid_at,
	collector_id, collector_name, reference, notes, receipt_number, created_at`

// PaymentRepo implementación append-only de PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de pagos. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Append inserta el pago. Referencias vacías se guardan como NULL para no chocar entre sí.
func (r *PaymentRepo) Append(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.BillID, p.CustomerID, p.Sequence, p.Amount, string(p.Method), p.PaidAt,
		p.CollectorID, p.CollectorName, p.Reference, p.Notes, p.ReceiptNumber, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			switch violatedConstraint(err) {
			case constraintPaymentsSequence:
				return domain.ErrConcurrentModification
			case constraintPaymentsReference:
				return fmt.Errorf("%w: referencia %s", domain.ErrDuplicate, p.Reference)
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByBill pagos de la factura por consecutivo.
func (r *PaymentRepo) ListByBill(ctx context.Context, billID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE bill_id = $1 ORDER BY sequence`
	rows, err := r.q.Query(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("list bill payments: %w", err)
	}
	return scanPayments(rows)
}

// ListByCustomer historial del cliente en [from, to), más recientes primero.
func (r *PaymentRepo) ListByCustomer(ctx context.Context, customerID string, from, to *time.Time, limit int) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + ` FROM payments
		WHERE customer_id = $1
		  AND ($2::timestamptz IS NULL OR paid_at >= $2)
		  AND ($3::timestamptz IS NULL OR paid_at < $3)
		ORDER BY paid_at DESC, sequence DESC
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, customerID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("list customer payments: %w", err)
	}
	return scanPayments(rows)
}

// CountByBill número de pagos de la factura.
func (r *PaymentRepo) CountByBill(ctx context.Context, billID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM payments WHERE bill_id = $1`, billID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

func scanPayments(rows pgx.Rows) ([]*entity.Payment, error) {
	defer rows.Close()
	var out []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var method string
		var reference *string
		if err := rows.Scan(
			&p.ID, &p.BillID, &p.CustomerID, &p.Sequence, &p.Amount, &method, &p.PaidAt,
			&p.CollectorID, &p.CollectorName, &reference, &p.Notes, &p.ReceiptNumber, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.Method = entity.PaymentMethod(method)
		if reference != nil {
			p.Reference = *reference
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
