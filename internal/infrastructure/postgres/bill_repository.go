package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

const billColumns = `
	id, bill_number, customer_id, meter_id, meter_reading_id, bill_date,
	billing_period_from, billing_period_to, consumption,
	water_charges, fixed_charges, service_charges, late_fees, taxes, adjustments,
	total_amount, paid_amount, balance_amount, status, due_date,
	paid_at, voided_at, void_reason, version, created_at, updated_at`

// BillRepo implementación de BillRepository sobre PostgreSQL.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador de facturas. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create inserta la factura. El índice único parcial sobre (meter_id, periodo) cubre la
// carrera entre dos generaciones concurrentes que pasaron la verificación previa.
func (r *BillRepo) Create(ctx context.Context, b *entity.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.BillNumber, b.CustomerID, b.MeterID, b.MeterReadingID, b.BillDate,
		b.BillingPeriodFrom, b.BillingPeriodTo, b.Consumption,
		b.WaterCharges, b.FixedCharges, b.ServiceCharges, b.LateFees, b.Taxes, b.Adjustments,
		b.TotalAmount, b.PaidAmount, b.BalanceAmount, string(b.Status), b.DueDate,
		b.PaidAt, b.VoidedAt, b.VoidReason, b.Version, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if violatedConstraint(err) == constraintBillsActivePeriod {
				return domain.ErrDuplicateBillingPeriod
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID (nil si no existe).
func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	b, err := scanBill(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

// FindActiveByPeriod factura no anulada del medidor y periodo (nil si no existe).
func (r *BillRepo) FindActiveByPeriod(ctx context.Context, meterID string, from, to time.Time) (*entity.Bill, error) {
	query := `
		SELECT ` + billColumns + ` FROM bills
		WHERE meter_id = $1 AND billing_period_from = $2 AND billing_period_to = $3
		  AND voided_at IS NULL`
	b, err := scanBill(r.q.QueryRow(ctx, query, meterID, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find bill by period: %w", err)
	}
	return b, nil
}

// SavePayment persiste los campos de cobro con compare-and-swap sobre version.
func (r *BillRepo) SavePayment(ctx context.Context, b *entity.Bill, expectedVersion int) error {
	query := `
		UPDATE bills
		SET paid_amount = $3, balance_amount = $4, status = $5, paid_at = $6,
		    version = version + 1, updated_at = $7
		WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(ctx, query,
		b.ID, expectedVersion, b.PaidAmount, b.BalanceAmount, string(b.Status), b.PaidAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bill payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

// SaveStatus persiste estado y anulación con compare-and-swap sobre version.
func (r *BillRepo) SaveStatus(ctx context.Context, b *entity.Bill, expectedVersion int) error {
	query := `
		UPDATE bills
		SET status = $3, voided_at = $4, void_reason = $5,
		    version = version + 1, updated_at = $6
		WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(ctx, query,
		b.ID, expectedVersion, string(b.Status), b.VoidedAt, b.VoidReason, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bill status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

// ListDueForStatusTransition facturas enviadas con vencimiento anterior a asOf.
func (r *BillRepo) ListDueForStatusTransition(ctx context.Context, asOf time.Time) ([]*entity.Bill, error) {
	query := `
		SELECT ` + billColumns + ` FROM bills
		WHERE status = $1 AND due_date < $2 AND voided_at IS NULL
		ORDER BY due_date, bill_number`
	rows, err := r.q.Query(ctx, query, string(entity.BillStatusSent), asOf)
	if err != nil {
		return nil, fmt.Errorf("list due bills: %w", err)
	}
	return scanBills(rows)
}

// ListByCustomer facturas no anuladas del cliente en los estados dados.
func (r *BillRepo) ListByCustomer(ctx context.Context, customerID string, statuses []entity.BillStatus) ([]*entity.Bill, error) {
	st := make([]string, 0, len(statuses))
	for _, s := range statuses {
		st = append(st, string(s))
	}
	query := `
		SELECT ` + billColumns + ` FROM bills
		WHERE customer_id = $1 AND voided_at IS NULL
		  AND (cardinality($2::text[]) = 0 OR status = ANY($2))
		ORDER BY due_date, bill_number`
	rows, err := r.q.Query(ctx, query, customerID, st)
	if err != nil {
		return nil, fmt.Errorf("list customer bills: %w", err)
	}
	return scanBills(rows)
}

func scanBill(row pgx.Row) (*entity.Bill, error) {
	var b entity.Bill
	var status string
	var voidReason *string
	err := row.Scan(
		&b.ID, &b.BillNumber, &b.CustomerID, &b.MeterID, &b.MeterReadingID, &b.BillDate,
		&b.BillingPeriodFrom, &b.BillingPeriodTo, &b.Consumption,
		&b.WaterCharges, &b.FixedCharges, &b.ServiceCharges, &b.LateFees, &b.Taxes, &b.Adjustments,
		&b.TotalAmount, &b.PaidAmount, &b.BalanceAmount, &status, &b.DueDate,
		&b.PaidAt, &b.VoidedAt, &voidReason, &b.Version, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Status = entity.BillStatus(status)
	if voidReason != nil {
		b.VoidReason = *voidReason
	}
	return &b, nil
}

func scanBills(rows pgx.Rows) ([]*entity.Bill, error) {
	defer rows.Close()
	var out []*entity.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
