package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

// BillRepository define el puerto de persistencia para Bill.
type BillRepository interface {
	// Create devuelve domain.ErrDuplicateBillingPeriod si ya existe una factura vigente
	// para (meter_id, billing_period_from, billing_period_to).
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	// FindActiveByPeriod factura no anulada del medidor y periodo (nil si no existe).
	FindActiveByPeriod(ctx context.Context, meterID string, from, to time.Time) (*entity.Bill, error)
	// SavePayment persiste paid_amount, balance_amount, status y paid_at si la versión
	// almacenada es expectedVersion; si no, devuelve domain.ErrConcurrentModification.
	SavePayment(ctx context.Context, bill *entity.Bill, expectedVersion int) error
	// SaveStatus persiste status, voided_at y void_reason con la misma verificación de versión.
	SaveStatus(ctx context.Context, bill *entity.Bill, expectedVersion int) error
	// ListDueForStatusTransition facturas enviadas con due_date < asOf.
	ListDueForStatusTransition(ctx context.Context, asOf time.Time) ([]*entity.Bill, error)
	// ListByCustomer facturas no anuladas del cliente en los estados dados (todos si vacío).
	ListByCustomer(ctx context.Context, customerID string, statuses []entity.BillStatus) ([]*entity.Bill, error)
}
