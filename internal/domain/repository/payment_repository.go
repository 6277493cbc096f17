package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

// PaymentRepository registro append-only de pagos.
type PaymentRepository interface {
	// Append persiste el pago. (bill_id, sequence) es único: un consecutivo repetido devuelve
	// domain.ErrConcurrentModification y una referencia repetida en la misma factura
	// devuelve domain.ErrDuplicate.
	Append(ctx context.Context, payment *entity.Payment) error
	ListByBill(ctx context.Context, billID string) ([]*entity.Payment, error)
	// ListByCustomer historial de pagos del cliente, más recientes primero. Rango [from, to), ambos opcionales.
	ListByCustomer(ctx context.Context, customerID string, from, to *time.Time, limit int) ([]*entity.Payment, error)
	CountByBill(ctx context.Context, billID string) (int, error)
}
