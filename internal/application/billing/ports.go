package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/domain/repository"
)

// TxRepos repositorios ligados a una misma transacción.
type TxRepos struct {
	Rates     repository.RateTierRepository
	Bills     repository.BillRepository
	Payments  repository.PaymentRepository
	Readings  repository.MeterReadingRepository
	Meters    repository.WaterMeterRepository
	Customers repository.CustomerRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn retorna error se hace rollback
// y ningún cambio queda visible.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(repos TxRepos) error) error
}

// TierLoader consulta los tramos vigentes en la fuente de verdad.
type TierLoader func(ctx context.Context) ([]*entity.RateTier, error)

// TierCache caché opcional de tramos vigentes por clase y fecha. GetOrLoad solo guarda
// resultados válidos de load; Invalidate se llama tras cada escritura de tarifas de la clase.
type TierCache interface {
	GetOrLoad(ctx context.Context, class entity.CustomerClass, asOf time.Time, load TierLoader) ([]*entity.RateTier, error)
	Invalidate(ctx context.Context, class entity.CustomerClass)
}

// BillPDFGenerator genera la representación gráfica de una factura (recibo imprimible).
type BillPDFGenerator interface {
	GenerateBillPDF(ctx context.Context, bill *entity.Bill, customer *entity.Customer, meter *entity.WaterMeter, payments []*entity.Payment) ([]byte, error)
}

// Clock fuente de tiempo inyectable (tests).
type Clock func() time.Time
