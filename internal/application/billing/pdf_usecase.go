package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

// PDFUseCase genera el recibo imprimible (PDF) de una factura.
type PDFUseCase struct {
	tx        TxRunner
	generator BillPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(tx TxRunner, generator BillPDFGenerator) *PDFUseCase {
	return &PDFUseCase{tx: tx, generator: generator}
}

// BillPDF recupera factura, cliente, medidor y pagos y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrBillVoided       si la factura fue anulada.
func (uc *PDFUseCase) BillPDF(ctx context.Context, billID string) (pdfBytes []byte, filename string, err error) {
	var (
		bill     *entity.Bill
		customer *entity.Customer
		meter    *entity.WaterMeter
		payments []*entity.Payment
	)
	err = uc.tx.RunInTx(ctx, func(r TxRepos) error {
		// ── 1. Cargar factura ─────────────────────────────────────────────────
		b, err := r.Bills.GetByID(ctx, billID)
		if err != nil {
			return fmt.Errorf("pdf: obtener factura: %w", err)
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.IsVoided() {
			return domain.ErrBillVoided
		}
		bill = b

		// ── 2. Cliente y medidor ──────────────────────────────────────────────
		if customer, err = getCustomer(ctx, r, b.CustomerID); err != nil {
			return fmt.Errorf("pdf: obtener cliente: %w", err)
		}
		if meter, err = r.Meters.GetByID(ctx, b.MeterID); err != nil {
			return fmt.Errorf("pdf: obtener medidor: %w", err)
		}

		// ── 3. Pagos (para el bloque de abonos del recibo) ─────────────────────
		if payments, err = r.Payments.ListByBill(ctx, b.ID); err != nil {
			return fmt.Errorf("pdf: obtener pagos: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateBillPDF(ctx, bill, customer, meter, payments)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", bill.BillNumber), nil
}
