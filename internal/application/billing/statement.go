package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/application/dto"
	"github.com/jhoicas/Acueducto-api/internal/domain"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// openStatuses estados con saldo potencialmente pendiente.
var openStatuses = []entity.BillStatus{
	entity.BillStatusGenerated,
	entity.BillStatusSent,
	entity.BillStatusOverdue,
}

// CustomerStatement facturas pendientes del cliente con totales de cartera. Es la vista
// que usa el recaudador en campo antes de registrar un pago.
func (o *Orchestrator) CustomerStatement(ctx context.Context, customerID string) (*dto.CustomerStatementResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	var customer *entity.Customer
	var bills []*entity.Bill
	err := o.tx.RunInTx(ctx, func(r TxRepos) error {
		var err error
		customer, err = getCustomer(ctx, r, customerID)
		if err != nil {
			return err
		}
		bills, err = r.Bills.ListByCustomer(ctx, customerID, openStatuses)
		if err != nil {
			return fmt.Errorf("list customer bills: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := o.now()
	summary := dto.StatementSummary{
		TotalBills:       len(bills),
		TotalOutstanding: decimal.Zero,
		OverdueAmount:    decimal.Zero,
	}
	for _, b := range bills {
		summary.TotalOutstanding = summary.TotalOutstanding.Add(b.BalanceAmount)
		if b.Status == entity.BillStatusOverdue || b.IsOverdueAt(now) {
			summary.OverdueBills++
			summary.OverdueAmount = summary.OverdueAmount.Add(b.BalanceAmount)
		}
	}
	return &dto.CustomerStatementResponse{
		Customer: toCustomerSummary(customer),
		Bills:    ToBillResponses(bills, now),
		Summary:  summary,
	}, nil
}

// PaymentHistory historial de pagos del cliente con filtros opcionales de fecha.
func (o *Orchestrator) PaymentHistory(ctx context.Context, customerID string, from, to *time.Time, limit int) (*dto.PaymentHistoryResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	var customer *entity.Customer
	err := o.tx.RunInTx(ctx, func(r TxRepos) error {
		var err error
		customer, err = getCustomer(ctx, r, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	payments, err := o.ledger.PaymentHistory(ctx, customerID, from, to, limit)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return &dto.PaymentHistoryResponse{
		Customer:   toCustomerSummary(customer),
		Payments:   ToPaymentResponses(payments),
		TotalPaid:  total,
		TotalCount: len(payments),
	}, nil
}

func getCustomer(ctx context.Context, r TxRepos, id string) (*entity.Customer, error) {
	c, err := r.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
