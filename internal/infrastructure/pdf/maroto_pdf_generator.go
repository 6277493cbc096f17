// Package pdf genera el recibo imprimible de una factura de acueducto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT        │  N° Factura + Fechas         │
//	│  SUSCRIPTOR: Nombre + Cuenta + Dirección + Medidor           │
//	│  CONSUMO: Periodo | m³ facturados | Estado                   │
//	│  TABLA: Concepto | Valor                                     │
//	│  TOTALES: Total / Abonado / SALDO A PAGAR                    │
//	│  ABONOS: Fecha | Recibo | Medio | Valor                      │
//	│  FOOTER: QR con referencia de pago + leyenda                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
)

var _ appbilling.BillPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 94, Blue: 140}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// Issuer datos de la empresa de acueducto que emite la factura.
type Issuer struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.BillPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer Issuer
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(issuer Issuer) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{issuer: issuer}
}

// GenerateBillPDF genera el PDF y devuelve sus bytes. meter puede ser nil.
func (g *MarotoPDFGenerator) GenerateBillPDF(
	_ context.Context,
	bill *entity.Bill,
	customer *entity.Customer,
	meter *entity.WaterMeter,
	payments []*entity.Payment,
) ([]byte, error) {
	if bill == nil || customer == nil {
		return nil, fmt.Errorf("pdf: factura y cliente son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de servicio de acueducto "+bill.BillNumber, true).
		WithAuthor(g.issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(subscriberRow(customer, meter))
	m.AddRows(consumptionRow(bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(chargeRows(bill)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(bill))

	if len(payments) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(paymentRows(payments)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(bill, customer))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + NIT (izq) y N° factura + fechas (der).
func (g *MarotoPDFGenerator) headerRow(bill *entity.Bill) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.issuer.Name, "Acueducto"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(g.issuer.TaxID, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%s   |   Tel: %s", nonEmpty(g.issuer.Address, "-"), nonEmpty(g.issuer.Phone, "-")),
				props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURA DE SERVICIO DE ACUEDUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(bill.BillNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+bill.BillDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Pague antes de: "+bill.DueDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 17, Color: colorAlert,
			}),
		),
	)
}

// subscriberRow: datos del suscriptor y medidor.
func subscriberRow(customer *entity.Customer, meter *entity.WaterMeter) core.Row {
	meterNumber := "-"
	if meter != nil {
		meterNumber = meter.MeterNumber
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("SUSCRIPTOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Cuenta: %s   |   Clase: %s   |   Medidor: %s   |   Dirección: %s",
				nonEmpty(customer.AccountNumber, "-"),
				nonEmpty(string(customer.CustomerClass), "-"),
				meterNumber,
				nonEmpty(customer.Address, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// consumptionRow: periodo facturado y consumo.
func consumptionRow(bill *entity.Bill) core.Row {
	period := fmt.Sprintf("%s al %s",
		bill.BillingPeriodFrom.Format("02/01/2006"), bill.BillingPeriodTo.Format("02/01/2006"))
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 9, Top: 6}),
		)
	}
	return row.New(12).Add(
		cell("PERIODO", period),
		cell("CONSUMO", bill.Consumption.StringFixed(2)+" m³"),
		cell("ESTADO", statusLabel(bill.Status)),
	)
}

// tableHeaderRow: cabecera de la tabla de conceptos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 8, align.Left),
		h("Valor", 4, align.Right),
	)
}

// chargeRows: una fila por componente de cargo distinto de cero.
func chargeRows(bill *entity.Bill) []core.Row {
	items := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Consumo de agua (tarifa por bloques)", bill.WaterCharges},
		{"Cargo fijo", bill.FixedCharges},
		{"Cargos de servicio", bill.ServiceCharges},
		{"Intereses de mora", bill.LateFees},
		{"Impuestos", bill.Taxes},
		{"Ajustes", bill.Adjustments},
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		if it.amount.IsZero() {
			continue
		}
		rows = append(rows, row.New(7).Add(
			col.New(8).Add(text.New(it.label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(formatMoney(it.amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// totalsRow: total, abonado y saldo alineados a la derecha.
func totalsRow(bill *entity.Bill) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Total factura:"),
			label("Abonado:"),
			text.New("SALDO A PAGAR:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
			}),
		),
		col.New(4).Add(
			value(formatMoney(bill.TotalAmount)),
			value(formatMoney(bill.PaidAmount)),
			text.New(formatMoney(bill.BalanceAmount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
			}),
		),
	)
}

// paymentRows: abonos registrados a la factura.
func paymentRows(payments []*entity.Payment) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("ABONOS REGISTRADOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, p := range payments {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(p.PaidAt.Format("02/01/2006 15:04"), props.Text{Size: 7.5, Top: 0.5})),
			col.New(4).Add(text.New(p.ReceiptNumber, props.Text{Size: 7.5, Top: 0.5})),
			col.New(2).Add(text.New(string(p.Method), props.Text{Size: 7.5, Top: 0.5, Color: colorGray})),
			col.New(3).Add(text.New(formatMoney(p.Amount), props.Text{Size: 7.5, Align: align.Right, Top: 0.5, Right: 1})),
		))
	}
	return rows
}

// footerRow: QR con la referencia de pago y leyenda.
func footerRow(bill *entity.Bill, customer *entity.Customer) core.Row {
	ref := fmt.Sprintf("%s|%s|%s", bill.BillNumber, customer.AccountNumber, bill.BalanceAmount.StringFixed(2))
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Presente este código en los puntos de recaudo autorizados.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Ref. de pago: "+bill.BillNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 14, Left: 3, Color: colorPrimary,
			}),
			text.New("Después de la fecha límite se aplicarán intereses de mora y la suspensión del servicio.", props.Text{
				Size: 7, Top: 24, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func statusLabel(s entity.BillStatus) string {
	switch s {
	case entity.BillStatusGenerated:
		return "Generada"
	case entity.BillStatusSent:
		return "Enviada"
	case entity.BillStatusOverdue:
		return "Vencida"
	case entity.BillStatusPaid:
		return "Pagada"
	}
	return string(s)
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 25000 → "$25.000,00", -1500.5 → "-$1.500,50"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "," + frac
}
