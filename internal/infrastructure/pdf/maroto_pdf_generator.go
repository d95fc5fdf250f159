// Package pdf implementa la exportación del resumen de turno.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Resumen de turno + caja │ Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Inicial / Contado / Crédito / Disponible          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Inicial | Contado | Crédito | Disp | Valor│
//	│  ─────────────────────────────────────────────────────────  │
//	│  VALORES: Contado / Crédito / TOTAL VENDIDO                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

var _ appshift.SummaryPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCredit  = &props.Color{Red: 180, Green: 95, Blue: 6}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa shift.SummaryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	business string
	printer  *message.Printer
}

// NewMarotoPDFGenerator construye el generador. business aparece en el encabezado.
func NewMarotoPDFGenerator(business string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{business: business, printer: message.NewPrinter(language.Spanish)}
}

// GenerateShiftSummaryPDF genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateShiftSummaryPDF(_ context.Context, s entity.ShiftSummary, deviceID string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de turno", true).
		WithAuthor(g.business, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(s, deviceID))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.totalsRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(s.ProductsDetail) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas registradas en el turno.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for _, r := range g.tableDetailRows(s.ProductsDetail) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.valuesRow(s))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(s entity.ShiftSummary, deviceID string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.business, "Punto de venta"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Caja: "+nonEmpty(deviceID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RESUMEN DE TURNO", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+s.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// totalsRow: cuatro indicadores de unidades.
func (g *MarotoPDFGenerator) totalsRow(s entity.ShiftSummary) core.Row {
	box := func(label string, v int, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(g.units(v), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 5}),
		)
	}
	return row.New(14).Add(
		box("Inicial", s.TotalInitial, colorPrimary),
		box("Vendido contado", s.TotalSoldCash, colorPrimary),
		box("Vendido crédito", s.TotalSoldCredit, colorCredit),
		box("Disponible", s.TotalAvailable, colorPrimary),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Inicial", 1, align.Center),
		h("Contado", 2, align.Center),
		h("Crédito", 1, align.Center),
		h("Disp.", 1, align.Center),
		h("Valor", 3, align.Right),
	)
}

// tableDetailRows: una fila por producto con ventas, en el orden del resumen.
func (g *MarotoPDFGenerator) tableDetailRows(details []entity.ProductShiftDetail) []core.Row {
	result := make([]core.Row, 0, len(details))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, d := range details {
		result = append(result, row.New(7).Add(
			cell(d.Name, 4, align.Left),
			cell(g.units(d.Initial), 1, align.Center),
			cell(g.units(d.SoldCash), 2, align.Center),
			cell(g.units(d.SoldCredit), 1, align.Center),
			cell(g.units(d.Available), 1, align.Center),
			cell(g.money(d.SoldValue), 3, align.Right),
		))
	}
	return result
}

func (g *MarotoPDFGenerator) valuesRow(s entity.ShiftSummary) core.Row {
	label := func(v string, c *props.Color) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Color: c})
	}
	value := func(v string, c *props.Color) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1, Color: c})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Contado:", nil),
			label("Crédito:", colorCredit),
			label("TOTAL VENDIDO:", colorPrimary),
		),
		col.New(3).Add(
			value(g.money(s.TotalSoldValueCash), nil),
			value(g.money(s.TotalSoldValueCredit), colorCredit),
			value(g.money(s.TotalSoldValue), colorPrimary),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) units(n int) string {
	return g.printer.Sprintf("%d", n)
}

// money pesos sin decimales con separador de miles: 25000 → "$25.000".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprintf("%d", d.Round(0).IntPart())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
