// Package pdf implementa la generación de la representación imprimible de una
// boleta de venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Vendedor  │  N° Boleta + Fecha                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Documento + Email                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                      │
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

	appboleta "github.com/sistema-ventas/facturacion-api/internal/application/boleta"
	"github.com/sistema-ventas/facturacion-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appboleta.BoletaPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa boleta.BoletaPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateBoletaPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBoletaPDF(
	_ context.Context,
	b *entity.Boleta,
	vendedor *entity.Usuario,
	detalles []*entity.DetalleBoleta,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Boleta de Venta", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(b, vendedor))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, d := range detalles {
		m.AddRows(detalleRow(d))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(b))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: vendedor (izq) y número + fecha (der).
func headerRow(b *entity.Boleta, vendedor *entity.Usuario) core.Row {
	nombreVendedor := "Vendedor Desconocido"
	documento := "N/A"
	if vendedor != nil {
		nombreVendedor = vendedor.NombreCompleto()
		documento = nonEmpty(vendedor.NumeroDocumento, "N/A")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nombreVendedor, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Documento: "+documento, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("BOLETA DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", b.IDBoleta), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+b.FechaCreacion.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clienteRow: datos del cliente desnormalizados en la cabecera.
func clienteRow(b *entity.Boleta) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Nombre: %s   |   Documento: %s   |   Email: %s",
				b.NombreCliente,
				nonEmpty(b.DocumentoCliente, "—"),
				nonEmpty(b.EmailCliente, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		col.New(2).Add(text.New("Cant.", header)),
		col.New(6).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("P. Unit.", propsRight(header))),
		col.New(2).Add(text.New("Subtotal", propsRight(header))),
	)
}

func detalleRow(d *entity.DetalleBoleta) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	return row.New(6).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", d.Cantidad), cell)),
		col.New(6).Add(text.New(d.Producto, cell)),
		col.New(2).Add(text.New(d.PrecioUnitario.StringFixed(2), propsRight(cell))),
		col.New(2).Add(text.New(d.Subtotal.StringFixed(2), propsRight(cell))),
	)
}

func totalRow(b *entity.Boleta) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary,
		})),
		col.New(2).Add(text.New(b.Total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
		})),
	)
}

func propsRight(p props.Text) props.Text {
	p.Align = align.Right
	return p
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
