// Package pdf implementa la generación de la nota de entrega en PDF que
// acompaña cada salida de mercancía.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller + N° Salida + Fecha                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + NIT/CC + contacto                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | SKU | Descripción del producto                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OBSERVACIONES + firma de recibido                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	appissuance "github.com/jhoicas/Taller-api/internal/application/issuance"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa issuance.DeliveryNotePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	workshopName string
}

// NewMarotoPDFGenerator construye el generador. workshopName aparece en el
// encabezado de cada nota.
func NewMarotoPDFGenerator(workshopName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{workshopName: workshopName}
}

// GenerateDeliveryNotePDF genera el PDF de la nota de entrega y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDeliveryNotePDF(
	_ context.Context,
	iss *entity.Issuance,
	client *entity.Client,
	lines []appissuance.DeliveryLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de Entrega "+iss.Number, true).
		WithAuthor(g.workshopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.workshopName, iss))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range footerRows(iss) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del taller (izq) y N° de salida + fecha (der).
func headerRow(workshopName string, iss *entity.Issuance) core.Row {
	fecha := iss.Date.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(workshopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Nota de entrega de mercancía", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("SALIDA DE MERCANCÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(iss.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente que recibe.
func clientRow(client *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ENTREGAR A", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT/CC: %s   |   Tel: %s   |   Dirección: %s",
				nonEmpty(client.TaxID, "—"),
				nonEmpty(client.Phone, "—"),
				nonEmpty(client.Address, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas entregadas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("SKU", 3, align.Left),
		h("Descripción del producto", 7, align.Left),
	)
}

// tableDetailRows: una fila por línea de salida.
func tableDetailRows(lines []appissuance.DeliveryLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				strconv.FormatInt(l.Quantity, 10),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(l.SKU, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(7).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// footerRows: observaciones y espacio de firma de quien recibe.
func footerRows(iss *entity.Issuance) []core.Row {
	rows := []core.Row{}
	if iss.Remarks != "" {
		rows = append(rows,
			row.New(6).Add(col.New(12).Add(
				text.New("OBSERVACIONES", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
			)),
			row.New(8).Add(col.New(12).Add(
				text.New(iss.Remarks, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
			)),
		)
	}
	rows = append(rows,
		row.New(20),
		row.New(10).Add(
			col.New(5).Add(
				text.New("_______________________________", props.Text{Size: 9, Top: 1}),
				text.New("Recibido por (nombre y firma)", props.Text{
					Size: 7, Top: 7, Color: colorGray,
				}),
			),
			col.New(2),
			col.New(5).Add(
				text.New("_______________________________", props.Text{Size: 9, Top: 1}),
				text.New("Entregado por", props.Text{
					Size: 7, Top: 7, Color: colorGray,
				}),
			),
		),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"La mercancía descrita sale del inventario del taller con esta nota. "+
					"Cualquier devolución debe referenciar el número de salida.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	)
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
