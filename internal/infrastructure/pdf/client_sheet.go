// Package pdf genera la ficha del cliente en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + Identificación  │  Estado + Versión        │
//	│  DATOS COMERCIALES: tipo, segmento, canal, score            │
//	│  TELÉFONOS | DIRECCIONES | SUCURSALES (incluye inactivos)    │
//	│  CONTACTO TRANSACCIONAL                                      │
//	│  FOOTER: QR con el ID del cliente + fecha de emisión         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorInactive = &props.Color{Red: 170, Green: 170, Blue: 170}
)

// MarotoClientSheetGenerator implementa ports.ClientSheetGenerator con Maroto v2.
type MarotoClientSheetGenerator struct {
	now func() time.Time
}

// NewMarotoClientSheetGenerator construye el generador.
func NewMarotoClientSheetGenerator() *MarotoClientSheetGenerator {
	return &MarotoClientSheetGenerator{now: time.Now}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoClientSheetGenerator) Generate(client *entity.Client) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de cliente", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(client))
	m.AddRows(separator(0.5))
	m.AddRows(commercialRow(client))
	m.AddRows(separator(0.3))

	m.AddRows(sectionTitle("TELÉFONOS"))
	m.AddRows(phoneRows(client.Phones)...)
	m.AddRows(sectionTitle("DIRECCIONES"))
	m.AddRows(addressRows(client.Addresses)...)
	m.AddRows(sectionTitle("SUCURSALES"))
	m.AddRows(branchRows(client.Branches)...)
	m.AddRows(sectionTitle("CONTACTO TRANSACCIONAL"))
	m.AddRows(contactRow(client.TransactionalContact))

	m.AddRows(line.NewRow(3))
	m.AddRows(separator(0.3))
	m.AddRows(footerRow(client, g.now()))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ficha: %w", err)
	}
	return doc.GetBytes(), nil
}

func separator(thickness float64) core.Row {
	return line.NewRow(1, props.Line{Color: colorPrimary, Thickness: thickness})
}

func headerRow(c *entity.Client) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s: %s", c.IdentificationType, c.IdentificationNumber), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("FICHA DE CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(c.State, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New(fmt.Sprintf("Versión %d", c.Version), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func commercialRow(c *entity.Client) core.Row {
	score := "-"
	if c.InternalScore != nil {
		score = c.InternalScore.StringFixed(2)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS COMERCIALES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Tipo: %s   |   Segmento: %s   |   Canal: %s   |   Score interno: %s",
				nonEmpty(c.ClientType, "-"),
				nonEmpty(c.Segment, "-"),
				nonEmpty(c.AffiliationChannel, "-"),
				score,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// itemRow una línea de detalle; los elementos inactivos se muestran atenuados.
func itemRow(state string, cells ...string) core.Row {
	style := props.Text{Size: 8, Top: 1, Left: 1}
	if state == entity.StateInactive {
		style.Color = colorInactive
		style.Style = fontstyle.Italic
	}
	size := 10 / len(cells)
	cols := make([]core.Col, 0, len(cells)+1)
	for _, c := range cells {
		cols = append(cols, col.New(size).Add(text.New(c, style)))
	}
	stateStyle := style
	stateStyle.Align = align.Right
	cols = append(cols, col.New(12-size*len(cells)).Add(text.New(state, stateStyle)))
	return row.New(6).Add(cols...)
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Sin registros", props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray, Style: fontstyle.Italic}),
	))
}

func phoneRows(phones []entity.Phone) []core.Row {
	if len(phones) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(phones))
	for i, p := range phones {
		rows = append(rows, itemRow(p.State, fmt.Sprintf("#%d", i), p.Type, p.Number))
	}
	return rows
}

func addressRows(addresses []entity.Address) []core.Row {
	if len(addresses) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(addresses))
	for _, a := range addresses {
		rows = append(rows, itemRow(a.State,
			a.Type,
			joinNonEmpty(a.Line1, a.Line2),
			joinNonEmpty(a.ProvinceCode, a.CantonCode, a.ParishCode),
		))
	}
	return rows
}

func branchRows(branches []entity.BranchAssociation) []core.Row {
	if len(branches) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(branches))
	for _, b := range branches {
		rows = append(rows, itemRow(b.State, b.BranchCode, b.CreatedAt.Format("02/01/2006")))
	}
	return rows
}

func contactRow(tc *entity.TransactionalContact) core.Row {
	if tc == nil {
		return emptyRow()
	}
	return itemRow(tc.State, nonEmpty(tc.Phone, "-"), nonEmpty(tc.Email, "-"))
}

func footerRow(c *entity.Client, issuedAt time.Time) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(c.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("ID: "+c.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("Emitida el "+issuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Top: 10, Left: 3, Color: colorGray,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " / "
		}
		out += p
	}
	return nonEmpty(out, "-")
}
