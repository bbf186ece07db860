// Package orderpdf renders the order summary attached to staff notifications.
package orderpdf

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/corray333/backend-labs/notify/internal/service/models/currency"
	"github.com/corray333/backend-labs/notify/internal/service/models/order"
	"github.com/go-pdf/fpdf"
)

const (
	margin       = 20.0 // mm
	contentWidth = 210.0 - 2*margin

	fontFamily = "OrderSans"

	gridLineWidth = 0.18 // 0.5pt
	ruleLineWidth = 0.35 // 1pt
)

var (
	customerWidths = []float64{40, 120}
	itemWidths     = []float64{15, 70, 25, 20, 30}
	totalsWidths   = []float64{130, 30}
)

// DejaVu Sans covers Cyrillic and the rouble sign.
var (
	//go:embed fonts/DejaVuSans.ttf
	defaultFontRegular []byte
	//go:embed fonts/DejaVuSans-Bold.ttf
	defaultFontBold []byte
)

type rgb struct{ r, g, b int }

var (
	colorBrand   = rgb{0x22, 0xc5, 0x5e}
	colorLabelBg = rgb{0xf0, 0xf9, 0xff}
	colorStripe  = rgb{0xf9, 0xfa, 0xfb}
	colorGrid    = rgb{0x80, 0x80, 0x80}
	colorWhite   = rgb{0xff, 0xff, 0xff}
	colorBlack   = rgb{0x00, 0x00, 0x00}
)

// Renderer draws order documents. It keeps no state between renders.
type Renderer struct {
	shopName    string
	currency    currency.Currency
	fontRegular string
	fontBold    string
	compress    bool
}

// option is a function that configures the Renderer.
type option func(*Renderer)

// New creates a Renderer.
func New(opts ...option) *Renderer {
	r := &Renderer{
		currency: currency.CurrencyRUB,
		compress: true,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithShop sets the business name printed in the title and the currency of amounts.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithShop(name string, cur currency.Currency) option {
	return func(r *Renderer) {
		r.shopName = name
		r.currency = cur
	}
}

// WithFonts replaces the bundled fonts with UTF-8 TrueType font files. A
// missing bold face falls back to the regular one. An empty regular path keeps
// the bundled fonts.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithFonts(regular, bold string) option {
	return func(r *Renderer) {
		r.fontRegular = regular
		r.fontBold = bold
	}
}

// WithCompression toggles content stream compression.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCompression(compress bool) option {
	return func(r *Renderer) {
		r.compress = compress
	}
}

// Layout returns the strings Render would draw for o.
func (r *Renderer) Layout(o order.Order) Layout {
	return BuildLayout(o, r.shopName, r.currency)
}

// Render produces the A4 PDF for o.
func (r *Renderer) Render(ctx context.Context, o order.Order) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := r.Layout(o)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCompression(r.compress)
	pdf.SetCreator("order-notify-svc", true)
	pdf.SetTitle(l.Title, true)

	if err := r.setupFonts(pdf); err != nil {
		return nil, err
	}
	pdf.AddPage()
	d := &drawer{pdf: pdf}

	d.title(l.Title)
	d.customerTable(l.Customer)
	d.itemsTable(l.ItemsTitle, l.ItemsHeader, l.Items)
	d.totalsTable(l.Totals)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *Renderer) loadFonts() (regular, bold []byte, err error) {
	if r.fontRegular == "" {
		return defaultFontRegular, defaultFontBold, nil
	}

	regular, err = os.ReadFile(r.fontRegular)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read regular font: %w", err)
	}
	bold = regular
	if r.fontBold != "" {
		if bold, err = os.ReadFile(r.fontBold); err != nil {
			return nil, nil, fmt.Errorf("failed to read bold font: %w", err)
		}
	}

	return regular, bold, nil
}

func (r *Renderer) setupFonts(pdf *fpdf.Fpdf) error {
	regular, bold, err := r.loadFonts()
	if err != nil {
		return err
	}

	pdf.AddUTF8FontFromBytes(fontFamily, "", regular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", bold)
	// fpdf does not report an unparsable font until it is selected.
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFont(fontFamily, "", 10)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to load fonts: %w", err)
	}

	return nil
}

// drawer wraps the fpdf document with the styles of the order summary.
type drawer struct {
	pdf *fpdf.Fpdf
}

func (d *drawer) font(style string, size float64, c rgb) {
	d.pdf.SetFont(fontFamily, style, size)
	d.pdf.SetTextColor(c.r, c.g, c.b)
}

func (d *drawer) fill(c rgb) {
	d.pdf.SetFillColor(c.r, c.g, c.b)
}

func (d *drawer) cell(w, h float64, txt, border, align string, ln int, fill bool) {
	d.pdf.CellFormat(w, h, txt, border, ln, align, fill, 0, "")
}

// tableX returns the left edge of a horizontally centered table.
func tableX(widths []float64) float64 {
	var total float64
	for _, w := range widths {
		total += w
	}

	return margin + (contentWidth-total)/2
}

func (d *drawer) ensureSpace(h float64) {
	_, pageH := d.pdf.GetPageSize()
	if d.pdf.GetY()+h > pageH-margin {
		d.pdf.AddPage()
	}
}

func (d *drawer) grid() {
	d.pdf.SetDrawColor(colorGrid.r, colorGrid.g, colorGrid.b)
	d.pdf.SetLineWidth(gridLineWidth)
}

func (d *drawer) title(title string) {
	d.font("B", 18, colorBrand)
	d.cell(0, 10, title, "", "C", 1, false)
	d.pdf.Ln(12)
}

func (d *drawer) customerTable(rows []Row) {
	const rowH = 9.0
	x := tableX(customerWidths)
	d.grid()
	d.fill(colorLabelBg)

	for _, row := range rows {
		d.ensureSpace(rowH)
		d.pdf.SetX(x)
		d.font("B", 10, colorBlack)
		d.cell(customerWidths[0], rowH, row.Label, "1", "R", 0, true)
		d.font("", 10, colorBlack)
		d.cell(customerWidths[1], rowH, row.Value, "1", "L", 1, false)
	}
	d.pdf.Ln(10)
}

func (d *drawer) itemsTable(heading string, header []string, rows [][]string) {
	const rowH = 9.0
	x := tableX(itemWidths)

	d.ensureSpace(10 + 2*rowH)
	d.font("B", 14, colorBlack)
	d.cell(0, 8, heading, "", "L", 1, false)
	d.pdf.Ln(3)

	d.grid()
	d.pdf.SetX(x)
	d.font("B", 11, colorWhite)
	d.fill(colorBrand)
	for i, h := range header {
		d.cell(itemWidths[i], rowH, h, "1", "C", 0, true)
	}
	d.pdf.Ln(rowH)

	d.font("", 10, colorBlack)
	for n, row := range rows {
		d.ensureSpace(rowH)
		if n%2 == 0 {
			d.fill(colorWhite)
		} else {
			d.fill(colorStripe)
		}
		d.pdf.SetX(x)
		for i, v := range row {
			d.cell(itemWidths[i], rowH, v, "1", "C", 0, true)
		}
		d.pdf.Ln(rowH)
	}
	d.pdf.Ln(5)
}

func (d *drawer) totalsTable(rows []Row) {
	const rowH = 7.0
	x := tableX(totalsWidths)
	width := totalsWidths[0] + totalsWidths[1]

	for i, row := range rows {
		last := i == len(rows)-1
		d.ensureSpace(rowH)
		if last {
			d.pdf.SetDrawColor(colorBlack.r, colorBlack.g, colorBlack.b)
			d.pdf.SetLineWidth(ruleLineWidth)
			y := d.pdf.GetY()
			d.pdf.Line(x, y, x+width, y)
			d.font("B", 12, colorBlack)
		} else {
			d.font("", 10, colorBlack)
		}
		d.pdf.SetX(x)
		d.cell(totalsWidths[0], rowH, row.Label, "", "R", 0, false)
		d.cell(totalsWidths[1], rowH, row.Value, "", "R", 1, false)
	}
}
