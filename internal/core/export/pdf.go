package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders the table locally with gofpdf. The backend report
// endpoint produces its own PDF; this one mirrors the CSV content.
type PDFExporter struct {
	maxCellRunes int
}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{maxCellRunes: 120}
}

func (p *PDFExporter) Export(table *Table, w io.Writer) error {
	if len(table.Headers) == 0 {
		return fmt.Errorf("no headers provided")
	}

	orientation := "P"
	if table.Style.Landscape {
		orientation = "L"
	}
	fontSize := table.Style.FontSize
	if fontSize <= 0 {
		fontSize = 9
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	if table.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 8, tr(table.Title))
		pdf.Ln(10)
	}
	if table.Subtitle != "" {
		pdf.SetFont("Arial", "", fontSize)
		pdf.MultiCell(0, 5, tr(table.Subtitle), "", "", false)
		pdf.Ln(2)
	}
	if !table.GeneratedAt.IsZero() {
		pdf.SetFont("Arial", "I", 7)
		pdf.Cell(0, 5, "Generated: "+table.GeneratedAt.Format(TimestampLayout))
		pdf.Ln(7)
	}

	widths := p.columnWidths(pdf, table)
	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	header := func() {
		pdf.SetFont("Arial", "B", fontSize)
		r, g, b := hexToRGB(table.Style.HeaderBgColor)
		pdf.SetFillColor(r, g, b)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range table.Headers {
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", fontSize)
	}
	header()

	lineH := fontSize * 0.5
	for rowIdx, values := range table.Rows {
		cells := make([]string, len(table.Headers))
		lines := 1
		for i := range cells {
			if i < len(values) {
				cells[i] = tr(truncate(cellText(values[i]), p.maxCellRunes))
			}
			if n := len(pdf.SplitLines([]byte(cells[i]), widths[i]-2)); n > lines {
				lines = n
			}
		}
		rowH := float64(lines) * lineH

		if pdf.GetY()+rowH > pageH-bottom {
			pdf.AddPage()
			header()
		}

		rectStyle := "D"
		if table.Style.AlternateRow != "" && rowIdx%2 == 1 {
			r, g, b := hexToRGB(table.Style.AlternateRow)
			pdf.SetFillColor(r, g, b)
			rectStyle = "FD"
		}

		startX, y := pdf.GetXY()
		x := startX
		for i, text := range cells {
			pdf.Rect(x, y, widths[i], rowH, rectStyle)
			pdf.SetXY(x+1, y)
			pdf.MultiCell(widths[i]-2, lineH, text, "", "L", false)
			x += widths[i]
		}
		pdf.SetXY(startX, y+rowH)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// columnWidths scales the Excel widths to the printable page width
func (p *PDFExporter) columnWidths(pdf *gofpdf.Fpdf, table *Table) []float64 {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	raw := make([]float64, len(table.Headers))
	total := 0.0
	for i := range raw {
		raw[i] = 10
		if w, ok := table.Style.ColumnWidths[i]; ok && w > 0 {
			raw[i] = w
		}
		total += raw[i]
	}
	for i := range raw {
		raw[i] = raw[i] / total * usable
	}
	return raw
}

func (p *PDFExporter) ContentType() string {
	return "application/pdf"
}

func (p *PDFExporter) FileExtension() string {
	return ".pdf"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func hexToRGB(hex string) (int, int, int) {
	hex = stripHash(hex)
	if len(hex) != 6 {
		return 255, 255, 255
	}
	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
