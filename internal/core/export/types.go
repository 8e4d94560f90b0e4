// Package export turns message history into downloadable tables (CSV,
// Excel, PDF).
package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Format is an export file format
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
	FormatPDF   Format = "pdf"
)

// ParseFormat accepts the format names operators type ("excel" is an alias of xlsx)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatExcel, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format: %s", s)
}

// Exporter writes a table in one format
type Exporter interface {
	Export(table *Table, w io.Writer) error
	ContentType() string
	FileExtension() string
}

// Table is the format-independent export payload
type Table struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time

	Headers []string
	Rows    [][]any

	Style Style
}

// Style holds the presentation knobs shared by Excel and PDF
type Style struct {
	Landscape     bool
	HeaderBgColor string // hex
	AlternateRow  string // hex, empty disables banding
	FontSize      float64
	FreezeHeader  bool
	AutoFilter    bool
	ColumnWidths  map[int]float64 // column index -> width (Excel units)
	WrapColumns   map[int]bool    // long text columns
}

func DefaultStyle() Style {
	return Style{
		Landscape:     true,
		HeaderBgColor: "#4472C4",
		AlternateRow:  "#F2F2F2",
		FontSize:      9,
		FreezeHeader:  true,
		AutoFilter:    true,
		ColumnWidths:  map[int]float64{},
		WrapColumns:   map[int]bool{},
	}
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(TimestampLayout)
	default:
		return fmt.Sprint(t)
	}
}
