package export

import (
	"fmt"
	"io"
	"strings"
)

// CSVExporter writes the dashboard's literal CSV: every field wrapped in
// double quotes, fields joined by commas, rows joined by "\n". Embedded
// quotes are not escaped.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Export(table *Table, w io.Writer) error {
	lines := make([]string, 0, len(table.Rows)+1)
	lines = append(lines, quoteJoin(table.Headers))
	for _, row := range table.Rows {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = cellText(v)
		}
		lines = append(lines, quoteJoin(fields))
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func quoteJoin(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + f + `"`
	}
	return strings.Join(quoted, ",")
}

func (e *CSVExporter) ContentType() string {
	return "text/csv;charset=utf-8"
}

func (e *CSVExporter) FileExtension() string {
	return ".csv"
}
