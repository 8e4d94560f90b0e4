package export

import (
	"bytes"
	"fmt"
	"io"
)

// Service dispatches a table to the exporter of the requested format
type Service struct {
	exporters map[Format]Exporter
}

func NewService() *Service {
	return &Service{
		exporters: map[Format]Exporter{
			FormatCSV:   NewCSVExporter(),
			FormatExcel: NewExcelExporter(),
			FormatPDF:   NewPDFExporter(),
		},
	}
}

func (s *Service) exporter(format Format) (Exporter, error) {
	e, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	return e, nil
}

// Export renders table in memory and returns the bytes with their content type
func (s *Service) Export(table *Table, format Format) ([]byte, string, error) {
	e, err := s.exporter(format)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := e.Export(table, &buf); err != nil {
		return nil, "", fmt.Errorf("%s export failed: %w", format, err)
	}
	return buf.Bytes(), e.ContentType(), nil
}

func (s *Service) ExportToWriter(table *Table, format Format, w io.Writer) error {
	e, err := s.exporter(format)
	if err != nil {
		return err
	}
	return e.Export(table, w)
}

func (s *Service) FileExtension(format Format) string {
	if e, err := s.exporter(format); err == nil {
		return e.FileExtension()
	}
	return ".bin"
}
