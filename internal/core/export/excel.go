package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter writes an xlsx workbook using excelize
type ExcelExporter struct {
	sheet string
}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{sheet: "Messages"}
}

func (e *ExcelExporter) Export(table *Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", e.sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	row := 1
	if table.Title != "" {
		titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
		if err != nil {
			return fmt.Errorf("failed to create title style: %w", err)
		}
		cell := cellName(1, row)
		f.SetCellValue(e.sheet, cell, table.Title)
		f.SetCellStyle(e.sheet, cell, cell, titleStyle)
		row++
		if table.Subtitle != "" {
			f.SetCellValue(e.sheet, cellName(1, row), table.Subtitle)
			row++
		}
		row++
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: table.Style.FontSize},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{stripHash(table.Style.HeaderBgColor)}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	plain, banded, wrapPlain, wrapBanded, err := e.rowStyles(f, table.Style)
	if err != nil {
		return err
	}

	headerRow := row
	for col, header := range table.Headers {
		cell := cellName(col+1, row)
		f.SetCellValue(e.sheet, cell, header)
		f.SetCellStyle(e.sheet, cell, cell, headerStyle)
		if width, ok := table.Style.ColumnWidths[col]; ok {
			name, _ := excelize.ColumnNumberToName(col + 1)
			f.SetColWidth(e.sheet, name, name, width)
		}
	}
	row++

	for i, values := range table.Rows {
		for col, v := range values {
			cell := cellName(col+1, row)
			f.SetCellValue(e.sheet, cell, cellText(v))

			style := plain
			wrap := table.Style.WrapColumns[col]
			switch {
			case i%2 == 1 && wrap:
				style = wrapBanded
			case i%2 == 1:
				style = banded
			case wrap:
				style = wrapPlain
			}
			f.SetCellStyle(e.sheet, cell, cell, style)
		}
		row++
	}

	if table.Style.FreezeHeader {
		f.SetPanes(e.sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: cellName(1, headerRow+1),
			ActivePane:  "bottomLeft",
		})
	}
	if table.Style.AutoFilter && len(table.Headers) > 0 {
		ref := fmt.Sprintf("%s:%s", cellName(1, headerRow), cellName(len(table.Headers), headerRow+len(table.Rows)))
		f.AutoFilter(e.sheet, ref, nil)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

// rowStyles returns plain, banded and their text-wrapping variants
func (e *ExcelExporter) rowStyles(f *excelize.File, s Style) (plain, banded, wrapPlain, wrapBanded int, err error) {
	build := func(fill string, wrap bool) (int, error) {
		st := &excelize.Style{
			Font:      &excelize.Font{Size: s.FontSize},
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: wrap},
		}
		if fill != "" {
			st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{stripHash(fill)}}
		}
		return f.NewStyle(st)
	}
	if plain, err = build("", false); err != nil {
		return
	}
	if wrapPlain, err = build("", true); err != nil {
		return
	}
	if s.AlternateRow == "" {
		return plain, plain, wrapPlain, wrapPlain, nil
	}
	if banded, err = build(s.AlternateRow, false); err != nil {
		return
	}
	wrapBanded, err = build(s.AlternateRow, true)
	return
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) FileExtension() string {
	return ".xlsx"
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func stripHash(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}
