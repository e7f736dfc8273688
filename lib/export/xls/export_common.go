package xlsexport

import (
	"time"

	"github.com/xuri/excelize/v2"
)

const dateLayout = "02/01/2006 15:04"

type sheetWriter struct {
	f     *excelize.File
	sheet string
}

func (w sheetWriter) cell(col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return w.f.SetCellValue(w.sheet, cell, value)
}

func (w sheetWriter) row(row int, values ...interface{}) error {
	for idx, value := range values {
		if err := w.cell(idx+1, row, value); err != nil {
			return err
		}
	}
	return nil
}

func (w sheetWriter) header(row int, headers []string) (int, error) {
	row++
	style, err := w.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
		Font: &excelize.Font{
			Bold:   true,
			Family: "Calibri",
			Size:   11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"DDEBF7"},
		},
	})
	if err != nil {
		return row, err
	}
	if err = w.styleRange(style, 1, row, len(headers), row); err != nil {
		return row, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err = w.f.SetColWidth(w.sheet, "A", lastCol, 22); err != nil {
		return row, err
	}
	values := make([]interface{}, 0, len(headers))
	for _, header := range headers {
		values = append(values, header)
	}
	return row, w.row(row, values...)
}

func (w sheetWriter) dataStyle(colFrom, rowFrom, colTo, rowTo int) error {
	style, err := w.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
			WrapText:   true,
		},
		Font: &excelize.Font{
			Family: "Calibri",
			Size:   11,
		},
	})
	if err != nil {
		return err
	}
	return w.styleRange(style, colFrom, rowFrom, colTo, rowTo)
}

func (w sheetWriter) styleRange(style, colFrom, rowFrom, colTo, rowTo int) error {
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, cellFirst, cellLast, style)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
