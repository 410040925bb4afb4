package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/bedjig/pkg/errors"
)

var xlsxColumns = []string{"A", "B", "C", "D", "E", "F", "G"}

// XLSX renders r as a single-sheet workbook. Dimensions are written as
// numbers so the sheet can be re-sorted and summed.
func XLSX(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cut list"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, xlsxErr(err, "set sheet name")
	}

	widths := []float64{12, 6, 22, 10, 14, 10, 10}
	for i, c := range xlsxColumns {
		if err := f.SetColWidth(sheet, c, c, widths[i]); err != nil {
			return nil, xlsxErr(err, "set col width %s", c)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, xlsxErr(err, "create title style")
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, xlsxErr(err, "create header style")
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()})
	if err != nil {
		return nil, xlsxErr(err, "create body style")
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, xlsxErr(err, "create label style")
	}

	last := xlsxColumns[len(xlsxColumns)-1]
	if err := f.MergeCell(sheet, "A1", last+"1"); err != nil {
		return nil, xlsxErr(err, "merge title")
	}
	f.SetCellValue(sheet, "A1", sanitizeCell(r.Title))
	f.SetCellStyle(sheet, "A1", last+"1", titleStyle)
	f.SetCellValue(sheet, "A2", "Material: "+r.Material)
	f.SetCellValue(sheet, "A3", r.Date)

	headers := []string{"Part", "Qty", "Length x Width x Height", "Notches", "Notch W x D", "First notch", "Pitch"}
	for i, h := range headers {
		f.SetCellValue(sheet, xlsxColumns[i]+"5", h)
	}
	f.SetCellStyle(sheet, "A5", last+"5", headerStyle)

	line := 6
	for _, row := range r.Rows {
		n := fmt.Sprint(line)
		f.SetCellValue(sheet, "A"+n, row.Part)
		f.SetCellValue(sheet, "B"+n, row.Qty)
		f.SetCellValue(sheet, "C"+n, fmt.Sprintf("%s x %s x %s", FormatMM(row.Length), FormatMM(row.Width), FormatMM(row.Height)))
		f.SetCellValue(sheet, "D"+n, row.Notches)
		f.SetCellValue(sheet, "E"+n, row.NotchSize)
		f.SetCellValue(sheet, "F"+n, finiteOrBlank(row.NotchStart))
		if row.Notches > 1 {
			f.SetCellValue(sheet, "G"+n, finiteOrBlank(row.NotchPitch))
		}
		f.SetCellStyle(sheet, "A"+n, last+n, bodyStyle)
		line++
	}

	line++
	for _, s := range r.Totals {
		n := fmt.Sprint(line)
		f.SetCellValue(sheet, "C"+n, s.Label)
		f.SetCellStyle(sheet, "C"+n, "C"+n, labelStyle)
		f.SetCellValue(sheet, "D"+n, s.Value)
		line++
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", line+1), r.Verdict)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, xlsxErr(err, "write workbook")
	}
	return buf.Bytes(), nil
}

func xlsxErr(err error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInternal, err, format, args...)
}

// finiteOrBlank keeps NaN and Inf out of the workbook.
func finiteOrBlank(v float64) any {
	if bad(v) {
		return ""
	}
	return v
}

// sanitizeCell stops a configuration name from being read as a formula.
func sanitizeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
