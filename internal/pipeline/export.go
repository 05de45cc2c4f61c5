package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"bomcheck/internal"
)

// NotInBom marks an enrichable field the BOM could not supply.
const NotInBom = "N/A - Not in BOM"

// ResultColumns is the export column order: the user's columns, then
// the enriched fields, then status and reasons.
func ResultColumns(set internal.ComparisonSet) []string {
	out := append([]string{}, set.Columns...)
	out = append(out, internal.EnrichedFields...)
	return append(out, internal.StatusColumn, internal.ReasonsColumn)
}

func resultValue(res internal.ValidationResult, column string) string {
	switch column {
	case internal.StatusColumn:
		return string(res.Verdict)
	case internal.ReasonsColumn:
		return strings.Join(res.Reasons, "; ")
	}
	if v, ok := res.Filled[column]; ok {
		return v
	}
	for _, f := range internal.EnrichedFields {
		if f == column {
			return NotInBom
		}
	}
	return res.Cells[column]
}

// ExportResultsToXLSX renders the validated dataset with the status
// column color-coded and the enriched columns tinted.
func ExportResultsToXLSX(set internal.ComparisonSet, results []internal.ValidationResult, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	columns := ResultColumns(set)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1},
	})
	enrichedHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"BDD7EE"}, Pattern: 1},
	})
	enrichedCellStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DEEAF1"}, Pattern: 1},
	})
	verdictStyles := map[internal.Verdict]int{}
	for verdict, colors := range map[internal.Verdict][2]string{
		internal.VerdictValidated: {"C6EFCE", "276221"},
		internal.VerdictPartial:   {"FFEB9C", "9C5700"},
		internal.VerdictMismatch:  {"FFC7CE", "9C0006"},
		internal.VerdictError:     {"FFC7CE", "9C0006"},
	} {
		id, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{colors[0]}, Pattern: 1},
			Font: &excelize.Font{Color: colors[1]},
		})
		verdictStyles[verdict] = id
	}

	enriched := map[string]bool{}
	for _, fld := range internal.EnrichedFields {
		enriched[fld] = true
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, col)
		style := headerStyle
		if enriched[col] || col == internal.StatusColumn || col == internal.ReasonsColumn {
			style = enrichedHeaderStyle
		}
		_ = f.SetCellStyle(sheet, cell, cell, style)
	}

	for i, res := range results {
		r := i + 2
		for c, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, r)
			_ = f.SetCellValue(sheet, cell, resultValue(res, col))
			switch {
			case col == internal.StatusColumn:
				_ = f.SetCellStyle(sheet, cell, cell, verdictStyles[res.Verdict])
			case enriched[col]:
				_ = f.SetCellStyle(sheet, cell, cell, enrichedCellStyle)
			}
		}
	}

	_ = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func ExportResultsToCSV(set internal.ComparisonSet, results []internal.ValidationResult, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	columns := ResultColumns(set)
	if err := w.Write(columns); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for _, res := range results {
		for i, col := range columns {
			record[i] = resultValue(res, col)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportExtractionToXLSX dumps the located sections plus diagnostics,
// one sheet each, for operator inspection.
func ExportExtractionToXLSX(ext internal.Extraction, outputPath string) error {
	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)

	writeSheet := func(name string, header []string, rows [][]any) {
		_, _ = f.NewSheet(name)
		for c, h := range header {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			_ = f.SetCellValue(name, cell, h)
		}
		for r, row := range rows {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				_ = f.SetCellValue(name, cell, v)
			}
		}
	}

	colorRows := make([][]any, 0, len(ext.ColorBom))
	for _, rec := range ext.ColorBom {
		colorRows = append(colorRows, []any{
			rec.Style, rec.Colorway.Display(),
			deref(rec.TrimSupplier), deref(rec.LabelSupplier),
			deref(rec.HangtagSpec), derefBool(rec.Hangtag), derefBool(rec.RFID),
		})
	}
	writeSheet("color_bom", []string{"style", "colorway", "trim_supplier", "label_supplier", "hangtag_spec", "hangtag", "rfid"}, colorRows)

	costingRows := make([][]any, 0, len(ext.Costing))
	for _, rec := range ext.Costing {
		costingRows = append(costingRows, []any{
			rec.Style, rec.Colorway.Display(), deref(rec.FOBRaw), deref(rec.Supplier),
		})
	}
	writeSheet("costing", []string{"style", "colorway", "fob", "supplier"}, costingRows)

	careRows := make([][]any, 0, len(ext.CareContent))
	for _, rec := range ext.CareContent {
		careRows = append(careRows, []any{rec.Style, deref(rec.CareCode), deref(rec.Content)})
	}
	writeSheet("care_content", []string{"style", "care_code", "content"}, careRows)

	diagRows := make([][]any, 0, len(ext.Diagnostics))
	for _, d := range ext.Diagnostics {
		diagRows = append(diagRows, []any{string(d.Kind), d.Section, d.Row, d.Message})
	}
	writeSheet("diagnostics", []string{"kind", "section", "row", "message"}, diagRows)

	_ = f.DeleteSheet(defaultSheet)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefBool(v *bool) any {
	if v == nil {
		return ""
	}
	return *v
}
