package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"bomcheck/internal"
	"bomcheck/internal/util"
)

// ReadComparisonFile loads the user's comparison dataset, dispatching
// on extension. Unknown extensions fall back to CSV.
func ReadComparisonFile(path string) (internal.ComparisonSet, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return internal.ComparisonSet{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return ReadComparisonXLSX(blob)
	case ".html", ".htm":
		return ReadComparisonHTML(blob)
	default:
		return ReadComparisonCSV(blob)
	}
}

func ReadComparisonXLSX(content []byte) (internal.ComparisonSet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return internal.ComparisonSet{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return internal.ComparisonSet{}, fmt.Errorf("%w: workbook has no sheets", ErrMalformedInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return internal.ComparisonSet{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return buildComparisonSet(rows)
}

func ReadComparisonCSV(content []byte) (internal.ComparisonSet, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return internal.ComparisonSet{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return buildComparisonSet(rows)
}

// ReadComparisonHTML accepts a dataset saved as an HTML table; the
// first row supplies the headers.
func ReadComparisonHTML(content []byte) (internal.ComparisonSet, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return internal.ComparisonSet{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	var rows [][]string
	doc.Find("table").First().Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, util.CollapseSpaces(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return buildComparisonSet(rows)
}

// buildComparisonSet turns raw rows into the ordered dataset. A
// missing header row or zero data rows is the fatal MalformedInput
// case; nothing partial is produced from an unreadable dataset.
func buildComparisonSet(rows [][]string) (internal.ComparisonSet, error) {
	if len(rows) == 0 || isEmptyRow(rows[0]) {
		return internal.ComparisonSet{}, fmt.Errorf("%w: comparison dataset has no header row", ErrMalformedInput)
	}

	columns := uniqueHeaders(rows[0])
	set := internal.ComparisonSet{Columns: columns}
	for _, raw := range rows[1:] {
		row := padRow(raw, len(columns))
		if isEmptyRow(row) {
			continue
		}
		cells := make(map[string]string, len(columns))
		for i, col := range columns {
			cells[col] = row[i]
		}
		set.Rows = append(set.Rows, internal.ComparisonRow{Index: len(set.Rows), Cells: cells})
	}
	if len(set.Rows) == 0 {
		return internal.ComparisonSet{}, fmt.Errorf("%w: comparison dataset has no rows", ErrMalformedInput)
	}
	return set, nil
}

// uniqueHeaders disambiguates repeated or empty header cells so the
// per-row maps keep every column addressable.
func uniqueHeaders(header []string) []string {
	seen := map[string]int{}
	out := make([]string, 0, len(header))
	for i, h := range header {
		name := util.CollapseSpaces(h)
		if name == "" {
			name = fmt.Sprintf("col_%d", i+1)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 1
		}
		out = append(out, name)
	}
	return out
}
