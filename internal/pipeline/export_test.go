package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"bomcheck/internal"
	"bomcheck/internal/bom"
	"bomcheck/internal/colorway"
	"bomcheck/internal/config"
)

func TestSmokeValidateToXLSX(t *testing.T) {
	tmp := t.TempDir()

	ext := NewExtractor(colorway.Default(), "").Extract(bomFixtureDoc())
	index := bom.Build(ext)

	set, err := ReadComparisonCSV([]byte(
		"Buyer Style Number,Color/Option,Qty\n" +
			"CL2880,010,12\n" +
			"CL2880,999,3\n"))
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{
		CriticalFields:  []string{"trim_supplier", "label_supplier"},
		ValidateWorkers: 2,
	}
	results, err := NewValidator(cfg, colorway.Default(), index).Validate(set, "Buyer Style Number", "Color/Option")
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(tmp, "validated_bom.xlsx")
	if err := ExportResultsToXLSX(set, results, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("sheet rows=%d", len(rows))
	}
	header := strings.Join(rows[0], "|")
	if !strings.Contains(header, internal.StatusColumn) || !strings.Contains(header, "trim_supplier") {
		t.Fatalf("header=%s", header)
	}
}

func TestExportResultsToCSV(t *testing.T) {
	tmp := t.TempDir()
	set := internal.ComparisonSet{
		Columns: []string{"Style", "Color"},
		Rows: []internal.ComparisonRow{
			{Index: 0, Cells: map[string]string{"Style": "CL2880", "Color": "010"}},
		},
	}
	results := []internal.ValidationResult{
		{
			Index:   0,
			Cells:   set.Rows[0].Cells,
			Filled:  map[string]string{"trim_supplier": "Acme"},
			Verdict: internal.VerdictPartial,
			Reasons: []string{"fob missing"},
		},
	}

	out := filepath.Join(tmp, "result.csv")
	if err := ExportResultsToCSV(set, results, out); err != nil {
		t.Fatal(err)
	}
	blob, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	text := string(blob)
	if !strings.Contains(text, "PARTIAL") || !strings.Contains(text, "fob missing") {
		t.Fatalf("csv=%s", text)
	}
	if !strings.Contains(text, NotInBom) {
		t.Fatalf("unfilled enriched fields must render as %q", NotInBom)
	}
}

func TestExportExtractionToXLSX(t *testing.T) {
	tmp := t.TempDir()
	ext := NewExtractor(colorway.Default(), "").Extract(bomFixtureDoc())

	out := filepath.Join(tmp, "sections.xlsx")
	if err := ExportExtractionToXLSX(ext, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	for _, sheet := range []string{"color_bom", "costing", "care_content", "diagnostics"} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Fatalf("missing sheet %s", sheet)
		}
	}
}
