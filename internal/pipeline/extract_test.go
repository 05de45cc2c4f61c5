package pipeline

import (
	"strings"
	"testing"

	"bomcheck/internal"
	"bomcheck/internal/colorway"
)

func bomFixtureDoc() *PDFDocument {
	return &PDFDocument{Pages: []PDFPage{
		{
			Number: 1,
			Text:   "Style: CL2880\nSeason: F25\nDesign: F4WA209264\nProduction LO: Vietnam\nColor BOM\n",
			Table: NewSliceTable([][]string{
				{"Colorway", "Trim Supplier", "Label Supplier", "Hangtag", "RFID"},
				{"010-Black", "Acme Trims", "LabelCo", "RFID Hangtag 2x3", "Y"},
				{"224-Camel Brown", "Acme Trims", "", "", ""},
				{"???", "Acme Trims", "LabelCo", "", ""},
			}),
		},
		{
			Number: 2,
			Text:   "Costing BOM - Summary\n",
			Table: NewSliceTable([][]string{
				{"Colorway", "Total FOB", "Supplier"},
				{"010-Black", "2.646", "Shenzhou Intl"},
				{"224", "2.646", "Shenzhou Intl"},
			}),
		},
		{
			Number: 3,
			Text:   "Care Report\n",
			Table: NewSliceTable([][]string{
				{"Care Code", "Content Code"},
				{"3000", "R8T"},
			}),
		},
	}}
}

func TestExtractSections(t *testing.T) {
	ext := NewExtractor(colorway.Default(), "").Extract(bomFixtureDoc())

	if ext.Meta.Style != "CL2880" || ext.Meta.ProductionLO != "Vietnam" {
		t.Fatalf("meta: %+v", ext.Meta)
	}
	if len(ext.ColorBom) != 3 {
		t.Fatalf("colorBom len=%d", len(ext.ColorBom))
	}
	if len(ext.Costing) != 2 {
		t.Fatalf("costing len=%d", len(ext.Costing))
	}
	if len(ext.CareContent) != 1 {
		t.Fatalf("care len=%d", len(ext.CareContent))
	}

	first := ext.ColorBom[0]
	if first.Style != "CL2880" {
		t.Fatalf("style fallback not stamped: %q", first.Style)
	}
	if first.Colorway.Code != "010" || first.Colorway.Name != "black" {
		t.Fatalf("colorway: %+v", first.Colorway)
	}
	if first.HangtagSpec == nil || *first.HangtagSpec != "RFID Hangtag 2x3" {
		t.Fatalf("hangtag spec: %v", first.HangtagSpec)
	}
	if first.Hangtag == nil || !*first.Hangtag || first.RFID == nil || !*first.RFID {
		t.Fatal("hangtag/rfid flags not set")
	}

	if ext.Costing[0].FOB == nil || *ext.Costing[0].FOB != 2.646 {
		t.Fatalf("fob: %v", ext.Costing[0].FOB)
	}
	care := ext.CareContent[0]
	if care.Style != "" || care.CareCode == nil || *care.CareCode != "3000" || care.Content == nil || *care.Content != "R8T" {
		t.Fatalf("care record: %+v", care)
	}
}

func TestExtractRetainsUnresolvableRow(t *testing.T) {
	ext := NewExtractor(colorway.Default(), "").Extract(bomFixtureDoc())

	bad := ext.ColorBom[2]
	if !bad.Colorway.IsZero() {
		t.Fatalf("row should carry a zero key, got %+v", bad.Colorway)
	}
	if bad.TrimSupplier == nil || *bad.TrimSupplier != "Acme Trims" {
		t.Fatal("unresolvable row must be retained, not dropped")
	}

	found := false
	for _, d := range ext.Diagnostics {
		if d.Kind == internal.DiagUnresolvableColorway && d.Section == "color_bom" && d.Row == 3 {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing unresolvable-colorway diagnostic: %+v", ext.Diagnostics)
	}
}

func TestExtractSectionNotFound(t *testing.T) {
	doc := bomFixtureDoc()
	doc.Pages = []PDFPage{doc.Pages[1], doc.Pages[2]} // drop the Color BOM page

	ext := NewExtractor(colorway.Default(), "CL2880").Extract(doc)

	if len(ext.ColorBom) != 0 {
		t.Fatalf("colorBom should be empty, len=%d", len(ext.ColorBom))
	}
	if len(ext.Costing) != 2 || len(ext.CareContent) != 1 {
		t.Fatal("surviving sections must still extract")
	}

	found := false
	for _, d := range ext.Diagnostics {
		if d.Kind == internal.DiagSectionNotFound && d.Section == "color_bom" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing SectionNotFound diagnostic: %+v", ext.Diagnostics)
	}
}

func TestCareRowWithNoFieldsRetained(t *testing.T) {
	doc := &PDFDocument{Pages: []PDFPage{
		{
			Number: 1,
			Text:   "Care Report\n",
			Table: NewSliceTable([][]string{
				{"Style", "Care Code", "Content Code"},
				{"CL2880", "", ""},
				{"CL2880", "3000", "R8T"},
			}),
		},
	}}
	ext := NewExtractor(colorway.Default(), "CL2880").Extract(doc)

	if len(ext.CareContent) != 2 {
		t.Fatalf("degenerate row must be retained, len=%d", len(ext.CareContent))
	}
	bad := ext.CareContent[0]
	if bad.CareCode != nil || bad.Content != nil {
		t.Fatalf("retained row must keep nulls: %+v", bad)
	}
	found := false
	for _, d := range ext.Diagnostics {
		if d.Kind == internal.DiagRowParseWarning && d.Section == "care_content" && d.Row == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing row-parse warning: %+v", ext.Diagnostics)
	}
}

func TestDiagnosticsSummary(t *testing.T) {
	if got := DiagnosticsSummary(nil); got != "" {
		t.Fatalf("clean run must summarize to empty, got %q", got)
	}

	doc := bomFixtureDoc()
	doc.Pages = doc.Pages[1:] // drop the Color BOM page
	ext := NewExtractor(colorway.Default(), "CL2880").Extract(doc)

	got := DiagnosticsSummary(ext.Diagnostics)
	if !strings.Contains(got, string(internal.DiagSectionNotFound)+"=1") {
		t.Fatalf("summary=%q diagnostics=%+v", got, ext.Diagnostics)
	}
}

func TestExtractSkipsRepeatedHeaders(t *testing.T) {
	doc := &PDFDocument{Pages: []PDFPage{
		{
			Number: 1,
			Text:   "Color BOM\n",
			Table: NewSliceTable([][]string{
				{"Colorway", "Trim Supplier"},
				{"010-Black", "Acme"},
			}),
		},
		{
			Number: 2,
			Text:   "Color BOM\n",
			Table: NewSliceTable([][]string{
				{"Colorway", "Trim Supplier"},
				{"224", "Acme"},
			}),
		},
	}}
	ext := NewExtractor(colorway.Default(), "CL2880").Extract(doc)
	if len(ext.ColorBom) != 2 {
		t.Fatalf("cross-page header must be skipped, len=%d", len(ext.ColorBom))
	}
}
