package internal

// ColorwayKey is the canonical identity of a colorway. Code is the
// zero-padded numeric code ("010") or empty when unknown; Name is the
// normalized display name (lower-cased, punctuation-stripped).
type ColorwayKey struct {
	Code string
	Name string
}

func (k ColorwayKey) IsZero() bool {
	return k.Code == "" && k.Name == ""
}

// Display renders the key the way BOM column headers spell it,
// e.g. "010-black", "black", "010".
func (k ColorwayKey) Display() string {
	switch {
	case k.Code != "" && k.Name != "":
		return k.Code + "-" + k.Name
	case k.Code != "":
		return k.Code
	default:
		return k.Name
	}
}

// MatchKind classifies how two colorway keys relate.
type MatchKind string

const (
	MatchExact    MatchKind = "EXACT"
	MatchNameOnly MatchKind = "NAME_ONLY"
	MatchNone     MatchKind = "NONE"
)

// ColorBomRecord is one extracted Color BOM row.
type ColorBomRecord struct {
	Style         string
	Colorway      ColorwayKey
	TrimSupplier  *string
	LabelSupplier *string
	HangtagSpec   *string
	Hangtag       *bool
	RFID          *bool
}

// CostingRecord is one extracted Costing row.
type CostingRecord struct {
	Style    string
	Colorway ColorwayKey
	FOB      *float64
	FOBRaw   *string
	Supplier *string
}

// CareContentRecord is one extracted Care & Content row. An empty
// Style means the record applies to every style in the BOM.
type CareContentRecord struct {
	Style    string
	CareCode *string
	Content  *string
}

type DiagnosticKind string

const (
	DiagSectionNotFound      DiagnosticKind = "SECTION_NOT_FOUND"
	DiagRowParseWarning      DiagnosticKind = "ROW_PARSE_WARNING"
	DiagUnresolvableColorway DiagnosticKind = "UNRESOLVABLE_COLORWAY"
)

// Diagnostic is a recovered per-section or per-row problem. Row is the
// 1-based data row within the section, 0 when not row-scoped.
type Diagnostic struct {
	Kind    DiagnosticKind
	Section string
	Row     int
	Message string
}

// BomMeta holds the header metadata stamped on the PDF's first page.
type BomMeta struct {
	Style        string
	Season       string
	Design       string
	ProductionLO string
}

// Extraction is the full output of one PDF pass.
type Extraction struct {
	Meta        BomMeta
	ColorBom    []ColorBomRecord
	Costing     []CostingRecord
	CareContent []CareContentRecord
	Diagnostics []Diagnostic
}

// ComparisonRow is one row of the user's uploaded dataset. Cells is
// read-only input; enrichment never mutates it.
type ComparisonRow struct {
	Index int
	Cells map[string]string
}

// ComparisonSet keeps the user's column order alongside the rows.
type ComparisonSet struct {
	Columns []string
	Rows    []ComparisonRow
}

type Verdict string

const (
	VerdictValidated Verdict = "VALIDATED"
	VerdictPartial   Verdict = "PARTIAL"
	VerdictMismatch  Verdict = "MISMATCH"
	VerdictError     Verdict = "ERROR"
)

// ValidationResult is the per-row output of the validator. Filled maps
// enriched field names to their looked-up values; absent fields stay
// out of the map.
type ValidationResult struct {
	Index   int
	Cells   map[string]string
	Filled  map[string]string
	Verdict Verdict
	Reasons []string
}

// EnrichedFields lists the fields the filler can populate, in export
// column order.
var EnrichedFields = []string{
	"trim_supplier",
	"label_supplier",
	"hangtag",
	"rfid",
	"care_code",
	"content",
	"fob",
}

const (
	StatusColumn  = "validation_status"
	ReasonsColumn = "validation_reasons"
)
