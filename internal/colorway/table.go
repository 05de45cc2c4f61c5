package colorway

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"bomcheck/internal"
	"bomcheck/internal/util"
)

// Entry is one code to canonical-name pair of the known-colorway table.
type Entry struct {
	Code string
	Name string
}

// defaultEntries seeds the product line's standard colorways. The
// operator extends the table via a CSV file, not code changes.
var defaultEntries = []Entry{
	{Code: "010", Name: "Black"},
	{Code: "224", Name: "Camel Brown"},
	{Code: "278", Name: "Dark Stone"},
	{Code: "429", Name: "Everblue"},
	{Code: "551", Name: "Lavender Pearl"},
}

// Table is the immutable known-colorway lookup. Built once at startup
// and passed explicitly; shared read-only afterwards.
type Table struct {
	byCode map[string]string
	byName map[string]string
}

func New(entries []Entry) *Table {
	t := &Table{byCode: map[string]string{}, byName: map[string]string{}}
	for _, e := range entries {
		code := util.PadCode(e.Code)
		name := util.NormalizeName(e.Name)
		if !util.IsDigits(code) || name == "" {
			continue
		}
		t.byCode[code] = name
		t.byName[name] = code
	}
	return t
}

func Default() *Table {
	return New(defaultEntries)
}

// Load builds the table from the built-in seed plus an optional CSV of
// code,name rows. An empty path yields the default table.
func Load(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open colorway table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read colorway table: %w", err)
	}

	entries := append([]Entry{}, defaultEntries...)
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		code := strings.TrimSpace(rec[0])
		name := strings.TrimSpace(rec[1])
		if !util.IsDigits(code) || name == "" {
			continue
		}
		entries = append(entries, Entry{Code: code, Name: name})
	}
	return New(entries), nil
}

// CanonicalName looks up the normalized name for a code.
func (t *Table) CanonicalName(code string) (string, bool) {
	name, ok := t.byCode[util.PadCode(code)]
	return name, ok
}

// CodeFor reverse-looks-up the code for a display name.
func (t *Table) CodeFor(name string) (string, bool) {
	code, ok := t.byName[util.NormalizeName(name)]
	return code, ok
}

// Entries returns the table contents sorted by code.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.byCode))
	for code, name := range t.byCode {
		out = append(out, Entry{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Known reports whether the key's code or name appears in the table.
func (t *Table) Known(key internal.ColorwayKey) bool {
	if key.Code != "" {
		if _, ok := t.byCode[key.Code]; ok {
			return true
		}
	}
	if key.Name != "" {
		if _, ok := t.byName[key.Name]; ok {
			return true
		}
	}
	return false
}
