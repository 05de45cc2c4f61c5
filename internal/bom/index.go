package bom

import (
	"bomcheck/internal"
	"bomcheck/internal/colorway"
	"bomcheck/internal/util"
)

type LookupStatus string

const (
	Found            LookupStatus = "FOUND"
	StyleNotFound    LookupStatus = "STYLE_NOT_FOUND"
	ColorwayNotFound LookupStatus = "COLORWAY_NOT_FOUND"
)

// Entry groups the extracted records sharing one (style, colorway) key.
type Entry struct {
	Style    string
	Colorway internal.ColorwayKey
	ColorBom *internal.ColorBomRecord
	Costing  *internal.CostingRecord
}

// View is the merged read-only result of a lookup. NameOnly marks a
// colorway matched by the relaxed name rule despite a code mismatch.
type View struct {
	Style    string
	Colorway internal.ColorwayKey
	ColorBom *internal.ColorBomRecord
	Costing  *internal.CostingRecord
	Care     *internal.CareContentRecord
	NameOnly bool
}

type styleIndex struct {
	style   string
	byCode  map[string]*Entry
	byName  map[string]*Entry
	entries []*Entry
	care    *internal.CareContentRecord
}

// Index is built once per extraction and never mutated afterwards, so
// concurrent lookups need no locking.
type Index struct {
	byStyle     map[string]*styleIndex
	byNormStyle map[string]*styleIndex
	globalCare  *internal.CareContentRecord
}

func Build(ext internal.Extraction) *Index {
	ix := &Index{
		byStyle:     map[string]*styleIndex{},
		byNormStyle: map[string]*styleIndex{},
	}

	for i := range ext.ColorBom {
		rec := ext.ColorBom[i]
		if rec.Colorway.IsZero() {
			continue
		}
		e := ix.entry(rec.Style, rec.Colorway)
		mergeColorBom(e, rec)
	}
	for i := range ext.Costing {
		rec := ext.Costing[i]
		if rec.Colorway.IsZero() {
			continue
		}
		e := ix.entry(rec.Style, rec.Colorway)
		mergeCosting(e, rec)
	}
	for i := range ext.CareContent {
		rec := ext.CareContent[i]
		if rec.Style == "" {
			ix.globalCare = mergeCare(ix.globalCare, rec)
			continue
		}
		si := ix.styleFor(rec.Style)
		si.care = mergeCare(si.care, rec)
	}

	return ix
}

// Lookup resolves (style, colorway). The style pass tries the exact
// extracted spelling first, then a case-insensitive trimmed form.
func (ix *Index) Lookup(style string, key internal.ColorwayKey) (View, LookupStatus) {
	si := ix.byStyle[style]
	if si == nil {
		si = ix.byNormStyle[util.NormalizeStyle(style)]
	}
	if si == nil {
		return View{}, StyleNotFound
	}

	var entry *Entry
	if key.Code != "" {
		entry = si.byCode[key.Code]
	}
	if entry == nil && key.Name != "" {
		entry = si.byName[key.Name]
	}
	if entry == nil {
		return View{}, ColorwayNotFound
	}

	kind := colorway.Match(key, entry.Colorway)
	if kind == internal.MatchNone {
		return View{}, ColorwayNotFound
	}

	care := si.care
	if care == nil {
		care = ix.globalCare
	}
	return View{
		Style:    entry.Style,
		Colorway: entry.Colorway,
		ColorBom: entry.ColorBom,
		Costing:  entry.Costing,
		Care:     care,
		NameOnly: kind == internal.MatchNameOnly,
	}, Found
}

func (ix *Index) styleFor(style string) *styleIndex {
	if si, ok := ix.byStyle[style]; ok {
		return si
	}
	norm := util.NormalizeStyle(style)
	if si, ok := ix.byNormStyle[norm]; ok {
		return si
	}
	si := &styleIndex{style: style, byCode: map[string]*Entry{}, byName: map[string]*Entry{}}
	ix.byStyle[style] = si
	ix.byNormStyle[norm] = si
	return si
}

func (ix *Index) entry(style string, key internal.ColorwayKey) *Entry {
	si := ix.styleFor(style)

	var e *Entry
	if key.Code != "" {
		e = si.byCode[key.Code]
	}
	if e == nil && key.Name != "" {
		// A name hit only groups records when no code contradicts it.
		// Distinct codes sharing a name are distinct colorways and must
		// stay separate entries; only the name-only fallback in Lookup
		// may bridge them, flagged as NameOnly.
		if cand := si.byName[key.Name]; cand != nil && (key.Code == "" || cand.Colorway.Code == "") {
			e = cand
		}
	}
	if e == nil {
		e = &Entry{Style: style, Colorway: key}
		si.entries = append(si.entries, e)
	}

	// Union code and name so an entry first seen as "black" still
	// answers code lookups once a coded duplicate arrives.
	if e.Colorway.Code == "" {
		e.Colorway.Code = key.Code
	}
	if e.Colorway.Name == "" {
		e.Colorway.Name = key.Name
	}
	if e.Colorway.Code != "" {
		si.byCode[e.Colorway.Code] = e
	}
	if e.Colorway.Name != "" {
		si.byName[e.Colorway.Name] = e
	}
	return e
}

// Duplicate Color BOM rows: the later row wins for scalar fields but
// hangtag/RFID flags OR-combine, so presence in any duplicate sticks.
func mergeColorBom(e *Entry, rec internal.ColorBomRecord) {
	if e.ColorBom == nil {
		cp := rec
		e.ColorBom = &cp
		return
	}
	if rec.TrimSupplier != nil {
		e.ColorBom.TrimSupplier = rec.TrimSupplier
	}
	if rec.LabelSupplier != nil {
		e.ColorBom.LabelSupplier = rec.LabelSupplier
	}
	if rec.HangtagSpec != nil {
		e.ColorBom.HangtagSpec = rec.HangtagSpec
	}
	e.ColorBom.Hangtag = orBool(e.ColorBom.Hangtag, rec.Hangtag)
	e.ColorBom.RFID = orBool(e.ColorBom.RFID, rec.RFID)
}

func mergeCosting(e *Entry, rec internal.CostingRecord) {
	if e.Costing == nil {
		cp := rec
		e.Costing = &cp
		return
	}
	if rec.FOB != nil {
		e.Costing.FOB = rec.FOB
		e.Costing.FOBRaw = rec.FOBRaw
	}
	if rec.Supplier != nil {
		e.Costing.Supplier = rec.Supplier
	}
}

func mergeCare(cur *internal.CareContentRecord, rec internal.CareContentRecord) *internal.CareContentRecord {
	if cur == nil {
		cp := rec
		return &cp
	}
	if rec.CareCode != nil {
		cur.CareCode = rec.CareCode
	}
	if rec.Content != nil {
		cur.Content = rec.Content
	}
	return cur
}

func orBool(a, b *bool) *bool {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	v := *a || *b
	return &v
}
