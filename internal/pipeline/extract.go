package pipeline

import (
	"fmt"
	"strings"
	"sync"

	"bomcheck/internal"
	"bomcheck/internal/colorway"
	"bomcheck/internal/util"
)

// Extractor runs the three section passes over a decoded PDF. It is
// stateless across runs; the colorway table is shared read-only.
type Extractor struct {
	colorways     *colorway.Table
	styleFallback string
}

func NewExtractor(table *colorway.Table, styleFallback string) *Extractor {
	return &Extractor{colorways: table, styleFallback: styleFallback}
}

// Extract locates the Color BOM, Costing and Care & Content sections
// and maps their rows to typed records. Section and row failures are
// recovered into diagnostics; the pass never aborts.
func (e *Extractor) Extract(doc *PDFDocument) internal.Extraction {
	sections := map[sectionKind][][]string{}
	for _, page := range doc.Pages {
		kind := detectSection(page.Text)
		if kind == sectionUnknown {
			continue
		}
		sections[kind] = append(sections[kind], page.Table.Rows()...)
	}

	firstPage := ""
	if len(doc.Pages) > 0 {
		firstPage = doc.Pages[0].Text
	}
	ext := internal.Extraction{
		Meta: extractMeta(firstPage, e.styleFallback),
	}

	var (
		wg       sync.WaitGroup
		colorBom []internal.ColorBomRecord
		costing  []internal.CostingRecord
		care     []internal.CareContentRecord
		diags    [3][]internal.Diagnostic
	)

	// The three passes share nothing mutable; each writes its own
	// record list and diagnostic slot.
	wg.Add(3)
	go func() {
		defer wg.Done()
		colorBom, diags[0] = e.parseColorBom(sections[sectionColorBom], ext.Meta)
	}()
	go func() {
		defer wg.Done()
		costing, diags[1] = e.parseCosting(sections[sectionCosting], ext.Meta)
	}()
	go func() {
		defer wg.Done()
		care, diags[2] = e.parseCareContent(sections[sectionCareContent])
	}()
	wg.Wait()

	ext.ColorBom = colorBom
	ext.Costing = costing
	ext.CareContent = care
	for _, d := range diags {
		ext.Diagnostics = append(ext.Diagnostics, d...)
	}
	return ext
}

func (e *Extractor) parseColorBom(rows [][]string, meta internal.BomMeta) ([]internal.ColorBomRecord, []internal.Diagnostic) {
	if len(rows) == 0 {
		return nil, []internal.Diagnostic{sectionNotFound(sectionColorBom)}
	}

	hi := headerRowIndex(rows)
	headers := rows[hi]
	colorIdx := findColumn(headers, "colorway")
	if colorIdx < 0 {
		colorIdx = 0
	}
	styleIdx := findColumn(headers, "style")
	trimIdx := findColumn(headers, "trim_supplier")
	labelIdx := findColumn(headers, "label_supplier")
	hangtagIdx := findColumn(headers, "hangtag")
	rfidIdx := findColumn(headers, "rfid")

	var (
		out   []internal.ColorBomRecord
		diags []internal.Diagnostic
	)
	rowNo := 0
	for _, raw := range rows[hi+1:] {
		row := padRow(raw, len(headers))
		if isEmptyRow(row) || repeatsHeader(row, headers) {
			continue
		}
		rowNo++

		rec := internal.ColorBomRecord{Style: meta.Style}
		if s := cellAt(row, styleIdx); styleIdx >= 0 && s != "" {
			rec.Style = s
		}

		rawColor := cellAt(row, colorIdx)
		key, ok := e.colorways.Normalize(rawColor)
		if !ok {
			// Retained with a zero key; dropping the row loses data.
			diags = append(diags, internal.Diagnostic{
				Kind:    internal.DiagUnresolvableColorway,
				Section: string(sectionColorBom),
				Row:     rowNo,
				Message: fmt.Sprintf("colorway %q could not be canonicalized", rawColor),
			})
		} else {
			rec.Colorway = key
		}

		rec.TrimSupplier = optionalCell(row, trimIdx)
		rec.LabelSupplier = optionalCell(row, labelIdx)
		rec.HangtagSpec, rec.Hangtag = parseHangtagCell(cellAt(row, hangtagIdx))
		rec.RFID = util.ParseFlag(cellAt(row, rfidIdx))

		if rec.TrimSupplier == nil && rec.LabelSupplier == nil {
			diags = append(diags, internal.Diagnostic{
				Kind:    internal.DiagRowParseWarning,
				Section: string(sectionColorBom),
				Row:     rowNo,
				Message: "trim and label supplier both missing",
			})
		}
		out = append(out, rec)
	}
	return out, diags
}

func (e *Extractor) parseCosting(rows [][]string, meta internal.BomMeta) ([]internal.CostingRecord, []internal.Diagnostic) {
	if len(rows) == 0 {
		return nil, []internal.Diagnostic{sectionNotFound(sectionCosting)}
	}

	hi := headerRowIndex(rows)
	headers := rows[hi]
	colorIdx := findColumn(headers, "colorway")
	if colorIdx < 0 {
		colorIdx = 0
	}
	styleIdx := findColumn(headers, "style")
	fobIdx := findColumn(headers, "fob")
	supplierIdx := findColumn(headers, "supplier")

	var (
		out   []internal.CostingRecord
		diags []internal.Diagnostic
	)
	rowNo := 0
	for _, raw := range rows[hi+1:] {
		row := padRow(raw, len(headers))
		if isEmptyRow(row) || repeatsHeader(row, headers) {
			continue
		}
		rowNo++

		rec := internal.CostingRecord{Style: meta.Style}
		if s := cellAt(row, styleIdx); styleIdx >= 0 && s != "" {
			rec.Style = s
		}

		rawColor := cellAt(row, colorIdx)
		key, ok := e.colorways.Normalize(rawColor)
		if !ok {
			diags = append(diags, internal.Diagnostic{
				Kind:    internal.DiagUnresolvableColorway,
				Section: string(sectionCosting),
				Row:     rowNo,
				Message: fmt.Sprintf("colorway %q could not be canonicalized", rawColor),
			})
		} else {
			rec.Colorway = key
		}

		money := util.ParseMoney(cellAt(row, fobIdx))
		rec.FOB = money.Amount
		rec.FOBRaw = money.Raw
		rec.Supplier = optionalCell(row, supplierIdx)

		if rec.FOB == nil && rec.Supplier == nil {
			diags = append(diags, internal.Diagnostic{
				Kind:    internal.DiagRowParseWarning,
				Section: string(sectionCosting),
				Row:     rowNo,
				Message: "neither FOB nor supplier parsed",
			})
		}
		out = append(out, rec)
	}
	return out, diags
}

func (e *Extractor) parseCareContent(rows [][]string) ([]internal.CareContentRecord, []internal.Diagnostic) {
	if len(rows) == 0 {
		return nil, []internal.Diagnostic{sectionNotFound(sectionCareContent)}
	}

	hi := headerRowIndex(rows)
	headers := rows[hi]
	styleIdx := findColumn(headers, "style")
	careIdx := findColumn(headers, "care_code")
	contentIdx := findColumn(headers, "content")

	var (
		out   []internal.CareContentRecord
		diags []internal.Diagnostic
	)
	rowNo := 0
	for _, raw := range rows[hi+1:] {
		row := padRow(raw, len(headers))
		if isEmptyRow(row) || repeatsHeader(row, headers) {
			continue
		}
		rowNo++

		// No style column in this layout family means the record is
		// global within the BOM.
		rec := internal.CareContentRecord{
			Style:    cellAt(row, styleIdx),
			CareCode: optionalCell(row, careIdx),
			Content:  optionalCell(row, contentIdx),
		}
		if rec.CareCode == nil && rec.Content == nil {
			diags = append(diags, internal.Diagnostic{
				Kind:    internal.DiagRowParseWarning,
				Section: string(sectionCareContent),
				Row:     rowNo,
				Message: "neither care code nor content parsed",
			})
		}
		out = append(out, rec)
	}
	return out, diags
}

// DiagnosticsSummary renders the recovered problems of a run as a
// one-line count by kind, or "" when the run was clean.
func DiagnosticsSummary(diags []internal.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	counts := map[internal.DiagnosticKind]int{}
	for _, d := range diags {
		counts[d.Kind]++
	}
	parts := make([]string, 0, len(counts))
	for _, kind := range []internal.DiagnosticKind{
		internal.DiagSectionNotFound,
		internal.DiagRowParseWarning,
		internal.DiagUnresolvableColorway,
	} {
		if n := counts[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", kind, n))
		}
	}
	return fmt.Sprintf("%d diagnostics (%s)", len(diags), strings.Join(parts, " "))
}

func sectionNotFound(kind sectionKind) internal.Diagnostic {
	return internal.Diagnostic{
		Kind:    internal.DiagSectionNotFound,
		Section: string(kind),
		Message: fmt.Sprintf("%s section could not be located", strings.ReplaceAll(string(kind), "_", " ")),
	}
}

func optionalCell(row []string, idx int) *string {
	v := cellAt(row, idx)
	if v == "" {
		return nil
	}
	return util.StringPtr(v)
}

// parseHangtagCell splits a hangtag cell into the spec text and the
// presence flag. Pure yes/no tokens carry no spec.
func parseHangtagCell(cell string) (*string, *bool) {
	flag := util.ParseFlag(cell)
	if flag == nil {
		return nil, nil
	}
	s := strings.ToLower(util.CollapseSpaces(cell))
	switch s {
	case "y", "yes", "n", "no", "true", "false", "0", "1", "x", "none", "-":
		return nil, flag
	}
	return util.StringPtr(util.CollapseSpaces(cell)), flag
}

func repeatsHeader(row, headers []string) bool {
	same := 0
	filled := 0
	for i := range headers {
		h := strings.ToLower(util.CollapseSpaces(headers[i]))
		c := strings.ToLower(cellAt(row, i))
		if c == "" {
			continue
		}
		filled++
		if c == h {
			same++
		}
	}
	return filled > 0 && same == filled
}
