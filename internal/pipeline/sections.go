package pipeline

import (
	"strings"

	"bomcheck/internal"
	"bomcheck/internal/util"
)

type sectionKind string

const (
	sectionColorBom    sectionKind = "color_bom"
	sectionCosting     sectionKind = "costing"
	sectionCareContent sectionKind = "care_content"
	sectionUnknown     sectionKind = "unknown"
)

// detectSection classifies a page by its heading text. The PDF has no
// machine-readable section markers, only known header phrases.
func detectSection(pageText string) sectionKind {
	txt := strings.ToLower(pageText)
	switch {
	case strings.Contains(txt, "color bom"):
		return sectionColorBom
	case strings.Contains(txt, "costing bom"), strings.Contains(txt, "costing detail"), strings.Contains(txt, "total fob"):
		return sectionCosting
	case strings.Contains(txt, "care report"), strings.Contains(txt, "content report"), strings.Contains(txt, "care & content"):
		return sectionCareContent
	default:
		return sectionUnknown
	}
}

// columnSynonyms maps each canonical field to the header spellings the
// layout family uses. Column matching is a lookup against this table,
// never ad hoc probing.
var columnSynonyms = map[string][]string{
	"style":          {"style", "style number", "buyer style"},
	"colorway":       {"color way", "colorway", "color/option", "color option", "color number", "color"},
	"trim_supplier":  {"trim supplier", "trim vendor"},
	"label_supplier": {"label supplier", "label vendor"},
	"hangtag":        {"hangtag", "hang tag"},
	"rfid":           {"rfid"},
	"care_code":      {"care code"},
	"content":        {"content code", "fiber content", "content"},
	"fob":            {"total fob", "fob", "total"},
	"supplier":       {"supplier", "vendor"},
}

// findColumn returns the index of the first header matching any
// accepted variant of the canonical field, or -1. Case-insensitive,
// substring-tolerant, like the rest of the layout heuristics.
func findColumn(headers []string, field string) int {
	variants := columnSynonyms[field]
	for i, h := range headers {
		hn := strings.ToLower(util.CollapseSpaces(h))
		if hn == "" {
			continue
		}
		for _, v := range variants {
			if strings.Contains(hn, v) {
				return i
			}
		}
	}
	return -1
}

// headerRowIndex picks the densest of the first five rows as the
// header; BOM tables carry decorative banner rows above it.
func headerRowIndex(rows [][]string) int {
	best, bestCount := 0, 0
	limit := len(rows)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		count := 0
		for _, c := range rows[i] {
			if util.CollapseSpaces(c) != "" {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return best
}

// padRow normalizes a data row to the header width; merged cells and
// inconsistent column counts across pages are the norm, not the error.
func padRow(row []string, width int) []string {
	out := make([]string, width)
	for i := 0; i < width && i < len(row); i++ {
		out[i] = util.CollapseSpaces(row[i])
	}
	return out
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if util.CollapseSpaces(c) != "" {
			return false
		}
	}
	return true
}

// extractMeta pulls "Label: value" header lines off the first page.
func extractMeta(firstPageText string, styleFallback string) internal.BomMeta {
	meta := internal.BomMeta{}
	for _, line := range strings.Split(firstPageText, "\n") {
		line = util.CollapseSpaces(line)
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		if value == "" {
			continue
		}
		switch {
		case label == "style" && meta.Style == "":
			meta.Style = value
		case label == "season" && meta.Season == "":
			meta.Season = value
		case label == "design" && meta.Design == "":
			meta.Design = value
		case strings.HasPrefix(label, "production lo") && meta.ProductionLO == "":
			meta.ProductionLO = value
		}
	}
	if meta.Style == "" {
		meta.Style = styleFallback
	}
	return meta
}
