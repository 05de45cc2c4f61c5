package pipeline

import (
	"sort"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"bomcheck/internal/util"
)

// TableSource yields ordered rows of cell text for one page region.
// The geometry heuristics live behind this single seam so section
// extraction is testable with slice fixtures instead of real PDFs.
type TableSource interface {
	Rows() [][]string
}

// SliceTable is a fixture TableSource over literal rows.
type SliceTable struct {
	Data [][]string
}

func NewSliceTable(rows [][]string) SliceTable {
	return SliceTable{Data: rows}
}

func (s SliceTable) Rows() [][]string {
	return s.Data
}

// rowYTolerance absorbs baseline jitter between runs of one visual
// line; colXTolerance absorbs sub-cell drift between pages.
const (
	rowYTolerance = 2.5
	colXTolerance = 4.0
)

// GeometryTable recovers tabular rows from positioned text runs:
// runs cluster by Y into lines, the densest line fixes the column
// stops, and every run lands in the nearest preceding stop. Tolerant
// of merged cells, multi-line cell text and stray whitespace.
type GeometryTable struct {
	texts []pdf.Text
}

func NewGeometryTable(texts []pdf.Text) GeometryTable {
	return GeometryTable{texts: texts}
}

func (g GeometryTable) Rows() [][]string {
	lines := clusterLines(g.texts)
	if len(lines) == 0 {
		return nil
	}

	stops := columnStops(lines)
	out := make([][]string, 0, len(lines))
	for _, line := range lines {
		cells := make([]string, len(stops))
		for _, run := range line {
			ci := columnFor(stops, run.X)
			if cells[ci] == "" {
				cells[ci] = run.S
			} else {
				cells[ci] += " " + run.S
			}
		}
		for i := range cells {
			cells[i] = util.CollapseSpaces(cells[i])
		}
		out = append(out, cells)
	}
	return out
}

// clusterLines groups runs whose Y differ by less than the tolerance,
// top of page first, left to right within a line.
func clusterLines(texts []pdf.Text) [][]pdf.Text {
	runs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			runs = append(runs, t)
		}
	}
	if len(runs) == 0 {
		return nil
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Y > runs[j].Y })

	lines := [][]pdf.Text{}
	cur := []pdf.Text{runs[0]}
	for _, t := range runs[1:] {
		if cur[len(cur)-1].Y-t.Y > rowYTolerance {
			lines = append(lines, cur)
			cur = nil
		}
		cur = append(cur, t)
	}
	lines = append(lines, cur)

	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })
	}
	return lines
}

// columnStops takes the X starts of the line with the most runs as
// column boundaries; that line is almost always the header.
func columnStops(lines [][]pdf.Text) []float64 {
	var densest []pdf.Text
	for _, line := range lines {
		if len(line) > len(densest) {
			densest = line
		}
	}
	stops := make([]float64, 0, len(densest))
	for _, run := range densest {
		// Wrapped cell text yields runs at an already-seen X; those
		// are continuations, not new columns.
		if len(stops) > 0 && run.X-stops[len(stops)-1] < colXTolerance {
			continue
		}
		stops = append(stops, run.X)
	}
	return stops
}

func columnFor(stops []float64, x float64) int {
	idx := 0
	for i, s := range stops {
		if x >= s-colXTolerance {
			idx = i
		}
	}
	return idx
}
