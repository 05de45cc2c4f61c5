package pipeline

import (
	"fmt"
	"strconv"
	"sync"

	"bomcheck/internal"
	"bomcheck/internal/bom"
	"bomcheck/internal/colorway"
	"bomcheck/internal/config"
	"bomcheck/internal/util"
)

// Validator resolves each comparison row against the BOM index, fills
// the enrichable fields and assigns a verdict. Rows are independent;
// the only shared state is the read-only index.
type Validator struct {
	colorways *colorway.Table
	index     *bom.Index
	critical  []string
	workers   int
}

func NewValidator(cfg config.Config, table *colorway.Table, index *bom.Index) *Validator {
	workers := cfg.ValidateWorkers
	if workers < 1 {
		workers = 1
	}
	return &Validator{
		colorways: table,
		index:     index,
		critical:  cfg.CriticalFields,
		workers:   workers,
	}
}

// Validate produces exactly one result per input row, output slot i
// belonging to input row i. No row's failure affects another row.
func (v *Validator) Validate(set internal.ComparisonSet, styleCol, colorCol string) ([]internal.ValidationResult, error) {
	if !hasColumn(set.Columns, styleCol) {
		return nil, fmt.Errorf("style column %q not in dataset", styleCol)
	}
	if !hasColumn(set.Columns, colorCol) {
		return nil, fmt.Errorf("color column %q not in dataset", colorCol)
	}

	results := make([]internal.ValidationResult, len(set.Rows))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < v.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = v.validateRow(set.Rows[i], styleCol, colorCol)
			}
		}()
	}
	for i := range set.Rows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results, nil
}

func (v *Validator) validateRow(row internal.ComparisonRow, styleCol, colorCol string) internal.ValidationResult {
	res := internal.ValidationResult{
		Index:  row.Index,
		Cells:  row.Cells,
		Filled: map[string]string{},
	}

	style := util.CollapseSpaces(row.Cells[styleCol])
	colorRaw := row.Cells[colorCol]
	key, resolvable := v.colorways.Normalize(colorRaw)

	if style == "" {
		res.Reasons = append(res.Reasons, "style reference missing")
	}
	if !resolvable {
		res.Reasons = append(res.Reasons, fmt.Sprintf("colorway %q could not be resolved", colorRaw))
	}
	if style == "" || !resolvable {
		res.Verdict = internal.VerdictError
		return res
	}

	view, status := v.index.Lookup(style, key)
	switch status {
	case bom.StyleNotFound:
		res.Verdict = internal.VerdictMismatch
		res.Reasons = append(res.Reasons, "style not in BOM")
		return res
	case bom.ColorwayNotFound:
		res.Verdict = internal.VerdictMismatch
		res.Reasons = append(res.Reasons, "color not in BOM for style")
		return res
	}

	v.fill(&res, view)

	if view.NameOnly {
		res.Reasons = append(res.Reasons, "name-only match")
	}
	criticalFilled := false
	var missingCritical []string
	for _, field := range internal.EnrichedFields {
		if _, ok := res.Filled[field]; ok {
			if v.isCritical(field) {
				criticalFilled = true
			}
			continue
		}
		if v.isCritical(field) {
			missingCritical = append(missingCritical, field)
		}
		res.Reasons = append(res.Reasons, field+" missing")
	}

	// Severity order: Error > Mismatch > Partial > Validated.
	switch {
	case !criticalFilled:
		res.Verdict = internal.VerdictError
		res.Reasons = append(res.Reasons, fmt.Sprintf("no critical field filled (%s)", joinFields(missingCritical)))
	case view.NameOnly || len(res.Reasons) > 0:
		res.Verdict = internal.VerdictPartial
	default:
		res.Verdict = internal.VerdictValidated
	}
	return res
}

func (v *Validator) fill(res *internal.ValidationResult, view bom.View) {
	set := func(field string, val *string) {
		if val != nil {
			res.Filled[field] = *val
		}
	}
	setFlag := func(field string, val *bool) {
		if val == nil {
			return
		}
		if *val {
			res.Filled[field] = "Y"
		} else {
			res.Filled[field] = "N"
		}
	}

	if cb := view.ColorBom; cb != nil {
		set("trim_supplier", cb.TrimSupplier)
		set("label_supplier", cb.LabelSupplier)
		if cb.HangtagSpec != nil {
			res.Filled["hangtag"] = *cb.HangtagSpec
		} else {
			setFlag("hangtag", cb.Hangtag)
		}
		setFlag("rfid", cb.RFID)
	}
	if c := view.Costing; c != nil && c.FOB != nil {
		if c.FOBRaw != nil {
			res.Filled["fob"] = *c.FOBRaw
		} else {
			res.Filled["fob"] = strconv.FormatFloat(*c.FOB, 'f', -1, 64)
		}
	}
	if care := view.Care; care != nil {
		set("care_code", care.CareCode)
		set("content", care.Content)
	}
}

func (v *Validator) isCritical(field string) bool {
	for _, f := range v.critical {
		if f == field {
			return true
		}
	}
	return false
}

func hasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

func joinFields(fields []string) string {
	out := ""
	for i, f := range fields {
		if i > 0 {
			out += ", "
		}
		out += f
	}
	return out
}
