package colorway

import (
	"regexp"

	"bomcheck/internal"
	"bomcheck/internal/util"
)

// A leading 1-3 digit code split from a trailing name. Separators are
// "-", whitespace, or nothing; the trailing part must not start with a
// digit or the split is ambiguous ("010Black" splits, "2092641010"
// does not).
var reCodeSplit = regexp.MustCompile(`^(\d{1,3})(?:\s*-\s*|\s+)?([^\s\d].*)?$`)

// Normalize canonicalizes any textual color reference into a
// ColorwayKey. Deterministic and side-effect-free; returns false only
// for references that carry neither a code nor a usable name.
func (t *Table) Normalize(raw string) (internal.ColorwayKey, bool) {
	s := util.CollapseSpaces(raw)
	if s == "" {
		return internal.ColorwayKey{}, false
	}

	if m := reCodeSplit.FindStringSubmatch(s); m != nil {
		code := util.PadCode(m[1])
		name := util.NormalizeName(m[2])
		if name == "" {
			name, _ = t.CanonicalName(code)
		}
		return internal.ColorwayKey{Code: code, Name: name}, true
	}

	name := util.NormalizeName(s)
	if name == "" {
		return internal.ColorwayKey{}, false
	}
	code, _ := t.CodeFor(name)
	return internal.ColorwayKey{Code: code, Name: name}, true
}

// Match implements the one equality rule every downstream consumer
// uses: equal codes are an exact match; a missing code on either side
// defers to name equality; mismatched codes with equal names is a
// name-only match, flagged rather than silently accepted. Symmetric.
func Match(a, b internal.ColorwayKey) internal.MatchKind {
	if a.IsZero() || b.IsZero() {
		return internal.MatchNone
	}
	if a.Code != "" && b.Code != "" {
		if a.Code == b.Code {
			return internal.MatchExact
		}
		if a.Name != "" && a.Name == b.Name {
			return internal.MatchNameOnly
		}
		return internal.MatchNone
	}
	if a.Name != "" && a.Name == b.Name {
		return internal.MatchExact
	}
	return internal.MatchNone
}
