package util

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	moneyPattern     = regexp.MustCompile(`(?i)(?:usd|eur|\$|€)?\s*(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:[.,]\d+)?)`)
	thousandsPattern = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)
)

type ParsedMoney struct {
	Amount *float64
	Raw    *string
}

// ParseMoney pulls a currency amount out of a costing cell. FOB cells
// arrive as "2.646", "$2.65" or "USD 2,646.00" depending on the
// template revision.
func ParseMoney(input string) ParsedMoney {
	line := CollapseSpaces(input)
	m := moneyPattern.FindStringSubmatch(line)
	if m == nil {
		return ParsedMoney{}
	}

	token := m[1]
	parsed, err := strconv.ParseFloat(normalizeMoneyToken(token), 64)
	if err != nil {
		return ParsedMoney{}
	}
	return ParsedMoney{Amount: FloatPtr(parsed), Raw: StringPtr(token)}
}

func normalizeMoneyToken(token string) string {
	compact := strings.ReplaceAll(token, " ", "")
	if thousandsPattern.MatchString(compact) {
		return strings.ReplaceAll(compact, ",", "")
	}
	if strings.Contains(compact, ",") && !strings.Contains(compact, ".") {
		return strings.ReplaceAll(compact, ",", ".")
	}
	return compact
}

// ParseFlag interprets a boolean-ish BOM cell. Empty cells stay
// undecided; any other non-empty text counts as presence (a hangtag
// spec in a flag column still marks the flag).
func ParseFlag(input string) *bool {
	s := strings.ToLower(CollapseSpaces(input))
	switch s {
	case "":
		return nil
	case "n", "no", "false", "0", "none", "-":
		return BoolPtr(false)
	default:
		return BoolPtr(true)
	}
}
