package features

import (
	"strconv"
	"strings"
)

// CleanNumeric strips a unit token (with or without a preceding space) and
// thousands-separator commas from a raw field value, then parses the
// remainder as a float. ok is false when the value does not parse; callers
// treat that as "not available" and drop or flag the row rather than
// aborting. The unit may be empty for plain numeric columns.
func CleanNumeric(raw, unit string) (value float64, ok bool) {
	s := strings.TrimSpace(raw)
	if unit != "" {
		s = strings.ReplaceAll(s, " "+unit, "")
		s = strings.ReplaceAll(s, unit, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// currencyTokens are stripped from price strings before parsing. Longer
// tokens come first so currency codes are removed before single symbols.
var currencyTokens = []string{"INR", "USD", "₹", "$", ","}

// CleanPrice strips currency symbols, currency-code prefixes, commas and
// embedded whitespace from a raw price string, then parses it as a float.
// Same failure policy as CleanNumeric: ok=false for anything unparsable.
func CleanPrice(raw string) (value float64, ok bool) {
	s := raw
	for _, tok := range currencyTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
