// Package present turns raw provider data into display-ready values.
package present

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

// MapForDisplay extracts the card values from p. Each field falls back to
// types.NotAvailable on its own, so a sparse profile still maps fully.
func MapForDisplay(p types.Profile) types.QuoteSnapshot {
	s := types.QuoteSnapshot{Values: make(map[string]string, len(Metrics)+1)}
	for _, m := range Metrics {
		s.Values[m.Key] = field(p, m.Key)
	}
	rec := field(p, KeyRecommendation)
	s.Values[KeyRecommendation] = rec
	s.Recommendation = Recommend(rec)

	if v, ok := p[KeyLongBusinessSummary]; ok {
		s.HasBusinessSummary = true
		s.BusinessSummary = displayValue(v)
	}
	return s
}

// Recommend title-cases a raw recommendation key and classifies it.
func Recommend(key string) types.Recommendation {
	label := TitleCase(key)
	return types.Recommendation{Label: label, Color: Classify(label)}
}

// Classify maps a title-cased label to its color. Anything that is not an
// explicit buy or hold, including N/A, is red.
func Classify(label string) types.Color {
	switch label {
	case "Strong Buy", "Buy":
		return types.Green
	case "Hold":
		return types.Yellow
	default:
		return types.Red
	}
}

// TitleCase upper-cases every letter that follows a non-letter and
// lower-cases the rest: "strong_buy" becomes "Strong_Buy".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		cased := unicode.IsLetter(r)
		switch {
		case cased && !prevCased:
			b.WriteRune(unicode.ToTitle(r))
		case cased:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevCased = cased
	}
	return b.String()
}

func field(p types.Profile, key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return types.NotAvailable
	}
	return displayValue(v)
}

// displayValue renders v without any numeric formatting.
func displayValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return types.NotAvailable
	default:
		return fmt.Sprint(t)
	}
}
