package present

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

// Keys of the quoteSummary price module used for the headline.
const (
	KeyMarketPrice   = "regularMarketPrice"
	KeyChangePercent = "regularMarketChangePercent"
	KeyShortName     = "shortName"
	KeyLongName      = "longName"
)

// Headline builds the quote line from the price fields already in p. It
// returns nil when p carries no market price.
func Headline(p types.Profile) *types.Headline {
	price, ok := number(p[KeyMarketPrice])
	if !ok {
		return nil
	}
	h := &types.Headline{Price: strconv.FormatFloat(price, 'f', 2, 64)}
	if chg, ok := number(p[KeyChangePercent]); ok {
		// Yahoo sends the change as a fraction.
		h.ChgRaw = chg * 100
		h.ChgFmt = fmt.Sprintf("%+.2f%%", h.ChgRaw)
	}
	for _, key := range []string{KeyShortName, KeyLongName} {
		if s, ok := p[key].(string); ok && s != "" {
			h.Name = s
			break
		}
	}
	return h
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case int:
		return float64(t), true
	default:
		return 0, false
	}
}
