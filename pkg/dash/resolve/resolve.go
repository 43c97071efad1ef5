package resolve

import (
	"sort"
	"strings"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

// CommonStocks maps upper-case company names to ticker symbols.
var CommonStocks = map[string]string{
	"NVIDIA": "NVDA", "APPLE": "AAPL", "GOOGLE": "GOOGL", "MICROSOFT": "MSFT",
	"TESLA": "TSLA", "AMAZON": "AMZN", "META": "META", "NETFLIX": "NFLX",
	"TCS": "TCS.NS", "RELIANCE": "RELIANCE.NS", "INFOSYS": "INFY.NS",
	"WIPRO": "WIPRO.NS", "HDFC": "HDFCBANK.NS", "TATAMOTORS": "TATAMOTORS.NS",
	"ICICIBANK": "ICICIBANK.NS", "SBIN": "SBIN.NS",
}

// UserInputError reports input that cannot be resolved at all.
type UserInputError struct {
	Input string
}

func (e *UserInputError) Error() string {
	return "Please enter a stock name"
}

// Resolver maps free text to a ticker symbol. It is read-only after New.
type Resolver struct {
	table map[string]string
}

// Default returns a resolver over CommonStocks only.
func Default() *Resolver { return New(nil) }

// New builds a resolver over CommonStocks overlaid with extra entries.
// Extra names are matched case-insensitively like the built-in ones.
func New(extra map[string]string) *Resolver {
	t := make(map[string]string, len(CommonStocks)+len(extra))
	for k, v := range CommonStocks {
		t[k] = v
	}
	for k, v := range extra {
		k = strings.ToUpper(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		t[k] = v
	}
	return &Resolver{table: t}
}

// Resolve looks raw up by its upper-case form. Unknown input is returned
// unchanged as a literal symbol guess; the fetch step decides if it is real.
func (r *Resolver) Resolve(raw string) (types.Symbol, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &UserInputError{Input: raw}
	}
	if sym, ok := r.table[strings.ToUpper(raw)]; ok {
		return types.Symbol(sym), nil
	}
	return types.Symbol(raw), nil
}

// Entry is one name→symbol row of the table.
type Entry struct {
	Name   string
	Symbol string
}

// Entries lists the table sorted by name.
func (r *Resolver) Entries() []Entry {
	out := make([]Entry, 0, len(r.table))
	for k, v := range r.table {
		out = append(out, Entry{Name: k, Symbol: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
