package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/komsit37/quotedash/pkg/dash/resolve"
)

// Filter selects rows of the name→symbol table.
type Filter interface {
	Match(e resolve.Entry) bool
}

// Parse builds a filter from an expression. Names and symbols are both
// tried, case-insensitively:
//   - comma-separated exact values: "APPLE,TCS.NS"
//   - glob: "*.NS"
//   - regex: "/^(TATA|ICICI)/"
//   - anything else: substring
func Parse(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return All{}, nil
	}
	if strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/") && len(expr) > 2 {
		re, err := regexp.Compile("(?i)" + expr[1:len(expr)-1])
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", expr, err)
		}
		return Regex{re: re}, nil
	}
	if strings.Contains(expr, ",") {
		set := map[string]struct{}{}
		for _, p := range strings.Split(expr, ",") {
			p = strings.ToUpper(strings.TrimSpace(p))
			if p == "" {
				continue
			}
			set[p] = struct{}{}
		}
		return ExactSet{set: set}, nil
	}
	if strings.ContainsAny(expr, "*?[") {
		if _, err := filepath.Match(expr, ""); err != nil {
			return nil, fmt.Errorf("filter %q: %w", expr, err)
		}
		return Glob{pattern: strings.ToUpper(expr)}, nil
	}
	return Substr{needle: strings.ToUpper(expr)}, nil
}

// Apply returns the entries matching f, in order.
func Apply(f Filter, entries []resolve.Entry) []resolve.Entry {
	out := make([]resolve.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

type All struct{}

func (All) Match(resolve.Entry) bool { return true }

type ExactSet struct{ set map[string]struct{} }

func (s ExactSet) Match(e resolve.Entry) bool {
	_, byName := s.set[strings.ToUpper(e.Name)]
	_, bySym := s.set[strings.ToUpper(e.Symbol)]
	return byName || bySym
}

type Glob struct{ pattern string }

func (g Glob) Match(e resolve.Entry) bool {
	for _, v := range []string{e.Name, e.Symbol} {
		if ok, _ := filepath.Match(g.pattern, strings.ToUpper(v)); ok {
			return true
		}
	}
	return false
}

func (g Glob) String() string { return fmt.Sprintf("glob:%s", g.pattern) }

type Regex struct{ re *regexp.Regexp }

func (r Regex) Match(e resolve.Entry) bool {
	return r.re.MatchString(e.Name) || r.re.MatchString(e.Symbol)
}

// Substr matches if the name or symbol contains needle.
type Substr struct{ needle string }

func (s Substr) Match(e resolve.Entry) bool {
	return strings.Contains(strings.ToUpper(e.Name), s.needle) ||
		strings.Contains(strings.ToUpper(e.Symbol), s.needle)
}

func (s Substr) String() string { return fmt.Sprintf("substr:%s", s.needle) }
