package filter

import (
	"testing"

	"github.com/komsit37/quotedash/pkg/dash/resolve"
)

func names(es []resolve.Entry) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.Name)
	}
	return out
}

func TestParseAndApply(t *testing.T) {
	entries := resolve.Default().Entries()
	cases := []struct {
		expr string
		want int
	}{
		{"", len(entries)},
		{"apple,tcs.ns", 2},
		{"*.NS", 8},
		{"/^(tata|icici)/", 2},
		{"bank", 2}, // HDFCBANK.NS, ICICIBANK
		{"nomatch", 0},
	}
	for _, c := range cases {
		f, err := Parse(c.expr)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.expr, err)
		}
		got := Apply(f, entries)
		if len(got) != c.want {
			t.Errorf("Parse(%q) matched %v, want %d entries", c.expr, names(got), c.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, expr := range []string{"/(/", "[a-"} {
		if _, err := Parse(expr); err == nil {
			t.Errorf("Parse(%q): expected error", expr)
		}
	}
}
