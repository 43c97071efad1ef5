package present

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

func str(s string) *string { return &s }

func TestSelectNewsTruncates(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 20} {
		items := make([]types.Article, n)
		for i := range items {
			items[i].Title = str(fmt.Sprintf("t%d", i))
		}
		got := SelectNews(items)
		want := n
		if want > MaxNews {
			want = MaxNews
		}
		if len(got) != want {
			t.Errorf("n=%d: got %d items, want %d", n, len(got), want)
		}
		for i, it := range got {
			if it.Title != fmt.Sprintf("t%d", i) {
				t.Errorf("n=%d: item %d title %q, order not preserved", n, i, it.Title)
			}
		}
	}
}

func TestSelectNewsEmpty(t *testing.T) {
	if got := SelectNews(nil); got != nil {
		t.Errorf("SelectNews(nil) = %v, want nil", got)
	}
	if got := SelectNews([]types.Article{}); got != nil {
		t.Errorf("SelectNews([]) = %v, want nil", got)
	}
}

func TestSelectNewsDefaults(t *testing.T) {
	items := []types.Article{
		{},
		{Title: str("Only title")},
		{Title: str(""), Link: str("https://example.com/a"), Summary: str("s")},
	}
	want := []types.NewsItem{
		{Title: "No title available", Link: "#", Summary: "No summary available"},
		{Title: "Only title", Link: "#", Summary: "No summary available"},
		{Title: "", Link: "https://example.com/a", Summary: "s"},
	}
	if diff := cmp.Diff(want, SelectNews(items)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
