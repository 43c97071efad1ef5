package present

import "github.com/komsit37/quotedash/pkg/dash/types"

// MaxNews is how many headlines are shown.
const MaxNews = 3

const (
	noTitle   = "No title available"
	noLink    = "#"
	noSummary = "No summary available"
)

// SelectNews keeps the first MaxNews articles in provider order and fills
// absent fields with placeholders. It returns nil for empty input, which
// renderers treat as "omit the news section".
func SelectNews(items []types.Article) []types.NewsItem {
	if len(items) == 0 {
		return nil
	}
	if len(items) > MaxNews {
		items = items[:MaxNews]
	}
	out := make([]types.NewsItem, 0, len(items))
	for _, a := range items {
		out = append(out, types.NewsItem{
			Title:   orDefault(a.Title, noTitle),
			Link:    orDefault(a.Link, noLink),
			Summary: orDefault(a.Summary, noSummary),
		})
	}
	return out
}

func orDefault(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
