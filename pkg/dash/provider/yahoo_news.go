package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

const newsCount = 8

type yahooSearch struct {
	News []map[string]any `json:"news"`
}

// FetchNews returns recent articles for sym in provider order.
func (y *Yahoo) FetchNews(ctx context.Context, sym types.Symbol) ([]types.Article, error) {
	ctx, cancel := y.withTimeout(ctx)
	defer cancel()

	q := url.Values{}
	q.Set("q", sym.String())
	q.Set("quotesCount", "0")
	q.Set("newsCount", fmt.Sprint(newsCount))
	addr := y.SearchURL + "?" + q.Encode()

	body, status, err := y.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo search %s: status %d: %s", sym, status, snippet(body))
	}
	var res yahooSearch
	if err := decodeJSON(body, &res); err != nil {
		return nil, fmt.Errorf("yahoo search decode: %w", err)
	}

	out := make([]types.Article, 0, len(res.News))
	for _, n := range res.News {
		a := types.Article{
			Title:   optString(n, "title"),
			Link:    optString(n, "link"),
			Summary: optString(n, "summary"),
		}
		if p := optString(n, "publisher"); p != nil {
			a.Publisher = *p
		}
		if ts, ok := n["providerPublishTime"].(json.Number); ok {
			if sec, err := ts.Int64(); err == nil {
				a.PublishedAt = time.Unix(sec, 0).UTC()
			}
		}
		out = append(out, a)
	}
	return out, nil
}

// optString returns nil when key is absent or null.
func optString(m map[string]any, key string) *string {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return &s
}
