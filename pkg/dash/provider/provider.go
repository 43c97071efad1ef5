package provider

import (
	"context"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

// DefaultPeriod is the history window used by the dashboard.
const DefaultPeriod = "1y"

// Fetcher retrieves the three independent pieces of one analysis.
type Fetcher interface {
	FetchProfile(ctx context.Context, sym types.Symbol) (types.Profile, error)
	FetchHistory(ctx context.Context, sym types.Symbol, period string) (types.PriceSeries, error)
	FetchNews(ctx context.Context, sym types.Symbol) ([]types.Article, error)
}
