package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/komsit37/quotedash/pkg/dash/present"
	"github.com/komsit37/quotedash/pkg/dash/provider"
	"github.com/komsit37/quotedash/pkg/dash/render"
	"github.com/komsit37/quotedash/pkg/dash/resolve"
	"github.com/komsit37/quotedash/pkg/dash/types"
)

// FetchError wraps any failure of the data fetch step.
type FetchError struct {
	Symbol types.Symbol
	Op     string // "profile", "history" or "news"
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Error fetching data: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type Runner struct {
	Resolver *resolve.Resolver
	Fetcher  provider.Fetcher
	Renderer render.Renderer
	Writer   io.Writer
	Period   string
	Verbose  bool
}

type ExecuteOptions struct {
	Color      bool
	PrettyJSON bool
	Width      int
	Form       bool
}

// Analyze runs one request: resolve, fetch profile, history and news in
// that order, then map for display. It returns (nil, nil) when the
// provider answered but had no profile or no history; nothing is shown
// in that case.
func (r *Runner) Analyze(ctx context.Context, query string) (*types.Report, error) {
	sym, err := r.Resolver.Resolve(query)
	if err != nil {
		return nil, err
	}

	period := r.Period
	if period == "" {
		period = provider.DefaultPeriod
	}
	profile, err := r.Fetcher.FetchProfile(ctx, sym)
	if err != nil {
		return nil, &FetchError{Symbol: sym, Op: "profile", Err: err}
	}
	history, err := r.Fetcher.FetchHistory(ctx, sym, period)
	if err != nil {
		return nil, &FetchError{Symbol: sym, Op: "history", Err: err}
	}
	articles, err := r.Fetcher.FetchNews(ctx, sym)
	if err != nil {
		return nil, &FetchError{Symbol: sym, Op: "news", Err: err}
	}

	if len(profile) == 0 || history.Len() == 0 {
		if r.Verbose {
			log.Printf("[INFO] %s: no profile or history, nothing to display", sym)
		}
		return nil, nil
	}

	rep := &types.Report{
		Query:    query,
		Symbol:   sym,
		Headline: present.Headline(profile),
		Snapshot: present.MapForDisplay(profile),
		History:  history,
		News:     present.SelectNews(articles),
	}
	return rep, nil
}

// Execute analyzes query and renders the result to r.Writer.
func (r *Runner) Execute(ctx context.Context, query string, opts ExecuteOptions) error {
	rep, err := r.Analyze(ctx, query)
	if err != nil {
		return err
	}
	return r.Renderer.Render(r.Writer, rep, render.Options{
		Color:      opts.Color,
		PrettyJSON: opts.PrettyJSON,
		Width:      opts.Width,
		Form:       opts.Form,
		Query:      query,
	})
}
