package provider

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	yfgo "github.com/komsit37/yf-go"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

// FetchHistory returns daily bars covering period (e.g. "1y").
func (y *Yahoo) FetchHistory(ctx context.Context, sym types.Symbol, period string) (types.PriceSeries, error) {
	ctx, cancel := y.withTimeout(ctx)
	defer cancel()

	if period == "" {
		period = DefaultPeriod
	}
	y.mu.Lock()
	res, err := y.YF.ChartTyped(ctx, sym.String(), yfgo.ChartOptions{Interval: "1d", Range: period})
	y.mu.Unlock()
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("yahoo chart %s: %w", sym, explain(err, "$.chart.error.description"))
	}
	series := parseChart(sym, res)
	if y.Verbose {
		log.Printf("[INFO] %s: chart %s %d bars", sym, period, series.Len())
	}
	return series, nil
}

func parseChart(sym types.Symbol, res yfgo.ChartResult) types.PriceSeries {
	series := types.PriceSeries{Symbol: sym}
	if len(res.Indicators.Quote) == 0 {
		return series
	}
	quote := res.Indicators.Quote[0]
	loc := time.FixedZone(res.Meta.ExchangeTimezoneName, int(res.Meta.GmtOffset))

	bars := make([]types.Bar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if o == nil || h == nil || l == nil || c == nil {
			continue // null bars (holidays, halted sessions)
		}
		var vol float64
		if v := at(quote.Volume, i); v != nil {
			vol = float64(*v)
		}
		bars = append(bars, types.Bar{
			Date:   time.Unix(ts, 0).In(loc),
			Open:   *o,
			High:   *h,
			Low:    *l,
			Close:  *c,
			Volume: vol,
		})
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	series.Bars = bars
	return series
}

func at[T any](s []*T, i int) *T {
	if i < len(s) {
		return s[i]
	}
	return nil
}
