package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

const (
	candleBody = "┃"
	candleWick = "│"
)

// downsample merges bars into at most n buckets, keeping OHLC semantics:
// first open, max high, min low, last close.
func downsample(bars []types.Bar, n int) []types.Bar {
	if n <= 0 || len(bars) <= n {
		return bars
	}
	out := make([]types.Bar, 0, n)
	for i := 0; i < n; i++ {
		lo, hi := i*len(bars)/n, (i+1)*len(bars)/n
		chunk := bars[lo:hi]
		b := chunk[0]
		for _, c := range chunk[1:] {
			b.High = math.Max(b.High, c.High)
			b.Low = math.Min(b.Low, c.Low)
			b.Volume += c.Volume
		}
		b.Close = chunk[len(chunk)-1].Close
		out = append(out, b)
	}
	return out
}

// Candles draws bars as a text candlestick chart, one column per bar,
// with a price axis on the left. width bounds the whole line.
func Candles(bars []types.Bar, width, height int, color bool) []string {
	if len(bars) == 0 || height < 2 {
		return nil
	}
	hi, lo := bars[0].High, bars[0].Low
	for _, b := range bars {
		hi = math.Max(hi, b.High)
		lo = math.Min(lo, b.Low)
	}
	top, bottom := fmt.Sprintf("%.2f", hi), fmt.Sprintf("%.2f", lo)
	axis := len(top)
	if len(bottom) > axis {
		axis = len(bottom)
	}
	cols := width - axis - 2
	if width <= 0 || cols > len(bars) {
		cols = len(bars)
	}
	if cols < 1 {
		cols = 1
	}
	bars = downsample(bars, cols)

	row := func(p float64) int {
		if hi == lo {
			return height / 2
		}
		return int(math.Round((hi - p) / (hi - lo) * float64(height-1)))
	}

	grid := make([][]string, height)
	for r := range grid {
		grid[r] = make([]string, len(bars))
	}
	for c, b := range bars {
		wickTop, wickBot := row(b.High), row(b.Low)
		bodyTop, bodyBot := row(math.Max(b.Open, b.Close)), row(math.Min(b.Open, b.Close))
		paint := text.Colors{text.FgGreen}
		if b.Close < b.Open {
			paint = text.Colors{text.FgRed}
		}
		for r := 0; r < height; r++ {
			cell := " "
			switch {
			case r >= bodyTop && r <= bodyBot:
				cell = candleBody
			case r >= wickTop && r <= wickBot:
				cell = candleWick
			}
			if color && cell != " " {
				cell = paint.Sprint(cell)
			}
			grid[r][c] = cell
		}
	}

	lines := make([]string, 0, height+1)
	for r := 0; r < height; r++ {
		label := ""
		switch r {
		case 0:
			label = top
		case height - 1:
			label = bottom
		}
		lines = append(lines, fmt.Sprintf("%*s ┤%s", axis, label, strings.Join(grid[r], "")))
	}
	first, last := bars[0].Date.Format("2006-01-02"), bars[len(bars)-1].Date.Format("2006-01-02")
	pad := len(bars) - len(first) - len(last)
	if pad < 1 {
		pad = 1
	}
	lines = append(lines, fmt.Sprintf("%*s  %s%s%s", axis, "", first, strings.Repeat(" ", pad), last))
	return lines
}
