package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"

	"github.com/komsit37/quotedash/pkg/dash/present"
	"github.com/komsit37/quotedash/pkg/dash/types"
)

//go:embed page.html.tmpl
var pageTemplate string

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// HTMLRenderer renders the single-page dashboard.
type HTMLRenderer struct {
	md goldmark.Markdown
}

func NewHTMLRenderer() *HTMLRenderer { return &HTMLRenderer{md: goldmark.New()} }

type card struct {
	Label string
	Value string
}

// candlestick is a plotly trace; field names follow plotly.js.
type candlestick struct {
	Type  string    `json:"type"`
	Name  string    `json:"name"`
	X     []string  `json:"x"`
	Open  []float64 `json:"open"`
	High  []float64 `json:"high"`
	Low   []float64 `json:"low"`
	Close []float64 `json:"close"`
}

type chartLayout struct {
	Title    string         `json:"title"`
	Template string         `json:"template"`
	Height   int            `json:"height"`
	XAxis    map[string]any `json:"xaxis"`
}

type pageData struct {
	Form        bool
	Query       string
	Error       string
	Report      *types.Report
	Headline    *types.Headline
	Cards       [][]card
	Rec         types.Recommendation
	Trace       candlestick
	Layout      chartLayout
	News        template.HTML
	Overview    string
	HasOverview bool
}

func (r *HTMLRenderer) Render(w io.Writer, rep *types.Report, opts Options) error {
	data := pageData{Form: opts.Form, Query: opts.Query, Error: opts.Error}
	if rep == nil && !opts.Form && opts.Error == "" {
		return nil
	}
	if rep != nil {
		data.Report = rep
		data.Headline = rep.Headline
		for _, group := range present.GroupMetrics() {
			row := make([]card, 0, len(group))
			for _, m := range group {
				row = append(row, card{Label: m.Label, Value: m.Display(rep.Snapshot.Get(m.Key))})
			}
			data.Cards = append(data.Cards, row)
		}
		data.Rec = rep.Snapshot.Recommendation
		data.Trace = traceFor(rep.History)
		data.Layout = chartLayout{
			Title:    fmt.Sprintf("%s Price Movement", rep.Symbol),
			Template: "plotly_white",
			Height:   500,
			XAxis:    map[string]any{"rangeslider": map[string]any{"visible": true}},
		}
		if md := NewsMarkdown(rep.News); md != "" {
			var buf bytes.Buffer
			if err := r.md.Convert([]byte(md), &buf); err != nil {
				return fmt.Errorf("render news: %w", err)
			}
			// goldmark omits raw HTML unless configured otherwise.
			data.News = template.HTML(buf.String())
		}
		data.HasOverview = rep.Snapshot.HasBusinessSummary
		data.Overview = rep.Snapshot.BusinessSummary
	}
	return pageTmpl.Execute(w, data)
}

func traceFor(s types.PriceSeries) candlestick {
	t := candlestick{
		Type:  "candlestick",
		Name:  "OHLC",
		X:     make([]string, 0, len(s.Bars)),
		Open:  make([]float64, 0, len(s.Bars)),
		High:  make([]float64, 0, len(s.Bars)),
		Low:   make([]float64, 0, len(s.Bars)),
		Close: make([]float64, 0, len(s.Bars)),
	}
	for _, b := range s.Bars {
		t.X = append(t.X, b.Date.Format("2006-01-02"))
		t.Open = append(t.Open, b.Open)
		t.High = append(t.High, b.High)
		t.Low = append(t.Low, b.Low)
		t.Close = append(t.Close, b.Close)
	}
	return t
}
