package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/quotedash/pkg/dash/present"
	"github.com/komsit37/quotedash/pkg/dash/types"
)

const (
	defaultWidth = 100
	chartHeight  = 14
)

// TableRenderer draws the dashboard for a terminal.
type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, rep *types.Report, opts Options) error {
	if rep == nil {
		return nil
	}
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	if rep.Headline != nil {
		fmt.Fprintln(w, headlineLine(rep.Symbol, rep.Headline, opts.Color))
		fmt.Fprintln(w)
	}

	// Metric cards, one table per row of three
	for _, group := range present.GroupMetrics() {
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		if opts.Color {
			tw.SetStyle(table.StyleColoredDark)
		} else {
			tw.SetStyle(table.StyleLight)
		}
		tw.Style().Options.SeparateColumns = true

		hdr := make(table.Row, len(group))
		row := make(table.Row, len(group))
		cfgs := make([]table.ColumnConfig, 0, len(group))
		for i, m := range group {
			hdr[i] = strings.ToUpper(m.Label)
			row[i] = m.Display(rep.Snapshot.Get(m.Key))
			cfgs = append(cfgs, table.ColumnConfig{Number: i + 1, WidthMin: 18, Align: text.AlignRight})
		}
		tw.AppendHeader(hdr)
		tw.AppendRow(row)
		tw.SetColumnConfigs(cfgs)
		tw.Render()
	}

	rec := rep.Snapshot.Recommendation
	fmt.Fprintf(w, "\nRECOMMENDATION: %s\n\n", paintRecommendation(rec, opts.Color))

	title := fmt.Sprintf("%s Price Movement", rep.Symbol)
	if opts.Color {
		title = text.Bold.Sprint(title)
	}
	fmt.Fprintln(w, title)
	for _, line := range Candles(rep.History.Bars, width, chartHeight, opts.Color) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "%d candles\n", rep.History.Len())

	md := NewsMarkdown(rep.News) + "\n" + OverviewMarkdown(rep.Snapshot)
	if strings.TrimSpace(md) == "" {
		return nil
	}
	out, err := renderMarkdown(md, width, opts.Color)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func renderMarkdown(md string, width int, color bool) (string, error) {
	style := "notty"
	if color {
		style = "dark"
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return tr.Render(md)
}

func paintRecommendation(rec types.Recommendation, color bool) string {
	if !color {
		return fmt.Sprintf("%s (%s)", rec.Label, rec.Color)
	}
	var c text.Colors
	switch rec.Color {
	case types.Green:
		c = text.Colors{text.FgGreen, text.Bold}
	case types.Yellow:
		c = text.Colors{text.FgYellow, text.Bold}
	default:
		c = text.Colors{text.FgRed, text.Bold}
	}
	return c.Sprint(rec.Label)
}

func headlineLine(sym types.Symbol, h *types.Headline, color bool) string {
	parts := []string{sym.String()}
	if h.Name != "" {
		parts = append(parts, h.Name)
	}
	quote := strings.TrimSpace(h.Price + " " + h.ChgFmt)
	if color && quote != "" {
		if h.ChgRaw > 0 {
			quote = text.Colors{text.FgGreen}.Sprint(quote)
		} else if h.ChgRaw < 0 {
			quote = text.Colors{text.FgRed}.Sprint(quote)
		}
	}
	if quote != "" {
		parts = append(parts, quote)
	}
	line := strings.Join(parts, "  ")
	if color {
		return text.Bold.Sprint(line)
	}
	return line
}
