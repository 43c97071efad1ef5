package types

import "time"

// NotAvailable is the display marker for a field the provider did not send.
const NotAvailable = "N/A"

// Symbol is a resolved ticker, e.g. "AAPL" or "TCS.NS".
type Symbol string

func (s Symbol) String() string { return string(s) }

// Profile is a flat view of the provider's info object for one symbol.
// Numbers arrive as float64 (or json.Number from other sources).
type Profile map[string]any

// Color classifies a recommendation label for display.
type Color string

const (
	Green  Color = "green"
	Yellow Color = "yellow"
	Red    Color = "red"
)

// Recommendation is the title-cased provider label and its display color.
type Recommendation struct {
	Label string `json:"label"`
	Color Color  `json:"color"`
}

// QuoteSnapshot holds display-ready values for the metric cards.
// Every key in Values is present; absent provider fields carry NotAvailable.
type QuoteSnapshot struct {
	Values             map[string]string `json:"values"`
	Recommendation     Recommendation    `json:"recommendation"`
	BusinessSummary    string            `json:"businessSummary,omitempty"`
	HasBusinessSummary bool              `json:"hasBusinessSummary"`
}

// Get returns the display value for key, or NotAvailable.
func (s QuoteSnapshot) Get(key string) string {
	if v, ok := s.Values[key]; ok {
		return v
	}
	return NotAvailable
}

// Bar is one trading day.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries is a chronologically ordered run of daily bars.
type PriceSeries struct {
	Symbol Symbol `json:"symbol"`
	Bars   []Bar  `json:"bars"`
}

func (p PriceSeries) Len() int { return len(p.Bars) }

// Article is a news entry as returned by the provider. Nil fields were absent.
type Article struct {
	Title       *string
	Link        *string
	Summary     *string
	Publisher   string
	PublishedAt time.Time
}

// NewsItem is an article ready for display.
type NewsItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Summary string `json:"summary"`
}

// Headline is the short quote line shown above the cards.
type Headline struct {
	Name   string  `json:"name"`
	Price  string  `json:"price"`
	ChgFmt string  `json:"chgFmt"`
	ChgRaw float64 `json:"chgRaw"`
}

// Report is everything rendered for one analysis request.
type Report struct {
	Query    string        `json:"query"`
	Symbol   Symbol        `json:"symbol"`
	Headline *Headline     `json:"headline,omitempty"`
	Snapshot QuoteSnapshot `json:"snapshot"`
	History  PriceSeries   `json:"history"`
	News     []NewsItem    `json:"news,omitempty"`
}
