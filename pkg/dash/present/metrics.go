package present

// Profile keys read by the mapper.
const (
	KeyCurrentPrice        = "currentPrice"
	KeyForwardPE           = "forwardPE"
	KeyFiftyTwoWeekLow     = "fiftyTwoWeekLow"
	KeyFiftyTwoWeekHigh    = "fiftyTwoWeekHigh"
	KeyMarketCap           = "marketCap"
	KeyDividendYield       = "dividendYield"
	KeyRecommendation      = "recommendationKey"
	KeyLongBusinessSummary = "longBusinessSummary"
)

// Metric describes one metric card.
type Metric struct {
	Key   string
	Label string
	// Dollar cards are shown with a leading "$", even when the value is N/A.
	Dollar bool
}

// Metrics lists the six cards in display order.
var Metrics = []Metric{
	{Key: KeyCurrentPrice, Label: "Current Price", Dollar: true},
	{Key: KeyForwardPE, Label: "Forward P/E"},
	{Key: KeyFiftyTwoWeekLow, Label: "52-Week Low", Dollar: true},
	{Key: KeyFiftyTwoWeekHigh, Label: "52-Week High", Dollar: true},
	{Key: KeyMarketCap, Label: "Market Cap"},
	{Key: KeyDividendYield, Label: "Dividend Yield"},
}

// GetMetric returns the definition for key.
func GetMetric(key string) (Metric, bool) {
	for _, m := range Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}

// Display formats value the way its card shows it.
func (m Metric) Display(value string) string {
	if m.Dollar {
		return "$" + value
	}
	return value
}

// Groups lays the cards out in rows of three.
var Groups = [][]string{
	{KeyCurrentPrice, KeyForwardPE, KeyFiftyTwoWeekLow},
	{KeyFiftyTwoWeekHigh, KeyMarketCap, KeyDividendYield},
}

// GroupMetrics resolves Groups into metric definitions.
func GroupMetrics() [][]Metric {
	out := make([][]Metric, 0, len(Groups))
	for _, g := range Groups {
		row := make([]Metric, 0, len(g))
		for _, k := range g {
			if m, ok := GetMetric(k); ok {
				row = append(row, m)
			}
		}
		out = append(out, row)
	}
	return out
}
