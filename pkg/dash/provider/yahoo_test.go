package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

const quoteSummaryAAPL = `{"quoteSummary":{"result":[{
  "financialData":{"maxAge":86400,"currentPrice":{"raw":190.5,"fmt":"190.50"},"recommendationKey":"buy","targetMeanPrice":{}},
  "summaryDetail":{"maxAge":1,"forwardPE":{"raw":28.1,"fmt":"28.10"},"marketCap":{"raw":2950000000000,"fmt":"2.95T"},"dividendYield":{"raw":null,"fmt":null},"currentPrice":{"raw":1,"fmt":"1"}},
  "assetProfile":{"longBusinessSummary":"Apple Inc. designs smartphones.","companyOfficers":[]},
  "price":{"maxAge":1,"regularMarketPrice":{"raw":191,"fmt":"191.00"},"shortName":"Apple Inc.","longName":null}
}],"error":null}}`

const chartAAPL = `{"chart":{"result":[{
  "meta":{"gmtoffset":-14400,"exchangeTimezoneName":"America/New_York"},
  "timestamp":[1700150400,1699977600,1700064000,1700236800],
  "indicators":{"quote":[{
    "open":[3,1,2,null],"high":[3.5,1.5,2.5,null],"low":[2.5,0.5,1.5,null],"close":[3.2,1.2,2.2,null],"volume":[300,100,null,null]
  }]}
}],"error":null}}`

const searchAAPL = `{"news":[
  {"title":"First","link":"https://example.com/1","publisher":"Wire","providerPublishTime":1700000000},
  {"title":null,"publisher":"Wire"},
  {"link":"https://example.com/3","summary":"third"}
]}`

// fakeYahoo serves every Yahoo host the client talks to.
type fakeYahoo struct {
	crumbCalls   atomic.Int32
	summaryCalls atomic.Int32
	chartCalls   atomic.Int32
	lastCrumb    atomic.Value
	profileBody  string
	// profileCodes are returned by successive quoteSummary calls; 200 after.
	profileCodes []int
}

func (f *fakeYahoo) handler() http.Handler {
	mux := http.NewServeMux()
	// fc.yahoo.com and finance.yahoo.com session warm-up.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session", Path: "/"})
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/v1/test/getcrumb", func(w http.ResponseWriter, r *http.Request) {
		f.crumbCalls.Add(1)
		fmt.Fprint(w, "abc123")
	})
	mux.HandleFunc("/v10/finance/quoteSummary/", func(w http.ResponseWriter, r *http.Request) {
		n := int(f.summaryCalls.Add(1))
		f.lastCrumb.Store(r.URL.Query().Get("crumb"))
		if n <= len(f.profileCodes) && f.profileCodes[n-1] != http.StatusOK {
			w.WriteHeader(f.profileCodes[n-1])
		}
		fmt.Fprint(w, f.profileBody)
	})
	mux.HandleFunc("/v8/finance/chart/AAPL", func(w http.ResponseWriter, r *http.Request) {
		f.chartCalls.Add(1)
		if r.URL.Query().Get("range") != "1y" || r.URL.Query().Get("interval") != "1d" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, chartAAPL)
	})
	mux.HandleFunc("/v8/finance/chart/FAKECO", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	})
	mux.HandleFunc("/v1/finance/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "AAPL" {
			fmt.Fprint(w, `{"news":[]}`)
			return
		}
		fmt.Fprint(w, searchAAPL)
	})
	return mux
}

// rewriteTransport sends every request to the test server.
type rewriteTransport struct {
	target *url.URL
	next   http.RoundTripper
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = rt.target.Scheme
	clone.URL.Host = rt.target.Host
	clone.Host = rt.target.Host
	return rt.next.RoundTrip(clone)
}

func newTestYahoo(t *testing.T, f *fakeYahoo) *Yahoo {
	t.Helper()
	// yf-go persists its session under YF_HOME.
	t.Setenv("YF_HOME", t.TempDir())
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	target, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	hc := &http.Client{Transport: rewriteTransport{target: target, next: srv.Client().Transport}}
	return NewYahooClient(hc, 5*time.Second)
}

func TestFetchProfile(t *testing.T) {
	f := &fakeYahoo{profileBody: quoteSummaryAAPL}
	y := newTestYahoo(t, f)

	p, err := y.FetchProfile(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	want := types.Profile{
		"currentPrice":        190.5,
		"recommendationKey":   "buy",
		"forwardPE":           28.1,
		"marketCap":           float64(2950000000000),
		"longBusinessSummary": "Apple Inc. designs smartphones.",
		"companyOfficers":     []any{},
		"regularMarketPrice":  float64(191),
		"shortName":           "Apple Inc.",
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
	if got := f.lastCrumb.Load(); got != "abc123" {
		t.Errorf("crumb param = %v", got)
	}
}

func TestFetchProfileRefetchesEveryCall(t *testing.T) {
	f := &fakeYahoo{profileBody: quoteSummaryAAPL}
	y := newTestYahoo(t, f)

	for i := 0; i < 2; i++ {
		if _, err := y.FetchProfile(context.Background(), "AAPL"); err != nil {
			t.Fatal(err)
		}
		if _, err := y.FetchHistory(context.Background(), "AAPL", "1y"); err != nil {
			t.Fatal(err)
		}
	}
	if n := f.summaryCalls.Load(); n != 2 {
		t.Errorf("quoteSummary requested %d times for 2 analyses, want 2", n)
	}
	if n := f.chartCalls.Load(); n != 2 {
		t.Errorf("chart requested %d times for 2 analyses, want 2", n)
	}
	if n := f.crumbCalls.Load(); n != 1 {
		t.Errorf("crumb fetched %d times, want 1", n)
	}
}

func TestFetchProfileProviderError(t *testing.T) {
	f := &fakeYahoo{
		profileCodes: []int{http.StatusNotFound},
		profileBody:  `{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found for symbol: FAKECO"}}}`,
	}
	y := newTestYahoo(t, f)
	_, err := y.FetchProfile(context.Background(), "FAKECO")
	if err == nil || err.Error() != "yahoo quoteSummary FAKECO: Quote not found for symbol: FAKECO" {
		t.Fatalf("expected provider description, got %v", err)
	}
	var yerr *yahooError
	if !errors.As(err, &yerr) || yerr.Unwrap() == nil {
		t.Errorf("expected wrapped yahooError, got %T", err)
	}
}

func TestFetchProfileUnauthorizedRenewsCrumb(t *testing.T) {
	f := &fakeYahoo{profileCodes: []int{http.StatusUnauthorized}, profileBody: quoteSummaryAAPL}
	y := newTestYahoo(t, f)
	p, err := y.FetchProfile(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchProfile after 401: %v", err)
	}
	if p["currentPrice"] != 190.5 {
		t.Errorf("profile = %v", p)
	}
	if n := f.crumbCalls.Load(); n != 2 {
		t.Errorf("crumb fetched %d times, want 2 after 401", n)
	}
}

func TestFetchProfileWithoutFields(t *testing.T) {
	f := &fakeYahoo{profileBody: `{"quoteSummary":{"result":[{"financialData":{"maxAge":1},"price":null}],"error":null}}`}
	y := newTestYahoo(t, f)
	p, err := y.FetchProfile(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if len(p) != 0 {
		t.Errorf("expected empty profile, got %v", p)
	}
}

func TestFetchProfileNonJSON(t *testing.T) {
	f := &fakeYahoo{profileCodes: []int{http.StatusServiceUnavailable}, profileBody: "<html>busy</html>"}
	y := newTestYahoo(t, f)
	_, err := y.FetchProfile(context.Background(), "AAPL")
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestFetchHistory(t *testing.T) {
	y := newTestYahoo(t, &fakeYahoo{})
	s, err := y.FetchHistory(context.Background(), "AAPL", "")
	if err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
	if s.Symbol != "AAPL" {
		t.Errorf("symbol = %q", s.Symbol)
	}
	if s.Len() != 3 {
		t.Fatalf("got %d bars, want 3 (null bar skipped)", s.Len())
	}
	for i := 1; i < s.Len(); i++ {
		if !s.Bars[i-1].Date.Before(s.Bars[i].Date) {
			t.Fatalf("bars not chronological at %d", i)
		}
	}
	first := s.Bars[0]
	if first.Open != 1 || first.High != 1.5 || first.Low != 0.5 || first.Close != 1.2 || first.Volume != 100 {
		t.Errorf("first bar = %+v", first)
	}
	if _, off := first.Date.Zone(); off != -14400 {
		t.Errorf("zone offset = %d", off)
	}
	if s.Bars[1].Volume != 0 {
		t.Errorf("null volume should be zero, got %v", s.Bars[1].Volume)
	}
}

func TestFetchHistoryProviderError(t *testing.T) {
	y := newTestYahoo(t, &fakeYahoo{})
	_, err := y.FetchHistory(context.Background(), "FAKECO", "1y")
	if err == nil || err.Error() != "yahoo chart FAKECO: No data found, symbol may be delisted" {
		t.Fatalf("expected chart error, got %v", err)
	}
}

func TestFetchNews(t *testing.T) {
	y := newTestYahoo(t, &fakeYahoo{})
	news, err := y.FetchNews(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchNews: %v", err)
	}
	if len(news) != 3 {
		t.Fatalf("got %d articles", len(news))
	}
	if news[0].Title == nil || *news[0].Title != "First" || news[0].Summary != nil {
		t.Errorf("article 0 = %+v", news[0])
	}
	if !news[0].PublishedAt.Equal(time.Unix(1700000000, 0)) || news[0].Publisher != "Wire" {
		t.Errorf("article 0 meta = %v %q", news[0].PublishedAt, news[0].Publisher)
	}
	if news[1].Title != nil || news[1].Link != nil {
		t.Errorf("null/absent fields should be nil: %+v", news[1])
	}
	if news[2].Summary == nil || *news[2].Summary != "third" {
		t.Errorf("article 2 = %+v", news[2])
	}

	empty, err := y.FetchNews(context.Background(), "MSFT")
	if err != nil || len(empty) != 0 {
		t.Errorf("FetchNews(MSFT) = %v, %v", empty, err)
	}
}

func TestExplain(t *testing.T) {
	plain := errors.New("dial tcp: connection refused")
	if got := explain(plain, "$.chart.error.description"); got != plain {
		t.Errorf("plain error changed: %v", got)
	}
	noDesc := errors.New(`yahoo finance error: 500: {"chart":{"error":null}}`)
	if got := explain(noDesc, "$.chart.error.description"); got != noDesc {
		t.Errorf("error without description changed: %v", got)
	}
}

func TestFlattenValue(t *testing.T) {
	cases := []struct {
		in     any
		want   any
		wantOK bool
	}{
		{nil, nil, false},
		{map[string]any{}, nil, false},
		{map[string]any{"raw": 1.5, "fmt": "1.50"}, 1.5, true},
		{map[string]any{"raw": nil}, nil, false},
		{"text", "text", true},
	}
	for _, c := range cases {
		got, ok := flattenValue(c.in)
		if ok != c.wantOK || !cmp.Equal(got, c.want) {
			t.Errorf("flattenValue(%v) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.wantOK)
		}
	}
}
