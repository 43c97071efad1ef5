package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	yfgo "github.com/komsit37/yf-go"
)

const (
	defaultSearchURL = "https://query2.finance.yahoo.com/v1/finance/search"
	userAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Yahoo implements Fetcher. Profile and history go through yf-go with its
// response cache disabled; news uses the search endpoint directly.
type Yahoo struct {
	YF        *yfgo.Client
	HTTP      *http.Client
	SearchURL string
	Timeout   time.Duration
	Verbose   bool

	// yf-go keeps its crumb and session state unguarded.
	mu sync.Mutex
}

// NewYahoo returns a Yahoo fetcher. proxyURL may be empty.
func NewYahoo(timeout time.Duration, proxyURL string) *Yahoo {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return NewYahooClient(&http.Client{Transport: transport}, timeout)
}

// NewYahooClient builds a Yahoo fetcher on hc. yf-go adds a cookie jar to
// hc when it has none, so news requests share the session.
func NewYahooClient(hc *http.Client, timeout time.Duration) *Yahoo {
	return &Yahoo{
		YF:        yfgo.NewClient(yfgo.WithHTTPClient(hc), yfgo.WithCacheDisabled()),
		HTTP:      hc,
		SearchURL: defaultSearchURL,
		Timeout:   timeout,
	}
}

func (y *Yahoo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if y.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, y.Timeout)
}

// get performs a GET and returns the body with the status code.
func (y *Yahoo) get(ctx context.Context, addr string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := y.HTTP.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()
	if y.Verbose {
		log.Printf("[INFO] %v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("yahoo read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// yahooError carries the description from Yahoo's error payload.
type yahooError struct {
	Description string
	Err         error
}

func (e *yahooError) Error() string { return e.Description }

func (e *yahooError) Unwrap() error { return e.Err }

// explain replaces a yf-go error that embeds Yahoo's JSON error body with
// the description found at one of paths.
func explain(err error, paths ...string) error {
	msg := err.Error()
	i := strings.IndexByte(msg, '{')
	if i < 0 {
		return err
	}
	var doc any
	if json.Unmarshal([]byte(msg[i:]), &doc) != nil {
		return err
	}
	if desc := providerError(doc, paths...); desc != "" {
		return &yahooError{Description: desc, Err: err}
	}
	return err
}

// decodeJSON decodes body keeping numbers as json.Number.
func decodeJSON(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 256 {
		s = s[:256]
	}
	return s
}
