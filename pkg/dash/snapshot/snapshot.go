// Package snapshot captures the dashboard page as a PNG with a headless
// Chrome.
package snapshot

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/komsit37/quotedash/pkg/dash/render"
	"github.com/komsit37/quotedash/pkg/dash/types"
)

// ChartSelector is visible once plotly has drawn the candlestick chart.
const ChartSelector = "#chart .main-svg"

type Capturer struct {
	Page    *render.HTMLRenderer
	Timeout time.Duration
	Quality int
	Debug   bool
}

func New() *Capturer {
	return &Capturer{Page: render.NewHTMLRenderer(), Timeout: 45 * time.Second, Quality: 90}
}

// WritePage renders rep into dir/<symbol>.html and returns its path.
func (c *Capturer) WritePage(dir string, rep *types.Report) (string, error) {
	if rep == nil {
		return "", fmt.Errorf("snapshot: nothing to capture")
	}
	path := filepath.Join(dir, rep.Symbol.String()+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := c.Page.Render(f, rep, render.Options{Query: rep.Query}); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return path, nil
}

// Capture renders rep and returns a full-page PNG of it.
func (c *Capturer) Capture(ctx context.Context, rep *types.Report) ([]byte, error) {
	dir, err := os.MkdirTemp("", "quotedash-snapshot-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path, err := c.WritePage(dir, rep)
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.NoSandbox,
		chromedp.WindowSize(1280, 1600),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	var ctxOpts []chromedp.ContextOption
	if c.Debug {
		ctxOpts = append(ctxOpts, chromedp.WithLogf(log.Printf))
	}
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, ctxOpts...)
	defer cancelBrowser()
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		browserCtx, cancel = context.WithTimeout(browserCtx, c.Timeout)
		defer cancel()
	}

	var png []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+path),
		chromedp.WaitVisible(ChartSelector, chromedp.ByQuery),
		chromedp.FullScreenshot(&png, c.Quality),
	)
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", rep.Symbol, err)
	}
	return png, nil
}

// CaptureFile writes the PNG of rep to out.
func (c *Capturer) CaptureFile(ctx context.Context, rep *types.Report, out string) error {
	png, err := c.Capture(ctx, rep)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, png, 0o644); err != nil {
		return err
	}
	log.Printf("[INFO] snapshot of %s written to %s (%d bytes)", rep.Symbol, out, len(png))
	return nil
}
