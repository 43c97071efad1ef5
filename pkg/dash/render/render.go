package render

import (
	"fmt"
	"io"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

// Renderer renders one analysis report. A nil report renders nothing.
type Renderer interface {
	Render(w io.Writer, rep *types.Report, opts Options) error
}

type Options struct {
	Color      bool
	PrettyJSON bool
	// Width is the terminal width; 0 means unknown.
	Width int
	// Form and Query control the input form of the HTML page.
	Form  bool
	Query string
	// Error is shown inline instead of a report (HTML only).
	Error string
}

// New returns the renderer for a --format value.
func New(format string) (Renderer, error) {
	switch format {
	case "", "table":
		return NewTableRenderer(), nil
	case "html":
		return NewHTMLRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "symbol":
		return NewSymbolRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format %q; available: table, html, json, symbol", format)
	}
}
