package render

import (
	"fmt"
	"io"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

// symbolRenderer prints only the resolved symbol.
type symbolRenderer struct{}

func NewSymbolRenderer() Renderer {
	return symbolRenderer{}
}

func (symbolRenderer) Render(w io.Writer, rep *types.Report, _ Options) error {
	if rep == nil {
		return nil
	}
	_, err := fmt.Fprintln(w, rep.Symbol)
	return err
}
