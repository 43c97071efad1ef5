package render

import (
	"encoding/json"
	"io"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, rep *types.Report, opts Options) error {
	if rep == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(rep)
}
