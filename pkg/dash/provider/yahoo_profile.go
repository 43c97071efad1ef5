package provider

import (
	"context"
	"fmt"
	"log"

	"github.com/PaesslerAG/jsonpath"
	yfgo "github.com/komsit37/yf-go"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

// profileModules are flattened in this order; the first module to carry a
// key wins.
var profileModules = []yfgo.QuoteSummaryModule{
	yfgo.ModuleFinancialData,
	yfgo.ModuleSummaryDetail,
	yfgo.ModuleDefaultKeyStatistics,
	yfgo.ModuleAssetProfile,
	yfgo.ModulePrice,
}

// FetchProfile returns the quoteSummary modules for sym as one flat map.
func (y *Yahoo) FetchProfile(ctx context.Context, sym types.Symbol) (types.Profile, error) {
	ctx, cancel := y.withTimeout(ctx)
	defer cancel()

	y.mu.Lock()
	res, err := y.YF.QuoteSummary(ctx, sym.String(), profileModules)
	y.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %w", sym,
			explain(err, "$.quoteSummary.error.description", "$.finance.error.description"))
	}
	modules, ok := res.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("yahoo quoteSummary %s: unexpected result shape %T", sym, res)
	}
	p := flattenModules(modules, profileModules)
	if y.Verbose {
		log.Printf("[INFO] %s: quoteSummary %d fields", sym, len(p))
	}
	return p, nil
}

// providerError returns the first non-empty string found at paths.
func providerError(doc any, paths ...string) string {
	for _, p := range paths {
		v, err := jsonpath.Get(p, doc)
		if err != nil {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// flattenModules merges module objects into one map. {raw, fmt} nodes
// collapse to raw; nulls and empty objects are dropped.
func flattenModules(modules map[string]any, order []yfgo.QuoteSummaryModule) types.Profile {
	out := types.Profile{}
	for _, name := range order {
		mod, ok := modules[string(name)].(map[string]any)
		if !ok {
			continue
		}
		for k, v := range mod {
			if k == "maxAge" {
				continue
			}
			if _, seen := out[k]; seen {
				continue
			}
			if v, ok := flattenValue(v); ok {
				out[k] = v
			}
		}
	}
	return out
}

func flattenValue(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		if raw, ok := t["raw"]; ok {
			return raw, raw != nil
		}
		if len(t) == 0 {
			return nil, false
		}
		return t, true
	default:
		return v, true
	}
}
