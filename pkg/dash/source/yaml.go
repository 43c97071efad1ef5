package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLSource loads symbol tables from a YAML file or a directory of them.
type YAMLSource struct{}

// Load expects spec to be a string filepath. Directories are walked
// recursively; later files override earlier ones in lexical order.
func (YAMLSource) Load(ctx context.Context, spec any) (map[string]string, error) { //nolint:revive // ctx reserved for future use
	path, ok := spec.(string)
	if !ok {
		return nil, fmt.Errorf("yaml source expects filepath string spec")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		data, err := readFile(path)
		if err != nil {
			return nil, err
		}
		return parseYAML(data)
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	all := map[string]string{}
	for _, full := range files {
		data, err := readFile(full)
		if err != nil {
			return nil, err
		}
		table, err := parseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", full, err)
		}
		for k, v := range table {
			all[k] = v
		}
	}
	return all, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// parseYAML accepts two shapes:
//
//	symbols: {SONY: 6758.T}
//	symbols: [{name: SONY, sym: 6758.T}]
//
// A bare top-level mapping or list is accepted as the symbols node too.
func parseYAML(data []byte) (map[string]string, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root == nil {
		return map[string]string{}, nil
	}

	node := root
	if m, ok := root.(map[string]any); ok {
		if s, ok := m["symbols"]; ok {
			node = s
		}
	}

	out := map[string]string{}
	switch n := node.(type) {
	case map[string]any:
		for k, v := range n {
			if v == nil {
				continue
			}
			out[strings.ToUpper(k)] = fmt.Sprint(v)
		}
	case []any:
		for i, e := range n {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid yaml: symbols[%d] is not a mapping", i)
			}
			name, _ := m["name"].(string)
			sym := m["sym"]
			if strings.TrimSpace(name) == "" || sym == nil {
				return nil, fmt.Errorf("invalid yaml: symbols[%d] needs name and sym", i)
			}
			out[strings.ToUpper(name)] = fmt.Sprint(sym)
		}
	case nil:
	default:
		return nil, fmt.Errorf("invalid yaml: expected mapping or list of symbols")
	}
	return out, nil
}
