package source

import "context"

// Source loads extra name→symbol entries from a location such as a file path.
type Source interface {
	Load(ctx context.Context, spec any) (map[string]string, error)
}
