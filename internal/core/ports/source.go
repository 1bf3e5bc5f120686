package ports

import (
	"context"
)

// Source loads a complete text body for a source identifier
type Source interface {
	// Load reads the entire contents identified by id
	Load(ctx context.Context, id string) (string, error)
}

// EnvLookup queries a single named environment variable
type EnvLookup interface {
	// Lookup returns the value and whether the variable is present
	Lookup(name string) (string, bool)
}
