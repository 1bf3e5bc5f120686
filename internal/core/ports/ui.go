package ports

import (
	"context"
)

// UI defines the interface for the interactive user interface
type UI interface {
	// Run shows body and blocks until the user quits or ctx is canceled
	Run(ctx context.Context, body string) error
}
