package ports

import (
	"github.com/linegrep-cli/internal/core/domain"
)

// ResultWriter defines the interface for writing search results
type ResultWriter interface {
	// WriteResult writes a search result
	WriteResult(result *domain.Match) error

	// GetCount returns the number of results written so far
	GetCount() int

	// Close finalizes and closes the writer
	Close() error
}

// Discarder is implemented by writers that can drop everything they have
// collected. A failed run discards instead of closing.
type Discarder interface {
	Discard() error
}
