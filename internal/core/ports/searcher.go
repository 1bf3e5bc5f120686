package ports

import (
	"iter"
)

// SearchConfig contains configuration for searching
type SearchConfig struct {
	SearchString  string
	CaseSensitive bool
}

// Searcher defines the interface for search functionality
type Searcher interface {
	// Search lazily yields the line number and content of every line of body
	// that matches. Yielded lines are substrings of body.
	Search(body string) iter.Seq2[int, string]
}
