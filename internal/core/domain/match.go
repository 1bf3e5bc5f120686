package domain

import (
	"time"
)

// Match represents a single matching line of the text body
type Match struct {
	LineNumber int    `json:"line_number"`
	Line       string `json:"line"`
}

// SearchResults represents the final output format for search results
type SearchResults struct {
	RunID           string    `json:"runId"`
	Source          string    `json:"source"`
	SearchString    string    `json:"searchString"`
	IsCaseSensitive bool      `json:"isCaseSensitive"`
	MaxCount        int       `json:"maxCount,omitempty"`
	StartedAt       time.Time `json:"startedAt"`
	Matches         []*Match  `json:"matches"`
}
