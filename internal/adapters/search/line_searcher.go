package search

import (
	"iter"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/linegrep-cli/internal/core/domain"
	"github.com/linegrep-cli/internal/core/ports"
)

// LineSearcher implements Searcher interface using literal substring containment
type LineSearcher struct {
	config ports.SearchConfig
}

// NewSearcher creates a new Searcher based on the provided configuration
func NewSearcher(config ports.SearchConfig) *LineSearcher {
	return &LineSearcher{
		config: config,
	}
}

// Search implements the Searcher interface
func (s *LineSearcher) Search(body string) iter.Seq2[int, string] {
	return Lines(s.config.SearchString, body, s.config.CaseSensitive)
}

// Matches runs the search to completion and returns every match
func (s *LineSearcher) Matches(body string) []domain.Match {
	var matches []domain.Match
	for n, line := range s.Search(body) {
		matches = append(matches, domain.Match{LineNumber: n, Line: line})
	}
	return matches
}

// Lines returns the lines of body that contain query, in order, along with
// their 1-based line numbers. Lines are split on '\n'; a trailing '\r' is
// dropped and a final terminator does not produce an extra empty line.
//
// The yielded strings are substrings of body. The sequence does no work until
// it is ranged over, and ranging over it again repeats the search.
func Lines(query, body string, caseSensitive bool) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		match := containsFunc(query, caseSensitive)

		lineNumber := 0
		rest := body
		for rest != "" {
			line := rest
			if i := strings.IndexByte(rest, '\n'); i >= 0 {
				line, rest = rest[:i], rest[i+1:]
			} else {
				rest = ""
			}
			lineNumber++
			line = strings.TrimSuffix(line, "\r")

			if match(line) && !yield(lineNumber, line) {
				return
			}
		}
	}
}

// Collect drains a match sequence into a slice of lines
func Collect(seq iter.Seq2[int, string]) []string {
	lines := []string{}
	for _, line := range seq {
		lines = append(lines, line)
	}
	return lines
}

// containsFunc builds the per-line test. The case-insensitive test compares
// lower-cased copies; the lowered line is discarded after the comparison.
// Lowering maps rune to rune, so ligatures and ß keep their own form.
func containsFunc(query string, caseSensitive bool) func(string) bool {
	if caseSensitive {
		return func(line string) bool {
			return strings.Contains(line, query)
		}
	}

	lower := cases.Lower(language.Und)
	loweredQuery := lower.String(query)
	return func(line string) bool {
		return strings.Contains(lower.String(line), loweredQuery)
	}
}
