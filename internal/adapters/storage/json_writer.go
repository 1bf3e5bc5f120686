package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/linegrep-cli/internal/core/domain"
)

// JSONReport describes the run a JSONWriter reports on
type JSONReport struct {
	RunID    string
	Config   domain.Config
	MaxCount int
}

// JSONWriter implements ports.ResultWriter by collecting results into a
// single JSON document written on Close. A file-backed writer builds the
// document in a temporary file next to the target and renames it into place,
// so an existing report survives until a run succeeds.
type JSONWriter struct {
	out           io.Writer
	file          *os.File
	target        string
	mutex         sync.Mutex
	results       domain.SearchResults
	matchesBuffer []*domain.Match
}

// NewJSONWriter creates a JSONWriter that writes to filename, or to stdout
// when filename is empty or "-"
func NewJSONWriter(filename string, report JSONReport) (*JSONWriter, error) {
	if filename == "" || filename == "-" {
		return NewJSONStreamWriter(os.Stdout, report), nil
	}

	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}
	file, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w := NewJSONStreamWriter(file, report)
	w.file = file
	w.target = filename
	return w, nil
}

// NewJSONStreamWriter creates a JSONWriter over out. Close does not close out.
func NewJSONStreamWriter(out io.Writer, report JSONReport) *JSONWriter {
	return &JSONWriter{
		out: out,
		results: domain.SearchResults{
			RunID:           report.RunID,
			Source:          report.Config.Source,
			SearchString:    report.Config.Query,
			IsCaseSensitive: report.Config.CaseSensitive,
			MaxCount:        report.MaxCount,
			StartedAt:       time.Now().UTC(),
			Matches:         []*domain.Match{},
		},
		matchesBuffer: make([]*domain.Match, 0, 100),
	}
}

// WriteResult writes a search result to the buffer
func (w *JSONWriter) WriteResult(result *domain.Match) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.matchesBuffer = append(w.matchesBuffer, result)

	if len(w.matchesBuffer) >= 100 {
		w.results.Matches = append(w.results.Matches, w.matchesBuffer...)
		w.matchesBuffer = make([]*domain.Match, 0, 100)
	}

	return nil
}

// Close finalizes the JSON document
func (w *JSONWriter) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if len(w.matchesBuffer) > 0 {
		w.results.Matches = append(w.results.Matches, w.matchesBuffer...)
		w.matchesBuffer = w.matchesBuffer[:0]
	}

	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(w.results); err != nil {
		w.removeTemp()
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if w.file == nil {
		return nil
	}
	if err := w.file.Chmod(0o644); err != nil {
		w.removeTemp()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := w.file.Close(); err != nil {
		w.removeTemp()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(w.file.Name(), w.target); err != nil {
		w.removeTemp()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	w.file = nil
	return nil
}

// Discard drops the collected results. A file-backed writer removes its
// temporary file and leaves the target untouched.
func (w *JSONWriter) Discard() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.matchesBuffer = w.matchesBuffer[:0]
	w.results.Matches = []*domain.Match{}
	return w.removeTemp()
}

func (w *JSONWriter) removeTemp() error {
	if w.file == nil {
		return nil
	}
	name := w.file.Name()
	w.file.Close()
	w.file = nil
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temporary output: %w", err)
	}
	return nil
}

// GetCount returns the number of results written
func (w *JSONWriter) GetCount() int {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return len(w.results.Matches) + len(w.matchesBuffer)
}
