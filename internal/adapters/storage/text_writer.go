package storage

import (
	"bufio"
	"io"
	"strconv"

	"github.com/linegrep-cli/internal/core/domain"
)

// TextWriter implements ports.ResultWriter by printing one line per match
type TextWriter struct {
	out         *bufio.Writer
	lineNumbers bool
	count       int
}

// NewTextWriter creates a TextWriter over out. With lineNumbers set every
// line is prefixed by "N:".
func NewTextWriter(out io.Writer, lineNumbers bool) *TextWriter {
	return &TextWriter{
		out:         bufio.NewWriter(out),
		lineNumbers: lineNumbers,
	}
}

// WriteResult writes a search result
func (w *TextWriter) WriteResult(result *domain.Match) error {
	if w.lineNumbers {
		w.out.WriteString(strconv.Itoa(result.LineNumber))
		w.out.WriteByte(':')
	}
	w.out.WriteString(result.Line)
	if err := w.out.WriteByte('\n'); err != nil {
		return err
	}
	w.count++
	return nil
}

// GetCount returns the number of results written
func (w *TextWriter) GetCount() int {
	return w.count
}

// Close flushes buffered output
func (w *TextWriter) Close() error {
	return w.out.Flush()
}
