package source

import (
	"context"
	"io"
	"os"
)

// FileSource reads bodies from the local filesystem
type FileSource struct{}

// NewFileSource creates a new FileSource
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Load implements ports.Source
func (s *FileSource) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReaderSource reads its body from a single stream, such as stdin. The id is
// ignored.
type ReaderSource struct {
	r io.Reader
}

// NewReaderSource creates a ReaderSource over r
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// Load implements ports.Source
func (s *ReaderSource) Load(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := io.ReadAll(s.r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
