package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linegrep-cli/internal/core/domain"
)

var errBroken = errors.New("broken pipe")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf, false)

	require.NoError(t, w.WriteResult(&domain.Match{LineNumber: 1, Line: "Rust:"}))
	require.NoError(t, w.WriteResult(&domain.Match{LineNumber: 4, Line: ""}))
	require.NoError(t, w.Close())

	assert.Equal(t, "Rust:\n\n", buf.String())
	assert.Equal(t, 2, w.GetCount())
}

func TestTextWriter_LineNumbers(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf, true)

	require.NoError(t, w.WriteResult(&domain.Match{LineNumber: 2, Line: "safe, fast, productive."}))
	require.NoError(t, w.Close())

	assert.Equal(t, "2:safe, fast, productive.\n", buf.String())
}

func TestTextWriter_SurfacesWriteError(t *testing.T) {
	w := NewTextWriter(failingWriter{}, false)
	require.NoError(t, w.WriteResult(&domain.Match{LineNumber: 1, Line: "x"}))
	assert.ErrorIs(t, w.Close(), errBroken)
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONStreamWriter(&buf, JSONReport{
		RunID:  "run-1",
		Config: domain.Config{Query: "rUsT", Source: "poem.txt", CaseSensitive: false},
	})

	for i := 1; i <= 150; i++ {
		require.NoError(t, w.WriteResult(&domain.Match{LineNumber: i, Line: fmt.Sprintf("line %d", i)}))
	}
	assert.Equal(t, 150, w.GetCount())
	require.NoError(t, w.Close())

	var results domain.SearchResults
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	assert.Equal(t, "run-1", results.RunID)
	assert.Equal(t, "poem.txt", results.Source)
	assert.Equal(t, "rUsT", results.SearchString)
	assert.False(t, results.IsCaseSensitive)
	require.Len(t, results.Matches, 150)
	assert.Equal(t, "line 1", results.Matches[0].Line)
	assert.Equal(t, 150, results.Matches[149].LineNumber)
}

func TestJSONWriter_EmptyResultsIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONStreamWriter(&buf, JSONReport{Config: domain.Config{Query: "x", Source: "y"}})
	require.NoError(t, w.Close())
	assert.Contains(t, buf.String(), `"matches": []`)
}

func TestJSONWriter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w, err := NewJSONWriter(path, JSONReport{Config: domain.Config{Query: "duct", Source: "poem.txt", CaseSensitive: true}})
	require.NoError(t, err)

	require.NoError(t, w.WriteResult(&domain.Match{LineNumber: 2, Line: "safe, fast, productive."}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"line": "safe, fast, productive."`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.json", entries[0].Name())
}

func TestJSONWriter_FileNotWrittenBeforeClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w, err := NewJSONWriter(path, JSONReport{})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, w.Close())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestJSONWriter_DiscardKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(path, []byte("previous report\n"), 0o644))

	w, err := NewJSONWriter(path, JSONReport{Config: domain.Config{Query: "duct", Source: "missing.txt"}})
	require.NoError(t, err)
	require.NoError(t, w.WriteResult(&domain.Match{LineNumber: 1, Line: "partial"}))
	require.NoError(t, w.Discard())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous report\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 0, w.GetCount())
}

func TestJSONWriter_BadPath(t *testing.T) {
	_, err := NewJSONWriter(filepath.Join(t.TempDir(), "missing", "out.json"), JSONReport{})
	assert.Error(t, err)
}
