package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linegrep-cli/internal/core/domain"
	"github.com/linegrep-cli/internal/core/ports"
)

const poem = "Rust:\nsafe, fast, productive.\nPick three.\nDuct tape."

const trustPoem = "Rust:\nsafe, fast, productive.\nPick three.\nTrust me."

func TestLines_CaseSensitive(t *testing.T) {
	got := Collect(Lines("duct", poem, true))
	assert.Equal(t, []string{"safe, fast, productive."}, got)
}

func TestLines_CaseInsensitive(t *testing.T) {
	got := Collect(Lines("rUsT", trustPoem, false))
	assert.Equal(t, []string{"Rust:", "Trust me."}, got)
}

func TestLines_CaseSensitiveRejectsOtherCase(t *testing.T) {
	assert.Empty(t, Collect(Lines("rUsT", trustPoem, true)))
}

func TestLines_Segmentation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"empty body", "", []string{}},
		{"single line without terminator", "one line", []string{"one line"}},
		{"trailing terminator adds no line", "a\nb\n", []string{"a", "b"}},
		{"lone terminator is one empty line", "\n", []string{""}},
		{"blank lines are kept", "a\n\nb", []string{"a", "", "b"}},
		{"carriage return is trimmed", "a\r\nb\r\n", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collect(Lines("", tt.body, true)))
		})
	}
}

func TestLines_EmptyQueryMatchesEveryLine(t *testing.T) {
	got := Collect(Lines("", poem, true))
	assert.Equal(t, strings.Split(poem, "\n"), got)

	got = Collect(Lines("", poem, false))
	assert.Equal(t, strings.Split(poem, "\n"), got)
}

func TestLines_EmptyBodyYieldsNothing(t *testing.T) {
	for _, query := range []string{"a", "duct", " "} {
		assert.Empty(t, Collect(Lines(query, "", true)))
		assert.Empty(t, Collect(Lines(query, "", false)))
	}
}

func TestLines_LineNumbers(t *testing.T) {
	var numbers []int
	for n := range Lines("ct", poem, true) {
		numbers = append(numbers, n)
	}
	assert.Equal(t, []int{2, 4}, numbers)
}

func TestLines_ExactContainmentProperty(t *testing.T) {
	bodies := []string{poem, trustPoem, "aaa\naa\na\n\nbab", "x"}
	queries := []string{"a", "aa", "Pick", "e.", "zzz", "x"}

	for _, body := range bodies {
		for _, query := range queries {
			var want []string
			for _, line := range strings.Split(body, "\n") {
				if strings.Contains(line, query) {
					want = append(want, line)
				}
			}
			got := Collect(Lines(query, body, true))
			if want == nil {
				assert.Empty(t, got, "query %q", query)
				continue
			}
			assert.Equal(t, want, got, "query %q", query)
		}
	}
}

func TestLines_InsensitiveIsSuperset(t *testing.T) {
	body := "Rust\nrust\nRUST\nrUsT\ntrust\nnothing"
	for _, query := range []string{"rust", "Rust", "RUST"} {
		sensitive := Collect(Lines(query, body, true))
		insensitive := Collect(Lines(query, body, false))

		assert.Greater(t, len(insensitive), len(sensitive), "query %q", query)
		for _, line := range sensitive {
			assert.Contains(t, insensitive, line)
		}
	}
}

func TestLines_ReturnsOriginalLineNotLoweredCopy(t *testing.T) {
	body := "ÄPFEL und Birnen\nnichts"
	got := Collect(Lines("äpfel", body, false))
	require.Len(t, got, 1)
	assert.Equal(t, "ÄPFEL und Birnen", got[0])
}

func TestLines_UnicodeLowerCasing(t *testing.T) {
	body := "ΣΊΣΥΦΟΣ\nσίσυφος\nαλλο"
	got := Collect(Lines("Σίσυφος", body, false))
	assert.Equal(t, []string{"ΣΊΣΥΦΟΣ", "σίσυφος"}, got)
}

func TestLines_LowerCasingDoesNotExpandRunes(t *testing.T) {
	assert.Empty(t, Collect(Lines("f", "ﬁle\nx", false)))
	assert.Empty(t, Collect(Lines("f", "ﬁle\nx", true)))

	assert.Empty(t, Collect(Lines("ss", "Straße", false)))
	assert.Equal(t, []string{"STRASSE"}, Collect(Lines("strasse", "Straße\nSTRASSE", false)))
}

func TestLines_MultiByteLinesStayIntact(t *testing.T) {
	body := "日本語\n🦀 crab\néclair"
	got := Collect(Lines("", body, true))
	assert.Equal(t, []string{"日本語", "🦀 crab", "éclair"}, got)

	got = Collect(Lines("🦀", body, true))
	assert.Equal(t, []string{"🦀 crab"}, got)
}

func TestLines_Idempotent(t *testing.T) {
	seq := Lines("rust", trustPoem, false)

	first := Collect(seq)
	second := Collect(seq)
	third := Collect(Lines("rust", trustPoem, false))

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
}

func TestLines_StopsWhenConsumerStops(t *testing.T) {
	var seen []string
	for _, line := range Lines("", poem, true) {
		seen = append(seen, line)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"Rust:", "safe, fast, productive."}, seen)
}

func TestLineSearcher(t *testing.T) {
	var searcher ports.Searcher = NewSearcher(ports.SearchConfig{
		SearchString:  "rUsT",
		CaseSensitive: false,
	})
	assert.Equal(t, []string{"Rust:", "Trust me."}, Collect(searcher.Search(trustPoem)))

	matches := NewSearcher(ports.SearchConfig{SearchString: "duct", CaseSensitive: true}).Matches(poem)
	assert.Equal(t, []domain.Match{{LineNumber: 2, Line: "safe, fast, productive."}}, matches)
}
