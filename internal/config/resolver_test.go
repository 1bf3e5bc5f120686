package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linegrep-cli/internal/core/domain"
	"github.com/linegrep-cli/internal/core/errors"
)

func TestResolve_MissingQuery(t *testing.T) {
	for _, tokens := range [][]string{nil, {}, {"prog"}} {
		_, err := Resolve(tokens, MapEnv{})
		require.Error(t, err)

		var missingErr *errors.MissingArgumentError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, errors.FieldQuery, missingErr.Field)
	}
}

func TestResolve_MissingSource(t *testing.T) {
	_, err := Resolve([]string{"prog", "needle"}, MapEnv{})

	var missingErr *errors.MissingArgumentError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, errors.FieldSource, missingErr.Field)
}

func TestResolve_CaseSensitiveByDefault(t *testing.T) {
	cfg, err := Resolve([]string{"prog", "needle", "haystack.txt"}, MapEnv{})
	require.NoError(t, err)
	assert.Equal(t, domain.Config{
		Query:         "needle",
		Source:        "haystack.txt",
		CaseSensitive: true,
	}, cfg)
}

func TestResolve_CaseInsensitivePresence(t *testing.T) {
	for _, value := range []string{"1", "0", "false", ""} {
		cfg, err := Resolve([]string{"prog", "needle", "haystack.txt"}, MapEnv{CaseInsensitiveVar: value})
		require.NoError(t, err)
		assert.False(t, cfg.CaseSensitive, "value %q", value)
	}
}

func TestResolve_ExtraTokensIgnored(t *testing.T) {
	cfg, err := Resolve([]string{"prog", "needle", "haystack.txt", "extra", "more"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "needle", cfg.Query)
	assert.Equal(t, "haystack.txt", cfg.Source)
	assert.True(t, cfg.CaseSensitive)
}

func TestResolve_EmptyQueryIsAllowed(t *testing.T) {
	cfg, err := Resolve([]string{"prog", "", "haystack.txt"}, MapEnv{})
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Query)
}

func TestResolve_DoesNotMutateTokens(t *testing.T) {
	tokens := []string{"prog", "needle", "haystack.txt"}
	_, err := Resolve(tokens, MapEnv{})
	require.NoError(t, err)
	assert.Equal(t, []string{"prog", "needle", "haystack.txt"}, tokens)
}
