// Package config resolves invocation tokens and environment state into the
// run configuration.
package config

import (
	"github.com/linegrep-cli/internal/core/domain"
	"github.com/linegrep-cli/internal/core/errors"
	"github.com/linegrep-cli/internal/core/ports"
)

// CaseInsensitiveVar disables case sensitivity when present, whatever its value
const CaseInsensitiveVar = "CASE_INSENSITIVE"

// Resolve builds a Config from tokens laid out as
// [program-name, query, source, ...]. The program name is skipped and any
// tokens after the source are ignored.
func Resolve(tokens []string, env ports.EnvLookup) (domain.Config, error) {
	next := func() (string, bool) {
		if len(tokens) == 0 {
			return "", false
		}
		token := tokens[0]
		tokens = tokens[1:]
		return token, true
	}

	next()

	query, ok := next()
	if !ok {
		return domain.Config{}, errors.MissingArgument(errors.FieldQuery)
	}

	source, ok := next()
	if !ok {
		return domain.Config{}, errors.MissingArgument(errors.FieldSource)
	}

	caseInsensitive := false
	if env != nil {
		_, caseInsensitive = env.Lookup(CaseInsensitiveVar)
	}

	return domain.Config{
		Query:         query,
		Source:        source,
		CaseSensitive: !caseInsensitive,
	}, nil
}
