package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/linegrep-cli/internal/adapters/search"
	"github.com/linegrep-cli/internal/core/domain"
	"github.com/linegrep-cli/internal/core/errors"
	"github.com/linegrep-cli/internal/core/ports"
)

// Config contains application configuration
type Config struct {
	domain.Config

	// RunID identifies the run; NewGrep generates one when empty
	RunID string

	// MaxCount stops the search after this many matches; zero means no limit
	MaxCount int
}

// Dependencies are the collaborators a Grep run talks to
type Dependencies struct {
	Source ports.Source
	Writer ports.ResultWriter
	UI     ports.UI
	Log    logrus.FieldLogger
}

// Grep represents the main application
type Grep struct {
	config Config
	deps   Dependencies
}

// NewRunID returns a fresh run identifier
func NewRunID() string {
	return uuid.NewString()
}

// NewGrep creates a new Grep instance
func NewGrep(config Config, deps Dependencies) *Grep {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if config.RunID == "" {
		config.RunID = NewRunID()
	}
	return &Grep{
		config: config,
		deps:   deps,
	}
}

// RunID identifies this run in logs and reports
func (g *Grep) RunID() string {
	return g.config.RunID
}

func (g *Grep) logger() logrus.FieldLogger {
	return g.deps.Log.WithFields(logrus.Fields{
		"run_id": g.config.RunID,
		"source": g.config.Source,
	})
}

// load obtains the text body. Failures come back as IOFailureError with the
// cause untouched.
func (g *Grep) load(ctx context.Context) (string, error) {
	if g.deps.Source == nil {
		return "", fmt.Errorf("no source configured")
	}
	body, err := g.deps.Source.Load(ctx, g.config.Source)
	if err != nil {
		return "", errors.IOFailure(g.config.Source, err)
	}
	return body, nil
}

// Run searches the source and forwards every matching line to the writer.
// It returns the number of lines written. The writer is closed when the run
// succeeds; on failure a writer that is also a ports.Discarder is discarded
// instead, so no report is produced for a run that never finished.
func (g *Grep) Run(ctx context.Context) (count int, err error) {
	if g.deps.Writer == nil {
		return 0, fmt.Errorf("no result writer configured")
	}
	log := g.logger()
	started := time.Now()

	defer func() {
		if discarder, ok := g.deps.Writer.(ports.Discarder); ok && err != nil {
			if discardErr := discarder.Discard(); discardErr != nil {
				log.WithError(discardErr).Warn("Failed to discard partial output")
			}
			return
		}
		if closeErr := g.deps.Writer.Close(); closeErr != nil && err == nil {
			err = errors.IOFailure(g.config.Source, closeErr)
		}
	}()

	body, err := g.load(ctx)
	if err != nil {
		log.WithError(err).Debug("Failed to load text body")
		return 0, err
	}

	searcher := search.NewSearcher(ports.SearchConfig{
		SearchString:  g.config.Query,
		CaseSensitive: g.config.CaseSensitive,
	})

	for lineNumber, line := range searcher.Search(body) {
		if err := g.deps.Writer.WriteResult(&domain.Match{LineNumber: lineNumber, Line: line}); err != nil {
			return count, errors.IOFailure(g.config.Source, err)
		}
		count++
		if g.config.MaxCount > 0 && count >= g.config.MaxCount {
			break
		}
	}

	log.WithFields(logrus.Fields{
		"case_sensitive": g.config.CaseSensitive,
		"matches":        count,
		"elapsed":        time.Since(started).String(),
	}).Debug("Search finished")

	return count, nil
}

// Browse loads the source and hands the body to the interactive UI
func (g *Grep) Browse(ctx context.Context) error {
	if g.deps.UI == nil {
		return fmt.Errorf("no user interface configured")
	}

	body, err := g.load(ctx)
	if err != nil {
		return err
	}

	g.logger().Debug("Starting interactive browser")
	return g.deps.UI.Run(ctx, body)
}
