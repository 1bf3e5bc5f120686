package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/linegrep-cli/internal/core/ports"
)

const (
	StdinID      = "-"
	S3Scheme     = "s3://"
	KafkaScheme  = "kafka://"
	schemeMarker = "://"
)

// Router dispatches a source identifier to the backend that can load it.
// Identifiers without a scheme are file paths.
type Router struct {
	File  ports.Source
	Stdin ports.Source
	S3    ports.Source
	Kafka ports.Source

	Log logrus.FieldLogger
}

// Load implements ports.Source
func (r *Router) Load(ctx context.Context, id string) (string, error) {
	backend, kind := r.route(id)
	if backend == nil {
		return "", fmt.Errorf("no %s source configured for %q", kind, id)
	}

	if r.Log != nil {
		r.Log.WithFields(logrus.Fields{
			"source": id,
			"kind":   kind,
		}).Debug("Loading text body")
	}

	body, err := backend.Load(ctx, id)
	if err != nil {
		return "", err
	}

	if r.Log != nil {
		r.Log.WithFields(logrus.Fields{
			"source": id,
			"bytes":  len(body),
		}).Debug("Loaded text body")
	}
	return body, nil
}

func (r *Router) route(id string) (ports.Source, string) {
	switch {
	case id == StdinID:
		return r.Stdin, "stdin"
	case strings.HasPrefix(id, S3Scheme):
		return r.S3, "s3"
	case strings.HasPrefix(id, KafkaScheme):
		return r.Kafka, "kafka"
	case strings.Contains(id, schemeMarker):
		return nil, id[:strings.Index(id, schemeMarker)]
	default:
		return r.File, "file"
	}
}
