// Package detector is the client for the remote media-forensics inference
// API. It submits base64-encoded media and returns a structured verdict, and
// it maps every transport and service failure onto the sentinel errors in
// internal/faults so callers never parse error text.
package detector

import (
	"context"

	"github.com/synthscan/synthscan/internal/models"
)

// Client is the inference surface the rest of the application depends on.
type Client interface {
	// Analyze submits one media payload (a base64 body plus its MIME type)
	// and blocks until the service returns a verdict or fails. There is no
	// automatic retry: callers decide when resubmitting makes sense.
	Analyze(ctx context.Context, payload, contentType string) (*models.Verdict, error)

	// Ping reports whether the service is reachable.
	Ping(ctx context.Context) error

	// Close releases client resources.
	Close() error
}
