// Package guidance produces advisory text for tasks from a text-completion
// service. Provider failures never escape this package as errors: the
// Advisor maps them to fixed placeholder texts.
package guidance

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by providers that have no credentials.
var ErrNotConfigured = errors.New("completion provider not configured")

// Provider is a synchronous text-completion service.
type Provider interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}
