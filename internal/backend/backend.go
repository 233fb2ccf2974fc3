// Package backend abstracts the external sentiment-inference call. A backend
// proposes free text for a prompt; it may be unavailable, and every failure
// mode collapses to ErrUnavailable so the pipeline can fall back instead of
// aborting the batch.
package backend

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable signals that the backend could not produce output: the
// executable or endpoint is missing, the call failed or timed out, or the
// response was empty. Callers match it with errors.Is.
var ErrUnavailable = errors.New("model backend unavailable")

// DefaultTimeout bounds a single backend invocation. No invocation may block
// indefinitely.
const DefaultTimeout = 120 * time.Second

// Backend is the capability interface over an external inference mechanism.
type Backend interface {
	// Invoke submits the prompt and returns the raw generated text.
	// All failures satisfy errors.Is(err, ErrUnavailable).
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Disabled is the no-op variant for fallback-only runs: it is always
// unavailable and never touches the network or spawns a process.
type Disabled struct{}

// Invoke implements Backend.
func (Disabled) Invoke(ctx context.Context, prompt string) (string, error) {
	return "", ErrUnavailable
}

// Options carries optional decoding parameters. Nil fields mean "use the
// model's default".
type Options struct {
	Temperature *float64
	TopP        *float64
}
