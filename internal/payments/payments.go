// Package payments defines the consultation-fee capture boundary.
package payments

import (
	"context"

	"github.com/google/uuid"
)

// Capturer captures an upfront payment and returns a confirmation reference.
// The production implementation wraps the external payment provider; the core
// only depends on this interface.
type Capturer interface {
	Capture(ctx context.Context, amountCents int64, description string) (string, error)
}

// DevCapturer issues confirmation references without contacting a provider.
// For local development and tests only.
type DevCapturer struct{}

// Capture returns a fresh confirmation reference.
func (DevCapturer) Capture(_ context.Context, _ int64, _ string) (string, error) {
	return "dev-" + uuid.NewString(), nil
}
