package ai

import (
	"context"
	"errors"
)

// ErrDisabled is returned when no provider is configured.
var ErrDisabled = errors.New("ai provider not configured")

// TextGenerator turns a prompt into free text. Implementations must honour ctx
// cancellation so a superseded request stops early.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
