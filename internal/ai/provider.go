package ai

import (
	"context"
	"fmt"
)

// Settings picks and configures a provider.
type Settings struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
}

// New returns the configured generator, or ErrDisabled when the selected
// provider has no key.
func New(ctx context.Context, s Settings) (TextGenerator, error) {
	switch s.Provider {
	case "", "gemini":
		if s.GeminiAPIKey == "" {
			return nil, ErrDisabled
		}
		return NewGeminiProvider(ctx, s.GeminiAPIKey, s.GeminiModel)
	case "openai":
		if s.OpenAIAPIKey == "" {
			return nil, ErrDisabled
		}
		return NewOpenAIProvider(s.OpenAIAPIKey, s.OpenAIModel)
	}
	return nil, fmt.Errorf("unknown ai provider %q", s.Provider)
}
