package llm

import (
	"context"
	"fmt"
	"time"
)

// defaultMaxTokens bounds a single generation response.
const defaultMaxTokens = 8192

// Generator answers a prompt with free text. Implementations must be safe
// for concurrent use.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Options configure a provider client.
type Options struct {
	Model string
	// Timeout bounds each generation call. Zero means the provider default.
	Timeout time.Duration
}

// New creates a generator by provider name.
func New(provider string, opts Options) (Generator, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(opts)
	case "openai":
		return NewOpenAI(opts)
	case "gemini", "google":
		return NewGemini(opts)
	case "ollama", "lmstudio":
		return NewOllama(opts)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
