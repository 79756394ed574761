package llm

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultOllamaURL = "http://localhost:11434"

// Ollama implements Generator for Ollama and LM Studio, which expose an
// OpenAI-compatible chat completions endpoint.
type Ollama struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOllama creates an Ollama generator. No API key is required by default.
func NewOllama(opts Options) (*Ollama, error) {
	baseURL := os.Getenv("OLLAMA_HOST")
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	// Normalize URL: strip trailing /, /v1, /v1/chat/completions
	baseURL = strings.TrimRight(baseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1/chat/completions")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 300 * time.Second
	}

	return &Ollama{
		apiKey:  os.Getenv("SENSEI_OLLAMA_API_KEY"),
		model:   opts.Model,
		baseURL: baseURL + "/v1/chat/completions",
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	return chatComplete(ctx, o.client, o.baseURL, o.apiKey, o.model, prompt)
}
