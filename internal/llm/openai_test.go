package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAI_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Model != "gpt-4o" {
			t.Errorf("Model = %q", req.Model)
		}

		json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: "[]"}}},
		})
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("SENSEI_OPENAI_BASE_URL", server.URL)

	o, err := NewOpenAI(Options{Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("NewOpenAI error: %v", err)
	}

	got, err := o.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "[]" {
		t.Errorf("Generate = %q, want %q", got, "[]")
	}
}

func TestOpenAI_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("SENSEI_OPENAI_BASE_URL", server.URL)

	o, err := NewOpenAI(Options{Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("NewOpenAI error: %v", err)
	}

	if _, err := o.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestNewOllama_NormalizesHost(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"", "http://localhost:11434/v1/chat/completions"},
		{"http://box:11434", "http://box:11434/v1/chat/completions"},
		{"http://box:11434/", "http://box:11434/v1/chat/completions"},
		{"http://box:11434/v1", "http://box:11434/v1/chat/completions"},
		{"http://box:11434/v1/chat/completions", "http://box:11434/v1/chat/completions"},
	}
	for _, tt := range tests {
		t.Setenv("OLLAMA_HOST", tt.host)
		o, err := NewOllama(Options{})
		if err != nil {
			t.Fatalf("NewOllama error: %v", err)
		}
		if o.baseURL != tt.want {
			t.Errorf("OLLAMA_HOST=%q: baseURL = %q, want %q", tt.host, o.baseURL, tt.want)
		}
	}
}
