package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropic_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Error("Missing API key header")
		}
		if r.Header.Get("anthropic-version") != anthropicAPIVersion {
			t.Error("Missing anthropic-version header")
		}

		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
			t.Errorf("Messages = %+v", req.Messages)
		}

		resp := anthropicResponse{
			Content: []anthropicBlock{
				{Type: "text", Text: "first "},
				{Type: "tool_use", Text: "ignored"},
				{Type: "text", Text: "second"},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	a := &Anthropic{
		apiKey: "test-key",
		model:  "claude-sonnet-4-20250514",
		client: &http.Client{
			Transport: &rewriteTransport{baseURL: server.URL},
		},
	}

	got, err := a.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "first second" {
		t.Errorf("Generate = %q, want %q", got, "first second")
	}
}

func TestAnthropic_AuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer server.Close()

	a := &Anthropic{
		apiKey: "bad-key",
		model:  "claude-sonnet-4-20250514",
		client: &http.Client{
			Transport: &rewriteTransport{baseURL: server.URL},
		},
	}

	_, err := a.Generate(context.Background(), "hello")
	if err == nil {
		t.Fatal("Expected auth error")
	}
	if !IsAuthError(err) {
		t.Errorf("Expected auth error, got: %v", err)
	}
}

func TestAnthropic_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(anthropicResponse{})
	}))
	defer server.Close()

	a := &Anthropic{
		apiKey: "test-key",
		client: &http.Client{
			Transport: &rewriteTransport{baseURL: server.URL},
		},
	}

	if _, err := a.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("Expected error for empty content")
	}
}

func TestNewAnthropic_RequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := NewAnthropic(Options{}); err == nil {
		t.Fatal("expected error without ANTHROPIC_API_KEY")
	}
}

// rewriteTransport rewrites all request URLs to point at the test server.
type rewriteTransport struct {
	base    http.RoundTripper
	baseURL string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = "http"
	req.URL.Host = t.baseURL[len("http://"):]
	if t.base != nil {
		return t.base.RoundTrip(req)
	}
	return http.DefaultTransport.RoundTrip(req)
}
