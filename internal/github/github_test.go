package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/output"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		url       string
		owner     string
		repo      string
		expectErr bool
	}{
		{"https://github.com/acme/widgets.git", "acme", "widgets", false},
		{"https://github.com/acme/widgets", "acme", "widgets", false},
		{"git@github.com:acme/widgets.git", "acme", "widgets", false},
		{"https://ghe.example.com/team/service.git", "team", "service", false},
		{"not a url", "", "", true},
	}

	for _, tt := range tests {
		owner, repo, err := ParseRemoteURL(tt.url)
		if tt.expectErr {
			if err == nil {
				t.Errorf("ParseRemoteURL(%q) expected error", tt.url)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRemoteURL(%q) error: %v", tt.url, err)
			continue
		}
		if owner != tt.owner || repo != tt.repo {
			t.Errorf("ParseRemoteURL(%q) = %s/%s, want %s/%s", tt.url, owner, repo, tt.owner, tt.repo)
		}
	}
}

func TestNewClient_RequiresToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	if _, err := NewClient(); err == nil {
		t.Fatal("expected error without GITHUB_TOKEN")
	}

	t.Setenv("GITHUB_TOKEN", "test-token")
	if _, err := NewClient(); err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
}

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("GITHUB_API_URL", srv.URL)
	c, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return c
}

func TestFetchPRDiff(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/pulls/42", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"title": "Add login form",
			"base":  map[string]string{"ref": "main"},
			"head":  map[string]string{"ref": "feature/login"},
		})
	})
	mux.HandleFunc("/repos/acme/widgets/pulls/42/files", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"filename": "src/login.ts", "status": "modified", "additions": 10, "deletions": 2, "patch": "@@ -1 +1 @@"},
			{"filename": "src/api.ts", "status": "added", "additions": 30, "deletions": 0, "patch": "@@ -0 +1,30 @@"},
		})
	})

	c := testClient(t, mux)
	got, err := c.FetchPRDiff(context.Background(), "acme", "widgets", 42)
	if err != nil {
		t.Fatalf("FetchPRDiff error: %v", err)
	}

	if got.PRNumber != 42 || got.Title != "Add login form" {
		t.Errorf("meta = %d %q", got.PRNumber, got.Title)
	}
	if got.BaseBranch != "main" || got.HeadBranch != "feature/login" {
		t.Errorf("branches = %q..%q", got.BaseBranch, got.HeadBranch)
	}
	if len(got.Files) != 2 {
		t.Fatalf("got %d files, want 2", len(got.Files))
	}
	f := got.Files[0]
	if f.Path != "src/login.ts" || f.Status != "modified" || f.Additions != 10 || f.Diff != "@@ -1 +1 @@" {
		t.Errorf("file[0] = %+v", f)
	}
}

func TestFetchPRDiff_NotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := c.FetchPRDiff(context.Background(), "acme", "widgets", 99)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestPostReview(t *testing.T) {
	var got reviewRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/pulls/42/reviews", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding review request: %v", err)
		}
		w.WriteHeader(200)
	})

	c := testClient(t, mux)
	payload := output.Payload{
		Summary: "Looks good overall.",
		Comments: []output.PayloadComment{
			{Path: "src/login.ts", Line: 4, Body: "Rename to camelCase."},
		},
	}
	if err := c.PostReview(context.Background(), "acme", "widgets", 42, payload); err != nil {
		t.Fatalf("PostReview error: %v", err)
	}

	if got.Event != "COMMENT" {
		t.Errorf("Event = %q, want COMMENT", got.Event)
	}
	if got.Body != "Looks good overall." {
		t.Errorf("Body = %q", got.Body)
	}
	if len(got.Comments) != 1 || got.Comments[0].Path != "src/login.ts" || got.Comments[0].Line != 4 {
		t.Errorf("Comments = %+v", got.Comments)
	}
}

func TestPostReview_Unprocessable(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(422)
		w.Write([]byte(`{"message":"line must be part of the diff"}`))
	}))

	err := c.PostReview(context.Background(), "acme", "widgets", 42, output.Payload{})
	if err == nil || !strings.Contains(err.Error(), "422") {
		t.Fatalf("expected 422 error, got %v", err)
	}
}
