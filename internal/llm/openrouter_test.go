package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("slug passes through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(VendorConfig{APIKey: "sk-or-test", Model: "anthropic/claude-haiku-4.5"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "anthropic/claude-haiku-4.5" {
			t.Errorf("model = %q", p.ModelID())
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(VendorConfig{Model: "x"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("custom base URL is used", func(t *testing.T) {
		var path string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			openaiReply(`{}`, "stop")(w, r)
		}))
		defer server.Close()

		p, err := NewOpenRouterProvider(VendorConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-exp", BaseURL: server.URL + "/api/v1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := p.Generate(context.Background(), Request{Messages: UserMessage("q")}); err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if path != "/api/v1/chat/completions" {
			t.Errorf("path = %q", path)
		}
	})
}
