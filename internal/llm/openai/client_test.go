package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-mini", want: true},
		{name: "gpt5 uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4o", want: false},
		{name: "empty", model: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestCompleteSendsJSONModeRequest(t *testing.T) {
	oldURL := apiURL
	t.Cleanup(func() { apiURL = oldURL })

	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" {\"ok\":true} "}}]}`))
	}))
	defer server.Close()
	apiURL = server.URL

	client, err := NewClient("test-key", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	out, err := client.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("unexpected content %q", out)
	}
	if _, ok := got["temperature"]; !ok {
		t.Fatalf("expected temperature for non gpt-5 model")
	}
	format, _ := got["response_format"].(map[string]any)
	if format["type"] != "json_object" {
		t.Fatalf("expected json_object response format, got %v", got["response_format"])
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	oldURL := apiURL
	t.Cleanup(func() { apiURL = oldURL })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer server.Close()
	apiURL = server.URL

	client, err := NewClient("test-key", "gpt-5-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Complete(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "slow down") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient("", "gpt-5"); err == nil {
		t.Fatalf("expected error for missing key")
	}
	if _, err := NewClient("k", " "); err == nil {
		t.Fatalf("expected error for missing model")
	}
}
