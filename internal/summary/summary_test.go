package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/recollect-ai/recollect/internal/config"
)

func TestHeuristicIntentAndFiles(t *testing.T) {
	in := Input{
		Condensed: "[USER] Fix the JWT refresh flow in the auth service\n\n[ASSISTANT] Looking at it now.",
		Files:     []string{"internal/auth/refresh.go", "internal/auth/refresh_test.go"},
	}

	out, err := Heuristic{}.Summarize(context.Background(), in)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !strings.Contains(out, "Fix the JWT refresh flow") {
		t.Errorf("missing intent line: %q", out)
	}
	if !strings.Contains(out, "refresh.go") {
		t.Errorf("missing touched files: %q", out)
	}
}

func TestHeuristicNeverEmpty(t *testing.T) {
	tests := []Input{
		{},
		{Project: "/home/user/projects/auth-service"},
		{Condensed: "[ASSISTANT] only assistant text here"},
	}
	for _, in := range tests {
		out, err := Heuristic{}.Summarize(context.Background(), in)
		if err != nil {
			t.Fatalf("Summarize(%+v): %v", in, err)
		}
		if out == "" {
			t.Errorf("Summarize(%+v) returned empty summary", in)
		}
	}
}

func TestHeuristicClipsLongIntent(t *testing.T) {
	in := Input{Condensed: "[USER] " + strings.Repeat("refactor ", 100)}
	out, _ := Heuristic{}.Summarize(context.Background(), in)
	if len(out) > maxIntentLen+16 {
		t.Errorf("intent not clipped, len %d", len(out))
	}
}

func TestFallbackUsesHeuristicOnError(t *testing.T) {
	mock := &Mock{Err: errors.New("api down")}
	f := Fallback{Primary: mock}

	out, err := f.Summarize(context.Background(), Input{
		Condensed: "[USER] Add rate limiting to the API gateway",
	})
	if err != nil {
		t.Fatalf("Fallback must not propagate primary errors: %v", err)
	}
	if !strings.Contains(out, "rate limiting") {
		t.Errorf("fallback output = %q", out)
	}
	if len(mock.Calls) != 1 {
		t.Errorf("primary called %d times, want 1", len(mock.Calls))
	}
}

func TestFallbackPrefersPrimary(t *testing.T) {
	mock := &Mock{Out: "Implemented JWT refresh token rotation."}
	f := Fallback{Primary: mock}

	out, err := f.Summarize(context.Background(), Input{Condensed: "[USER] whatever"})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if out != mock.Out {
		t.Errorf("got %q, want primary output", out)
	}
}

func TestNewProviderSelection(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SummaryConfig
		want string
	}{
		{"key selects anthropic", config.SummaryConfig{AnthropicKey: "sk-test"}, "anthropic"},
		{"no credentials selects heuristic", config.SummaryConfig{}, "heuristic"},
		{"explicit ollama", config.SummaryConfig{Provider: "ollama"}, "ollama"},
		{"unknown provider falls back local", config.SummaryConfig{Provider: "duck"}, "heuristic"},
	}
	for _, tt := range tests {
		if got := New(tt.cfg).Name(); got != tt.want {
			t.Errorf("%s: provider = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPromptCarriesContext(t *testing.T) {
	p := Prompt(Input{
		Condensed: "[USER] fix login",
		Files:     []string{"a/login.go"},
		Commands:  []string{"go test ./..."},
	})
	for _, want := range []string{"fix login", "a/login.go", "go test ./..."} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
