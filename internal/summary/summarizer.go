// Package summary turns a finished session into a few sentences of
// searchable text. Providers are pluggable: a remote model when
// credentials exist, a local heuristic that can never fail otherwise.
package summary

import (
	"context"

	"github.com/recollect-ai/recollect/internal/config"
)

// Input carries everything a provider may draw on.
type Input struct {
	Project   string   // working directory of the session
	Condensed string   // condensed transcript text
	Files     []string // file paths the session touched
	Commands  []string // shell commands the session ran
}

// Summarizer produces a short free-text summary of a session.
type Summarizer interface {
	Summarize(ctx context.Context, in Input) (string, error)
	Name() string
}

// New selects a provider from config. With an Anthropic key the remote
// model is used; otherwise, or whenever the remote call fails, callers fall
// back to Heuristic via Fallback.
func New(cfg config.SummaryConfig) Summarizer {
	switch {
	case cfg.Provider == "anthropic" || (cfg.Provider == "" && cfg.AnthropicKey != ""):
		return NewAnthropic(cfg.AnthropicKey, cfg.Model)
	case cfg.Provider == "ollama":
		return NewOllama(cfg.OllamaURL, cfg.OllamaModel)
	default:
		return Heuristic{}
	}
}

// Fallback wraps a primary provider with the heuristic: any error from the
// primary degrades to the local summary instead of propagating.
type Fallback struct {
	Primary Summarizer
}

func (f Fallback) Name() string { return f.Primary.Name() + "+heuristic" }

func (f Fallback) Summarize(ctx context.Context, in Input) (string, error) {
	out, err := f.Primary.Summarize(ctx, in)
	if err == nil && out != "" {
		return out, nil
	}
	return Heuristic{}.Summarize(ctx, in)
}
