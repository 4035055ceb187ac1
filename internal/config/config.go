// Package config loads recollect configuration: defaults, then
// ~/.recollect/config.yaml, then environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all recollect configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Summary  SummaryConfig  `yaml:"summary"`
	Recall   RecallConfig   `yaml:"recall"`
}

type ServerConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SummaryConfig struct {
	Provider     string `yaml:"provider"` // "anthropic", "ollama", "heuristic"; empty = auto
	Model        string `yaml:"model"`
	AnthropicKey string `yaml:"anthropic_key"`
	OllamaURL    string `yaml:"ollama_url"`
	OllamaModel  string `yaml:"ollama_model"`
}

// RecallConfig tunes how ranked sessions are filtered before injection.
// The thresholds are presentation policy; the ranking itself is fixed.
type RecallConfig struct {
	MinScore     float64 `yaml:"min_score"`     // drop entries scoring below this
	MaxSessions  int     `yaml:"max_sessions"`  // cap on injected sessions
	FallbackTop  int     `yaml:"fallback_top"`  // top-N shown when nothing clears MinScore
	CorpusLimit  int     `yaml:"corpus_limit"`  // how many stored sessions to rank
	KeepSessions int     `yaml:"keep_sessions"` // retention cap, pruned past this
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37717,
		},
		Recall: RecallConfig{
			MinScore:     0.3,
			MaxSessions:  5,
			FallbackTop:  3,
			CorpusLimit:  50,
			KeepSessions: 200,
		},
	}
}

// DefaultPath returns ~/.recollect/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".recollect", "config.yaml")
}

// Load reads configuration from path (DefaultPath when empty), applies it
// over the defaults, then applies environment overrides. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && cfg.Summary.AnthropicKey == "" {
		cfg.Summary.AnthropicKey = key
	}
	if p := os.Getenv("RECOLLECT_DB"); p != "" {
		cfg.Database.Path = p
	}
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
