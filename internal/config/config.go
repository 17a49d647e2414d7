package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ResolutionConfig struct {
	AcceptThreshold float64 `toml:"accept_threshold"`
	AskThreshold    float64 `toml:"ask_threshold"`
	MinScore        float64 `toml:"min_score"`
	MaxCandidates   int     `toml:"max_candidates"`
	DedupeThreshold float64 `toml:"dedupe_threshold"`
}

type ContextConfig struct {
	MaxDepth  int     `toml:"max_depth"`
	MaxNodes  int     `toml:"max_nodes"`
	PageLimit int     `toml:"page_limit"`
	HintFloor float64 `toml:"hint_floor"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type Config struct {
	Memgraph   MemgraphConfig   `toml:"memgraph"`
	Resolution ResolutionConfig `toml:"resolution"`
	Context    ContextConfig    `toml:"context"`
	Server     ServerConfig     `toml:"server"`
}

// Default returns the engine's built-in thresholds and caps.
func Default() *Config {
	return &Config{
		Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		Resolution: ResolutionConfig{
			AcceptThreshold: 0.6,
			AskThreshold:    0.3,
			MinScore:        0.3,
			MaxCandidates:   10,
			DedupeThreshold: 0.8,
		},
		Context: ContextConfig{
			MaxDepth:  2,
			MaxNodes:  100,
			PageLimit: 1000,
			HintFloor: 0.1,
		},
		Server: ServerConfig{Port: "8080"},
	}
}

// Load reads a TOML config file over the defaults, so partial files work.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
