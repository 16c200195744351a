package model

import (
	"os"
	"path/filepath"
)

// Config holds every tunable for the formatting pipeline
type Config struct {
	Styles      StylesConfig      `yaml:"styles"`
	Input       InputConfig       `yaml:"input"`
	LLM         LLMConfig         `yaml:"llm"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Output      OutputConfig      `yaml:"output"`
}

// StylesConfig selects the style table drafts resolve against.
// Path wins over Template; with neither set the builtin table is used.
type StylesConfig struct {
	Path     string `yaml:"path"`     // Style-table YAML
	Template string `yaml:"template"` // .docx template to derive the table from
}

// InputConfig bounds what the loader will accept
type InputConfig struct {
	MaxBytes int64 `yaml:"max_bytes"` // Per-draft size cap
}

// LLMConfig configures the optional generative formatting path.
// An empty provider disables it; the rule chain then runs alone.
type LLMConfig struct {
	Provider     string `yaml:"provider"` // "", "openai", "anthropic", "ollama"
	Model        string `yaml:"model"`
	APIKey       string `yaml:"api_key,omitempty"`
	BaseURL      string `yaml:"base_url,omitempty"` // Override for Azure/compatible endpoints
	Timeout      int    `yaml:"timeout"`            // Request timeout in seconds
	MaxTokens    int    `yaml:"max_tokens"`
	StrictStyles bool   `yaml:"strict_styles"` // Reject responses using styles outside the table

	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// CacheConfig configures response caching for the generative path
type CacheConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Dir       string `yaml:"dir"`
	MemoryTTL int    `yaml:"memory_ttl"` // Minutes
	DiskTTL   int    `yaml:"disk_ttl"`   // Hours
}

// ConcurrencyConfig bounds batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitConfig throttles calls per LLM provider
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// OutputConfig controls report verbosity
type OutputConfig struct {
	Verbose           bool `yaml:"verbose"`
	IncludeClassified bool `yaml:"include_classified"` // Embed per-paragraph tags in reports
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Styles: StylesConfig{},
		Input: InputConfig{
			MaxBytes: 10 * 1024 * 1024,
		},
		LLM: LLMConfig{
			Provider:     "",
			Model:        "gpt-4o-mini",
			Timeout:      60,
			MaxTokens:    4000,
			StrictStyles: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(home, ".lexfmt", "cache"),
			MemoryTTL: 30,
			DiskTTL:   24,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1.0,
			Burst:             2,
		},
		Output: OutputConfig{
			Verbose:           false,
			IncludeClassified: true,
		},
	}
}
