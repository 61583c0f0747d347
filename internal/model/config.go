package model

import "time"

// Config is the complete nli-prover configuration.
// Field tags serve both yaml.v3 (config init/show) and viper's decoder.
type Config struct {
	NLI       NLIConfig       `yaml:"nli" mapstructure:"nli"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// NLIConfig selects and tunes the inference backend
type NLIConfig struct {
	Provider      string            `yaml:"provider" mapstructure:"provider"` // huggingface, openai, ollama, anthropic
	Model         string            `yaml:"model" mapstructure:"model"`
	BaseURL       string            `yaml:"base_url,omitempty" mapstructure:"base_url"`
	APIKey        string            `yaml:"api_key,omitempty" mapstructure:"api_key"`
	Timeout       int               `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxInputChars int               `yaml:"max_input_chars" mapstructure:"max_input_chars"`
	LabelMap      map[string]string `yaml:"label_map,omitempty" mapstructure:"label_map"` // e.g. LABEL_0 -> contradiction
}

// CacheConfig controls score caching. Dir empty means memory only.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	Dir       string        `yaml:"dir,omitempty" mapstructure:"dir"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RateLimitConfig throttles calls to the inference endpoint. Zero disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// HTTPConfig holds transport settings shared by the HTTP backends
type HTTPConfig struct {
	UserAgent  string `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// LogConfig configures the diagnostic logger on stderr
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text, json
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		NLI: NLIConfig{
			Provider:      "huggingface",
			Model:         "facebook/bart-large-mnli",
			Timeout:       60,
			MaxInputChars: 2000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 0,
			Burst:             1,
		},
		HTTP: HTTPConfig{
			UserAgent: "nli-prover/0.1",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
