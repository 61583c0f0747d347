package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/nli-prover/internal/model"
	"github.com/spf13/viper"
)

// apiKeyEnv lists the conventional credential variable of each provider.
// They are read only when no api_key is configured.
var apiKeyEnv = map[string]string{
	"huggingface": "HF_TOKEN",
	"hf":          "HF_TOKEN",
	"openai":      "OPENAI_API_KEY",
	"anthropic":   "ANTHROPIC_API_KEY",
	"claude":      "ANTHROPIC_API_KEY",
}

// loadConfig merges defaults, config file, environment and flags.
// Precedence follows viper: flags, env, file, defaults.
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	registerDefaults(v, cfg)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	p := strings.ToLower(cfg.NLI.Provider)

	// Non-HF backends pick their own default model
	if cfg.NLI.Model == "" && (p == "huggingface" || p == "hf") {
		cfg.NLI.Model = model.DefaultConfig().NLI.Model
	}

	if cfg.NLI.APIKey == "" {
		if name, ok := apiKeyEnv[p]; ok {
			cfg.NLI.APIKey = os.Getenv(name)
		}
	}

	if p == "ollama" && cfg.NLI.BaseURL == "" {
		cfg.NLI.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}

	if noCache {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

// registerDefaults makes every key known to viper so that AutomaticEnv
// can override it during Unmarshal
func registerDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("nli.provider", cfg.NLI.Provider)
	v.SetDefault("nli.model", "")
	v.SetDefault("nli.base_url", cfg.NLI.BaseURL)
	v.SetDefault("nli.api_key", cfg.NLI.APIKey)
	v.SetDefault("nli.timeout", cfg.NLI.Timeout)
	v.SetDefault("nli.max_input_chars", cfg.NLI.MaxInputChars)

	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)

	v.SetDefault("rate_limit.requests_per_second", cfg.RateLimit.RequestsPerSecond)
	v.SetDefault("rate_limit.burst", cfg.RateLimit.Burst)

	v.SetDefault("http.user_agent", cfg.HTTP.UserAgent)
	v.SetDefault("http.http_proxy", cfg.HTTP.HTTPProxy)
	v.SetDefault("http.https_proxy", cfg.HTTP.HTTPSProxy)
	v.SetDefault("http.no_proxy", cfg.HTTP.NoProxy)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

// maskSecret keeps the last four characters of a credential
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
