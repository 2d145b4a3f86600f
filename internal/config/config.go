package config

import (
	"fmt"
	"os"
)

const (
	ProviderTogether   = "together"
	ProviderOpenRouter = "openrouter"

	togetherBaseURL   = "https://api.together.xyz/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"

	togetherDefaultModel   = "meta-llama/Llama-Vision-Free"
	openRouterDefaultModel = "meta-llama/llama-3.2-11b-vision-instruct:free"
)

// MaxUploadBytes is the combined size ceiling for one OCR submission.
// Requests above this are rejected before any provider call.
const MaxUploadBytes = 4 << 20 // 4MB

// Config holds the provider selection and server settings, resolved once
// at startup and read-only afterwards.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string

	Port string
}

// Load resolves the configuration from environment variables.
func Load() (*Config, error) {
	provider := os.Getenv("OCR_PROVIDER")
	if provider == "" {
		provider = ProviderTogether
	}

	cfg := &Config{
		Provider: provider,
		Port:     getEnv("PORT", "8000"),
	}

	switch provider {
	case ProviderTogether:
		cfg.APIKey = os.Getenv("TOGETHER_AI_API_KEY")
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("TOGETHER_API_KEY")
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("missing TOGETHER_AI_API_KEY (or TOGETHER_API_KEY)")
		}
		cfg.BaseURL = togetherBaseURL
		cfg.Model = resolveModel("TOGETHER_VISION_MODEL", togetherDefaultModel)

	case ProviderOpenRouter:
		cfg.APIKey = os.Getenv("OPENROUTER_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("missing OPENROUTER_API_KEY")
		}
		cfg.BaseURL = openRouterBaseURL
		cfg.Model = resolveModel("OPENROUTER_MODEL", openRouterDefaultModel)

	default:
		return nil, fmt.Errorf("unknown OCR_PROVIDER: %q", provider)
	}

	return cfg, nil
}

// resolveModel applies the precedence: explicit OCR_MODEL override,
// then the provider-specific variable, then the built-in default.
func resolveModel(providerVar, fallback string) string {
	if m := os.Getenv("OCR_MODEL"); m != "" {
		return m
	}
	if m := os.Getenv(providerVar); m != "" {
		return m
	}
	return fallback
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
