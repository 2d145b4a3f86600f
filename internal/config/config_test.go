package config

import "testing"

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OCR_PROVIDER",
		"OCR_MODEL",
		"TOGETHER_AI_API_KEY",
		"TOGETHER_API_KEY",
		"TOGETHER_VISION_MODEL",
		"OPENROUTER_API_KEY",
		"OPENROUTER_MODEL",
		"PORT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsToTogether(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("TOGETHER_AI_API_KEY", "tk-123")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Provider != ProviderTogether {
		t.Errorf("expected provider together, got %s", cfg.Provider)
	}
	if cfg.BaseURL != togetherBaseURL {
		t.Errorf("unexpected base url %s", cfg.BaseURL)
	}
	if cfg.Model != togetherDefaultModel {
		t.Errorf("unexpected model %s", cfg.Model)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
}

func TestLoad_TogetherKeyFallback(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("TOGETHER_API_KEY", "legacy-key")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "legacy-key" {
		t.Errorf("expected fallback key, got %q", cfg.APIKey)
	}
}

func TestLoad_MissingKeyFails(t *testing.T) {
	clearProviderEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing Together key")
	}

	t.Setenv("OCR_PROVIDER", "openrouter")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing OpenRouter key")
	}
}

func TestLoad_OpenRouter(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OCR_PROVIDER", "openrouter")
	t.Setenv("OPENROUTER_API_KEY", "or-123")
	t.Setenv("OPENROUTER_MODEL", "qwen/qwen2-vl-72b-instruct")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != openRouterBaseURL {
		t.Errorf("unexpected base url %s", cfg.BaseURL)
	}
	if cfg.Model != "qwen/qwen2-vl-72b-instruct" {
		t.Errorf("unexpected model %s", cfg.Model)
	}
}

func TestLoad_ExplicitModelOverride(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("TOGETHER_AI_API_KEY", "tk-123")
	t.Setenv("TOGETHER_VISION_MODEL", "provider-default")
	t.Setenv("OCR_MODEL", "explicit-override")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "explicit-override" {
		t.Errorf("OCR_MODEL should win, got %s", cfg.Model)
	}
}

func TestLoad_UnknownProvider(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OCR_PROVIDER", "mistral")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
