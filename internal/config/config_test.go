package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// clearAllEnvVars clears all config-related environment variables for clean tests
func clearAllEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		EnvProvider, EnvModel, EnvShell,
		EnvGeminiAPIKeys, EnvGeminiAPIKey,
		EnvAzureEndpoint, EnvAzureAPIKey,
		EnvLogLevel,
	}
	for _, env := range envVars {
		t.Setenv(env, "")
	}
}

// runInTempDir runs the test in a temporary directory to isolate from config files
func runInTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change to temp dir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
	})

	// Override HOME to prevent loading user config files
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", "")
	return tmpDir
}

// =============================================================================
// KeyRotator Tests
// =============================================================================

func TestKeyRotator_Rotate(t *testing.T) {
	kr := NewKeyRotator([]string{"key1", " ", "key2", "key3"})

	if kr.GetKeyCount() != 3 {
		t.Fatalf("GetKeyCount() = %d, want 3", kr.GetKeyCount())
	}
	if kr.GetCurrentKey() != "key1" {
		t.Errorf("GetCurrentKey() = %q, want key1", kr.GetCurrentKey())
	}

	for _, want := range []string{"key2", "key3"} {
		got, err := kr.Rotate()
		if err != nil {
			t.Fatalf("Rotate() error = %v", err)
		}
		if got != want {
			t.Errorf("Rotate() = %q, want %q", got, want)
		}
	}

	if _, err := kr.Rotate(); !errors.Is(err, ErrNoAvailableKeys) {
		t.Errorf("Rotate() past the end error = %v, want ErrNoAvailableKeys", err)
	}
	if kr.GetCurrentKey() != "key3" {
		t.Errorf("GetCurrentKey() after exhaustion = %q, want key3", kr.GetCurrentKey())
	}
}

func TestKeyRotator_Empty(t *testing.T) {
	kr := NewKeyRotator(nil)
	if kr.HasKeys() {
		t.Error("HasKeys() = true for empty rotator")
	}
	if kr.GetCurrentKey() != "" {
		t.Errorf("GetCurrentKey() = %q, want empty", kr.GetCurrentKey())
	}
	if _, err := kr.Rotate(); !errors.Is(err, ErrNoAvailableKeys) {
		t.Errorf("Rotate() error = %v, want ErrNoAvailableKeys", err)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"a", 1},
		{"a,b", 2},
		{" a , ,b ,", 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := splitList(tt.input); len(got) != tt.want {
				t.Errorf("splitList(%q) = %v, want %d entries", tt.input, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Validate Tests
// =============================================================================

func TestValidate_GeminiFromEnv(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)
	t.Setenv(EnvGeminiAPIKeys, "k1,k2")

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Model != DefaultGeminiModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultGeminiModel)
	}
	if cfg.GeminiKeys.GetKeyCount() != 2 {
		t.Errorf("GeminiKeys count = %d, want 2", cfg.GeminiKeys.GetKeyCount())
	}
	if cfg.Shell != DefaultShell() {
		t.Errorf("Shell = %q, want %q", cfg.Shell, DefaultShell())
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
}

func TestValidate_SingleGeminiKey(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)
	t.Setenv(EnvGeminiAPIKey, "only")

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.GeminiKeys.GetCurrentKey() != "only" {
		t.Errorf("current key = %q, want only", cfg.GeminiKeys.GetCurrentKey())
	}
}

func TestValidate_AzureAutoDetect(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)
	t.Setenv(EnvAzureEndpoint, "https://test.openai.azure.com/")
	t.Setenv(EnvAzureAPIKey, "secret")

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Provider != "azure" {
		t.Errorf("Provider = %q, want azure", cfg.Provider)
	}
	if cfg.AzureEndpoint != "https://test.openai.azure.com" {
		t.Errorf("AzureEndpoint = %q, trailing slash not trimmed", cfg.AzureEndpoint)
	}
	if cfg.GetAzureAPIURL() != "https://test.openai.azure.com/openai/v1/chat/completions" {
		t.Errorf("GetAzureAPIURL() = %q", cfg.GetAzureAPIURL())
	}
	if cfg.Model != DefaultAzureModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultAzureModel)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		cfg     *Config
		wantErr error
	}{
		{
			name:    "no credentials",
			cfg:     NewConfig(),
			wantErr: ErrGeminiKeyNotFound,
		},
		{
			name:    "azure without endpoint",
			env:     map[string]string{EnvAzureAPIKey: "k"},
			cfg:     &Config{Provider: "azure"},
			wantErr: ErrEndpointNotFound,
		},
		{
			name:    "azure without key",
			env:     map[string]string{EnvAzureEndpoint: "https://x"},
			cfg:     &Config{Provider: "azure"},
			wantErr: ErrAzureKeyNotFound,
		},
		{
			name:    "unknown provider",
			cfg:     &Config{Provider: "copilot"},
			wantErr: ErrInvalidProvider,
		},
		{
			name:    "bad log format",
			env:     map[string]string{EnvGeminiAPIKey: "k"},
			cfg:     &Config{LogFormat: "xml"},
			wantErr: ErrInvalidLogFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runInTempDir(t)
			clearAllEnvVars(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			err := tt.cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_FlagsOverrideEnv(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)
	t.Setenv(EnvGeminiAPIKey, "k")
	t.Setenv(EnvModel, "env-model")
	t.Setenv(EnvShell, "/bin/env-shell")

	cfg := &Config{Model: "flag-model", Shell: "/bin/flag-shell"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Model != "flag-model" {
		t.Errorf("Model = %q, want flag-model", cfg.Model)
	}
	if cfg.Shell != "/bin/flag-shell" {
		t.Errorf("Shell = %q, want /bin/flag-shell", cfg.Shell)
	}
}

func TestValidate_EnvOverridesFile(t *testing.T) {
	dir := runInTempDir(t)
	clearAllEnvVars(t)
	createTempConfigFile(t, dir, `
provider: gemini
shell: /bin/file-shell
gemini:
  api_keys: [file-key]
  model: file-model
`)
	t.Setenv(EnvShell, "/bin/env-shell")

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Shell != "/bin/env-shell" {
		t.Errorf("Shell = %q, want env value", cfg.Shell)
	}
	if cfg.GeminiKeys.GetCurrentKey() != "file-key" {
		t.Errorf("key = %q, want file-key", cfg.GeminiKeys.GetCurrentKey())
	}
	if cfg.Model != "file-model" {
		t.Errorf("Model = %q, want file-model", cfg.Model)
	}
}

func TestValidate_ScopedModelAfterDetection(t *testing.T) {
	dir := runInTempDir(t)
	clearAllEnvVars(t)
	createTempConfigFile(t, dir, `
azure:
  endpoint: https://file.openai.azure.com
  api_key: file-key
  model: my-deployment
`)

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Provider != "azure" {
		t.Errorf("Provider = %q, want azure", cfg.Provider)
	}
	if cfg.Model != "my-deployment" {
		t.Errorf("Model = %q, want my-deployment", cfg.Model)
	}
}

func TestProviderName(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"gemini", "Google Gemini"},
		{"azure", "Azure OpenAI"},
		{"other", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := &Config{Provider: tt.provider}
			if got := cfg.ProviderName(); got != tt.want {
				t.Errorf("ProviderName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultShell(t *testing.T) {
	want := "/bin/sh"
	if runtime.GOOS == "windows" {
		want = "cmd"
	}
	if got := DefaultShell(); got != want {
		t.Errorf("DefaultShell() = %q, want %q", got, want)
	}
}

func TestGetConfigPaths_IncludesHome(t *testing.T) {
	dir := runInTempDir(t)
	paths := GetConfigPaths()
	want := filepath.Join(dir, ".config", "ai-exec", ConfigFileName)
	found := false
	for _, p := range paths {
		if p == want {
			found = true
		}
	}
	if !found {
		t.Errorf("GetConfigPaths() = %v, missing %s", paths, want)
	}
}
