package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/quocvuong92/ai-exec/internal/constants"
)

// Environment variable names
const (
	// Provider selection
	EnvProvider = "AI_EXEC_PROVIDER"
	EnvModel    = "AI_EXEC_MODEL"
	EnvShell    = "AI_EXEC_SHELL"

	// Gemini settings
	EnvGeminiAPIKeys = "GEMINI_API_KEYS"
	EnvGeminiAPIKey  = "GEMINI_API_KEY"

	// Azure settings
	EnvAzureEndpoint = "AZURE_OPENAI_ENDPOINT"
	EnvAzureAPIKey   = "AZURE_OPENAI_API_KEY"

	// Logging
	EnvLogLevel = "AI_EXEC_LOG_LEVEL"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultProvider    = constants.DefaultProvider
	DefaultGeminiModel = constants.DefaultGeminiModel
	DefaultAzureModel  = constants.DefaultAzureModel
	DefaultAPITimeout  = constants.DefaultAPITimeout
)

// Errors
var (
	ErrInvalidProvider   = errors.New("invalid provider. Use 'gemini' or 'azure'")
	ErrGeminiKeyNotFound = errors.New("Gemini API key not found. Set GEMINI_API_KEYS or GEMINI_API_KEY environment variable")
	ErrEndpointNotFound  = errors.New("Azure endpoint not found. Set AZURE_OPENAI_ENDPOINT environment variable")
	ErrAzureKeyNotFound  = errors.New("Azure API key not found. Set AZURE_OPENAI_API_KEY environment variable")
	ErrNoAvailableKeys   = errors.New("all API keys exhausted")
	ErrInvalidLogFormat  = errors.New("invalid log format. Use 'text' or 'json'")
)

// RotatableErrorCodes are the status codes that should move to the next API key
var RotatableErrorCodes = []int{401, 403, 429}

// KeyRotator manages a pool of API keys with rotation support
type KeyRotator struct {
	keys       []string
	currentIdx int
}

// NewKeyRotator creates a KeyRotator over the given keys, skipping blanks
func NewKeyRotator(keys []string) *KeyRotator {
	var cleaned []string
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key != "" {
			cleaned = append(cleaned, key)
		}
	}
	return &KeyRotator{keys: cleaned}
}

// GetCurrentKey returns the current active API key
func (kr *KeyRotator) GetCurrentKey() string {
	if len(kr.keys) == 0 {
		return ""
	}
	return kr.keys[kr.currentIdx]
}

// GetKeyCount returns the total number of keys
func (kr *KeyRotator) GetKeyCount() int {
	return len(kr.keys)
}

// HasKeys returns true if there are any keys configured
func (kr *KeyRotator) HasKeys() bool {
	return len(kr.keys) > 0
}

// Rotate moves to the next available API key
func (kr *KeyRotator) Rotate() (string, error) {
	nextIndex := kr.currentIdx + 1
	if nextIndex >= len(kr.keys) {
		return "", ErrNoAvailableKeys
	}
	kr.currentIdx = nextIndex
	return kr.keys[nextIndex], nil
}

// splitList splits a comma-separated value, dropping empty entries
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// Config holds the application configuration
type Config struct {
	// Translation provider: "gemini" or "azure"
	Provider string
	Model    string

	// Gemini settings
	GeminiAPIKeys []string
	GeminiKeys    *KeyRotator

	// Azure OpenAI settings
	AzureEndpoint string
	AzureAPIKey   string

	// Shell used for generic command execution
	Shell string

	// Logging
	Verbose   bool
	LogLevel  string
	LogFormat string
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// Validate validates the configuration and loads from environment.
// Flags already set on c win over the environment, which wins over the file.
func (c *Config) Validate() error {
	if c.Provider == "" {
		c.Provider = os.Getenv(EnvProvider)
	}
	if c.Model == "" {
		c.Model = os.Getenv(EnvModel)
	}
	if c.Shell == "" {
		c.Shell = os.Getenv(EnvShell)
	}
	if c.LogLevel == "" {
		c.LogLevel = os.Getenv(EnvLogLevel)
	}

	// Env keys replace file keys entirely
	if keys := splitList(os.Getenv(EnvGeminiAPIKeys)); len(keys) > 0 {
		c.GeminiAPIKeys = keys
	} else if key := strings.TrimSpace(os.Getenv(EnvGeminiAPIKey)); key != "" {
		c.GeminiAPIKeys = []string{key}
	}
	if endpoint := os.Getenv(EnvAzureEndpoint); endpoint != "" {
		c.AzureEndpoint = endpoint
	}
	if key := strings.TrimSpace(os.Getenv(EnvAzureAPIKey)); key != "" {
		c.AzureAPIKey = key
	}

	// File config has the lowest priority; a broken file is ignored here
	// and reported by the status command
	fileConfig, err := LoadConfigFile()
	if err == nil {
		c.ApplyFileConfig(fileConfig)
	}

	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = c.detectProvider()
		c.applyScopedModel(fileConfig)
	}
	c.AzureEndpoint = strings.TrimSuffix(c.AzureEndpoint, "/")
	c.GeminiKeys = NewKeyRotator(c.GeminiAPIKeys)

	switch c.Provider {
	case "gemini":
		if !c.GeminiKeys.HasKeys() {
			return ErrGeminiKeyNotFound
		}
		if c.Model == "" {
			c.Model = DefaultGeminiModel
		}
	case "azure":
		if c.AzureEndpoint == "" {
			return ErrEndpointNotFound
		}
		if c.AzureAPIKey == "" {
			return ErrAzureKeyNotFound
		}
		if c.Model == "" {
			c.Model = DefaultAzureModel
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProvider, c.Provider)
	}

	if c.Shell == "" {
		c.Shell = DefaultShell()
	}

	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// detectProvider picks Gemini when a key is present, then Azure, then the default
func (c *Config) detectProvider() string {
	if len(c.GeminiAPIKeys) > 0 {
		return "gemini"
	}
	if c.AzureEndpoint != "" && c.AzureAPIKey != "" {
		return "azure"
	}
	return DefaultProvider
}

// GetAzureAPIURL builds the full API URL for chat completions
func (c *Config) GetAzureAPIURL() string {
	return fmt.Sprintf("%s/openai/v1/chat/completions", c.AzureEndpoint)
}

// ProviderName returns a human-readable provider name
func (c *Config) ProviderName() string {
	switch c.Provider {
	case "gemini":
		return "Google Gemini"
	case "azure":
		return "Azure OpenAI"
	}
	return "Unknown"
}

// DefaultShell returns the command interpreter used when none is configured
func DefaultShell() string {
	if runtime.GOOS == "windows" {
		return constants.DefaultWinShell
	}
	return constants.DefaultUnixShell
}
