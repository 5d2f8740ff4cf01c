package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/ai-exec/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	// Provider selection
	Provider string `yaml:"provider,omitempty"` // "gemini", "azure"

	// Model settings
	Model string `yaml:"model,omitempty"`

	// Shell used for generic commands
	Shell string `yaml:"shell,omitempty"`

	Gemini *GeminiConfig `yaml:"gemini,omitempty"`
	Azure  *AzureConfig  `yaml:"azure,omitempty"`
	Log    *LogConfig    `yaml:"log,omitempty"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys,omitempty"`
	Model   string   `yaml:"model,omitempty"`
}

// AzureConfig holds Azure-specific configuration
type AzureConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model,omitempty"`
}

// LogConfig holds logging defaults
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // "text" or "json"
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// FindConfigFile returns the first existing config file path, or "" if none exists
func FindConfigFile() string {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile attempts to load configuration from a file
func LoadConfigFile() (*FileConfig, error) {
	if path := FindConfigFile(); path != "" {
		return loadConfigFromPath(path)
	}

	// No config file found, return empty config
	return &FileConfig{}, nil
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig fills fields that flags and environment left empty
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if c.Provider == "" && fc.Provider != "" {
		c.Provider = fc.Provider
	}
	if c.Shell == "" && fc.Shell != "" {
		c.Shell = fc.Shell
	}
	if c.Model == "" && fc.Model != "" {
		c.Model = fc.Model
	}

	if fc.Gemini != nil {
		if len(c.GeminiAPIKeys) == 0 && len(fc.Gemini.APIKeys) > 0 {
			c.GeminiAPIKeys = fc.Gemini.APIKeys
		}
	}
	if fc.Azure != nil {
		if c.AzureEndpoint == "" && fc.Azure.Endpoint != "" {
			c.AzureEndpoint = fc.Azure.Endpoint
		}
		if c.AzureAPIKey == "" && fc.Azure.APIKey != "" {
			c.AzureAPIKey = fc.Azure.APIKey
		}
	}

	c.applyScopedModel(fc)

	if fc.Log != nil {
		if c.LogLevel == "" && fc.Log.Level != "" {
			c.LogLevel = fc.Log.Level
		}
		if c.LogFormat == "" && fc.Log.Format != "" {
			c.LogFormat = fc.Log.Format
		}
	}
}

// applyScopedModel applies gemini.model or azure.model for the selected provider
func (c *Config) applyScopedModel(fc *FileConfig) {
	if fc == nil || c.Model != "" {
		return
	}
	switch strings.ToLower(c.Provider) {
	case "gemini":
		if fc.Gemini != nil {
			c.Model = fc.Gemini.Model
		}
	case "azure":
		if fc.Azure != nil {
			c.Model = fc.Azure.Model
		}
	}
}

// CreateDefaultConfigFile creates a default config file at the user config directory
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, constants.AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}

const defaultConfigTemplate = `# ai-exec configuration
# Location: ~/.config/ai-exec/config.yaml

# Translation provider: "gemini" or "azure" (default: auto-detect)
# provider: gemini

# Model override (defaults: gemini-1.5-flash, gpt-4o-mini)
# model: gemini-1.5-flash

# Shell used to run accepted commands (default: /bin/sh, cmd on Windows)
# shell: /bin/bash

# Google Gemini settings
# gemini:
#   api_keys:       # rotated on 401/403/429
#     - your-gemini-key
#   model: gemini-1.5-flash

# Azure OpenAI settings (required if provider: azure)
# azure:
#   endpoint: https://your-resource.openai.azure.com
#   api_key: your-api-key
#   model: gpt-4o-mini

# Logging (off unless --verbose or a level is set)
# log:
#   level: debug
#   format: text    # text or json
`
