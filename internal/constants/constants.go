// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Timeout constants used across the application
const (
	// DefaultAPITimeout is the timeout for a single translation request
	DefaultAPITimeout = 60 * time.Second
)

// Application defaults
const (
	AppName = "ai-exec"

	DefaultProvider    = "gemini"
	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultAzureModel  = "gpt-4o-mini"
	DefaultUnixShell   = "/bin/sh"
	DefaultWinShell    = "cmd"

	// ExitSentinel ends the session when typed at the prompt (case-insensitive)
	ExitSentinel = "exit"
)

// TranslationPrompt is the system instruction sent with every request
const TranslationPrompt = "Translate the following request into a single, executable shell command for a Linux/macOS system. " +
	"Only output the raw command and absolutely nothing else."

// SupportedProviders lists the translation backends accepted by --provider
var SupportedProviders = []string{"gemini", "azure"}
