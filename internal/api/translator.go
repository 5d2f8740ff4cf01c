package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/quocvuong92/ai-exec/internal/config"
	"github.com/quocvuong92/ai-exec/internal/constants"
	"github.com/quocvuong92/ai-exec/internal/logging"
)

// ErrNoProvider is returned when the configured provider has no implementation
var ErrNoProvider = errors.New("no translation provider configured")

// Translator turns a natural-language request into a single shell command.
// An empty string with a nil error means the model produced no command.
type Translator interface {
	Translate(ctx context.Context, request string) (string, error)
}

// Ensure both clients implement Translator
var (
	_ Translator = (*AzureClient)(nil)
	_ Translator = (*GeminiClient)(nil)
)

// NewTranslator creates the Translator selected by cfg.Provider
func NewTranslator(ctx context.Context, cfg *config.Config) (Translator, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiClient(ctx, cfg)
	case "azure":
		if cfg.AzureEndpoint == "" || cfg.AzureAPIKey == "" {
			return nil, fmt.Errorf("Azure provider requires %s and %s", config.EnvAzureEndpoint, config.EnvAzureAPIKey)
		}
		return NewAzureClient(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrNoProvider, cfg.Provider)
	}
}

// BuildUserMessage wraps the operator's request the way the prompt expects it
func BuildUserMessage(request string) string {
	return fmt.Sprintf("Request: '%s'", request)
}

// NormalizeCommand reduces a model reply to one command line. Markdown code
// fences and backticks wrapping a whole line are removed, and the first
// non-empty line wins. A fence that opens and closes on one line keeps its
// content, minus a leading shell language tag.
func NormalizeCommand(reply string) string {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, fence) {
			inner := strings.TrimSpace(strings.TrimPrefix(line, fence))
			closed := strings.HasSuffix(inner, fence)
			if closed {
				inner = strings.TrimSpace(strings.TrimSuffix(inner, fence))
			} else if !strings.ContainsAny(inner, " \t") {
				// Bare fence, possibly with a language tag
				continue
			}
			line = stripLanguageTag(inner)
		}
		if len(line) >= 2 && line[0] == '`' && line[len(line)-1] == '`' {
			line = strings.TrimSpace(strings.Trim(line, "`"))
		}
		if line != "" {
			return line
		}
	}
	return ""
}

const fence = "```"

// fenceLanguages are info strings models put after an opening fence
var fenceLanguages = map[string]bool{
	"bash": true, "sh": true, "shell": true, "zsh": true, "fish": true,
	"console": true, "shellscript": true, "cmd": true, "bat": true,
	"powershell": true, "ps1": true, "pwsh": true,
}

func stripLanguageTag(s string) string {
	tag, rest, found := strings.Cut(s, " ")
	if found && fenceLanguages[strings.ToLower(tag)] {
		return strings.TrimSpace(rest)
	}
	return s
}

// newHTTPClient returns the client used for provider calls, logging traffic
// when the default logger is at debug level
func newHTTPClient() *http.Client {
	client := &http.Client{Timeout: constants.DefaultAPITimeout}
	if logging.DefaultLogger.Enabled(logging.LevelDebug) {
		httpLogger := logging.NewHTTPLogger(logging.DefaultLogger)
		client.Transport = logging.NewLoggingTransport(http.DefaultTransport, httpLogger, true)
	}
	return client
}
