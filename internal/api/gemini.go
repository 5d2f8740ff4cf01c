package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/quocvuong92/ai-exec/internal/config"
	"github.com/quocvuong92/ai-exec/internal/constants"
	"github.com/quocvuong92/ai-exec/internal/logging"
)

// GeminiClient translates requests with Google Gemini. A pool of API keys
// is rotated when a key is rejected or rate limited.
type GeminiClient struct {
	config     *config.Config
	keys       *config.KeyRotator
	httpClient *http.Client
	baseURL    string

	mu     sync.Mutex
	client *genai.Client
}

// GeminiOption configures a GeminiClient
type GeminiOption func(*GeminiClient)

// WithGeminiBaseURL points the client at a different API host
func WithGeminiBaseURL(url string) GeminiOption {
	return func(c *GeminiClient) {
		c.baseURL = url
	}
}

// NewGeminiClient creates a Gemini client for the current key of cfg.GeminiKeys
func NewGeminiClient(ctx context.Context, cfg *config.Config, opts ...GeminiOption) (*GeminiClient, error) {
	keys := cfg.GeminiKeys
	if keys == nil {
		keys = config.NewKeyRotator(cfg.GeminiAPIKeys)
	}
	if !keys.HasKeys() {
		return nil, config.ErrGeminiKeyNotFound
	}

	c := &GeminiClient{
		config:     cfg,
		keys:       keys,
		httpClient: newHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, err := c.current(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// current returns the genai client bound to the active key, creating it on demand
func (c *GeminiClient) current(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     c.keys.GetCurrentKey(),
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	return client, nil
}

// rotate switches to the next key, reporting false when none remain
func (c *GeminiClient) rotate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.keys.Rotate(); err != nil {
		return false
	}
	c.client = nil
	return true
}

// Translate implements Translator
func (c *GeminiClient) Translate(ctx context.Context, request string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(BuildUserMessage(request), genai.RoleUser),
	}
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(constants.TranslationPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
	}

	for {
		client, err := c.current(ctx)
		if err != nil {
			return "", err
		}

		resp, err := client.Models.GenerateContent(ctx, c.config.Model, contents, genConfig)
		if err == nil {
			return NormalizeCommand(responseText(resp)), nil
		}

		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			if ShouldRotateKey(apiErr.Code) && c.rotate() {
				logging.Warn("rotating Gemini API key", logging.Fields{
					"status": apiErr.Code,
					"keys":   c.keys.GetKeyCount(),
				})
				continue
			}
			return "", &APIError{
				StatusCode: apiErr.Code,
				Message:    fmt.Sprintf("Gemini API error: %s", apiErr.Message),
			}
		}
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
