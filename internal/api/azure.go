package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/quocvuong92/ai-exec/internal/config"
	"github.com/quocvuong92/ai-exec/internal/constants"
	"github.com/quocvuong92/ai-exec/internal/logging"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the Chat Completions API request
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// Usage represents token usage statistics
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice represents a response choice
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// ChatResponse represents the API response
type ChatResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// GetContent extracts the content of the first choice
func (r *ChatResponse) GetContent() string {
	if len(r.Choices) > 0 {
		return r.Choices[0].Message.Content
	}
	return ""
}

// AzureErrorResponse represents an Azure API error
type AzureErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// APIError represents an error with status code
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// AzureClient translates requests through an OpenAI-compatible chat
// completions endpoint (Azure OpenAI v1)
type AzureClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewAzureClient creates a new Azure OpenAI client
func NewAzureClient(cfg *config.Config) *AzureClient {
	return &AzureClient{
		httpClient: newHTTPClient(),
		config:     cfg,
	}
}

// Translate implements Translator
func (c *AzureClient) Translate(ctx context.Context, request string) (string, error) {
	resp, err := c.Query(ctx, []Message{
		{Role: "system", Content: constants.TranslationPrompt},
		{Role: "user", Content: BuildUserMessage(request)},
	})
	if err != nil {
		return "", err
	}
	return NormalizeCommand(resp.GetContent()), nil
}

// Query sends a non-streaming chat completion request with retry on
// transient failures
func (c *AzureClient) Query(ctx context.Context, messages []Message) (*ChatResponse, error) {
	jsonData, err := json.Marshal(ChatRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return WithRetry(ctx, func() (*ChatResponse, error) {
		return c.do(ctx, jsonData)
	})
}

func (c *AzureClient) do(ctx context.Context, payload []byte) (*ChatResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GetAzureAPIURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.AzureAPIKey)
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		errMsg := fmt.Sprintf("status code %d", resp.StatusCode)
		var errResp AzureErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			errMsg = errResp.Error.Message
		}
		logging.Warn("translation request rejected", logging.Fields{
			"provider":   "azure",
			"status":     resp.StatusCode,
			"request_id": requestID,
		})
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Azure API error: %s", errMsg),
		}
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &chatResp, nil
}
