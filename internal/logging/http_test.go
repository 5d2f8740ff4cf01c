package logging

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoggingTransport_RedactsAndPreservesBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "list files") {
			t.Errorf("server saw body %q, request body was consumed", body)
		}
		w.Header().Set("X-Request-Id", "req-1")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ls"}}]}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})
	client := &http.Client{
		Transport: NewLoggingTransport(nil, NewHTTPLogger(logger), true),
	}

	req, err := http.NewRequest(http.MethodPost, server.URL+"/v1?key=secret-key",
		strings.NewReader(`{"prompt":"list files","api_key":"secret-body"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer secret-token")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(respBody), `"content":"ls"`) {
		t.Errorf("response body was consumed: %q", respBody)
	}

	output := buf.String()
	for _, secret := range []string{"secret-key", "secret-body", "secret-token"} {
		if strings.Contains(output, secret) {
			t.Errorf("log output leaked %q: %s", secret, output)
		}
	}
	for _, want := range []string{"HTTP request", "HTTP response", "req-1", "list files"} {
		if !strings.Contains(output, want) {
			t.Errorf("log output missing %q: %s", want, output)
		}
	}
}

func TestLoggingTransport_TransportError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})
	client := &http.Client{
		Transport: NewLoggingTransport(nil, NewHTTPLogger(logger), false),
	}

	// Port 0 is never connectable
	_, err := client.Get("http://127.0.0.1:0/")
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if !strings.Contains(buf.String(), "HTTP request failed") {
		t.Errorf("expected failure entry, got %s", buf.String())
	}
}

func TestRedactQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://x/v1?key=abc", "https://x/v1?key=[REDACTED]"},
		{"https://x/v1?key=abc&alt=json", "https://x/v1?key=[REDACTED]&alt=json"},
		{"https://x/v1?alt=json", "https://x/v1?alt=json"},
		{"https://x/v1?monkey=1", "https://x/v1?monkey=1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := redactQuery(tt.in); got != tt.want {
				t.Errorf("redactQuery(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFlattenHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer x")
	h.Set("Api-Key", "x")
	h.Set("Content-Type", "application/json")

	got := flattenHeaders(h, true)
	if got["Authorization"] != redacted || got["Api-Key"] != redacted {
		t.Errorf("credentials not redacted: %v", got)
	}
	if got["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q", got["Content-Type"])
	}
}

func TestTruncateBody(t *testing.T) {
	if got := truncateBody([]byte("hello"), 100); got != "hello" {
		t.Errorf("truncateBody() = %q, want hello", got)
	}
	got := truncateBody([]byte(strings.Repeat("a", 200)), 50)
	if !strings.HasSuffix(got, "...[truncated]") || len(got) != 50+len("...[truncated]") {
		t.Errorf("truncateBody() = %q", got)
	}
}

func TestRedactSensitiveFields(t *testing.T) {
	input := map[string]interface{}{
		"model":   "gpt-4o-mini",
		"api_key": "key123",
		"messages": []interface{}{
			map[string]interface{}{"content": "hello", "token": "t"},
		},
	}

	result := redactSensitiveFields(input).(map[string]interface{})

	if result["model"] != "gpt-4o-mini" {
		t.Error("model should not be redacted")
	}
	if result["api_key"] != redacted {
		t.Error("api_key should be redacted")
	}
	msg := result["messages"].([]interface{})[0].(map[string]interface{})
	if msg["token"] != redacted || msg["content"] != "hello" {
		t.Errorf("nested redaction wrong: %v", msg)
	}
}
