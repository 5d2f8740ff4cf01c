package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const redacted = "[REDACTED]"

// defaultMaxBodySize caps how much of a body is logged
const defaultMaxBodySize = 10000

var sensitiveHeaders = map[string]bool{
	"authorization":  true,
	"api-key":        true,
	"x-api-key":      true,
	"x-goog-api-key": true,
	"cookie":         true,
	"set-cookie":     true,
}

var sensitiveBodyKeys = []string{"api_key", "apikey", "api-key", "password", "secret", "token", "authorization"}

// HTTPLogger logs translator traffic at debug level
type HTTPLogger struct {
	logger      *Logger
	maxBodySize int
}

// NewHTTPLogger creates a new HTTP logger
func NewHTTPLogger(logger *Logger) *HTTPLogger {
	return &HTTPLogger{
		logger:      logger,
		maxBodySize: defaultMaxBodySize,
	}
}

// SetMaxBodySize sets the maximum body size to log (in bytes)
func (h *HTTPLogger) SetMaxBodySize(size int) {
	h.maxBodySize = size
}

// LogRequest logs an outgoing request with credentials redacted
func (h *HTTPLogger) LogRequest(req *http.Request, body []byte) {
	fields := Fields{
		"method":  req.Method,
		"url":     redactQuery(req.URL.String()),
		"headers": flattenHeaders(req.Header, true),
	}
	h.addBody(fields, body, true)
	h.logger.Debug("HTTP request", fields)
}

// LogResponse logs a response and its latency
func (h *HTTPLogger) LogResponse(resp *http.Response, body []byte, duration time.Duration) {
	fields := Fields{
		"status":      resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
	}
	if id := resp.Header.Get("X-Request-Id"); id != "" {
		fields["request_id"] = id
	}
	h.addBody(fields, body, false)
	h.logger.Debug("HTTP response", fields)
}

// LogError logs a transport failure
func (h *HTTPLogger) LogError(err error, req *http.Request) {
	h.logger.Error("HTTP request failed", err, Fields{
		"method": req.Method,
		"url":    redactQuery(req.URL.String()),
	})
}

func (h *HTTPLogger) addBody(fields Fields, body []byte, redact bool) {
	if len(body) == 0 {
		return
	}
	fields["body_size"] = len(body)

	var parsed interface{}
	if len(body) <= h.maxBodySize && json.Unmarshal(body, &parsed) == nil {
		if redact {
			parsed = redactSensitiveFields(parsed)
		}
		fields["body"] = parsed
		return
	}
	fields["body"] = truncateBody(body, h.maxBodySize)
}

// LoggingTransport wraps an http.RoundTripper with request logging
type LoggingTransport struct {
	wrapped http.RoundTripper
	logger  *HTTPLogger
	logBody bool
}

// NewLoggingTransport creates a logging round tripper around wrapped
// (http.DefaultTransport when nil)
func NewLoggingTransport(wrapped http.RoundTripper, logger *HTTPLogger, logBody bool) *LoggingTransport {
	if wrapped == nil {
		wrapped = http.DefaultTransport
	}
	return &LoggingTransport{
		wrapped: wrapped,
		logger:  logger,
		logBody: logBody,
	}
}

// RoundTrip implements http.RoundTripper
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	var reqBody []byte
	if t.logBody && req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
	}
	t.logger.LogRequest(req, reqBody)

	resp, err := t.wrapped.RoundTrip(req)
	if err != nil {
		t.logger.LogError(err, req)
		return nil, err
	}

	var respBody []byte
	if t.logBody && resp.Body != nil {
		respBody, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(respBody))
	}
	t.logger.LogResponse(resp, respBody, time.Since(start))

	return resp, nil
}

func flattenHeaders(h http.Header, redact bool) map[string]string {
	headers := make(map[string]string, len(h))
	for k, v := range h {
		switch {
		case redact && sensitiveHeaders[strings.ToLower(k)]:
			headers[k] = redacted
		case len(v) > 0:
			headers[k] = v[0]
		}
	}
	return headers
}

// redactQuery hides a "key" query parameter, which Gemini accepts as a credential
func redactQuery(raw string) string {
	idx := strings.Index(raw, "key=")
	if idx < 0 || (idx > 0 && raw[idx-1] != '?' && raw[idx-1] != '&') {
		return raw
	}
	end := strings.IndexByte(raw[idx:], '&')
	if end < 0 {
		return raw[:idx] + "key=" + redacted
	}
	return raw[:idx] + "key=" + redacted + raw[idx+end:]
}

func truncateBody(body []byte, maxSize int) string {
	if len(body) <= maxSize {
		return string(body)
	}
	return string(body[:maxSize]) + "...[truncated]"
}

func redactSensitiveFields(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, val := range v {
			if isSensitiveKey(k) {
				result[k] = redacted
			} else {
				result[k] = redactSensitiveFields(val)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = redactSensitiveFields(item)
		}
		return result
	default:
		return data
	}
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveBodyKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
