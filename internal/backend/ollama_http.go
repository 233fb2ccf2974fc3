package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the standard local Ollama address.
const DefaultEndpoint = "http://localhost:11434"

// HTTP invokes a locally addressable Ollama server via POST /api/generate.
type HTTP struct {
	endpoint string
	model    string
	opts     Options
	client   *http.Client
}

// NewHTTP creates an HTTP backend. Empty endpoint falls back to
// DefaultEndpoint; zero timeout falls back to DefaultTimeout.
func NewHTTP(endpoint, model string, opts Options, timeout time.Duration) *HTTP {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTP{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		opts:     opts,
		client:   &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Invoke implements Backend.
func (h *HTTP) Invoke(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Model:  h.model,
		Prompt: prompt,
		Stream: false,
	}
	if h.opts.Temperature != nil || h.opts.TopP != nil {
		req.Options = make(map[string]any, 2)
		if h.opts.Temperature != nil {
			req.Options["temperature"] = *h.opts.Temperature
		}
		if h.opts.TopP != nil {
			req.Options["top_p"] = *h.opts.TopP
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: %s returned status %d: %s", ErrUnavailable, h.endpoint, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	text := strings.TrimSpace(result.Response)
	if text == "" {
		return "", fmt.Errorf("%w: empty model response", ErrUnavailable)
	}
	return text, nil
}
