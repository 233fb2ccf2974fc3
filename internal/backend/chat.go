package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const chatSystemPrompt = "You are a sentiment classification assistant for song lyrics. " +
	"Answer with exactly one label word and nothing else."

// Chat invokes the OpenAI-compatible /v1/chat/completions endpoint that local
// Ollama servers also expose. It lets the pipeline run against any
// locally hosted model that speaks the chat API.
type Chat struct {
	client      openai.Client
	model       string
	temperature *float64
}

// NewChat creates a chat backend against endpoint (the server root, without
// the /v1 suffix). The API key is a placeholder: local servers ignore it but
// the protocol requires one.
func NewChat(endpoint, model string, opts Options, timeout time.Duration) *Chat {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := openai.NewClient(
		option.WithBaseURL(strings.TrimRight(endpoint, "/")+"/v1"),
		option.WithAPIKey("local"),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	)
	return &Chat{client: client, model: model, temperature: opts.Temperature}
}

// Invoke implements Backend.
func (c *Chat) Invoke(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(chatSystemPrompt),
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(16),
	}
	if c.temperature != nil {
		params.Temperature = openai.Float(*c.temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in chat response", ErrUnavailable)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty chat response", ErrUnavailable)
	}
	return text, nil
}
