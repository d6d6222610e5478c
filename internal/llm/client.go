package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultTimeout = 120 * time.Second
)

// Models known to read slips and document cards reliably
const (
	ModelClaude35Sonnet = "anthropic/claude-3.5-sonnet"
	ModelClaude3Haiku   = "anthropic/claude-3-haiku"
	ModelGPT4oMini      = "openai/gpt-4o-mini"
	ModelGPT4o          = "openai/gpt-4o"
	ModelGeminiFlash    = "google/gemini-flash-1.5"
)

// Client handles communication with OpenAI-compatible APIs
type Client struct {
	client       openai.Client
	defaultModel string
}

// ClientOption configures the client
type ClientOption func(*clientConfig)

type clientConfig struct {
	baseURL      string
	timeout      time.Duration
	defaultModel string
	httpClient   *http.Client
}

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(cfg *clientConfig) {
		if url != "" {
			cfg.baseURL = url
		}
	}
}

// WithTimeout sets custom HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithDefaultModel sets the default model
func WithDefaultModel(model string) ClientOption {
	return func(cfg *clientConfig) {
		if model != "" {
			cfg.defaultModel = model
		}
	}
}

// WithHTTPClient replaces the HTTP client; the timeout option is ignored then
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(cfg *clientConfig) {
		cfg.httpClient = hc
	}
}

// NewClient creates a new OpenAI-compatible client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	cfg := &clientConfig{
		baseURL:      DefaultBaseURL,
		timeout:      DefaultTimeout,
		defaultModel: ModelGPT4oMini,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(cfg.baseURL),
			option.WithHTTPClient(hc),
			option.WithMaxRetries(1),
			option.WithHeader("HTTP-Referer", "https://github.com/rezonia/brdoc"),
			option.WithHeader("X-Title", "brdoc"),
		),
		defaultModel: cfg.defaultModel,
	}
}

// ChatText is a convenience method for text-only chat
func (c *Client) ChatText(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	return c.complete(ctx, model, messages)
}

// ChatWithImage sends a multimodal request with an image
func (c *Client) ChatWithImage(ctx context.Context, model, systemPrompt, userPrompt string, imageData []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	messages := []openai.ChatCompletionMessageParamUnion{}
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(userPrompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: dataURL,
		}),
	}))

	return c.complete(ctx, model, messages)
}

func (c *Client) complete(ctx context.Context, model string, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	if model == "" {
		model = c.defaultModel
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       model,
		Messages:    messages,
		MaxTokens:   param.NewOpt[int64](1024),
		Temperature: param.NewOpt[float64](0),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

// ListModels returns the ids of the models the endpoint serves
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models failed: %w", err)
	}

	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// ExtractJSON extracts JSON from LLM response (handles markdown code blocks)
func ExtractJSON(response string) string {
	if start := strings.Index(response, "```json"); start != -1 {
		start += 7
		if end := strings.Index(response[start:], "```"); end != -1 {
			return strings.TrimSpace(response[start : start+end])
		}
	}

	if start := strings.Index(response, "```"); start != -1 {
		start += 3
		// skip language identifier
		if nl := strings.Index(response[start:], "\n"); nl != -1 {
			start += nl + 1
		}
		if end := strings.Index(response[start:], "```"); end != -1 {
			return strings.TrimSpace(response[start : start+end])
		}
	}

	response = strings.TrimSpace(response)
	if i := strings.IndexAny(response, "{["); i > 0 {
		if j := strings.LastIndexAny(response, "}]"); j > i {
			return response[i : j+1]
		}
	}
	return response
}
