package suggest

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Generation parameters, fixed across all recommendation calls.
const (
	genTemperature     = 0.9
	genTopK            = 1
	genTopP            = 1
	genMaxOutputTokens = 2048

	// DefaultModel is the Gemini model the service targets.
	DefaultModel = "gemini-2.0-flash"
)

// Provider is the generative-model boundary. Implementations return the raw
// model text, which may or may not be valid JSON; parsing is the caller's
// concern.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	StreamComplete(ctx context.Context, prompt string, onChunk func(chunk string) error) (string, error)
}

// GeminiProvider implements Provider on top of Google's Gemini models.
type GeminiProvider struct {
	client *googleai.GoogleAI
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(DefaultModel),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiProvider{client: client}, nil
}

func callOptions() []llms.CallOption {
	return []llms.CallOption{
		llms.WithTemperature(genTemperature),
		llms.WithTopK(genTopK),
		llms.WithTopP(genTopP),
		llms.WithMaxTokens(genMaxOutputTokens),
	}
}

// Complete sends a single prompt and returns the raw response text.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}, callOptions()...)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return resp.Choices[0].Content, nil
}

// StreamComplete sends a single prompt, invoking onChunk for each streamed
// fragment, and returns the full response text once generation finishes.
func (p *GeminiProvider) StreamComplete(ctx context.Context, prompt string, onChunk func(chunk string) error) (string, error) {
	opts := append(callOptions(), llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
		return onChunk(string(chunk))
	}))

	resp, err := p.client.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return resp.Choices[0].Content, nil
}
