package aiinterview

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
	"google.golang.org/genai"
)

// Provider sends one prompt to a text generation endpoint and returns its raw answer.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider reads GEMINI_API_KEY or GOOGLE_API_KEY through the SDK defaults.
func NewGeminiProvider(ctx context.Context, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

// Generate makes a single attempt. Errors from the endpoint are wrapped as ErrUpstream.
func (p *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	log := config.WithContext(ctx)

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		log.WithError(err).Error("Gemini generate content failed")
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	raw := result.Text()
	log.WithField("length", len(raw)).Debug("Gemini response received")
	if raw == "" {
		return "", fmt.Errorf("%w: empty response from model", ErrUpstream)
	}
	return raw, nil
}
