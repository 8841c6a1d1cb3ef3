package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"askcaira/backend/utils"
)

// Generator is the single operation the service needs from a model:
// prompt text in, response text out.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

var ErrEmptyResponse = errors.New("model returned an empty response")

// GeminiGenerator holds one client for the life of the process.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := utils.NewAIClient(ctx, utils.AIConfig{APIKey: apiKey, GenModel: model})
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	text, err := utils.GenerateText(ctx, g.client, g.model, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// Disabled is used when no API key is configured; every call fails so the
// callers take their fallback paths.
type Disabled struct{}

func (Disabled) GenerateContent(context.Context, string) (string, error) {
	return "", utils.ErrAIDisabled
}
