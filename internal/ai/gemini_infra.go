package ai

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// GeminiClient создаёт genai-клиент на первом запросе: без ключа сервис стартует,
// а вызовы падают уже в рантайме.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string

	mu     sync.Mutex
	client *genai.Client
}

type GeminiOption func(*GeminiClient)

// WithGeminiBaseURL подменяет адрес API.
func WithGeminiBaseURL(u string) GeminiOption {
	return func(c *GeminiClient) { c.baseURL = u }
}

func NewGeminiClient(apiKey, model string, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{apiKey: apiKey, model: model}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *GeminiClient) genaiClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	cfg := &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c.client = gc
	return gc, nil
}

func (c *GeminiClient) GetCompletion(ctx context.Context, prompt string) (string, error) {
	gc, err := c.genaiClient(ctx)
	if err != nil {
		return "", err
	}

	resp, err := gc.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}
