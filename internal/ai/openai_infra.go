package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
	ready  bool
}

func NewOpenAIClient(apiKey, model string, opts ...func(*openai.ClientConfig)) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	for _, o := range opts {
		o(&cfg)
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		ready:  apiKey != "",
	}
}

func (c *OpenAIClient) GetCompletion(ctx context.Context, prompt string) (string, error) {
	if !c.ready {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
