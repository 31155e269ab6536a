package speech

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// WhisperClient - распознавание через OpenAI Whisper.
type WhisperClient struct {
	client *openai.Client
	ready  bool
}

func NewWhisperClient(apiKey string, opts ...func(*openai.ClientConfig)) *WhisperClient {
	cfg := openai.DefaultConfig(apiKey)
	for _, o := range opts {
		o(&cfg)
	}
	return &WhisperClient{
		client: openai.NewClientWithConfig(cfg),
		ready:  apiKey != "",
	}
}

func (c *WhisperClient) Transcribe(ctx context.Context, filePath string) (string, error) {
	if !c.ready {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filePath,
	})
	if err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	return resp.Text, nil
}
