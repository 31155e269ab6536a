package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Vovarama1992/voice_agent/internal/ports"
	"github.com/goccy/go-json"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io"

// ElevenLabsClient отдаёт mp3 байтами, поэтому результат кладём в S3 и возвращаем публичную ссылку.
type ElevenLabsClient struct {
	apiKey  string
	voiceID string
	storage ports.AudioStorage
	opts    httpOptions
}

func NewElevenLabsClient(apiKey, voiceID string, storage ports.AudioStorage, timeout time.Duration, opts ...Option) *ElevenLabsClient {
	return &ElevenLabsClient{
		apiKey:  apiKey,
		voiceID: voiceID,
		storage: storage,
		opts:    buildOptions(elevenLabsBaseURL, timeout, opts),
	}
}

// TEXT → SPEECH → S3
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("ELEVENLABS_API_KEY not set")
	}
	if c.storage == nil {
		return "", fmt.Errorf("elevenlabs: audio storage not configured")
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.opts.baseURL, c.voiceID)
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.opts.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("tts failed: %s", string(b))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read tts body: %w", err)
	}

	return c.storage.SaveAudio(ctx, bytes.NewReader(audio), int64(len(audio)), "mp3", "audio/mpeg")
}
