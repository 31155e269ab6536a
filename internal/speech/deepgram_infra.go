package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/goccy/go-json"
)

const deepgramBaseURL = "https://api.deepgram.com"

type DeepgramClient struct {
	apiKey   string
	language string
	opts     httpOptions
}

func NewDeepgramClient(apiKey, language string, timeout time.Duration, opts ...Option) *DeepgramClient {
	return &DeepgramClient{
		apiKey:   apiKey,
		language: language,
		opts:     buildOptions(deepgramBaseURL, timeout, opts),
	}
}

func (c *DeepgramClient) Transcribe(ctx context.Context, filePath string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("DEEPGRAM_API_KEY not set")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	q := url.Values{}
	q.Set("model", "nova-2")
	q.Set("smart_format", "true")
	q.Set("language", c.language)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.opts.baseURL+"/v1/listen?"+q.Encode(),
		bytes.NewReader(data),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := c.opts.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepgram request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepgram error: %s", body)
	}

	var parsed struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode deepgram: %w", err)
	}

	// пустой результат - это "ничего не сказано", а не ошибка
	if len(parsed.Results.Channels) == 0 ||
		len(parsed.Results.Channels[0].Alternatives) == 0 {
		return "", nil
	}

	return parsed.Results.Channels[0].Alternatives[0].Transcript, nil
}
