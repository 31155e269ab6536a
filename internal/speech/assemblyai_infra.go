package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"
)

const assemblyAIBaseURL = "https://api.assemblyai.com"

// AssemblyAIClient: загрузка файла → создание транскрипта → опрос статуса.
type AssemblyAIClient struct {
	apiKey string
	opts   httpOptions
}

func NewAssemblyAIClient(apiKey string, timeout time.Duration, opts ...Option) *AssemblyAIClient {
	return &AssemblyAIClient{
		apiKey: apiKey,
		opts:   buildOptions(assemblyAIBaseURL, timeout, opts),
	}
}

type assemblyTranscript struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

func (c *AssemblyAIClient) Transcribe(ctx context.Context, filePath string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("ASSEMBLYAI_API_KEY not set")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	// 1) загрузка
	var uploaded struct {
		UploadURL string `json:"upload_url"`
	}
	if err := c.do(ctx, http.MethodPost, "/v2/upload", "application/octet-stream", bytes.NewReader(data), &uploaded); err != nil {
		return "", fmt.Errorf("assemblyai upload: %w", err)
	}
	if uploaded.UploadURL == "" {
		return "", fmt.Errorf("assemblyai upload: empty upload_url")
	}

	// 2) создание транскрипта
	body, _ := json.Marshal(map[string]string{"audio_url": uploaded.UploadURL})
	var tr assemblyTranscript
	if err := c.do(ctx, http.MethodPost, "/v2/transcript", "application/json", bytes.NewReader(body), &tr); err != nil {
		return "", fmt.Errorf("assemblyai create transcript: %w", err)
	}

	// 3) опрос
	for {
		switch tr.Status {
		case "completed":
			return tr.Text, nil
		case "error":
			return "", fmt.Errorf("assemblyai transcript %s: %s", tr.ID, tr.Error)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.opts.pollInterval):
		}

		if err := c.do(ctx, http.MethodGet, "/v2/transcript/"+tr.ID, "", nil, &tr); err != nil {
			return "", fmt.Errorf("assemblyai poll: %w", err)
		}
	}
}

func (c *AssemblyAIClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.opts.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.opts.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
