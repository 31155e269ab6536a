package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

const murfBaseURL = "https://api.murf.ai"

// MurfTTS - голос и формат фиксированы на весь сервис. Murf сам хостит файл и отдаёт ссылку.
type MurfTTS struct {
	apiKey  string
	voiceID string
	format  string
	opts    httpOptions
}

func NewMurfTTS(apiKey, voiceID string, timeout time.Duration, opts ...Option) *MurfTTS {
	return &MurfTTS{
		apiKey:  apiKey,
		voiceID: voiceID,
		format:  "mp3",
		opts:    buildOptions(murfBaseURL, timeout, opts),
	}
}

func (t *MurfTTS) Synthesize(ctx context.Context, text string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("MURF_API_KEY not set")
	}

	payload, err := json.Marshal(map[string]string{
		"voiceId": t.voiceID,
		"text":    text,
		"format":  t.format,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.opts.baseURL+"/v1/speech/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.opts.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("murf request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("murf status %d: %s", resp.StatusCode, b)
	}

	var out struct {
		AudioFile string `json:"audioFile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode murf: %w", err)
	}
	if out.AudioFile == "" {
		return "", fmt.Errorf("murf: empty audioFile")
	}
	return out.AudioFile, nil
}
