package speech

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	gspeech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
)

// GoogleSTT - синхронный Recognize Google Cloud Speech. Авторизация через ADC.
// Клиент создаётся на первом запросе, чтобы старт не зависел от наличия кредов.
type GoogleSTT struct {
	languageCode string

	mu     sync.Mutex
	client *gspeech.Client
}

func NewGoogleSTT(languageCode string) *GoogleSTT {
	if !strings.Contains(languageCode, "-") {
		languageCode = languageCode + "-US"
	}
	return &GoogleSTT{languageCode: languageCode}
}

func (s *GoogleSTT) speechClient(ctx context.Context) (*gspeech.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}
	c, err := gspeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	s.client = c
	return c, nil
}

func (s *GoogleSTT) Transcribe(ctx context.Context, filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	client, err := s.speechClient(ctx)
	if err != nil {
		return "", err
	}

	// для WAV кодировку и частоту сервис берёт из заголовка
	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               s.languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	})
	if err != nil {
		return "", fmt.Errorf("google recognize: %w", err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, result.Alternatives[0].Transcript)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}

// Close cleans up the speech client connection.
func (s *GoogleSTT) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
}
