package domain

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Vovarama1992/voice_agent/internal/ports"
	"github.com/google/uuid"
)

type s3Service struct {
	client ports.S3Client
	now    func() time.Time
}

func NewS3Service(client ports.S3Client) ports.AudioStorage {
	return &s3Service{client: client, now: time.Now}
}

// ObjectKey - путь в бакете: tts/2006-01-02/<uuid>.<ext>
func (s *s3Service) ObjectKey(ext string) string {
	date := s.now().Format("2006-01-02")
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("tts/%s/%s.%s", date, uuid.NewString(), ext)
}

func (s *s3Service) SaveAudio(ctx context.Context, r io.Reader, size int64, ext, contentType string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("s3 client not configured")
	}
	key := s.ObjectKey(ext)
	return s.client.PutObject(ctx, key, r, size, contentType)
}
