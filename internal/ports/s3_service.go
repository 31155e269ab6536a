package ports

import (
	"context"
	"io"
)

// AudioStorage складывает синтезированную речь в бакет и отдаёт публичную ссылку.
type AudioStorage interface {
	ObjectKey(ext string) string
	SaveAudio(ctx context.Context, r io.Reader, size int64, ext, contentType string) (string, error)
}
