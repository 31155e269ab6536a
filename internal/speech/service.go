package speech

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voice_agent/internal/domain"
	"github.com/dustin/go-humanize"
)

// === Единый сервис (и для стт и для ттс) ===

type Service struct {
	stt     STTClient
	sttName string
	tts     TTSClient
	log     domain.Logger
	tmpDir  string
}

type ServiceOption func(*Service)

// WithTempDir - куда складывать временные файлы загрузок. По умолчанию os.TempDir().
func WithTempDir(dir string) ServiceOption {
	return func(s *Service) { s.tmpDir = dir }
}

func NewService(stt STTClient, sttName string, tts TTSClient, log domain.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		stt:     stt,
		sttName: sttName,
		tts:     tts,
		log:     log,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var (
	_ domain.Transcriber = (*Service)(nil)
	_ domain.Synthesizer = (*Service)(nil)
)

// Transcribe сохраняет загрузку во временный .wav и отдаёт путь провайдеру.
// Файл удаляется на любом выходе.
func (s *Service) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	f, err := os.CreateTemp(s.tmpDir, "upload-*.wav")
	if err != nil {
		return "", s.sttError(fmt.Errorf("create temp file: %w", err))
	}
	path := f.Name()
	defer os.Remove(path)

	n, err := io.Copy(f, audio)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", s.sttError(fmt.Errorf("save upload: %w", err))
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[stt] %s: sending %s to %s", path, humanize.Bytes(uint64(n)), s.sttName),
		Service: domain.ServiceName,
	})

	text, err := s.stt.Transcribe(ctx, path)
	if err != nil {
		return "", s.sttError(err)
	}
	return text, nil
}

// Speak никогда не возвращает ошибку: сбой синтеза - это просто отсутствие ссылки.
func (s *Service) Speak(ctx context.Context, text string) (string, bool) {
	url, err := s.tts.Synthesize(ctx, text)
	if err != nil {
		s.log.Log(logger.LogEntry{Level: "error", Message: "[tts] synth fail", Service: domain.ServiceName, Error: err})
		return "", false
	}
	if url == "" {
		return "", false
	}
	return url, true
}

func (s *Service) sttError(err error) error {
	return &domain.TranscriptionError{Provider: s.sttName, Err: err}
}
