package domain

import (
	"context"
	"io"

	"github.com/Vovarama1992/go-utils/logger"
)

// === Клиенты провайдеров ===

type Transcriber interface {
	// Transcribe возвращает текст; пустая строка - речь не распознана, это не ошибка.
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Synthesizer interface {
	// Speak никогда не падает: ok=false значит, что аудио нет.
	Speak(ctx context.Context, text string) (audioURL string, ok bool)
}

// === История ===

type TranscriptStore interface {
	Transcript(ctx context.Context, sessionID string) ([]Turn, error)
	Append(ctx context.Context, sessionID string, turns ...Turn) error
}

// SessionLocker сериализует запросы одной сессии.
type SessionLocker interface {
	Lock(sessionID string) (unlock func())
}

// === Инфраструктура ===

type Notifier interface {
	Notify(ctx context.Context, source string, err error, details string) error
}

type Logger interface {
	Log(entry logger.LogEntry)
}
