// Package mock provides test doubles for domain interfaces using function fields.
package mock

import (
	"context"
	"io"
	"sync"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voice_agent/internal/domain"
)

// Interface compliance checks.
var (
	_ domain.Transcriber = (*Transcriber)(nil)
	_ domain.Completer   = (*Completer)(nil)
	_ domain.Synthesizer = (*Synthesizer)(nil)
	_ domain.Notifier    = (*Notifier)(nil)
	_ domain.Logger      = (*Logger)(nil)
)

// Transcriber delegates to TranscribeFn.
type Transcriber struct {
	TranscribeFn func(ctx context.Context, audio io.Reader) (string, error)
}

func (t *Transcriber) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	return t.TranscribeFn(ctx, audio)
}

// Completer delegates to CompleteFn.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteFn(ctx, prompt)
}

// Synthesizer delegates to SpeakFn.
type Synthesizer struct {
	SpeakFn func(ctx context.Context, text string) (string, bool)
}

func (s *Synthesizer) Speak(ctx context.Context, text string) (string, bool) {
	return s.SpeakFn(ctx, text)
}

// Notifier records every call. NotifyFn is optional.
type Notifier struct {
	NotifyFn func(ctx context.Context, source string, err error, details string) error

	mu      sync.Mutex
	sources []string
}

func (n *Notifier) Notify(ctx context.Context, source string, err error, details string) error {
	n.mu.Lock()
	n.sources = append(n.sources, source)
	n.mu.Unlock()
	if n.NotifyFn == nil {
		return nil
	}
	return n.NotifyFn(ctx, source, err, details)
}

// Sources returns the sources passed to Notify, in call order.
func (n *Notifier) Sources() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.sources...)
}

// Logger keeps every entry in memory.
type Logger struct {
	mu      sync.Mutex
	entries []logger.LogEntry
}

func (l *Logger) Log(entry logger.LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of the logged entries.
func (l *Logger) Entries() []logger.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logger.LogEntry(nil), l.entries...)
}
