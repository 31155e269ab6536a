package session

import (
	"context"
	"sync"

	"github.com/Vovarama1992/voice_agent/internal/domain"
)

// MemoryStore - история в памяти процесса. Живёт до рестарта, записи не удаляются.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Turn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]domain.Turn)}
}

var _ domain.TranscriptStore = (*MemoryStore)(nil)

// Transcript возвращает копию: вызывающий может дописывать в неё без гонок со стором.
func (s *MemoryStore) Transcript(_ context.Context, sessionID string) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, sessionID string, turns ...domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = append(s.sessions[sessionID], turns...)
	return nil
}
