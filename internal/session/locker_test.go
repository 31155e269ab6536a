package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocker_SerializesSameSession(t *testing.T) {
	t.Parallel()
	l := NewLocker()

	unlock := l.Lock("A")

	acquired := make(chan struct{})
	go func() {
		u := l.Lock("A")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first is held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired")
	}
}

func TestLocker_DifferentSessionsDoNotBlock(t *testing.T) {
	t.Parallel()
	l := NewLocker()

	unlockA := l.Lock("A")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		l.Lock("B")()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on B blocked by A")
	}
}

func TestLocker_ReleasesEntries(t *testing.T) {
	t.Parallel()
	l := NewLocker()

	unlock := l.Lock("A")
	assert.Equal(t, 1, l.size())

	unlock()
	unlock() // повторный вызов безопасен
	assert.Equal(t, 0, l.size())
}
