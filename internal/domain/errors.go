package domain

import (
	"errors"
	"fmt"
)

// TranscriptionError - распознавание речи не удалось (сеть, провайдер, временный файл).
type TranscriptionError struct {
	Provider string
	Err      error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription (%s): %v", e.Provider, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// CompletionError - LLM не вернул ответ.
type CompletionError struct {
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion (%s): %v", e.Provider, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// UnexpectedError - всё, что не относится к конкретной стадии: сторадж сессий, паника.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected failure: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// ErrNoSpeech - провайдер ответил, но текста нет. Отдельное состояние, а не сбой провайдера.
var ErrNoSpeech = errors.New("no speech understood")
