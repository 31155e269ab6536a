package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
)

const ServiceName = "voice_agent"

// Фиксированные ответы, которые озвучиваются вместо результата упавшей стадии.
const (
	MsgTroubleHearing  = "I'm having trouble hearing you right now."
	MsgTroubleThinking = "I'm having trouble thinking right now."
	MsgSomethingWrong  = "Something went wrong. Please try again."
)

// Reply - результат одного запроса. Nil-поля уходят в JSON как null.
type Reply struct {
	Transcription *string
	Text          string
	AudioURL      *string
	History       []Turn
}

type Pipeline struct {
	stt      Transcriber
	llm      Completer
	tts      Synthesizer
	store    TranscriptStore
	locks    SessionLocker
	notifier Notifier
	log      Logger
}

func NewPipeline(
	stt Transcriber,
	llm Completer,
	tts Synthesizer,
	store TranscriptStore,
	locks SessionLocker,
	notifier Notifier,
	log Logger,
) *Pipeline {
	return &Pipeline{
		stt:      stt,
		llm:      llm,
		tts:      tts,
		store:    store,
		locks:    locks,
		notifier: notifier,
		log:      log,
	}
}

// === /llm/query ===

// Query: распознать → спросить LLM → озвучить. Без истории.
func (p *Pipeline) Query(ctx context.Context, audio io.Reader) (reply Reply) {
	defer p.recoverInto(ctx, &reply, false)

	userText, err := p.hear(ctx, audio)
	if err != nil {
		return p.fallback(ctx, err)
	}

	answer, err := p.think(ctx, userText)
	if err != nil {
		return p.fallback(ctx, err)
	}

	return p.respond(ctx, userText, answer)
}

// === /agent/chat/{session_id} ===

// Chat: то же, что Query, но с историей сессии. История дописывается до синтеза,
// так что сбой синтеза не теряет реплики.
func (p *Pipeline) Chat(ctx context.Context, sessionID string, audio io.Reader) (reply Reply) {
	defer p.recoverInto(ctx, &reply, true)

	userText, err := p.hear(ctx, audio)
	if err != nil {
		reply = p.fallback(ctx, err)
		reply.History = p.currentHistory(ctx, sessionID)
		return reply
	}

	history, answer, err := p.converse(ctx, sessionID, userText)
	if err != nil {
		reply = p.fallback(ctx, err)
		reply.History = nonNil(history)
		return reply
	}

	reply = p.respond(ctx, userText, answer)
	reply.History = history
	return reply
}

// converse держит лок сессии от чтения истории до записи новой пары реплик.
// Возвращает историю: при успехе - уже с новой парой.
func (p *Pipeline) converse(ctx context.Context, sessionID, userText string) ([]Turn, string, error) {
	unlock := p.locks.Lock(sessionID)
	defer unlock()

	history, err := p.store.Transcript(ctx, sessionID)
	if err != nil {
		return nil, "", &UnexpectedError{Err: fmt.Errorf("read transcript %q: %w", sessionID, err)}
	}
	p.info(fmt.Sprintf("[chat] session=%s history entries: %d", sessionID, len(history)))

	answer, err := p.think(ctx, BuildPrompt(history, userText))
	if err != nil {
		return history, "", err
	}

	turns := []Turn{UserTurn(userText), AssistantTurn(answer)}
	if err := p.store.Append(ctx, sessionID, turns...); err != nil {
		return history, "", &UnexpectedError{Err: fmt.Errorf("append transcript %q: %w", sessionID, err)}
	}

	return append(history, turns...), answer, nil
}

// === стадии ===

func (p *Pipeline) hear(ctx context.Context, audio io.Reader) (string, error) {
	text, err := p.stt.Transcribe(ctx, audio)
	if err != nil {
		var te *TranscriptionError
		if !errors.As(err, &te) {
			err = &TranscriptionError{Provider: "unknown", Err: err}
		}
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoSpeech
	}
	p.info(fmt.Sprintf("[stt] transcribed: %q", text))
	return text, nil
}

func (p *Pipeline) think(ctx context.Context, prompt string) (string, error) {
	answer, err := p.llm.Complete(ctx, prompt)
	if err != nil {
		var ce *CompletionError
		if !errors.As(err, &ce) {
			err = &CompletionError{Provider: "unknown", Err: err}
		}
		return "", err
	}
	p.info(fmt.Sprintf("[llm] reply: %q", answer))
	return answer, nil
}

func (p *Pipeline) respond(ctx context.Context, userText, answer string) Reply {
	reply := Reply{
		Transcription: &userText,
		Text:          answer,
	}
	if url, ok := p.tts.Speak(ctx, answer); ok {
		reply.AudioURL = &url
	} else {
		p.log.Log(logger.LogEntry{Level: "warn", Message: "[tts] no audio, returning text only", Service: ServiceName})
	}
	return reply
}

// === фолбэк ===

// FallbackMessage - единственное место, где ошибка стадии превращается в фразу для пользователя.
func FallbackMessage(err error) string {
	var (
		te *TranscriptionError
		ce *CompletionError
	)
	switch {
	case errors.Is(err, ErrNoSpeech), errors.As(err, &te):
		return MsgTroubleHearing
	case errors.As(err, &ce):
		return MsgTroubleThinking
	default:
		return MsgSomethingWrong
	}
}

func (p *Pipeline) fallback(ctx context.Context, err error) Reply {
	msg := FallbackMessage(err)
	p.log.Log(logger.LogEntry{Level: "warn", Message: "[fallback] " + msg, Service: ServiceName, Error: err})

	if !errors.Is(err, ErrNoSpeech) {
		if nerr := p.notifier.Notify(ctx, stageOf(err), err, msg); nerr != nil {
			p.log.Log(logger.LogEntry{Level: "error", Message: "[notify] failed", Service: ServiceName, Error: nerr})
		}
	}

	reply := Reply{Text: msg}
	if url, ok := p.tts.Speak(ctx, msg); ok {
		reply.AudioURL = &url
	}
	return reply
}

func (p *Pipeline) recoverInto(ctx context.Context, reply *Reply, withHistory bool) {
	r := recover()
	if r == nil {
		return
	}
	*reply = p.fallback(ctx, &UnexpectedError{Err: fmt.Errorf("panic: %v", r)})
	if withHistory {
		reply.History = []Turn{}
	}
}

func (p *Pipeline) currentHistory(ctx context.Context, sessionID string) []Turn {
	history, err := p.store.Transcript(ctx, sessionID)
	if err != nil {
		p.log.Log(logger.LogEntry{Level: "error", Message: "[chat] read transcript", Service: ServiceName, Error: err})
	}
	return nonNil(history)
}

func (p *Pipeline) info(msg string) {
	p.log.Log(logger.LogEntry{Level: "info", Message: msg, Service: ServiceName})
}

func stageOf(err error) string {
	var (
		te *TranscriptionError
		ce *CompletionError
	)
	switch {
	case errors.As(err, &te):
		return "transcription"
	case errors.As(err, &ce):
		return "completion"
	default:
		return "unexpected"
	}
}

func nonNil(turns []Turn) []Turn {
	if turns == nil {
		return []Turn{}
	}
	return turns
}
