package delivery_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vovarama1992/voice_agent/internal/delivery"
	"github.com/Vovarama1992/voice_agent/internal/domain"
	"github.com/Vovarama1992/voice_agent/internal/mock"
	"github.com/Vovarama1992/voice_agent/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type server struct {
	handler http.Handler
	stt     *mock.Transcriber
	llm     *mock.Completer
	tts     *mock.Synthesizer
}

func newServer(t *testing.T) *server {
	t.Helper()
	s := &server{
		stt: &mock.Transcriber{TranscribeFn: func(ctx context.Context, audio io.Reader) (string, error) {
			b, err := io.ReadAll(audio)
			return string(b), err
		}},
		llm: &mock.Completer{CompleteFn: func(ctx context.Context, prompt string) (string, error) {
			return "reply to " + prompt, nil
		}},
		tts: &mock.Synthesizer{SpeakFn: func(ctx context.Context, text string) (string, bool) {
			return "https://cdn.example/voice.mp3", true
		}},
	}

	log := &mock.Logger{}
	pipeline := domain.NewPipeline(s.stt, s.llm, s.tts, session.NewMemoryStore(), session.NewLocker(), &mock.Notifier{}, log)

	r := chi.NewRouter()
	r.Use(delivery.RequestLogger(zap.NewNop()))
	delivery.RegisterRoutes(r, delivery.NewVoiceHandler(pipeline, log, 1<<20))
	s.handler = r
	return s
}

func multipartBody(t *testing.T, field, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, "recording.wav")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no audio here"))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (s *server) post(t *testing.T, path, field, content string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	body, ct := multipartBody(t, field, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", ct)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestQuery_MissingAudio(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	for _, path := range []string{"/llm/query", "/agent/chat/abc"} {
		rec, out := s.post(t, path, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, map[string]any{"error": "No audio file uploaded"}, out, path)
	}
}

func TestQuery_NotMultipart(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/llm/query", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No audio file uploaded"}`, rec.Body.String())
}

func TestQuery_TooLarge(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	rec, out := s.post(t, "/llm/query", "audio", strings.Repeat("a", 2<<20))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, map[string]any{"error": "Audio file too large"}, out)
}

func TestQuery_Success(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	rec, out := s.post(t, "/llm/query", "audio", "hello there")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(delivery.RequestIDHeader))
	assert.Equal(t, map[string]any{
		"transcription": "hello there",
		"llm_response":  "reply to hello there",
		"audio_url":     "https://cdn.example/voice.mp3",
	}, out)
}

func TestQuery_TranscriptionFailure(t *testing.T) {
	t.Parallel()
	s := newServer(t)
	s.stt.TranscribeFn = func(ctx context.Context, _ io.Reader) (string, error) {
		return "", &domain.TranscriptionError{Provider: "assemblyai", Err: errors.New("401")}
	}

	rec, out := s.post(t, "/llm/query", "audio", "x")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, out["transcription"])
	assert.Equal(t, domain.MsgTroubleHearing, out["llm_response"])
	assert.NotContains(t, out, "history")
}

func TestQuery_CompletionFailure(t *testing.T) {
	t.Parallel()
	s := newServer(t)
	s.llm.CompleteFn = func(ctx context.Context, prompt string) (string, error) {
		return "", &domain.CompletionError{Provider: "gemini", Err: errors.New("503")}
	}

	rec, out := s.post(t, "/llm/query", "audio", "x")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.MsgTroubleThinking, out["llm_response"])
}

func TestQuery_SynthesisFailure(t *testing.T) {
	t.Parallel()
	s := newServer(t)
	s.tts.SpeakFn = func(ctx context.Context, text string) (string, bool) { return "", false }

	rec, out := s.post(t, "/llm/query", "audio", "hi")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, out, "audio_url")
	assert.Nil(t, out["audio_url"])
	assert.Equal(t, "reply to hi", out["llm_response"])
}

func TestChat_HistoryGrowsByTwo(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	_, first := s.post(t, "/agent/chat/s1", "audio", "hi")
	assert.Len(t, first["history"], 2)

	rec, second := s.post(t, "/agent/chat/s1", "audio", "bye")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reply to user: hi\nassistant: reply to user: hi\nuser: bye", second["llm_response"])
	assert.Equal(t, []any{
		map[string]any{"role": "user", "text": "hi"},
		map[string]any{"role": "assistant", "text": "reply to user: hi"},
		map[string]any{"role": "user", "text": "bye"},
		map[string]any{"role": "assistant", "text": "reply to user: hi\nassistant: reply to user: hi\nuser: bye"},
	}, second["history"])

	_, other := s.post(t, "/agent/chat/s2", "audio", "hey")
	assert.Len(t, other["history"], 2)
}

func TestChat_FallbackCarriesHistory(t *testing.T) {
	t.Parallel()
	s := newServer(t)
	s.stt.TranscribeFn = func(ctx context.Context, _ io.Reader) (string, error) { return "", nil }

	rec, out := s.post(t, "/agent/chat/new", "audio", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, out["transcription"])
	assert.Equal(t, domain.MsgTroubleHearing, out["llm_response"])
	assert.Equal(t, []any{}, out["history"])
}

func TestIndex(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/agent/chat/")
}
