package delivery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voice_agent/internal/domain"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

const (
	errNoAudio       = "No audio file uploaded"
	errAudioTooLarge = "Audio file too large"
)

type VoicePipeline interface {
	Query(ctx context.Context, audio io.Reader) domain.Reply
	Chat(ctx context.Context, sessionID string, audio io.Reader) domain.Reply
}

type VoiceHandler struct {
	pipeline  VoicePipeline
	log       domain.Logger
	maxUpload int64
}

func NewVoiceHandler(pipeline VoicePipeline, log domain.Logger, maxUpload int64) *VoiceHandler {
	return &VoiceHandler{
		pipeline:  pipeline,
		log:       log,
		maxUpload: maxUpload,
	}
}

type queryResponse struct {
	Transcription *string `json:"transcription"`
	LLMResponse   string  `json:"llm_response"`
	AudioURL      *string `json:"audio_url"`
}

type chatResponse struct {
	queryResponse
	History []domain.Turn `json:"history"`
}

func toQueryResponse(r domain.Reply) queryResponse {
	return queryResponse{
		Transcription: r.Transcription,
		LLMResponse:   r.Text,
		AudioURL:      r.AudioURL,
	}
}

// POST /llm/query
func (h *VoiceHandler) Query(w http.ResponseWriter, r *http.Request) {
	h.log.Log(logger.LogEntry{Level: "info", Message: "[query] receiving audio file", Service: domain.ServiceName})

	file, ok := h.audioFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	reply := h.pipeline.Query(r.Context(), file)
	writeJSON(w, http.StatusOK, toQueryResponse(reply))
}

// POST /agent/chat/{session_id}
func (h *VoiceHandler) Chat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	h.log.Log(logger.LogEntry{Level: "info", Message: "[chat] request for session: " + sessionID, Service: domain.ServiceName})

	file, ok := h.audioFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	reply := h.pipeline.Chat(r.Context(), sessionID, file)

	history := reply.History
	if history == nil {
		history = []domain.Turn{}
	}
	writeJSON(w, http.StatusOK, chatResponse{
		queryResponse: toQueryResponse(reply),
		History:       history,
	})
}

// audioFile достаёт поле "audio" из multipart. Если его нет - 400 и ok=false.
func (h *VoiceHandler) audioFile(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	if r.ContentLength > h.maxUpload {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "upload too large: " + humanize.Bytes(uint64(r.ContentLength)), Service: domain.ServiceName})
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": errAudioTooLarge})
		return nil, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Log(logger.LogEntry{Level: "warn", Message: "upload too large", Service: domain.ServiceName, Error: err})
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": errAudioTooLarge})
			return nil, false
		}
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Service: domain.ServiceName, Error: err})
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errNoAudio})
		return nil, false
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		_ = r.MultipartForm.RemoveAll()
		h.log.Log(logger.LogEntry{Level: "warn", Message: "missing file", Service: domain.ServiceName, Error: err})
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errNoAudio})
		return nil, false
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("audio %q received, %s", header.Filename, humanize.Bytes(uint64(header.Size))),
		Service: domain.ServiceName,
	})
	return &uploadFile{File: file, form: r.MultipartForm}, true
}

// uploadFile при закрытии удаляет и временные файлы multipart-формы.
type uploadFile struct {
	multipart.File
	form *multipart.Form
}

func (f *uploadFile) Close() error {
	err := f.File.Close()
	if rerr := f.form.RemoveAll(); err == nil {
		err = rerr
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
