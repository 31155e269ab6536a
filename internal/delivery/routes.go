package delivery

import (
	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, h *VoiceHandler) {
	// --- страница с рекордером ---
	r.With(httputil.RecoverMiddleware).
		Get("/", Index)

	// --- голос ---
	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		pr.Post("/llm/query", h.Query)
		pr.Post("/agent/chat/{session_id}", h.Chat)
	})
}
