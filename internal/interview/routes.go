package interview

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mockinterview-lambda/internal/auth"
)

// Routes mounts the interview endpoints. complete replaces the plain completion handler
// when evaluation must run as part of completing a session.
func Routes(h *Handler, complete http.HandlerFunc) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	if complete == nil {
		complete = h.CompleteSession
	}

	r.Post("/", h.CreateSession)
	r.Get("/", h.ListSessions)
	r.Get("/stats", h.GetStats)
	r.Get("/{id}", h.GetSession)
	r.Delete("/{id}", h.DeleteSession)

	r.Post("/{id}/start", h.StartSession)
	r.Post("/{id}/complete", complete)
	r.Post("/{id}/cancel", h.CancelSession)

	r.Get("/{id}/responses", h.ListResponses)
	r.Post("/{id}/responses", h.SaveResponse)
	r.Patch("/responses/{responseID}", h.UpdateTranscription)
	r.Delete("/responses/{responseID}", h.DeleteResponse)

	r.Get("/{id}/questions/{questionID}/assistant", h.AssistantConfig)
	r.Post("/{id}/questions/{questionID}/voice", h.AnswerByVoice)
	return r
}
