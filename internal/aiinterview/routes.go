package aiinterview

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mockinterview-lambda/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Post("/sessions/{id}/questions", h.GenerateQuestions)
	r.Post("/sessions/{id}/feedback", h.GenerateFeedback)
	r.Get("/sessions/{id}/feedback", h.GetFeedback)
	r.Post("/sessions/{id}/follow-up", h.GenerateFollowUp)
	return r
}
