package aiinterview

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
	"github.com/saulo-duarte/mockinterview-lambda/internal/user"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service    Service
	interviews interview.Service
	users      user.Resolver
}

func NewHandler(s Service, interviews interview.Service, users user.Resolver) *Handler {
	return &Handler{service: s, interviews: interviews, users: users}
}

func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, sessionID, ok := h.resolve(w, r, log)
	if !ok {
		return
	}

	questions, err := h.service.GenerateQuestions(r.Context(), u, sessionID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusCreated, questions)
}

func (h *Handler) GenerateFeedback(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, sessionID, ok := h.resolve(w, r, log)
	if !ok {
		return
	}

	feedback, err := h.service.GenerateFeedback(r.Context(), u, sessionID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusCreated, feedback)
}

func (h *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, sessionID, ok := h.resolve(w, r, log)
	if !ok {
		return
	}

	feedback, err := h.service.GetFeedback(r.Context(), u, sessionID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, feedback)
}

func (h *Handler) GenerateFollowUp(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, sessionID, ok := h.resolve(w, r, log)
	if !ok {
		return
	}

	var req FollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.service.GenerateFollowUp(r.Context(), u, sessionID, req.PreviousAnswer)
	if err != nil {
		writeError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, FollowUpResponse{Question: question})
}

// CompleteAndEvaluate completes the session and then asks for its feedback. A feedback
// failure does not undo the completion; the client can retry the feedback endpoint.
func (h *Handler) CompleteAndEvaluate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, sessionID, ok := h.resolve(w, r, log)
	if !ok {
		return
	}

	session, err := h.interviews.CompleteSession(r.Context(), u.ID, sessionID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	resp := CompleteResponse{Session: session}
	feedback, err := h.service.GenerateFeedback(r.Context(), u, sessionID)
	if err != nil {
		log.WithError(err).Warn("Session completed without feedback")
		_, resp.Error = errorStatus(err)
	} else {
		resp.Feedback = feedback
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, log *logrus.Entry) (*user.User, uuid.UUID, bool) {
	u, err := user.Current(r.Context(), h.users)
	if err != nil {
		if errors.Is(err, user.ErrUnauthorized) {
			log.Warn("User not authenticated")
			config.Error(w, http.StatusUnauthorized, "unauthorized")
		} else {
			log.WithError(err).Error("Failed to resolve user")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return nil, uuid.Nil, false
	}
	return u, sessionID, true
}

// errorStatus turns pipeline failures into a status and a message for the user. Other
// errors are left to the interview mapping and report status 0.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway, "The AI service is unavailable right now. Please try again."
	case errors.Is(err, ErrMalformedResponse), errors.Is(err, ErrInvalidShape):
		return http.StatusBadGateway, "The AI returned an unexpected answer. Please try again."
	case errors.Is(err, ErrPersistence):
		return http.StatusInternalServerError, "Could not save the generated results. Please try again."
	case errors.Is(err, ErrNotCompleted), errors.Is(err, ErrFeedbackExists):
		return http.StatusConflict, err.Error()
	default:
		return 0, err.Error()
	}
}

func writeError(w http.ResponseWriter, log *logrus.Entry, err error) {
	status, msg := errorStatus(err)
	if status == 0 {
		interview.WriteError(w, log, err)
		return
	}
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("AI interview request failed")
	}
	config.Error(w, status, msg)
}
