package interview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
	"github.com/saulo-duarte/mockinterview-lambda/internal/user"
	"github.com/saulo-duarte/mockinterview-lambda/internal/voice"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
	users   user.Resolver
}

func NewHandler(s Service, users user.Resolver) *Handler {
	return &Handler{service: s, users: users}
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, ok := h.currentUser(w, r, log)
	if !ok {
		return
	}

	var dto CreateSessionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.CreateSession(r.Context(), u.ID, dto)
	if err != nil {
		WriteError(w, log, err)
		return
	}

	config.JSON(w, http.StatusCreated, session)
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, ok := h.currentUser(w, r, log)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid offset")
		return
	}

	sessions, err := h.service.ListSessions(r.Context(), u.ID, limit, offset)
	if err != nil {
		WriteError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, sessions)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, ok := h.currentUser(w, r, log)
	if !ok {
		return
	}

	stats, err := h.service.GetStats(r.Context(), u.ID)
	if err != nil {
		WriteError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, stats)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, ok := h.currentUser(w, r, log)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	session, err := h.service.GetSession(r.Context(), u.ID, id)
	if err != nil {
		WriteError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, session)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, ok := h.currentUser(w, r, log)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSession(r.Context(), u.ID, id); err != nil {
		WriteError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.service.StartSession)
}

func (h *Handler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.service.CompleteSession)
}

func (h *Handler) CancelSession(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.service.CancelSession)
}

type statusChange func(ctx context.Context, userID, id uuid.UUID) (*Session, error)

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request, change statusChange) {
	log := config.WithContext(r.Context())

	u, ok := h.currentUser(w, r, log)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	session, err := change(r.Context(), u.ID, id)
	if err != nil {
		WriteError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, session)
}

func (h *Handler) SaveResponse(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, ok := h.currentUser(w, r, log)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var dto SaveResponseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.SaveResponse(r.Context(), u.ID, sessionID, dto)
	if err != nil {
		WriteError(w, log, err)
		return
	}

	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) ListResponses(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, ok := h.currentUser(w, r, log)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	responses, err := h.service.ListResponses(r.Context(), u.ID, sessionID)
	if err != nil {
		WriteError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, responses)
}

func (h *Handler) UpdateTranscription(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, ok := h.currentUser(w, r, log)
	if !ok {
		return
	}
	responseID, ok := pathID(w, r, "responseID")
	if !ok {
		return
	}

	var dto UpdateTranscriptionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.UpdateTranscription(r.Context(), u.ID, responseID, dto)
	if err != nil {
		WriteError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteResponse(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, ok := h.currentUser(w, r, log)
	if !ok {
		return
	}
	responseID, ok := pathID(w, r, "responseID")
	if !ok {
		return
	}

	if err := h.service.DeleteResponse(r.Context(), u.ID, responseID); err != nil {
		WriteError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AssistantConfig(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, ok := h.currentUser(w, r, log)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	questionID, ok := pathID(w, r, "questionID")
	if !ok {
		return
	}

	cfg, err := h.service.AssistantConfig(r.Context(), u.ID, sessionID, questionID)
	if err != nil {
		WriteError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, cfg)
}

func (h *Handler) AnswerByVoice(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u, ok := h.currentUser(w, r, log)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	questionID, ok := pathID(w, r, "questionID")
	if !ok {
		return
	}

	resp, err := h.service.AnswerByVoice(r.Context(), u.ID, sessionID, questionID)
	if err != nil {
		WriteError(w, log, err)
		return
	}

	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request, log *logrus.Entry) (*user.User, bool) {
	u, err := user.Current(r.Context(), h.users)
	if err != nil {
		if errors.Is(err, user.ErrUnauthorized) {
			log.Warn("User not authenticated")
			config.Error(w, http.StatusUnauthorized, "unauthorized")
			return nil, false
		}
		log.WithError(err).Error("Failed to resolve user")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	return u, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// WriteError maps interview errors to a status code and a message safe to show the user.
func WriteError(w http.ResponseWriter, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrResponseNotFound),
		errors.Is(err, ErrFeedbackNotFound):
		config.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		config.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrSessionClosed),
		errors.Is(err, ErrNoResponses):
		config.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrEmptyTranscript):
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, voice.ErrNotConfigured):
		config.Error(w, http.StatusServiceUnavailable, "voice answers are not available")
	case errors.Is(err, voice.ErrDialFailed), errors.Is(err, voice.ErrCallFailed):
		config.Error(w, http.StatusBadGateway, "voice call failed, please try again")
	default:
		log.WithError(err).Error("Unexpected interview error")
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
