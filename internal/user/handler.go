package user

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/mockinterview-lambda/internal/auth"
	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.service.Resolve(r.Context(), claims.UserID)
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	config.JSON(w, http.StatusOK, u)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), claims.UserID, dto)
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	config.JSON(w, http.StatusOK, u)
}
