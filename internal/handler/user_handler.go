package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gravitational/trace"
	"github.com/rs/zerolog/log"

	"hostvault/internal/auth"
	"hostvault/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	requesterID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.userService.Create(r.Context(), requesterID, req.ID, req.Name, req.IsAdmin)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("user", user.ID).Bool("is_admin", user.IsAdmin).Msg("user created")
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	requesterID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	users, err := h.userService.List(r.Context(), requesterID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// DeleteUser removes a user together with every share naming them.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	requesterID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, trace.BadParameter("user id is required"))
		return
	}

	if err := h.userService.Delete(r.Context(), requesterID, userID); err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("user", userID).Str("deleted_by", requesterID).Msg("user deleted")
	w.WriteHeader(http.StatusNoContent)
}
