package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gravitational/trace"
	"github.com/rs/zerolog/log"

	"hostvault/internal/auth"
	"hostvault/internal/domain"
	"hostvault/internal/service"
)

type ShareHandler struct {
	shareService *service.ShareService
}

func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

type createHostShareRequest struct {
	HostID     string `json:"host_id" validate:"required,uuid"`
	SharedWith string `json:"shared_with" validate:"required"`
	// Accepted for forward compatibility; only "read" exists today.
	AccessLevel string `json:"access_level" validate:"omitempty"`
}

type createFolderShareRequest struct {
	Folder      string `json:"folder"`
	OwnerID     string `json:"owner_id" validate:"required"`
	SharedWith  string `json:"shared_with" validate:"required"`
	AccessLevel string `json:"access_level" validate:"omitempty"`
}

func shareIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, trace.BadParameter("invalid share id: %v", err)
	}
	return id, nil
}

func (h *ShareHandler) CreateHostShare(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createHostShareRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	hostID, err := uuid.Parse(req.HostID)
	if err != nil {
		writeError(w, trace.BadParameter("invalid host id: %v", err))
		return
	}

	share, err := h.shareService.CreateHostShare(
		r.Context(),
		userID,
		hostID,
		req.SharedWith,
		domain.AccessLevel(req.AccessLevel),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Info().
		Str("share", share.ID.String()).
		Str("host", hostID.String()).
		Str("shared_with", req.SharedWith).
		Str("created_by", userID).
		Msg("host share created")
	writeJSON(w, http.StatusCreated, share)
}

func (h *ShareHandler) CreateFolderShare(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createFolderShareRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	share, err := h.shareService.CreateFolderShare(
		r.Context(),
		userID,
		req.Folder,
		req.OwnerID,
		req.SharedWith,
		domain.AccessLevel(req.AccessLevel),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Info().
		Str("share", share.ID.String()).
		Str("folder", req.Folder).
		Str("owner", req.OwnerID).
		Str("shared_with", req.SharedWith).
		Str("created_by", userID).
		Msg("folder share created")
	writeJSON(w, http.StatusCreated, share)
}

func (h *ShareHandler) ListHostShares(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	hostID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, trace.BadParameter("invalid host id: %v", err))
		return
	}

	shares, err := h.shareService.ListHostShares(r.Context(), userID, hostID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, shares)
}

func (h *ShareHandler) ListFolderShares(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, trace.BadParameter("owner_id is required"))
		return
	}
	folder := r.URL.Query().Get("folder")

	shares, err := h.shareService.ListFolderShares(r.Context(), userID, ownerID, folder)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, shares)
}

// GetMyShares returns the shares naming the caller as recipient.
func (h *ShareHandler) GetMyShares(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	shares, err := h.shareService.ListSharedWithUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, shares)
}

func (h *ShareHandler) RevokeHostShare(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	shareID, err := shareIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.shareService.RevokeHostShare(r.Context(), userID, shareID); err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("share", shareID.String()).Str("revoked_by", userID).Msg("host share revoked")
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShareHandler) RevokeFolderShare(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	shareID, err := shareIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.shareService.RevokeFolderShare(r.Context(), userID, shareID); err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("share", shareID.String()).Str("revoked_by", userID).Msg("folder share revoked")
	w.WriteHeader(http.StatusNoContent)
}
