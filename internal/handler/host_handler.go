package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gravitational/trace"
	"github.com/rs/zerolog/log"

	"hostvault/internal/auth"
	"hostvault/internal/service"
)

type HostHandler struct {
	hostService   *service.HostService
	accessService *service.AccessService
}

type hostRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Folder  string `json:"folder"`
}

func NewHostHandler(hostService *service.HostService, accessService *service.AccessService) *HostHandler {
	return &HostHandler{
		hostService:   hostService,
		accessService: accessService,
	}
}

func hostIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, trace.BadParameter("invalid host id: %v", err)
	}
	return id, nil
}

// ListHosts returns every host the caller may read, owned and shared alike,
// each tagged with its provenance.
func (h *HostHandler) ListHosts(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	hosts, err := h.accessService.ResolveAccessible(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to resolve accessible hosts")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, hosts)
}

func (h *HostHandler) GetHost(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	hostID, err := hostIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	host, err := h.accessService.ResolveHostAccess(r.Context(), userID, hostID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, host)
}

func (h *HostHandler) CreateHost(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req hostRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	host, err := h.hostService.Create(r.Context(), userID, req.Name, req.Address, req.Folder)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("host", host.ID.String()).Str("owner", userID).Msg("host created")
	writeJSON(w, http.StatusCreated, host)
}

func (h *HostHandler) UpdateHost(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	hostID, err := hostIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req hostRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	host, err := h.hostService.Update(r.Context(), userID, hostID, req.Name, req.Address, req.Folder)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, host)
}

func (h *HostHandler) DeleteHost(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		writeError(w, err)
		return
	}

	hostID, err := hostIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.hostService.Delete(r.Context(), userID, hostID); err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("host", hostID.String()).Str("user", userID).Msg("host deleted")
	w.WriteHeader(http.StatusNoContent)
}
