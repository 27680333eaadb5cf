package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gravitational/trace"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError translates error kinds to status codes. The kinds are policy
// decisions, not transient failures: nothing here is retried.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case trace.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case trace.IsAlreadyExists(err):
		http.Error(w, err.Error(), http.StatusConflict)
	case trace.IsAccessDenied(err):
		http.Error(w, err.Error(), http.StatusForbidden)
	case trace.IsBadParameter(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error().Err(err).Msg("internal error")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func decodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return trace.BadParameter("invalid request body: %v", err)
	}
	if err := validate.Struct(v); err != nil {
		return trace.BadParameter("invalid request: %v", err)
	}
	return nil
}
