package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/postbox/internal/common"
)

type errorEnvelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Status: status, Message: message})
}

// fail renders err with the status its sentinel maps to. Anything that does
// not match a known sentinel is logged and hidden behind a 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *common.ValidationError
	var re *requestError

	switch {
	case errors.As(err, &re):
		writeError(w, re.status, re.message)
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusBadRequest, "username is already in use")
	case errors.Is(err, common.ErrorIntegrity):
		writeError(w, http.StatusBadRequest, "could not save message")
	default:
		h.logger.Error(r.Context(), "request failed", "request_id", requestIDFrom(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
