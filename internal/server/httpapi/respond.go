package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/provcred/credportal/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
	}
	h.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func (h *handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error(r.Context(), "response encoding failed", "path", r.URL.Path, "error", err.Error())
	}
}
