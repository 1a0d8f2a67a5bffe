package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/provcred/credportal/internal/common"
	"github.com/provcred/credportal/internal/server/models"
	"github.com/provcred/credportal/internal/server/services"
)

func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	data, ok := authDataFrom(r.Context())
	if !ok {
		h.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	user, err := h.users.Me(r.Context(), data.SubjectID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, user)
}

type syncUserRequest struct {
	Email     string          `json:"email"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Role      models.UserRole `json:"role"`
}

func (h *handlers) syncUser(w http.ResponseWriter, r *http.Request) {
	data, ok := authDataFrom(r.Context())
	if !ok {
		h.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	var req syncUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrorValidation))
		return
	}

	user, err := h.users.Sync(r.Context(), services.SyncParams{
		SubjectID: data.SubjectID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, user)
}

type listUsersResponse struct {
	Users []*models.User `json:"users"`
}

func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	data, ok := authDataFrom(r.Context())
	if !ok {
		h.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	users, err := h.users.List(r.Context(), data.Role)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	h.writeJSON(w, r, http.StatusOK, listUsersResponse{Users: users})
}

func (h *handlers) dbCheck(w http.ResponseWriter, r *http.Request) {
	result, err := h.users.DBCheck(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, result)
}
