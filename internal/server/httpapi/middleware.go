package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/provcred/credportal/internal/common"
	"github.com/provcred/credportal/internal/server/auth"
	"github.com/provcred/credportal/internal/server/models"
)

// AuthData is the caller identity the gate exposes to handlers for the
// duration of one request.
type AuthData struct {
	UserID    int64
	SubjectID string
	Email     string
	Role      models.UserRole
	FirstName string
	LastName  string
}

type ctxKey int

const authDataKey ctxKey = iota

func authDataFrom(ctx context.Context) (*AuthData, bool) {
	data, ok := ctx.Value(authDataKey).(*AuthData)
	return data, ok
}

// requireUser verifies the bearer token and resolves its subject to an
// active user row. Anything short of both yields 401.
func (h *handlers) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			h.writeError(w, r, common.ErrorUnauthorized)
			return
		}

		identity, err := auth.VerifyToken(token, h.secretKey)
		if err != nil {
			h.writeError(w, r, common.ErrInvalidToken)
			return
		}

		user, err := h.lookup.GetActiveBySubjectID(r.Context(), identity.SubjectID)
		if err != nil {
			h.writeError(w, r, common.ErrorUnauthorized)
			return
		}

		email := identity.Email
		if email == "" {
			email = user.Email
		}

		data := &AuthData{
			UserID:    user.ID,
			SubjectID: user.SubjectID,
			Email:     email,
			Role:      user.Role,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authDataKey, data)))
	})
}
