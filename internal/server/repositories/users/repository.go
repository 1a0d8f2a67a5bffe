// Package users persists the user directory. Users are keyed externally
// by the identity provider's subject id.
package users

import (
	"context"

	"github.com/provcred/credportal/internal/server/models"
)

type Repository interface {
	// GetBySubjectID returns the user with the given external subject id
	// regardless of the active flag, or common.ErrorNotFound.
	GetBySubjectID(ctx context.Context, subjectID string) (*models.User, error)

	// GetActiveBySubjectID returns the user only when the active flag is
	// set, or common.ErrorNotFound.
	GetActiveBySubjectID(ctx context.Context, subjectID string) (*models.User, error)

	// Create inserts a new user row and returns it.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// UpdateProfile overwrites the mutable profile fields of the user
	// with the given subject id and refreshes updated_at.
	UpdateProfile(ctx context.Context, subjectID, email, firstName, lastName string) (*models.User, error)

	// List returns all users ordered by creation time descending.
	List(ctx context.Context) ([]*models.User, error)

	// Count returns the total number of user rows.
	Count(ctx context.Context) (int64, error)
}
