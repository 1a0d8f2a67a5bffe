// Package services implements the application operations on top of the
// repositories: user directory sync and lookups, and the onboarding draft
// lifecycle with document storage.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/provcred/credportal/internal/common"
	"github.com/provcred/credportal/internal/server/models"
	"github.com/provcred/credportal/internal/server/repositories/repomanager"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, repomanager repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: repomanager}
}

// SyncParams carries the identity-provider profile of the caller. Role is
// only honored when the user does not exist yet.
type SyncParams struct {
	SubjectID string
	Email     string
	FirstName string
	LastName  string
	Role      models.UserRole
}

// Me returns the caller's own user row. A missing row should not happen
// behind the auth gate and surfaces as an opaque failure.
func (s *UserService) Me(ctx context.Context, subjectID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}
	return user, nil
}

// Sync upserts the caller's user row from identity-provider data. The
// operation is idempotent: repeated calls with identical input yield the
// same row. On update, omitted names fall back to the stored values and
// the email is lower-cased; on insert, the role defaults to client.
func (s *UserService) Sync(ctx context.Context, params SyncParams) (*models.User, error) {
	if params.Email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	}

	userRepo := s.repomanager.Users(s.db)
	email := strings.ToLower(params.Email)

	existing, err := userRepo.GetBySubjectID(ctx, params.SubjectID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	if existing != nil {
		firstName := params.FirstName
		if firstName == "" {
			firstName = existing.FirstName
		}
		lastName := params.LastName
		if lastName == "" {
			lastName = existing.LastName
		}

		updated, err := userRepo.UpdateProfile(ctx, params.SubjectID, email, firstName, lastName)
		if err != nil {
			return nil, fmt.Errorf("error updating user: %v", err)
		}
		return updated, nil
	}

	role := params.Role
	if role == "" {
		role = models.RoleClient
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}

	created, err := userRepo.Create(ctx, &models.User{
		SubjectID: params.SubjectID,
		Email:     email,
		Role:      role,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return created, nil
}

// List returns every user, newest first. Only admins may call it.
func (s *UserService) List(ctx context.Context, callerRole models.UserRole) ([]*models.User, error) {
	if callerRole != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins can list users", common.ErrorPermissionDenied)
	}

	result, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %v", err)
	}

	return result, nil
}

// DBCheckResult is the diagnostic snapshot returned by DBCheck.
type DBCheckResult struct {
	Tables     []string `json:"tables"`
	UsersCount *int64   `json:"usersCount,omitempty"`
}

// DBCheck lists the public base tables and, when the users table exists,
// includes the user count.
func (s *UserService) DBCheck(ctx context.Context) (*DBCheckResult, error) {
	query :=
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		 ORDER BY table_name
		 `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: db check failed: %v", common.ErrorInternal, err)
	}
	defer rows.Close()

	result := &DBCheckResult{Tables: []string{}}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: db check failed: %v", common.ErrorInternal, err)
		}
		result.Tables = append(result.Tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: db check failed: %v", common.ErrorInternal, err)
	}

	for _, name := range result.Tables {
		if name == "users" {
			count, err := s.repomanager.Users(s.db).Count(ctx)
			if err != nil {
				return nil, fmt.Errorf("%w: db check failed: %v", common.ErrorInternal, err)
			}
			result.UsersCount = &count
			break
		}
	}

	return result, nil
}
