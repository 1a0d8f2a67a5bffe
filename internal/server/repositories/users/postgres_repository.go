package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/provcred/credportal/internal/common"
	"github.com/provcred/credportal/internal/dbx"
	"github.com/provcred/credportal/internal/server/models"
)

const userColumns = "id, subject_id, email, role, first_name, last_name, is_active, created_at, updated_at"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.SubjectID, &user.Email, &user.Role,
		&user.FirstName, &user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetBySubjectID(ctx context.Context, subjectID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE subject_id = $1
		 `

	return scanUser(r.db.QueryRowContext(ctx, query, subjectID))
}

func (r *PostgresRepository) GetActiveBySubjectID(ctx context.Context, subjectID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE subject_id = $1 AND is_active = true
		 `

	return scanUser(r.db.QueryRowContext(ctx, query, subjectID))
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (subject_id, email, role, first_name, last_name, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING ` + userColumns

	return scanUser(r.db.QueryRowContext(ctx, query,
		user.SubjectID, user.Email, user.Role, user.FirstName, user.LastName, "externally-managed"))
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, subjectID, email, firstName, lastName string) (*models.User, error) {
	query :=
		`UPDATE users
		 SET email = $2, first_name = $3, last_name = $4, updated_at = NOW()
		 WHERE subject_id = $1
		 RETURNING ` + userColumns

	return scanUser(r.db.QueryRowContext(ctx, query, subjectID, email, firstName, lastName))
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(&user.ID, &user.SubjectID, &user.Email, &user.Role,
			&user.FirstName, &user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}
