package drafts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/provcred/credportal/internal/common"
	"github.com/provcred/credportal/internal/dbx"
	"github.com/provcred/credportal/internal/server/models"
)

const draftColumns = "id, user_id, step_data, current_step, is_completed, provider_id, created_at, updated_at"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanDraft(row *sql.Row) (*models.OnboardingDraft, error) {
	draft := &models.OnboardingDraft{}
	var stepData []byte
	var providerID sql.NullString

	err := row.Scan(&draft.ID, &draft.UserID, &stepData, &draft.CurrentStep,
		&draft.IsCompleted, &providerID, &draft.CreatedAt, &draft.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(stepData, &draft.StepData); err != nil {
		return nil, fmt.Errorf("step data decode error: %w", err)
	}
	draft.ProviderID = providerID.String

	return draft, nil
}

func (r *PostgresRepository) GetActiveByUserID(ctx context.Context, userID int64) (*models.OnboardingDraft, error) {
	query := `SELECT ` + draftColumns + ` FROM onboarding_drafts
		 WHERE user_id = $1 AND is_completed = false
		 ORDER BY created_at DESC
		 LIMIT 1
		 `

	return scanDraft(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) Create(ctx context.Context, userID int64, stepData models.OnboardingStepData, currentStep models.OnboardingStep) (*models.OnboardingDraft, error) {
	encoded, err := json.Marshal(stepData)
	if err != nil {
		return nil, fmt.Errorf("step data encode error: %w", err)
	}

	query :=
		`INSERT INTO onboarding_drafts (user_id, step_data, current_step)
		 VALUES ($1, $2, $3)
		 RETURNING ` + draftColumns

	return scanDraft(r.db.QueryRowContext(ctx, query, userID, encoded, currentStep))
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, stepData models.OnboardingStepData, currentStep models.OnboardingStep) (*models.OnboardingDraft, error) {
	encoded, err := json.Marshal(stepData)
	if err != nil {
		return nil, fmt.Errorf("step data encode error: %w", err)
	}

	query :=
		`UPDATE onboarding_drafts
		 SET step_data = $2, current_step = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING ` + draftColumns

	return scanDraft(r.db.QueryRowContext(ctx, query, id, encoded, currentStep))
}

func (r *PostgresRepository) Complete(ctx context.Context, id int64, stepData models.OnboardingStepData, providerID string) (*models.OnboardingDraft, error) {
	encoded, err := json.Marshal(stepData)
	if err != nil {
		return nil, fmt.Errorf("step data encode error: %w", err)
	}

	query :=
		`UPDATE onboarding_drafts
		 SET step_data = $2, current_step = $3, is_completed = true, provider_id = $4, updated_at = NOW()
		 WHERE id = $1 AND is_completed = false
		 RETURNING ` + draftColumns

	return scanDraft(r.db.QueryRowContext(ctx, query, id, encoded, models.FinalStep, providerID))
}
