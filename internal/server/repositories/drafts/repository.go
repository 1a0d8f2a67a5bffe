// Package drafts persists onboarding drafts. Step data is stored as a
// JSONB blob and replaced wholesale on every save.
package drafts

import (
	"context"

	"github.com/provcred/credportal/internal/server/models"
)

type Repository interface {
	// GetActiveByUserID returns the most recently created incomplete
	// draft for the user, or common.ErrorNotFound.
	GetActiveByUserID(ctx context.Context, userID int64) (*models.OnboardingDraft, error)

	// Create inserts a new incomplete draft. The partial unique index on
	// (user_id) WHERE NOT is_completed makes a second concurrent create
	// fail instead of violating the single-active-draft invariant.
	Create(ctx context.Context, userID int64, stepData models.OnboardingStepData, currentStep models.OnboardingStep) (*models.OnboardingDraft, error)

	// Update replaces the draft's step data and current step.
	Update(ctx context.Context, id int64, stepData models.OnboardingStepData, currentStep models.OnboardingStep) (*models.OnboardingDraft, error)

	// Complete stores the final step data, forces the final step, sets
	// the completed flag and assigns the provider id.
	Complete(ctx context.Context, id int64, stepData models.OnboardingStepData, providerID string) (*models.OnboardingDraft, error)
}
