package models

import "time"

// OnboardingDraft is the single in-progress onboarding record of a user.
// At most one incomplete draft exists per user; the storage layer enforces
// this with a partial unique index. A completed draft is immutable.
type OnboardingDraft struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"userId"`
	StepData    OnboardingStepData `json:"stepData"`
	CurrentStep OnboardingStep     `json:"currentStep"`
	IsCompleted bool               `json:"isCompleted"`
	ProviderID  string             `json:"providerId,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
