// Package notify carries onboarding side effects out of the core service:
// after a draft completes, the external workflow engine is told about it
// through a CompletionNotifier port. Delivery is best effort; the caller
// logs failures and never rolls back a completion over them.
package notify

import (
	"context"
)

// CompletionEvent describes one finished onboarding.
type CompletionEvent struct {
	ProviderID string `json:"providerId"`
	DraftID    int64  `json:"draftId"`
	UserID     int64  `json:"userId"`
	Email      string `json:"email"`
}

// CompletionNotifier is invoked once per completed onboarding, after the
// draft row is persisted.
type CompletionNotifier interface {
	OnboardingCompleted(ctx context.Context, event CompletionEvent) error
}

// NopNotifier discards events. Used when no webhook URL is configured.
type NopNotifier struct{}

func (NopNotifier) OnboardingCompleted(ctx context.Context, event CompletionEvent) error {
	return nil
}
