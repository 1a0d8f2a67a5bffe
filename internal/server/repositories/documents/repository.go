// Package documents persists the upload records attached to onboarding
// drafts. The rows track the object's current storage key and whether the
// bytes were relocated when the draft completed.
package documents

import (
	"context"

	"github.com/provcred/credportal/internal/server/models"
)

type Repository interface {
	// Create inserts a new upload record and returns it.
	Create(ctx context.Context, doc *models.UploadedDocument) (*models.UploadedDocument, error)

	// ListByDraftID returns all upload records of a draft in insertion order.
	ListByDraftID(ctx context.Context, draftID int64) ([]*models.UploadedDocument, error)

	// SetRelocationResult records the outcome of a relocation attempt.
	// On success storageKey is the permanent key; on failure the key is
	// left unchanged.
	SetRelocationResult(ctx context.Context, id int64, status models.RelocationStatus, storageKey string) error
}
