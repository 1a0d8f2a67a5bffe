package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/provcred/credportal/internal/common"
	"github.com/provcred/credportal/internal/dbx"
	"github.com/provcred/credportal/internal/logging"
	"github.com/provcred/credportal/internal/server/models"
	"github.com/provcred/credportal/internal/server/notify"
	"github.com/provcred/credportal/internal/server/repositories/repomanager"
	"github.com/provcred/credportal/internal/server/requireddocs"
	"github.com/provcred/credportal/internal/server/storage"
)

const defaultMimeType = "application/octet-stream"

type OnboardingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     storage.ObjectStorage
	notifier    notify.CompletionNotifier
	logger      logging.Logger
}

func NewOnboardingService(db *sql.DB, repomanager repomanager.RepositoryManager,
	store storage.ObjectStorage, notifier notify.CompletionNotifier, logger logging.Logger) *OnboardingService {
	return &OnboardingService{
		db:          db,
		repomanager: repomanager,
		storage:     store,
		notifier:    notifier,
		logger:      logger,
	}
}

// newProviderID mints the identifier a completed onboarding is filed
// under. 128 random bits make a collision check unnecessary; the unique
// index on provider_id is the backstop.
func newProviderID() (string, error) {
	suffix, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}
	return "PROV_" + suffix, nil
}

// GetDraft returns the caller's active draft, or nil when none exists.
func (s *OnboardingService) GetDraft(ctx context.Context, userID int64) (*models.OnboardingDraft, error) {
	draft, err := s.repomanager.Drafts(s.db).GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading draft: %v", err)
	}
	return draft, nil
}

// SaveDraft upserts the caller's active draft: the step data is replaced
// wholesale and the current step updated; a new draft is created when no
// incomplete one exists. The check and the write run in one transaction
// so two concurrent saves cannot produce two incomplete drafts.
func (s *OnboardingService) SaveDraft(ctx context.Context, userID int64,
	stepData models.OnboardingStepData, currentStep models.OnboardingStep) (*models.OnboardingDraft, error) {

	if !currentStep.IsValid() {
		return nil, fmt.Errorf("%w: unknown step %q", common.ErrorValidation, currentStep)
	}

	var saved *models.OnboardingDraft

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		draftRepo := s.repomanager.Drafts(tx)

		existing, err := draftRepo.GetActiveByUserID(ctx, userID)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		if existing != nil {
			saved, err = draftRepo.Update(ctx, existing.ID, stepData, currentStep)
		} else {
			saved, err = draftRepo.Create(ctx, userID, stepData, currentStep)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error saving draft: %v", err)
	}

	return saved, nil
}

// Complete finalizes the caller's active draft: it stores the final step
// data, forces the last step, assigns a fresh provider id and marks the
// draft completed. Afterwards every uploaded document is moved from
// temporary storage into the provider's folder; a failed move is recorded
// and skipped, never undoing the completion. Finally the completion
// notifier is told, also best effort.
func (s *OnboardingService) Complete(ctx context.Context, userID int64, email string,
	finalStepData models.OnboardingStepData) (*models.OnboardingDraft, error) {

	draftRepo := s.repomanager.Drafts(s.db)

	draft, err := draftRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: no active onboarding draft found", common.ErrorNotFound)
		}
		return nil, fmt.Errorf("error loading draft: %v", err)
	}

	providerID, err := newProviderID()
	if err != nil {
		return nil, common.ErrorInternal
	}

	completed, err := draftRepo.Complete(ctx, draft.ID, finalStepData, providerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// lost a race with another completion
			return nil, fmt.Errorf("%w: no active onboarding draft found", common.ErrorNotFound)
		}
		return nil, fmt.Errorf("error completing draft: %v", err)
	}

	s.relocateDocuments(ctx, completed.ID, providerID)

	event := notify.CompletionEvent{
		ProviderID: providerID,
		DraftID:    completed.ID,
		UserID:     userID,
		Email:      email,
	}
	if err := s.notifier.OnboardingCompleted(ctx, event); err != nil {
		s.logger.Warn(ctx, "completion notification failed", "provider_id", providerID, "error", err.Error())
	}

	return completed, nil
}

// relocateDocuments moves every uploaded document of the draft into the
// provider folder, one at a time. Each failure is logged, recorded on the
// row and skipped.
func (s *OnboardingService) relocateDocuments(ctx context.Context, draftID int64, providerID string) {
	docRepo := s.repomanager.Documents(s.db)

	docs, err := docRepo.ListByDraftID(ctx, draftID)
	if err != nil {
		s.logger.Error(ctx, "listing documents for relocation failed", "draft_id", draftID, "error", err.Error())
		return
	}

	for _, doc := range docs {
		permanentKey := storage.ClientKey(providerID, doc.OriginalFilename)

		if err := s.moveObject(ctx, doc.StorageKey, permanentKey, doc.MimeType); err != nil {
			s.logger.Error(ctx, "failed to move file", "stored_filename", doc.StoredFilename, "error", err.Error())
			if err := docRepo.SetRelocationResult(ctx, doc.ID, models.RelocationFailed, ""); err != nil {
				s.logger.Error(ctx, "failed to record relocation failure", "document_id", doc.ID, "error", err.Error())
			}
			continue
		}

		if err := docRepo.SetRelocationResult(ctx, doc.ID, models.RelocationMoved, permanentKey); err != nil {
			s.logger.Error(ctx, "failed to record relocation", "document_id", doc.ID, "error", err.Error())
		}
	}
}

func (s *OnboardingService) moveObject(ctx context.Context, fromKey, toKey, contentType string) error {
	data, err := s.storage.Download(ctx, fromKey)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", fromKey, err)
	}

	if err := s.storage.Upload(ctx, toKey, contentType, data); err != nil {
		return fmt.Errorf("uploading %s: %w", toKey, err)
	}

	if err := s.storage.Remove(ctx, fromKey); err != nil {
		return fmt.Errorf("removing %s: %w", fromKey, err)
	}

	return nil
}

// Upload stores a document against the caller's active draft: the bytes
// go to temporary object storage under a collision-resistant name and a
// record row is inserted. Size and MIME type are not validated here.
func (s *OnboardingService) Upload(ctx context.Context, userID int64,
	documentType, stepName, filename string, data []byte) (*models.UploadedDocument, error) {

	draft, err := s.repomanager.Drafts(s.db).GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: no active onboarding draft found", common.ErrorNotFound)
		}
		return nil, fmt.Errorf("error loading draft: %v", err)
	}

	storedFilename := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.New(), filepath.Ext(filename))
	key := storage.TempKey(storedFilename)

	if err := s.storage.Upload(ctx, key, defaultMimeType, data); err != nil {
		return nil, fmt.Errorf("error storing file: %v", err)
	}

	record, err := s.repomanager.Documents(s.db).Create(ctx, &models.UploadedDocument{
		OnboardingDraftID: draft.ID,
		DocumentType:      documentType,
		OriginalFilename:  filename,
		StoredFilename:    storedFilename,
		StorageKey:        key,
		FileSize:          int64(len(data)),
		MimeType:          defaultMimeType,
		StepName:          stepName,
	})
	if err != nil {
		return nil, fmt.Errorf("error recording document upload: %v", err)
	}

	return record, nil
}

// RequiredDocuments derives the document list from the caller's active
// draft. It fails with NotFound when no draft is in progress.
func (s *OnboardingService) RequiredDocuments(ctx context.Context, userID int64) ([]requireddocs.Document, error) {
	draft, err := s.repomanager.Drafts(s.db).GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: no active onboarding draft found", common.ErrorNotFound)
		}
		return nil, fmt.Errorf("error loading draft: %v", err)
	}

	return requireddocs.Derive(draft.StepData), nil
}
