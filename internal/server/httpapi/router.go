// Package httpapi exposes the portal backend over HTTP. Every route sits
// behind the bearer-token gate; request and response bodies are JSON with
// camelCase field names.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/provcred/credportal/internal/logging"
	"github.com/provcred/credportal/internal/server/models"
	"github.com/provcred/credportal/internal/server/requireddocs"
	"github.com/provcred/credportal/internal/server/services"
)

// UserDirectory is the user-facing slice of the user service.
type UserDirectory interface {
	Me(ctx context.Context, subjectID string) (*models.User, error)
	Sync(ctx context.Context, params services.SyncParams) (*models.User, error)
	List(ctx context.Context, callerRole models.UserRole) ([]*models.User, error)
	DBCheck(ctx context.Context) (*services.DBCheckResult, error)
}

// OnboardingFlow is the onboarding slice served over HTTP.
type OnboardingFlow interface {
	GetDraft(ctx context.Context, userID int64) (*models.OnboardingDraft, error)
	SaveDraft(ctx context.Context, userID int64, stepData models.OnboardingStepData, currentStep models.OnboardingStep) (*models.OnboardingDraft, error)
	Complete(ctx context.Context, userID int64, email string, finalStepData models.OnboardingStepData) (*models.OnboardingDraft, error)
	Upload(ctx context.Context, userID int64, documentType, stepName, filename string, data []byte) (*models.UploadedDocument, error)
	RequiredDocuments(ctx context.Context, userID int64) ([]requireddocs.Document, error)
}

// UserLookup resolves a verified token subject to an active user row.
type UserLookup interface {
	GetActiveBySubjectID(ctx context.Context, subjectID string) (*models.User, error)
}

type handlers struct {
	users      UserDirectory
	onboarding OnboardingFlow
	lookup     UserLookup
	secretKey  []byte
	logger     logging.Logger
}

// NewRouter wires the full route table.
func NewRouter(users UserDirectory, onboarding OnboardingFlow, lookup UserLookup,
	secretKey []byte, logger logging.Logger) http.Handler {

	h := &handlers{
		users:      users,
		onboarding: onboarding,
		lookup:     lookup,
		secretKey:  secretKey,
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Group(func(pr chi.Router) {
		pr.Use(h.requireUser)

		pr.Get("/auth/me", h.me)
		pr.Get("/auth/users", h.listUsers)
		pr.Post("/auth/sync-user", h.syncUser)
		pr.Get("/auth/db-check", h.dbCheck)

		pr.Get("/onboarding/draft", h.getDraft)
		pr.Post("/onboarding/draft", h.saveDraft)
		pr.Post("/onboarding/complete", h.complete)
		pr.Post("/onboarding/upload", h.upload)
		pr.Get("/onboarding/required-docs", h.requiredDocuments)
	})

	return r
}
