package documents

import (
	"context"
	"fmt"

	"github.com/provcred/credportal/internal/common"
	"github.com/provcred/credportal/internal/dbx"
	"github.com/provcred/credportal/internal/server/models"
)

const documentColumns = "id, onboarding_draft_id, document_type, original_filename, stored_filename, storage_key, relocation_status, file_size, mime_type, step_name, created_at"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, doc *models.UploadedDocument) (*models.UploadedDocument, error) {
	query :=
		`INSERT INTO uploaded_documents
		 (onboarding_draft_id, document_type, original_filename, stored_filename, storage_key, file_size, mime_type, step_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING ` + documentColumns

	created := &models.UploadedDocument{}
	err := r.db.QueryRowContext(ctx, query,
		doc.OnboardingDraftID, doc.DocumentType, doc.OriginalFilename, doc.StoredFilename,
		doc.StorageKey, doc.FileSize, doc.MimeType, doc.StepName).
		Scan(&created.ID, &created.OnboardingDraftID, &created.DocumentType, &created.OriginalFilename,
			&created.StoredFilename, &created.StorageKey, &created.RelocationStatus, &created.FileSize,
			&created.MimeType, &created.StepName, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) ListByDraftID(ctx context.Context, draftID int64) ([]*models.UploadedDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM uploaded_documents
		 WHERE onboarding_draft_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, draftID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.UploadedDocument
	for rows.Next() {
		doc := &models.UploadedDocument{}
		err := rows.Scan(&doc.ID, &doc.OnboardingDraftID, &doc.DocumentType, &doc.OriginalFilename,
			&doc.StoredFilename, &doc.StorageKey, &doc.RelocationStatus, &doc.FileSize,
			&doc.MimeType, &doc.StepName, &doc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) SetRelocationResult(ctx context.Context, id int64, status models.RelocationStatus, storageKey string) error {
	query :=
		`UPDATE uploaded_documents
		 SET relocation_status = $2, storage_key = COALESCE(NULLIF($3, ''), storage_key)
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, status, storageKey)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
