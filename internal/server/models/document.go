package models

import "time"

// RelocationStatus tracks what happened to a document's bytes when its
// draft completed.
type RelocationStatus string

const (
	// RelocationPending: the object is still under the temporary prefix.
	RelocationPending RelocationStatus = "pending"
	// RelocationMoved: the object now lives under the provider folder.
	RelocationMoved RelocationStatus = "moved"
	// RelocationFailed: the move was attempted at completion and failed;
	// the record keeps its temporary key for reconciliation.
	RelocationFailed RelocationStatus = "failed"
)

// UploadedDocument is a file uploaded against an onboarding draft.
// StorageKey always names the object's current location: a temp/ key
// until the draft completes, then the permanent provider-folder key once
// the move succeeds.
type UploadedDocument struct {
	ID                int64            `json:"id"`
	OnboardingDraftID int64            `json:"onboardingDraftId"`
	DocumentType      string           `json:"documentType"`
	OriginalFilename  string           `json:"originalFilename"`
	StoredFilename    string           `json:"storedFilename"`
	StorageKey        string           `json:"storageKey"`
	RelocationStatus  RelocationStatus `json:"relocationStatus"`
	FileSize          int64            `json:"fileSize"`
	MimeType          string           `json:"mimeType"`
	StepName          string           `json:"stepName"`
	CreatedAt         time.Time        `json:"createdAt"`
}
