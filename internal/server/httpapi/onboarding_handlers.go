package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/provcred/credportal/internal/common"
	"github.com/provcred/credportal/internal/server/models"
	"github.com/provcred/credportal/internal/server/requireddocs"
)

type draftResponse struct {
	Draft *models.OnboardingDraft `json:"draft"`
}

func (h *handlers) getDraft(w http.ResponseWriter, r *http.Request) {
	data, ok := authDataFrom(r.Context())
	if !ok {
		h.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	draft, err := h.onboarding.GetDraft(r.Context(), data.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, draftResponse{Draft: draft})
}

type saveDraftRequest struct {
	StepData    models.OnboardingStepData `json:"stepData"`
	CurrentStep models.OnboardingStep     `json:"currentStep"`
}

func (h *handlers) saveDraft(w http.ResponseWriter, r *http.Request) {
	data, ok := authDataFrom(r.Context())
	if !ok {
		h.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	var req saveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrorValidation))
		return
	}

	draft, err := h.onboarding.SaveDraft(r.Context(), data.UserID, req.StepData, req.CurrentStep)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, draft)
}

type completeRequest struct {
	FinalStepData models.OnboardingStepData `json:"finalStepData"`
}

func (h *handlers) complete(w http.ResponseWriter, r *http.Request) {
	data, ok := authDataFrom(r.Context())
	if !ok {
		h.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrorValidation))
		return
	}

	draft, err := h.onboarding.Complete(r.Context(), data.UserID, data.Email, req.FinalStepData)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, draft)
}

type uploadRequest struct {
	DocumentType string `json:"documentType"`
	StepName     string `json:"stepName"`
	Filename     string `json:"filename"`
	FileData     string `json:"fileData"`
}

func (h *handlers) upload(w http.ResponseWriter, r *http.Request) {
	data, ok := authDataFrom(r.Context())
	if !ok {
		h.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrorValidation))
		return
	}
	if req.Filename == "" {
		h.writeError(w, r, fmt.Errorf("%w: filename is required", common.ErrorValidation))
		return
	}

	fileBytes, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: file data is not valid base64", common.ErrorValidation))
		return
	}

	doc, err := h.onboarding.Upload(r.Context(), data.UserID, req.DocumentType, req.StepName, req.Filename, fileBytes)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, doc)
}

type requiredDocumentsResponse struct {
	Documents []requireddocs.Document `json:"documents"`
}

func (h *handlers) requiredDocuments(w http.ResponseWriter, r *http.Request) {
	data, ok := authDataFrom(r.Context())
	if !ok {
		h.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	docs, err := h.onboarding.RequiredDocuments(r.Context(), data.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, requiredDocumentsResponse{Documents: docs})
}
