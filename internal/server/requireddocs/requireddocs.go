// Package requireddocs computes which documents a provider must supply
// before their onboarding can complete. The derivation is a pure function
// of the accumulated step answers: identical input always yields an
// identical ordered list, and nothing is ever deduplicated or removed by
// the deriver itself — unchecking an answer simply drops the entry from
// the next computed list.
package requireddocs

import (
	"fmt"

	"github.com/provcred/credportal/internal/server/models"
)

// Document is one entry in the derived required-document list.
type Document struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Derive returns the ordered document list for the given step answers.
//
// The base five documents always come first, then per-license entries in
// license order, then the specialty, practice-type and payer conditionals
// in that fixed order.
func Derive(stepData models.OnboardingStepData) []Document {
	docs := []Document{
		{
			Type:        "resume",
			Name:        "Resume",
			Description: "Current professional resume",
			Required:    true,
		},
		{
			Type:        "w9",
			Name:        "W-9 Form",
			Description: "Completed and signed W-9 form",
			Required:    true,
		},
		{
			Type:        "malpractice-insurance",
			Name:        "Malpractice Insurance",
			Description: "Current malpractice insurance certificate",
			Required:    true,
		},
		{
			Type:        "board-certification",
			Name:        "Board Certification",
			Description: "Copy of your board certification, if applicable",
			Required:    false,
		},
		{
			Type:        "accreditation",
			Name:        "Accreditation (e.g., DME, CLIA)",
			Description: "Accreditation documents, if applicable",
			Required:    false,
		},
	}

	// One entry per license; the index keeps two licenses in the same
	// state distinct.
	if stepData.Licenses != nil {
		for i, license := range stepData.Licenses.Licenses {
			docs = append(docs, Document{
				Type:        fmt.Sprintf("license-%s-%d", license.State, i),
				Name:        fmt.Sprintf("%s Medical License", license.State),
				Description: fmt.Sprintf("Copy of medical license for %s", license.State),
				Required:    true,
			})
		}
	}

	if stepData.Specialty != nil && stepData.Specialty.Type == "behavioral" {
		docs = append(docs, Document{
			Type:        "dea-certificate",
			Name:        "DEA Certificate",
			Description: "Drug Enforcement Administration certificate",
			Required:    false,
		})
	}

	if stepData.PracticeType != nil && stepData.PracticeType.Type == "facility" {
		docs = append(docs, Document{
			Type:        "facility-license",
			Name:        "Facility License",
			Description: "Healthcare facility operating license",
			Required:    true,
		})
	}

	if stepData.Payers != nil && (stepData.Payers.Medicare || stepData.Payers.Medicaid) {
		docs = append(docs, Document{
			Type:        "bank-document",
			Name:        "Voided Check or Bank Letter",
			Description: "Required for Medicare/Medicaid direct deposit",
			Required:    true,
		})
	}

	return docs
}
