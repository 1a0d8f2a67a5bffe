package models

// OnboardingStep names one of the eight stages of the onboarding wizard.
type OnboardingStep string

const (
	StepIdentifyProvider OnboardingStep = "identify-provider"
	StepPracticeType     OnboardingStep = "practice-type"
	StepSpecialty        OnboardingStep = "specialty"
	StepBusinessProfile  OnboardingStep = "business-profile"
	StepLicenses         OnboardingStep = "licenses"
	StepPayers           OnboardingStep = "payers"
	StepRequiredDocs     OnboardingStep = "required-docs"
	StepPortalLogins     OnboardingStep = "portal-logins"
)

// FinalStep is the step a draft is forced to on completion.
const FinalStep = StepPortalLogins

// Steps lists the wizard steps in order.
var Steps = []OnboardingStep{
	StepIdentifyProvider,
	StepPracticeType,
	StepSpecialty,
	StepBusinessProfile,
	StepLicenses,
	StepPayers,
	StepRequiredDocs,
	StepPortalLogins,
}

// IsValid reports whether s is one of the named wizard steps.
func (s OnboardingStep) IsValid() bool {
	for _, step := range Steps {
		if s == step {
			return true
		}
	}
	return false
}

// IdentifyProviderData answers whether the provider is new to the portal
// or references an existing provider record.
type IdentifyProviderData struct {
	Type               string `json:"type"` // "new" or "existing"
	ExistingProviderID string `json:"existingProviderId,omitempty"`
}

// PracticeTypeData holds the practice structure answer.
type PracticeTypeData struct {
	Type string `json:"type"` // "facility" or "group"
}

// SpecialtyData holds the specialty answer.
type SpecialtyData struct {
	Type string `json:"type"` // "primary-care" or "behavioral"
}

// BusinessProfileData is the business identity block collected at the
// business-profile step.
type BusinessProfileData struct {
	BusinessName        string   `json:"businessName"`
	ProviderName        string   `json:"providerName"`
	SSN                 string   `json:"ssn"`
	DateOfBirth         string   `json:"dateOfBirth"`
	PrimaryAddress      string   `json:"primaryAddress"`
	AdditionalLocations []string `json:"additionalLocations"`
	EINNumber           string   `json:"einNumber"`
	NPINumber           string   `json:"npiNumber"`
	GroupNPINumber      string   `json:"groupNpiNumber,omitempty"`
	CountyOfBusiness    string   `json:"countyOfBusiness"`
	BusinessPhoneNumber string   `json:"businessPhoneNumber"`
	BusinessEmail       string   `json:"businessEmail"`
	BusinessFaxNumber   string   `json:"businessFaxNumber,omitempty"`
	CAQH                string   `json:"caqh"`
	HoursOfOperation    string   `json:"hoursOfOperation"`
	BusinessWebsite     string   `json:"businessWebsite,omitempty"`
}

// License is one state medical license entry.
type License struct {
	State          string `json:"state"`
	LicenseNumber  string `json:"licenseNumber"`
	ExpirationDate string `json:"expirationDate"`
}

// LicensesData lists the provider's state licenses in entry order.
type LicensesData struct {
	Licenses []License `json:"licenses"`
}

// UploadedDoc is the wizard-side record of a document the user has
// attached at the required-docs step.
type UploadedDoc struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
	Uploaded bool   `json:"uploaded"`
}

// RequiredDocsData lists the documents attached so far.
type RequiredDocsData struct {
	UploadedDocs []UploadedDoc `json:"uploadedDocs"`
}

// PayersData holds the payer enrollment answers.
type PayersData struct {
	Medicare         bool     `json:"medicare"`
	Medicaid         bool     `json:"medicaid"`
	CommercialPayers []string `json:"commercialPayers"`
}

// PortalLogin is one external payer-portal credential entry. The entry
// cap is enforced by the presentation layer only.
type PortalLogin struct {
	Platform string `json:"platform"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// PortalLoginsData lists portal credential entries.
type PortalLoginsData struct {
	Logins []PortalLogin `json:"logins"`
}

// OnboardingStepData is the accumulated per-step answer record. Blocks
// are additive: a later step can be saved without earlier blocks, and a
// block once set is only ever replaced wholesale, never merged field by
// field.
type OnboardingStepData struct {
	IdentifyProvider *IdentifyProviderData `json:"identifyProvider,omitempty"`
	PracticeType     *PracticeTypeData     `json:"practiceType,omitempty"`
	Specialty        *SpecialtyData        `json:"specialty,omitempty"`
	BusinessProfile  *BusinessProfileData  `json:"businessProfile,omitempty"`
	Licenses         *LicensesData         `json:"licenses,omitempty"`
	RequiredDocs     *RequiredDocsData     `json:"requiredDocs,omitempty"`
	Payers           *PayersData           `json:"payers,omitempty"`
	PortalLogins     *PortalLoginsData     `json:"portalLogins,omitempty"`
}
