package models

import (
	"encoding/json"
	"time"
)

// Letter categories group document templates into families.
const (
	CategoryUmum         = "umum"
	CategoryKependudukan = "kependudukan"
	CategoryUsaha        = "usaha"
	CategoryNikah        = "nikah"
	CategoryKematian     = "kematian"
)

// LetterStatusSubmitted is the default workflow state for new entries.
const LetterStatusSubmitted = "submitted"

// ApplicantUnknown is stored when a form carries no usable applicant name.
const ApplicantUnknown = "Applicant Unknown"

// MarriageFormCodes lists the marriage-prerequisite form codes, in the
// canonical order a complete packet is presented in.
var MarriageFormCodes = []string{"N1", "N2", "N3", "N5", "N6"}

// LetterEntry is one submitted letter/form instance.
type LetterEntry struct {
	ID             string     `db:"id" json:"id"`
	DocumentTypeID string     `db:"document_type_id" json:"documentTypeId"`
	Category       string     `db:"category" json:"category"`
	Slug           string     `db:"slug" json:"slug"`
	Title          string     `db:"title" json:"title"`
	OfficialNumber *string    `db:"official_number" json:"officialNumber,omitempty"`
	DocumentDate   *time.Time `db:"document_date" json:"documentDate,omitempty"`
	ResidentID     *string    `db:"resident_id" json:"residentId,omitempty"`
	ApplicantName  string     `db:"applicant_name" json:"applicantName"`
	ApplicantNIK   *string    `db:"applicant_nik" json:"applicantNik,omitempty"`
	Status         string     `db:"status" json:"status"`
	BundleKey      *string    `db:"bundle_key" json:"bundleKey,omitempty"`
	// FormData holds the raw submitted payload. json.RawMessage keeps the
	// stored JSONB rendering as an object in API responses.
	FormData  json.RawMessage `db:"form_data" json:"formData"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// LetterFilter constrains letter entry listings.
type LetterFilter struct {
	Category       string
	DocumentTypeID string
	BundleKey      string
	Search         string
	Page           int
	PageSize       int
}
