package dto

import (
	"time"

	"github.com/sidesa-dev/sidesa-api/internal/models"
)

// BundleSummary reports the state of one marriage-form packet.
type BundleSummary struct {
	BundleKey     string               `json:"bundleKey"`
	ApplicantName string               `json:"applicantName"`
	ApplicantNIK  *string              `json:"applicantNik,omitempty"`
	LastUpdated   time.Time            `json:"lastUpdated"`
	Completed     bool                 `json:"completed"`
	Missing       []string             `json:"missing"`
	Forms         []models.LetterEntry `json:"forms"`
}

// BundleDetail wraps the distinct entries of a single bundle.
type BundleDetail struct {
	BundleKey string               `json:"bundleKey"`
	Entries   []models.LetterEntry `json:"entries"`
}
