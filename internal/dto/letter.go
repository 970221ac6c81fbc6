package dto

// SaveLetterRequest carries one submitted form instance.
type SaveLetterRequest struct {
	Slug           string                 `json:"slug" binding:"required"`
	Title          string                 `json:"title" binding:"required"`
	DocumentTypeID string                 `json:"documentTypeId,omitempty"`
	Data           map[string]interface{} `json:"data" binding:"required"`
}

// LetterQuery filters the letter register listing.
type LetterQuery struct {
	Category       string `form:"category"`
	DocumentTypeID string `form:"documentTypeId"`
	BundleKey      string `form:"bundleKey"`
	Search         string `form:"search"`
	Page           int    `form:"page"`
	Limit          int    `form:"limit"`
}
