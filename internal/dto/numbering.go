package dto

// ReserveNumberRequest asks the ledger for the next official letter number.
// ManualSequence overrides the auto-assigned running number when present.
type ReserveNumberRequest struct {
	DocumentTypeID string `json:"documentTypeId" binding:"required"`
	ManualSequence *int   `json:"manualSequence,omitempty"`
}

// ReservedNumber is the result of a successful reservation.
type ReservedNumber struct {
	ID             string `json:"id"`
	Number         string `json:"number"`
	Prefix         string `json:"prefix"`
	SequenceNumber int    `json:"sequenceNumber"`
	Month          string `json:"month"`
	Year           int    `json:"year"`
	DocumentDate   string `json:"documentDate"`
}

// ConfirmNumberResponse acknowledges a confirm/cancel operation.
type ConfirmNumberResponse struct {
	Success bool `json:"success"`
}
