package models

import "time"

// SequenceStatus captures the lifecycle of an issued letter number.
type SequenceStatus string

const (
	SequenceStatusReserved  SequenceStatus = "reserved"
	SequenceStatusConfirmed SequenceStatus = "confirmed"
)

// LetterSequence is one row of the official letter numbering ledger.
// Uniqueness of (prefix, sequence_number, year) is enforced by the database.
type LetterSequence struct {
	ID             string         `db:"id" json:"id"`
	Prefix         string         `db:"prefix" json:"prefix"`
	SequenceNumber int            `db:"sequence_number" json:"sequenceNumber"`
	Month          string         `db:"month" json:"month"`
	Year           int            `db:"year" json:"year"`
	DocumentTypeID string         `db:"document_type_id" json:"documentTypeId"`
	Status         SequenceStatus `db:"status" json:"status"`
	ReservedAt     time.Time      `db:"reserved_at" json:"reservedAt"`
	ConfirmedAt    *time.Time     `db:"confirmed_at" json:"confirmedAt,omitempty"`
}

// SequenceFilter constrains ledger listing queries.
type SequenceFilter struct {
	Prefix string
	Year   int
	Status SequenceStatus
	Limit  int
	Offset int
}
