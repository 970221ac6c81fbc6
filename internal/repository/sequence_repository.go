package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sidesa-dev/sidesa-api/internal/models"
)

// SequenceRepository persists the official letter numbering ledger.
type SequenceRepository struct {
	db *sqlx.DB
}

// NewSequenceRepository constructs the repository.
func NewSequenceRepository(db *sqlx.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// MaxSequence returns the highest sequence number issued for a prefix within
// a year, across every status. Zero means no number has been issued yet.
func (r *SequenceRepository) MaxSequence(ctx context.Context, prefix string, year int) (int, error) {
	const query = `SELECT COALESCE(MAX(sequence_number), 0) FROM letter_sequences WHERE prefix = $1 AND year = $2`
	var max int
	if err := r.db.GetContext(ctx, &max, query, prefix, year); err != nil {
		return 0, fmt.Errorf("max sequence: %w", err)
	}
	return max, nil
}

// SequenceExists reports whether a (prefix, sequence, year) triple is already
// taken, regardless of status.
func (r *SequenceRepository) SequenceExists(ctx context.Context, prefix string, sequence, year int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM letter_sequences WHERE prefix = $1 AND sequence_number = $2 AND year = $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, prefix, sequence, year); err != nil {
		return false, fmt.Errorf("check sequence exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new ledger row. The unique constraint on
// (prefix, sequence_number, year) is the authoritative duplicate guard; use
// IsUniqueViolation on the returned error to detect a lost race.
func (r *SequenceRepository) Create(ctx context.Context, seq *models.LetterSequence) error {
	if seq.ID == "" {
		seq.ID = uuid.NewString()
	}
	if seq.Status == "" {
		seq.Status = models.SequenceStatusReserved
	}
	if seq.ReservedAt.IsZero() {
		seq.ReservedAt = time.Now().UTC()
	}
	const query = `INSERT INTO letter_sequences
	(id, prefix, sequence_number, month, year, document_type_id, status, reserved_at, confirmed_at)
	VALUES (:id, :prefix, :sequence_number, :month, :year, :document_type_id, :status, :reserved_at, :confirmed_at)`
	if _, err := r.db.NamedExecContext(ctx, query, seq); err != nil {
		return fmt.Errorf("create letter sequence: %w", err)
	}
	return nil
}

// Confirm transitions exactly one reserved row to confirmed. A row that is
// missing, already confirmed, or cancelled yields sql.ErrNoRows.
func (r *SequenceRepository) Confirm(ctx context.Context, id string, confirmedAt time.Time) error {
	query := fmt.Sprintf(`UPDATE letter_sequences SET status = '%s', confirmed_at = $1 WHERE id = $2 AND status = '%s'`,
		models.SequenceStatusConfirmed,
		models.SequenceStatusReserved,
	)
	result, err := r.db.ExecContext(ctx, query, confirmedAt, id)
	if err != nil {
		return fmt.Errorf("confirm letter sequence: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check confirm rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Cancel removes exactly one reserved row. Confirmed rows are immutable and
// never deleted here.
func (r *SequenceRepository) Cancel(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM letter_sequences WHERE id = $1 AND status = '%s'`, models.SequenceStatusReserved)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("cancel letter sequence: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check cancel rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns ledger rows matching the filter (newest reservations first).
func (r *SequenceRepository) List(ctx context.Context, filter models.SequenceFilter) ([]models.LetterSequence, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 3)
	builder.WriteString(`SELECT id, prefix, sequence_number, month, year, document_type_id, status, reserved_at, confirmed_at
	FROM letter_sequences`)

	conditions := make([]string, 0, 3)
	if filter.Prefix != "" {
		args = append(args, filter.Prefix)
		conditions = append(conditions, fmt.Sprintf("prefix = $%d", len(args)))
	}
	if filter.Year > 0 {
		args = append(args, filter.Year)
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY reserved_at DESC")

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	var sequences []models.LetterSequence
	if err := r.db.SelectContext(ctx, &sequences, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list letter sequences: %w", err)
	}
	return sequences, nil
}

// CountByStatus returns how many ledger rows are in the given status.
func (r *SequenceRepository) CountByStatus(ctx context.Context, status models.SequenceStatus) (int, error) {
	const query = `SELECT COUNT(*) FROM letter_sequences WHERE status = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, status); err != nil {
		return 0, fmt.Errorf("count sequences by status: %w", err)
	}
	return count, nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (class 23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
