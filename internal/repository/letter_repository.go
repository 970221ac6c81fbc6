package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sidesa-dev/sidesa-api/internal/models"
)

// LetterRepository persists submitted letter/form entries (the letter
// register).
type LetterRepository struct {
	db *sqlx.DB
}

// NewLetterRepository constructs the repository.
func NewLetterRepository(db *sqlx.DB) *LetterRepository {
	return &LetterRepository{db: db}
}

const letterColumns = `id, document_type_id, category, slug, title, official_number, document_date,
       resident_id, applicant_name, applicant_nik, status, bundle_key, form_data, created_at, updated_at`

// Create inserts a new letter entry.
func (r *LetterRepository) Create(ctx context.Context, entry *models.LetterEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Status == "" {
		entry.Status = models.LetterStatusSubmitted
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	const query = `INSERT INTO letter_entries
	(id, document_type_id, category, slug, title, official_number, document_date, resident_id, applicant_name, applicant_nik, status, bundle_key, form_data, created_at, updated_at)
	VALUES (:id, :document_type_id, :category, :slug, :title, :official_number, :document_date, :resident_id, :applicant_name, :applicant_nik, :status, :bundle_key, :form_data, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create letter entry: %w", err)
	}
	return nil
}

// GetByID fetches one entry.
func (r *LetterRepository) GetByID(ctx context.Context, id string) (*models.LetterEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM letter_entries WHERE id = $1`, letterColumns)
	var entry models.LetterEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindLatestByBundle returns the most recently created entry sharing a bundle
// key and document type, or nil when none exists. The lookup backs the
// update-else-insert reconciliation.
func (r *LetterRepository) FindLatestByBundle(ctx context.Context, bundleKey, documentTypeID string) (*models.LetterEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM letter_entries
	WHERE bundle_key = $1 AND UPPER(document_type_id) = UPPER($2)
	ORDER BY created_at DESC LIMIT 1`, letterColumns)
	var entry models.LetterEntry
	if err := r.db.GetContext(ctx, &entry, query, bundleKey, documentTypeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find letter by bundle: %w", err)
	}
	return &entry, nil
}

// Update replaces the mutable columns of one entry by id. Zero affected rows
// yield sql.ErrNoRows.
func (r *LetterRepository) Update(ctx context.Context, entry *models.LetterEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE letter_entries SET
	slug = :slug, title = :title, document_type_id = :document_type_id, category = :category,
	official_number = :official_number, document_date = :document_date, resident_id = :resident_id,
	applicant_name = :applicant_name, applicant_nik = :applicant_nik, bundle_key = :bundle_key,
	form_data = :form_data, updated_at = :updated_at
	WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("update letter entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check letter update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes one entry (administrative operation).
func (r *LetterRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM letter_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete letter entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check letter delete rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// letterFilterWhere renders the WHERE clause and positional args shared by
// the listing queries.
func letterFilterWhere(filter models.LetterFilter) (string, []interface{}) {
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.DocumentTypeID != "" {
		args = append(args, filter.DocumentTypeID)
		conditions = append(conditions, fmt.Sprintf("UPPER(document_type_id) = UPPER($%d)", len(args)))
	}
	if filter.BundleKey != "" {
		args = append(args, filter.BundleKey)
		conditions = append(conditions, fmt.Sprintf("bundle_key = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(applicant_name ILIKE $%d OR applicant_nik ILIKE $%d)", len(args), len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List returns entries matching the filter, newest first, with a total count
// for pagination.
func (r *LetterRepository) List(ctx context.Context, filter models.LetterFilter) ([]models.LetterEntry, int, error) {
	where, args := letterFilterWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM letter_entries" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count letter entries: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM letter_entries%s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		letterColumns, where, pageSize, (page-1)*pageSize)
	var entries []models.LetterEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list letter entries: %w", err)
	}
	return entries, total, nil
}

// ListAll returns every entry matching the filter, newest first, capped at
// limit rows. List clamps its page size for interactive pagination; bulk
// readers such as the register export go through here instead.
func (r *LetterRepository) ListAll(ctx context.Context, filter models.LetterFilter, limit int) ([]models.LetterEntry, error) {
	if limit <= 0 {
		limit = 5000
	}
	where, args := letterFilterWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM letter_entries%s ORDER BY created_at DESC LIMIT %d`,
		letterColumns, where, limit)
	var entries []models.LetterEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list all letter entries: %w", err)
	}
	return entries, nil
}

// ListBundleCandidates returns every bundled marriage-form entry, newest
// first, for aggregation. Only whitelisted form codes with a bundle key
// participate.
func (r *LetterRepository) ListBundleCandidates(ctx context.Context, category string, codes []string) ([]models.LetterEntry, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	args := make([]interface{}, 0, len(codes)+1)
	args = append(args, category)
	placeholders := make([]string, len(codes))
	for i, code := range codes {
		args = append(args, strings.ToUpper(code))
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}
	query := fmt.Sprintf(`SELECT %s FROM letter_entries
	WHERE category = $1 AND UPPER(document_type_id) IN (%s) AND bundle_key IS NOT NULL
	ORDER BY created_at DESC`, letterColumns, strings.Join(placeholders, ","))

	var entries []models.LetterEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list bundle candidates: %w", err)
	}
	return entries, nil
}

// ListByBundleKey returns every entry of one bundle, newest first.
func (r *LetterRepository) ListByBundleKey(ctx context.Context, category, bundleKey string, codes []string) ([]models.LetterEntry, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	args := make([]interface{}, 0, len(codes)+2)
	args = append(args, category, bundleKey)
	placeholders := make([]string, len(codes))
	for i, code := range codes {
		args = append(args, strings.ToUpper(code))
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}
	query := fmt.Sprintf(`SELECT %s FROM letter_entries
	WHERE category = $1 AND bundle_key = $2 AND UPPER(document_type_id) IN (%s)
	ORDER BY created_at DESC`, letterColumns, strings.Join(placeholders, ","))

	var entries []models.LetterEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list bundle entries: %w", err)
	}
	return entries, nil
}

// CountSince returns how many entries were created at or after the cutoff.
func (r *LetterRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM letter_entries WHERE created_at >= $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, since); err != nil {
		return 0, fmt.Errorf("count letter entries: %w", err)
	}
	return count, nil
}
