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

// ResidentRepository persists the village resident register.
type ResidentRepository struct {
	db *sqlx.DB
}

// NewResidentRepository constructs the repository.
func NewResidentRepository(db *sqlx.DB) *ResidentRepository {
	return &ResidentRepository{db: db}
}

const residentColumns = `id, nik, full_name, gender, birth_place, birth_date, religion, marital_status,
       occupation, address, rt, rw, created_at, updated_at`

// Create inserts a new resident.
func (r *ResidentRepository) Create(ctx context.Context, resident *models.Resident) error {
	if resident.ID == "" {
		resident.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	resident.CreatedAt = now
	resident.UpdatedAt = now
	const query = `INSERT INTO residents
	(id, nik, full_name, gender, birth_place, birth_date, religion, marital_status, occupation, address, rt, rw, created_at, updated_at)
	VALUES (:id, :nik, :full_name, :gender, :birth_place, :birth_date, :religion, :marital_status, :occupation, :address, :rt, :rw, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, resident); err != nil {
		return fmt.Errorf("create resident: %w", err)
	}
	return nil
}

// GetByID fetches one resident.
func (r *ResidentRepository) GetByID(ctx context.Context, id string) (*models.Resident, error) {
	query := fmt.Sprintf(`SELECT %s FROM residents WHERE id = $1`, residentColumns)
	var resident models.Resident
	if err := r.db.GetContext(ctx, &resident, query, id); err != nil {
		return nil, err
	}
	return &resident, nil
}

// GetByNIK fetches one resident by national id number.
func (r *ResidentRepository) GetByNIK(ctx context.Context, nik string) (*models.Resident, error) {
	query := fmt.Sprintf(`SELECT %s FROM residents WHERE nik = $1`, residentColumns)
	var resident models.Resident
	if err := r.db.GetContext(ctx, &resident, query, nik); err != nil {
		return nil, err
	}
	return &resident, nil
}

// Update replaces the mutable columns of one resident.
func (r *ResidentRepository) Update(ctx context.Context, resident *models.Resident) error {
	resident.UpdatedAt = time.Now().UTC()
	const query = `UPDATE residents SET
	nik = :nik, full_name = :full_name, gender = :gender, birth_place = :birth_place, birth_date = :birth_date,
	religion = :religion, marital_status = :marital_status, occupation = :occupation,
	address = :address, rt = :rt, rw = :rw, updated_at = :updated_at
	WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, resident)
	if err != nil {
		return fmt.Errorf("update resident: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check resident update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes one resident.
func (r *ResidentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM residents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resident: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check resident delete rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns residents matching the filter, alphabetically, with a total
// count for pagination.
func (r *ResidentRepository) List(ctx context.Context, filter models.ResidentFilter) ([]models.Resident, int, error) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR nik ILIKE $%d)", len(args), len(args)))
	}
	if filter.RT != "" {
		args = append(args, filter.RT)
		conditions = append(conditions, fmt.Sprintf("rt = $%d", len(args)))
	}
	if filter.RW != "" {
		args = append(args, filter.RW)
		conditions = append(conditions, fmt.Sprintf("rw = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM residents"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count residents: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM residents%s ORDER BY full_name ASC LIMIT %d OFFSET %d`,
		residentColumns, where, pageSize, (page-1)*pageSize)
	var residents []models.Resident
	if err := r.db.SelectContext(ctx, &residents, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list residents: %w", err)
	}
	return residents, total, nil
}

// Count returns the number of registered residents.
func (r *ResidentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM residents`); err != nil {
		return 0, fmt.Errorf("count residents: %w", err)
	}
	return count, nil
}
