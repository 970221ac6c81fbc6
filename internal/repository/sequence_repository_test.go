package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidesa-dev/sidesa-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSequenceRepositoryMaxSequence(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSequenceRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(sequence_number), 0) FROM letter_sequences")).
		WithArgs("145", 2025).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7))

	max, err := repo.MaxSequence(context.Background(), "145", 2025)
	require.NoError(t, err)
	assert.Equal(t, 7, max)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepositoryCreateDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSequenceRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO letter_sequences")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	seq := &models.LetterSequence{
		Prefix:         "145",
		SequenceNumber: 8,
		Month:          "03",
		Year:           2025,
		DocumentTypeID: "umum",
	}
	require.NoError(t, repo.Create(context.Background(), seq))
	assert.NotEmpty(t, seq.ID)
	assert.Equal(t, models.SequenceStatusReserved, seq.Status)
	assert.False(t, seq.ReservedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepositoryConfirmTransitions(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSequenceRepository(db)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE letter_sequences SET status = 'confirmed'")).
		WithArgs(now, "seq-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Confirm(context.Background(), "seq-1", now))

	// A second confirm matches zero rows: already finalized.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE letter_sequences SET status = 'confirmed'")).
		WithArgs(now, "seq-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Confirm(context.Background(), "seq-1", now)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepositoryCancelOnlyReserved(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSequenceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM letter_sequences WHERE id = $1 AND status = 'reserved'")).
		WithArgs("seq-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Cancel(context.Background(), "seq-1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM letter_sequences WHERE id = $1 AND status = 'reserved'")).
		WithArgs("seq-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Cancel(context.Background(), "seq-2")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSequenceRepository(db)
	rows := sqlmock.NewRows([]string{"id", "prefix", "sequence_number", "month", "year", "document_type_id", "status", "reserved_at", "confirmed_at"}).
		AddRow("seq-1", "472", 3, "02", 2025, "N1", "reserved", time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, prefix, sequence_number, month, year")).
		WithArgs("472", 2025, "reserved").
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), models.SequenceFilter{
		Prefix: "472",
		Year:   2025,
		Status: models.SequenceStatusReserved,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "seq-1", list[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23505"}
	assert.True(t, IsUniqueViolation(pqErr))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create letter sequence: %w", pqErr)))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
	assert.False(t, IsUniqueViolation(nil))
}
