package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidesa-dev/sidesa-api/internal/models"
)

var residentRows = []string{"id", "nik", "full_name", "gender", "birth_place", "birth_date", "religion",
	"marital_status", "occupation", "address", "rt", "rw", "created_at", "updated_at"}

func TestResidentRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewResidentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO residents")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	resident := &models.Resident{
		NIK:      "3201010101010001",
		FullName: "Budi Santoso",
		Gender:   "L",
	}
	require.NoError(t, repo.Create(context.Background(), resident))
	assert.NotEmpty(t, resident.ID)

	rows := sqlmock.NewRows(residentRows).
		AddRow(resident.ID, "3201010101010001", "Budi Santoso", "L", "", nil, "", "", "", "", "", "", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nik, full_name")).
		WithArgs(resident.ID).
		WillReturnRows(rows)

	found, err := repo.GetByID(context.Background(), resident.ID)
	require.NoError(t, err)
	assert.Equal(t, resident.NIK, found.NIK)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepositoryListSearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewResidentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM residents")).
		WithArgs("%siti%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	rows := sqlmock.NewRows(residentRows).
		AddRow("res-1", "3201010101010002", "Siti Rahma", "P", "", nil, "", "", "", "", "002", "001", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY full_name ASC")).
		WithArgs("%siti%").
		WillReturnRows(rows)

	residents, total, err := repo.List(context.Background(), models.ResidentFilter{Search: "siti"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, residents, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewResidentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM residents WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
