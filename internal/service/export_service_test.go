package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidesa-dev/sidesa-api/internal/models"
)

type registerStoreStub struct {
	entries  []models.LetterEntry
	err      error
	gotLimit int
}

func (s *registerStoreStub) ListAll(ctx context.Context, filter models.LetterFilter, limit int) ([]models.LetterEntry, error) {
	s.gotLimit = limit
	if limit > 0 && len(s.entries) > limit {
		return s.entries[:limit], s.err
	}
	return s.entries, s.err
}

func TestRegisterCSVExportsBeyondOnePage(t *testing.T) {
	// The register export is not paginated; far more rows than an
	// interactive listing page must come through intact.
	store := &registerStoreStub{}
	for i := 1; i <= 25; i++ {
		number := fmt.Sprintf("145/%04d/03/2025", i)
		store.entries = append(store.entries, models.LetterEntry{
			ID:             fmt.Sprintf("entry-%d", i),
			DocumentTypeID: "umum",
			Category:       models.CategoryUmum,
			Title:          "Surat Keterangan Umum",
			OfficialNumber: &number,
			ApplicantName:  fmt.Sprintf("Warga %d", i),
			Status:         models.LetterStatusSubmitted,
			CreatedAt:      time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		})
	}

	svc := NewExportService(store, nil, 5000)
	payload, err := svc.RegisterCSV(context.Background(), models.LetterFilter{})
	require.NoError(t, err)

	assert.Equal(t, 5000, store.gotLimit)
	lines := strings.Split(strings.TrimRight(string(payload), "\n"), "\n")
	require.Len(t, lines, 26)
	assert.Equal(t, strings.Join(registerHeaders, ","), lines[0])
	assert.Contains(t, lines[25], "145/0025/03/2025")
}

func TestRegisterCSVHonorsRowCap(t *testing.T) {
	store := &registerStoreStub{}
	for i := 1; i <= 10; i++ {
		store.entries = append(store.entries, models.LetterEntry{
			ID:            fmt.Sprintf("entry-%d", i),
			ApplicantName: fmt.Sprintf("Warga %d", i),
		})
	}

	svc := NewExportService(store, nil, 3)
	payload, err := svc.RegisterCSV(context.Background(), models.LetterFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, store.gotLimit)
	lines := strings.Split(strings.TrimRight(string(payload), "\n"), "\n")
	assert.Len(t, lines, 4)
}

func TestRegisterCSVListFailure(t *testing.T) {
	store := &registerStoreStub{err: assert.AnError}
	svc := NewExportService(store, nil, 0)

	_, err := svc.RegisterCSV(context.Background(), models.LetterFilter{})
	require.Error(t, err)
	// A zero cap falls back to the default rather than exporting nothing.
	assert.Equal(t, 5000, store.gotLimit)
}
