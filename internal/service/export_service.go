package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sidesa-dev/sidesa-api/internal/models"
	appErrors "github.com/sidesa-dev/sidesa-api/pkg/errors"
	"github.com/sidesa-dev/sidesa-api/pkg/export"
)

var registerHeaders = []string{"nomor_surat", "tanggal", "kategori", "jenis", "judul", "pemohon", "nik", "status", "dibuat"}

type registerStore interface {
	ListAll(ctx context.Context, filter models.LetterFilter, limit int) ([]models.LetterEntry, error)
}

// ExportService renders the letter register (buku agenda surat) as CSV.
type ExportService struct {
	letters registerStore
	csv     *export.CSVExporter
	logger  *zap.Logger
	maxRows int
}

// NewExportService constructs the service.
func NewExportService(letters registerStore, logger *zap.Logger, maxRows int) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRows <= 0 {
		maxRows = 5000
	}
	return &ExportService{letters: letters, csv: export.NewCSVExporter(), logger: logger, maxRows: maxRows}
}

// RegisterCSV renders register entries matching the filter into CSV bytes,
// up to the configured row cap.
func (s *ExportService) RegisterCSV(ctx context.Context, filter models.LetterFilter) ([]byte, error) {
	entries, err := s.letters.ListAll(ctx, filter, s.maxRows)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load register entries")
	}

	rows := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		row := map[string]string{
			"kategori": entry.Category,
			"jenis":    entry.DocumentTypeID,
			"judul":    entry.Title,
			"pemohon":  entry.ApplicantName,
			"status":   entry.Status,
			"dibuat":   entry.CreatedAt.Format(time.RFC3339),
		}
		if entry.OfficialNumber != nil {
			row["nomor_surat"] = *entry.OfficialNumber
		}
		if entry.DocumentDate != nil {
			row["tanggal"] = entry.DocumentDate.Format("2006-01-02")
		}
		if entry.ApplicantNIK != nil {
			row["nik"] = *entry.ApplicantNIK
		}
		rows = append(rows, row)
	}

	payload, err := s.csv.Render(export.Dataset{Headers: registerHeaders, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render register csv")
	}
	return payload, nil
}
