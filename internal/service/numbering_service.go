package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	"github.com/sidesa-dev/sidesa-api/internal/models"
	"github.com/sidesa-dev/sidesa-api/internal/repository"
	appErrors "github.com/sidesa-dev/sidesa-api/pkg/errors"
)

// prefixByDocumentType maps each document type to its archival classification
// code, the leading segment of a formatted letter number. Loaded once, never
// mutated.
var prefixByDocumentType = map[string]string{
	"umum":           "145",
	"domisili":       "470",
	"domisili_usaha": "470",
	"kematian":       "474",

	// Marriage packet forms. N6 covers remarriage after a spouse's death and
	// is filed under the civil-register classification instead.
	"N1": "472",
	"N2": "472",
	"N3": "472",
	"N5": "472",
	"N6": "474",
}

// ResolvePrefix returns the classification prefix for a document type.
// Unknown types are an error, never a default.
func ResolvePrefix(documentTypeID string) (string, error) {
	key := strings.TrimSpace(documentTypeID)
	if prefix, ok := prefixByDocumentType[key]; ok {
		return prefix, nil
	}
	if prefix, ok := prefixByDocumentType[strings.ToUpper(key)]; ok {
		return prefix, nil
	}
	return "", appErrors.Clone(appErrors.ErrInvalidDocumentType, fmt.Sprintf("unknown document type %q", documentTypeID))
}

// FormatNumber renders the human readable letter number as
// prefix/sequence(4 digits)/month(2 digits)/year.
func FormatNumber(prefix string, sequence int, month string, year int) string {
	return fmt.Sprintf("%s/%04d/%s/%d", prefix, sequence, month, year)
}

type sequenceStore interface {
	MaxSequence(ctx context.Context, prefix string, year int) (int, error)
	SequenceExists(ctx context.Context, prefix string, sequence, year int) (bool, error)
	Create(ctx context.Context, seq *models.LetterSequence) error
	Confirm(ctx context.Context, id string, confirmedAt time.Time) error
	Cancel(ctx context.Context, id string) error
	List(ctx context.Context, filter models.SequenceFilter) ([]models.LetterSequence, error)
}

const defaultQueryTimeout = 5 * time.Second

// NumberingService owns the reserve/confirm/cancel lifecycle of official
// letter numbers. Every ledger query runs under queryTimeout so a stalled
// database cannot hold a reservation request open indefinitely.
type NumberingService struct {
	repo         sequenceStore
	logger       *zap.Logger
	queryTimeout time.Duration
	now          func() time.Time
}

// NewNumberingService constructs the service. A non-positive queryTimeout
// falls back to the default.
func NewNumberingService(repo sequenceStore, logger *zap.Logger, queryTimeout time.Duration) *NumberingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &NumberingService{repo: repo, logger: logger, queryTimeout: queryTimeout, now: time.Now}
}

// Reserve allocates the next sequence number for a document type, or validates
// and claims a manually supplied one. The row is created in reserved state;
// Confirm finalizes it at print time and Cancel discards it.
//
// The duplicate pre-check only buys a friendlier error: the ledger's unique
// constraint on (prefix, sequence_number, year) is the authoritative guard,
// and a lost race surfaces as the same conflict.
func (s *NumberingService) Reserve(ctx context.Context, req dto.ReserveNumberRequest) (*dto.ReservedNumber, error) {
	prefix, err := ResolvePrefix(req.DocumentTypeID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	now := s.now()
	year := now.Year()
	month := fmt.Sprintf("%02d", int(now.Month()))

	var sequence int
	if req.ManualSequence != nil {
		if *req.ManualSequence <= 0 {
			return nil, appErrors.ErrInvalidSequence
		}
		taken, err := s.repo.SequenceExists(ctx, prefix, *req.ManualSequence, year)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check sequence availability")
		}
		if taken {
			return nil, appErrors.ErrDuplicateSequence
		}
		sequence = *req.ManualSequence
	} else {
		max, err := s.repo.MaxSequence(ctx, prefix, year)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to determine next sequence")
		}
		sequence = max + 1
	}

	record := &models.LetterSequence{
		Prefix:         prefix,
		SequenceNumber: sequence,
		Month:          month,
		Year:           year,
		DocumentTypeID: req.DocumentTypeID,
		Status:         models.SequenceStatusReserved,
		ReservedAt:     now.UTC(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.ErrDuplicateSequence
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reserve letter number")
	}

	s.logger.Info("letter number reserved",
		zap.String("id", record.ID),
		zap.String("prefix", prefix),
		zap.Int("sequence", sequence),
		zap.Int("year", year),
	)

	return &dto.ReservedNumber{
		ID:             record.ID,
		Number:         FormatNumber(prefix, sequence, month, year),
		Prefix:         prefix,
		SequenceNumber: sequence,
		Month:          month,
		Year:           year,
		DocumentDate:   now.Format("2006-01-02"),
	}, nil
}

// Confirm finalizes a reserved number at print-confirmation time. Confirmed
// rows are immutable afterwards.
func (s *NumberingService) Confirm(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.repo.Confirm(ctx, id, s.now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrReservationNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to confirm letter number")
	}
	return nil
}

// Cancel discards a reservation. Only reserved rows can be removed.
func (s *NumberingService) Cancel(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.repo.Cancel(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrReservationNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel letter number")
	}
	return nil
}

// List returns ledger rows for administrative review.
func (s *NumberingService) List(ctx context.Context, filter models.SequenceFilter) ([]models.LetterSequence, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	sequences, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list letter numbers")
	}
	return sequences, nil
}
