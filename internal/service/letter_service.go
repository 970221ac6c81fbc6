package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	"github.com/sidesa-dev/sidesa-api/internal/formmeta"
	"github.com/sidesa-dev/sidesa-api/internal/models"
	appErrors "github.com/sidesa-dev/sidesa-api/pkg/errors"
)

// Generic field names tried when a template's metadata points at a field the
// submission did not fill.
const (
	genericNumberField = "nomor_surat"
	genericDateField   = "tanggal_surat"
	genericNIKField    = "nik"
)

var genericNameFields = []string{"nama_lengkap", "nama", "nama_pemohon"}

type letterStore interface {
	Create(ctx context.Context, entry *models.LetterEntry) error
	Update(ctx context.Context, entry *models.LetterEntry) error
	GetByID(ctx context.Context, id string) (*models.LetterEntry, error)
	FindLatestByBundle(ctx context.Context, bundleKey, documentTypeID string) (*models.LetterEntry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.LetterFilter) ([]models.LetterEntry, int, error)
}

type residentResolver interface {
	GetByNIK(ctx context.Context, nik string) (*models.Resident, error)
}

// LetterService reconciles submitted form payloads into normalized letter
// register entries.
type LetterService struct {
	repo      letterStore
	residents residentResolver
	logger    *zap.Logger
	now       func() time.Time
}

// NewLetterService constructs the service. residents may be nil; applicant
// back-references are then left empty.
func NewLetterService(repo letterStore, residents residentResolver, logger *zap.Logger) *LetterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LetterService{repo: repo, residents: residents, logger: logger, now: time.Now}
}

// Save reconciles one form submission into the letter register. Entries of
// whitelisted marriage forms sharing a bundle key update the existing row
// instead of inserting a new one.
//
// A nil return means the entry was not persisted. That is deliberate: a
// missing template registration or a storage failure must not break the
// caller's primary flow, so both are logged here and reported as absence.
func (s *LetterService) Save(ctx context.Context, req dto.SaveLetterRequest) *models.LetterEntry {
	meta, ok := formmeta.Lookup(req.Slug)
	if !ok {
		s.logger.Warn("no form metadata for slug, entry not recorded", zap.String("slug", req.Slug))
		return nil
	}

	entry := s.buildEntry(ctx, meta, req)

	if entry.BundleKey != nil {
		existing, err := s.repo.FindLatestByBundle(ctx, *entry.BundleKey, entry.DocumentTypeID)
		if err != nil {
			s.logger.Error("bundle lookup failed", zap.String("slug", req.Slug), zap.Error(err))
			return nil
		}
		if existing != nil {
			existing.Slug = entry.Slug
			existing.Title = entry.Title
			existing.OfficialNumber = entry.OfficialNumber
			existing.DocumentDate = entry.DocumentDate
			existing.ResidentID = entry.ResidentID
			existing.ApplicantName = entry.ApplicantName
			existing.ApplicantNIK = entry.ApplicantNIK
			existing.FormData = entry.FormData
			if err := s.repo.Update(ctx, existing); err != nil {
				s.logger.Error("letter entry update failed",
					zap.String("id", existing.ID),
					zap.String("bundle_key", *entry.BundleKey),
					zap.Error(err))
				return nil
			}
			return existing
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("letter entry insert failed", zap.String("slug", req.Slug), zap.Error(err))
		return nil
	}
	return entry
}

// UpdateEntry recomputes the normalized fields and applies a full in-place
// update by id. Used for administrative corrections; a missing row yields nil.
func (s *LetterService) UpdateEntry(ctx context.Context, id string, req dto.SaveLetterRequest) *models.LetterEntry {
	meta, ok := formmeta.Lookup(req.Slug)
	if !ok {
		s.logger.Warn("no form metadata for slug, entry not updated", zap.String("slug", req.Slug))
		return nil
	}

	entry := s.buildEntry(ctx, meta, req)
	entry.ID = id
	if err := s.repo.Update(ctx, entry); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error("letter entry update failed", zap.String("id", id), zap.Error(err))
		}
		return nil
	}

	fresh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("letter entry refetch failed", zap.String("id", id), zap.Error(err))
		return entry
	}
	return fresh
}

// Get returns one register entry.
func (s *LetterService) Get(ctx context.Context, id string) (*models.LetterEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch letter entry")
	}
	return entry, nil
}

// Delete removes one register entry (administrative operation).
func (s *LetterService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete letter entry")
	}
	return nil
}

// List returns register entries with pagination metadata.
func (s *LetterService) List(ctx context.Context, query dto.LetterQuery) ([]models.LetterEntry, *models.Pagination, error) {
	filter := models.LetterFilter{
		Category:       query.Category,
		DocumentTypeID: query.DocumentTypeID,
		BundleKey:      query.BundleKey,
		Search:         strings.TrimSpace(query.Search),
		Page:           query.Page,
		PageSize:       query.Limit,
	}
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list letter entries")
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 20
	}
	return entries, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// buildEntry computes the normalized register fields out of a raw submission.
func (s *LetterService) buildEntry(ctx context.Context, meta formmeta.Meta, req dto.SaveLetterRequest) *models.LetterEntry {
	data := req.Data

	var officialNumber *string
	if meta.NumberField != "" {
		raw := formmeta.ResolveString(data, meta.NumberField)
		if raw == "" && meta.NumberField != genericNumberField {
			raw = formmeta.ResolveString(data, genericNumberField)
		}
		if raw != "" {
			officialNumber = &raw
		}
	}

	documentDate := parseDocumentDate(firstNonEmpty(
		formmeta.ResolveString(data, meta.DateField),
		formmeta.ResolveString(data, genericDateField),
	))

	name := formmeta.ResolveString(data, meta.NameField)
	for _, field := range genericNameFields {
		if name != "" {
			break
		}
		name = formmeta.ResolveString(data, field)
	}
	if name == "" {
		name = models.ApplicantUnknown
	}

	var applicantNIK *string
	nik := firstNonEmpty(
		formmeta.ResolveString(data, meta.NIKField),
		formmeta.ResolveString(data, genericNIKField),
	)
	if nik != "" {
		applicantNIK = &nik
	}

	documentTypeID := req.DocumentTypeID
	if documentTypeID == "" {
		documentTypeID = meta.DocumentTypeID
	}

	var bundleKey *string
	if isBundledForm(meta.Category, documentTypeID) {
		candidates := []string{formmeta.ResolveString(data, meta.BundleField), nik, name}
		for _, candidate := range candidates {
			if normalized := normalizeBundleKey(candidate); normalized != "" {
				bundleKey = &normalized
				break
			}
		}
	}

	var residentID *string
	if s.residents != nil && applicantNIK != nil {
		if resident, err := s.residents.GetByNIK(ctx, *applicantNIK); err == nil {
			residentID = &resident.ID
		}
	}

	formData, err := json.Marshal(data)
	if err != nil {
		formData = []byte("{}")
	}

	return &models.LetterEntry{
		DocumentTypeID: documentTypeID,
		Category:       meta.Category,
		Slug:           req.Slug,
		Title:          req.Title,
		OfficialNumber: officialNumber,
		DocumentDate:   documentDate,
		ResidentID:     residentID,
		ApplicantName:  name,
		ApplicantNIK:   applicantNIK,
		Status:         models.LetterStatusSubmitted,
		BundleKey:      bundleKey,
		FormData:       formData,
	}
}

// isBundledForm reports whether entries of this type participate in bundle
// tracking: only whitelisted marriage-prerequisite forms do.
func isBundledForm(category, documentTypeID string) bool {
	if category != models.CategoryNikah {
		return false
	}
	code := strings.ToUpper(strings.TrimSpace(documentTypeID))
	for _, allowed := range models.MarriageFormCodes {
		if code == allowed {
			return true
		}
	}
	return false
}

// normalizeBundleKey strips all whitespace and lower-cases the candidate so
// equivalent keys collide.
func normalizeBundleKey(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), ""))
}

// parseDocumentDate normalizes a raw value to a calendar date. Full
// timestamps and anything starting with an ISO date both qualify.
func parseDocumentDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		date := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		return &date
	}
	if len(raw) >= 10 {
		if date, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return &date
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
