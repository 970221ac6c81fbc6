package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	"github.com/sidesa-dev/sidesa-api/internal/models"
	appErrors "github.com/sidesa-dev/sidesa-api/pkg/errors"
)

const bundleCacheKey = "bundles:summary"

type bundleStore interface {
	ListBundleCandidates(ctx context.Context, category string, codes []string) ([]models.LetterEntry, error)
	ListByBundleKey(ctx context.Context, category, bundleKey string, codes []string) ([]models.LetterEntry, error)
}

// BundleService aggregates marriage-form submissions that share a bundle key
// into per-case packets and reports their completion state.
type BundleService struct {
	repo     bundleStore
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewBundleService constructs the service. cache may be nil.
func NewBundleService(repo bundleStore, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *BundleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BundleService{repo: repo, cache: cache, logger: logger, cacheTTL: cacheTTL}
}

// ListBundles returns every known packet, most recently touched first.
func (s *BundleService) ListBundles(ctx context.Context) ([]dto.BundleSummary, error) {
	if s.cache != nil {
		var cached []dto.BundleSummary
		if hit, _ := s.cache.Get(ctx, bundleCacheKey, &cached); hit {
			return cached, nil
		}
	}

	entries, err := s.repo.ListBundleCandidates(ctx, models.CategoryNikah, models.MarriageFormCodes)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bundle entries")
	}

	grouped := make(map[string][]models.LetterEntry)
	order := make([]string, 0)
	for _, entry := range entries {
		if entry.BundleKey == nil {
			continue
		}
		key := *entry.BundleKey
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], entry)
	}

	summaries := make([]dto.BundleSummary, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, buildSummary(key, grouped[key]))
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastUpdated.After(summaries[j].LastUpdated)
	})

	if s.cache != nil {
		if err := s.cache.Set(ctx, bundleCacheKey, summaries, s.cacheTTL); err != nil {
			s.logger.Warn("bundle summary cache write failed", zap.Error(err))
		}
	}
	return summaries, nil
}

// GetBundle returns the distinct entries of one packet, at most one per form
// code. An unknown key is a not-found condition.
func (s *BundleService) GetBundle(ctx context.Context, bundleKey string) (*dto.BundleDetail, error) {
	entries, err := s.repo.ListByBundleKey(ctx, models.CategoryNikah, bundleKey, models.MarriageFormCodes)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bundle")
	}
	distinct := dedupeByFormCode(entries)
	if len(distinct) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "bundle not found")
	}
	return &dto.BundleDetail{BundleKey: bundleKey, Entries: distinct}, nil
}

// Invalidate drops the cached bundle summaries after a write.
func (s *BundleService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, bundleCacheKey); err != nil {
		s.logger.Warn("bundle cache invalidation failed", zap.Error(err))
	}
}

// buildSummary folds one packet's entries (newest first) into a summary.
func buildSummary(key string, entries []models.LetterEntry) dto.BundleSummary {
	summary := dto.BundleSummary{BundleKey: key, Missing: []string{}}

	for _, entry := range entries {
		if summary.ApplicantName == "" && entry.ApplicantName != "" && entry.ApplicantName != models.ApplicantUnknown {
			summary.ApplicantName = entry.ApplicantName
		}
		if summary.ApplicantNIK == nil && entry.ApplicantNIK != nil {
			summary.ApplicantNIK = entry.ApplicantNIK
		}
		if entry.UpdatedAt.After(summary.LastUpdated) {
			summary.LastUpdated = entry.UpdatedAt
		}
	}
	if summary.ApplicantName == "" {
		summary.ApplicantName = models.ApplicantUnknown
	}

	summary.Forms = dedupeByFormCode(entries)

	present := make(map[string]struct{}, len(summary.Forms))
	for _, form := range summary.Forms {
		present[strings.ToUpper(form.DocumentTypeID)] = struct{}{}
	}
	for _, code := range models.MarriageFormCodes {
		if _, ok := present[code]; !ok {
			summary.Missing = append(summary.Missing, code)
		}
	}
	summary.Completed = len(summary.Missing) == 0
	return summary
}

// dedupeByFormCode keeps one entry per upper-cased form code, the first seen
// (entries arrive newest first), ordered by the canonical packet sequence.
func dedupeByFormCode(entries []models.LetterEntry) []models.LetterEntry {
	byCode := make(map[string]models.LetterEntry, len(entries))
	for _, entry := range entries {
		code := strings.ToUpper(entry.DocumentTypeID)
		if _, seen := byCode[code]; !seen {
			byCode[code] = entry
		}
	}
	ordered := make([]models.LetterEntry, 0, len(byCode))
	for _, code := range models.MarriageFormCodes {
		if entry, ok := byCode[code]; ok {
			ordered = append(ordered, entry)
		}
	}
	return ordered
}
