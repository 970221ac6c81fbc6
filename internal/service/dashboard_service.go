package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	"github.com/sidesa-dev/sidesa-api/internal/models"
	appErrors "github.com/sidesa-dev/sidesa-api/pkg/errors"
)

const dashboardCacheKey = "dashboard:summary"

type residentCounter interface {
	Count(ctx context.Context) (int, error)
}

type letterCounter interface {
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type sequenceCounter interface {
	CountByStatus(ctx context.Context, status models.SequenceStatus) (int, error)
}

type bundleLister interface {
	ListBundles(ctx context.Context) ([]dto.BundleSummary, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes the portal landing-page counts.
type DashboardService struct {
	residents residentCounter
	letters   letterCounter
	sequences sequenceCounter
	bundles   bundleLister
	cache     *CacheService
	logger    *zap.Logger
	now       func() time.Time
	cfg       DashboardServiceConfig
}

// NewDashboardService constructs the service. cache may be nil.
func NewDashboardService(residents residentCounter, letters letterCounter, sequences sequenceCounter, bundles bundleLister, cache *CacheService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		residents: residents,
		letters:   letters,
		sequences: sequences,
		bundles:   bundles,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// Summary returns the headline counts, cached for a short period.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	if s.cache != nil {
		var cached dto.DashboardSummary
		if hit, _ := s.cache.Get(ctx, dashboardCacheKey, &cached); hit {
			return &cached, nil
		}
	}

	summary := &dto.DashboardSummary{}

	residents, err := s.residents.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count residents")
	}
	summary.Residents = residents

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	letters, err := s.letters.CountSince(ctx, monthStart)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count letters")
	}
	summary.LettersThisMonth = letters

	reserved, err := s.sequences.CountByStatus(ctx, models.SequenceStatusReserved)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count reserved numbers")
	}
	summary.ReservedNumbers = reserved

	confirmed, err := s.sequences.CountByStatus(ctx, models.SequenceStatusConfirmed)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count confirmed numbers")
	}
	summary.ConfirmedNumbers = confirmed

	bundles, err := s.bundles.ListBundles(ctx)
	if err != nil {
		// Bundle aggregation is decorative here; the counts above stand alone.
		s.logger.Warn("dashboard bundle aggregation failed", zap.Error(err))
	} else {
		for _, bundle := range bundles {
			if !bundle.Completed {
				summary.IncompleteBundles++
			}
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}
