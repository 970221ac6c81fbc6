package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	"github.com/sidesa-dev/sidesa-api/internal/models"
)

type residentCounterStub struct{ count int }

func (s *residentCounterStub) Count(ctx context.Context) (int, error) { return s.count, nil }

type letterCounterStub struct {
	count int
	since time.Time
}

func (s *letterCounterStub) CountSince(ctx context.Context, since time.Time) (int, error) {
	s.since = since
	return s.count, nil
}

type sequenceCounterStub struct{ counts map[models.SequenceStatus]int }

func (s *sequenceCounterStub) CountByStatus(ctx context.Context, status models.SequenceStatus) (int, error) {
	return s.counts[status], nil
}

type bundleListerStub struct {
	bundles []dto.BundleSummary
	err     error
}

func (s *bundleListerStub) ListBundles(ctx context.Context) ([]dto.BundleSummary, error) {
	return s.bundles, s.err
}

func TestDashboardSummary(t *testing.T) {
	letters := &letterCounterStub{count: 12}
	svc := NewDashboardService(
		&residentCounterStub{count: 340},
		letters,
		&sequenceCounterStub{counts: map[models.SequenceStatus]int{
			models.SequenceStatusReserved:  3,
			models.SequenceStatusConfirmed: 58,
		}},
		&bundleListerStub{bundles: []dto.BundleSummary{
			{BundleKey: "budi", Completed: false},
			{BundleKey: "siti", Completed: true},
			{BundleKey: "joko", Completed: false},
		}},
		nil, nil, DashboardServiceConfig{},
	)
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)
	}

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 340, summary.Residents)
	assert.Equal(t, 12, summary.LettersThisMonth)
	assert.Equal(t, 3, summary.ReservedNumbers)
	assert.Equal(t, 58, summary.ConfirmedNumbers)
	assert.Equal(t, 2, summary.IncompleteBundles)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), letters.since)
}

func TestDashboardSummaryToleratesBundleFailure(t *testing.T) {
	svc := NewDashboardService(
		&residentCounterStub{count: 10},
		&letterCounterStub{count: 1},
		&sequenceCounterStub{counts: map[models.SequenceStatus]int{}},
		&bundleListerStub{err: assert.AnError},
		nil, nil, DashboardServiceConfig{},
	)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Residents)
	assert.Equal(t, 0, summary.IncompleteBundles)
}
