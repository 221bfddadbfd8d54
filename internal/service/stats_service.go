package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/lifelog/internal/repository"
	"github.com/limbo/lifelog/internal/stats"
	"github.com/limbo/lifelog/pkg/entity"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 365
	defaultTopN       = 5
	maxTopN           = 100
	// leaderboardLookbackDays bounds the leaderboard fetch so the score scan
	// doesn't grow without limit.
	leaderboardLookbackDays = 365
)

// MetricStreak ranks leaderboard users by current streak instead of a summed
// value function.
const MetricStreak = "streak"

// StatsService glues the event store to the pure aggregation functions in
// internal/stats. Fetch failures propagate to the caller; a failed fetch is
// never rendered as "no activity".
type StatsService struct {
	repo repository.EventsRepositoryI
	now  func() time.Time
}

func NewStatsService(eventsRepo repository.EventsRepositoryI) *StatsService {
	if eventsRepo == nil {
		log.Fatal("provided nil eventsRepo")
	}
	return &StatsService{
		repo: eventsRepo,
		now:  time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (ss *StatsService) WithClock(now func() time.Time) *StatsService {
	ss.now = now
	return ss
}

func (ss *StatsService) DashboardSummary(ctx context.Context, uid uuid.UUID) (*stats.DashboardSummary, error) {
	events, err := ss.repo.GetByFilter(ctx, repository.EventFilter{OwnerID: &uid})
	if err != nil {
		return nil, errors.New("events repository error: " + err.Error())
	}
	summary := stats.ComputeDashboardSummary(events, stats.BucketOf(ss.now()))
	return &summary, nil
}

func (ss *StatsService) TrendSeries(ctx context.Context, uid uuid.UUID, kind entity.Kind, metric string, windowDays int) (stats.AggregateSeries, error) {
	windowDays = clampWindow(windowDays)
	fn, err := stats.MetricFor(metric)
	if err != nil {
		return nil, err
	}
	end := stats.BucketOf(ss.now())
	events, err := ss.fetchWindow(ctx, uid, kind, windowDays, end)
	if err != nil {
		return nil, err
	}
	return stats.ComputeTrendSeries(events, kind, fn, windowDays, end), nil
}

func (ss *StatsService) Heatmap(ctx context.Context, uid uuid.UUID, kind entity.Kind, metric string, windowDays int) (stats.AggregateSeries, error) {
	windowDays = clampWindow(windowDays)
	fn, err := stats.MetricFor(metric)
	if err != nil {
		return nil, err
	}
	end := stats.BucketOf(ss.now())
	events, err := ss.fetchWindow(ctx, uid, kind, windowDays, end)
	if err != nil {
		return nil, err
	}
	return stats.ComputeHeatmap(events, kind, fn, windowDays, end), nil
}

func (ss *StatsService) Leaderboard(ctx context.Context, kind entity.Kind, metric string, topN int) ([]stats.RankedEntry, error) {
	if topN < 1 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}
	today := stats.BucketOf(ss.now())
	from := today.AddDays(-(leaderboardLookbackDays - 1)).Time()
	events, err := ss.repo.GetVisibleSince(ctx, from)
	if err != nil {
		return nil, errors.New("events repository error: " + err.Error())
	}
	if kind != stats.KindAny {
		filtered := make([]entity.Event, 0, len(events))
		for _, ev := range events {
			if ev.Kind == kind {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}
	if metric == MetricStreak {
		return stats.ComputeStreakLeaderboard(events, today, topN), nil
	}
	fn, err := stats.MetricFor(metric)
	if err != nil {
		return nil, err
	}
	return stats.ComputeLeaderboard(events, fn, topN), nil
}

func (ss *StatsService) fetchWindow(ctx context.Context, uid uuid.UUID, kind entity.Kind, windowDays int, end stats.DateBucket) ([]entity.Event, error) {
	from := end.AddDays(-(windowDays - 1)).Time()
	filter := repository.EventFilter{OwnerID: &uid, From: &from}
	if kind != stats.KindAny {
		filter.Kinds = []entity.Kind{kind}
	}
	events, err := ss.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, errors.New("events repository error: " + err.Error())
	}
	return events, nil
}

func clampWindow(windowDays int) int {
	if windowDays < 1 {
		return defaultWindowDays
	}
	if windowDays > maxWindowDays {
		return maxWindowDays
	}
	return windowDays
}
