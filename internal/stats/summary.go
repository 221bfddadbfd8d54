package stats

import "github.com/limbo/lifelog/pkg/entity"

// DashboardSummary is the landing-page rollup for a single user.
type DashboardSummary struct {
	Streak        int                 `json:"streak"`
	LongestStreak int                 `json:"longest_streak"`
	TodayCount    int                 `json:"today_count"`
	PerKindCounts map[entity.Kind]int `json:"per_kind_counts"`
}

// ComputeDashboardSummary derives the current streak, today's event count and
// total counts per kind from one user's events.
func ComputeDashboardSummary(events []entity.Event, today DateBucket) DashboardSummary {
	active := ActiveDates(events)
	perKind := make(map[entity.Kind]int)
	todayCount := 0
	for _, ev := range events {
		perKind[ev.Kind]++
		if BucketOf(ev.OccurredAt) == today {
			todayCount++
		}
	}
	return DashboardSummary{
		Streak:        CurrentStreak(active, today, DefaultMaxLookback),
		LongestStreak: LongestStreak(active),
		TodayCount:    todayCount,
		PerKindCounts: perKind,
	}
}

// ComputeTrendSeries is the chart-facing alias for BuildSeries.
func ComputeTrendSeries(events []entity.Event, kind entity.Kind, fn ValueFunc, windowDays int, end DateBucket) AggregateSeries {
	return BuildSeries(events, kind, fn, windowDays, end)
}
