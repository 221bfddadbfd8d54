package stats

import "github.com/limbo/lifelog/pkg/entity"

// SeriesPoint is one day of an aggregate series.
type SeriesPoint struct {
	Date  DateBucket `json:"date"`
	Value float64    `json:"value"`
}

// AggregateSeries is a contiguous, ascending, fixed-length run of daily
// values. Days without events are explicit zero entries, never omitted.
type AggregateSeries []SeriesPoint

// KindAny matches events of every kind.
const KindAny = entity.Kind("")

// BuildSeries computes a windowDays-long daily series ending at end
// (inclusive). Events matching kind have fn applied and the per-day results
// summed; a day with no qualifying events yields exactly 0. Average-style
// metrics must be built from a sum series plus a count series
// (BuildSeriesWithCounts), never divided inline.
func BuildSeries(events []entity.Event, kind entity.Kind, fn ValueFunc, windowDays int, end DateBucket) AggregateSeries {
	if windowDays < 1 {
		return AggregateSeries{}
	}
	totals := make(map[DateBucket]float64, windowDays)
	start := end.AddDays(-(windowDays - 1))
	for _, ev := range events {
		if kind != KindAny && ev.Kind != kind {
			continue
		}
		bucket := BucketOf(ev.OccurredAt)
		if bucket.Before(start) || end.Before(bucket) {
			continue
		}
		if v, ok := fn(ev); ok {
			totals[bucket] += v
		}
	}
	series := make(AggregateSeries, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		date := start.AddDays(i)
		series = append(series, SeriesPoint{Date: date, Value: totals[date]})
	}
	return series
}

// BuildSeriesWithCounts returns the summed series alongside the per-day count
// of contributing events, so callers can derive averages without dividing by
// zero on empty days.
func BuildSeriesWithCounts(events []entity.Event, kind entity.Kind, fn ValueFunc, windowDays int, end DateBucket) (AggregateSeries, AggregateSeries) {
	sums := BuildSeries(events, kind, fn, windowDays, end)
	counts := BuildSeries(events, kind, func(ev entity.Event) (float64, bool) {
		if _, ok := fn(ev); !ok {
			return 0, false
		}
		return 1, true
	}, windowDays, end)
	return sums, counts
}
