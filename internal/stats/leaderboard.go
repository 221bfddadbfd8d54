package stats

import (
	"github.com/google/uuid"

	"github.com/limbo/lifelog/pkg/entity"
)

// ComputeLeaderboard scores every owner appearing in events by summing fn
// over their events, then ranks the scores. Owners are scored in first-seen
// order within the event slice, which fixes how equal scores tie-break.
func ComputeLeaderboard(events []entity.Event, fn ValueFunc, topN int) []RankedEntry {
	order, totals := scoreByOwner(events, fn)
	return Rank(assembleScores(order, totals), topN)
}

// ComputeStreakLeaderboard ranks owners by their current streak instead of a
// summed metric.
func ComputeStreakLeaderboard(events []entity.Event, today DateBucket, topN int) []RankedEntry {
	order := make([]uuid.UUID, 0)
	activeByOwner := make(map[uuid.UUID]map[DateBucket]struct{})
	for _, ev := range events {
		active, ok := activeByOwner[ev.OwnerID]
		if !ok {
			active = make(map[DateBucket]struct{})
			activeByOwner[ev.OwnerID] = active
			order = append(order, ev.OwnerID)
		}
		active[BucketOf(ev.OccurredAt)] = struct{}{}
	}
	scores := make([]Score, 0, len(order))
	for _, owner := range order {
		streak := CurrentStreak(activeByOwner[owner], today, DefaultMaxLookback)
		scores = append(scores, Score{OwnerID: owner, Value: float64(streak)})
	}
	return Rank(scores, topN)
}

func scoreByOwner(events []entity.Event, fn ValueFunc) ([]uuid.UUID, map[uuid.UUID]float64) {
	order := make([]uuid.UUID, 0)
	totals := make(map[uuid.UUID]float64)
	for _, ev := range events {
		if _, seen := totals[ev.OwnerID]; !seen {
			order = append(order, ev.OwnerID)
			totals[ev.OwnerID] = 0
		}
		if v, ok := fn(ev); ok {
			totals[ev.OwnerID] += v
		}
	}
	return order, totals
}

func assembleScores(order []uuid.UUID, totals map[uuid.UUID]float64) []Score {
	scores := make([]Score, 0, len(order))
	for _, owner := range order {
		scores = append(scores, Score{OwnerID: owner, Value: totals[owner]})
	}
	return scores
}
