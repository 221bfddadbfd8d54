package stats

import (
	"sort"

	"github.com/google/uuid"
)

// Score is one user's aggregate value for a metric. Rank consumes an ordered
// slice rather than a map so tie-breaking stays deterministic: map iteration
// order is randomized in Go, slice order is the caller's first-seen order.
type Score struct {
	OwnerID uuid.UUID
	Value   float64
}

// RankedEntry is one leaderboard row. Rank is dense and 1-based.
type RankedEntry struct {
	OwnerID uuid.UUID `json:"owner_id"`
	Score   float64   `json:"score"`
	Rank    int       `json:"rank"`
}

// Rank filters out scores <= 0, sorts descending (ties keep input order) and
// returns at most topN dense-ranked entries. topN <= 0 means no truncation.
func Rank(scores []Score, topN int) []RankedEntry {
	qualifying := make([]Score, 0, len(scores))
	for _, s := range scores {
		if s.Value > 0 {
			qualifying = append(qualifying, s)
		}
	}
	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].Value > qualifying[j].Value
	})
	if topN > 0 && len(qualifying) > topN {
		qualifying = qualifying[:topN]
	}
	entries := make([]RankedEntry, len(qualifying))
	for i, s := range qualifying {
		entries[i] = RankedEntry{OwnerID: s.OwnerID, Score: s.Value, Rank: i + 1}
	}
	return entries
}
