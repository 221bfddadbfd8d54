package stats_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/limbo/lifelog/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	t.Parallel()
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	testCases := []struct {
		Desc     string
		Scores   []stats.Score
		TopN     int
		Expected []stats.RankedEntry
	}{
		{
			Desc:     "empty input",
			Scores:   nil,
			TopN:     5,
			Expected: []stats.RankedEntry{},
		},
		{
			Desc: "sorted descending with dense ranks",
			Scores: []stats.Score{
				{OwnerID: a, Value: 3},
				{OwnerID: b, Value: 10},
				{OwnerID: c, Value: 7},
			},
			TopN: 5,
			Expected: []stats.RankedEntry{
				{OwnerID: b, Score: 10, Rank: 1},
				{OwnerID: c, Score: 7, Rank: 2},
				{OwnerID: a, Score: 3, Rank: 3},
			},
		},
		{
			Desc: "zero and negative scores excluded regardless of topN",
			Scores: []stats.Score{
				{OwnerID: a, Value: 0},
				{OwnerID: b, Value: 5},
				{OwnerID: c, Value: -1},
			},
			TopN: 10,
			Expected: []stats.RankedEntry{
				{OwnerID: b, Score: 5, Rank: 1},
			},
		},
		{
			Desc: "truncated to topN",
			Scores: []stats.Score{
				{OwnerID: a, Value: 4},
				{OwnerID: b, Value: 3},
				{OwnerID: c, Value: 2},
				{OwnerID: d, Value: 1},
			},
			TopN: 2,
			Expected: []stats.RankedEntry{
				{OwnerID: a, Score: 4, Rank: 1},
				{OwnerID: b, Score: 3, Rank: 2},
			},
		},
		{
			Desc: "ties keep first-seen input order",
			Scores: []stats.Score{
				{OwnerID: c, Value: 5},
				{OwnerID: a, Value: 5},
				{OwnerID: b, Value: 9},
			},
			TopN: 5,
			Expected: []stats.RankedEntry{
				{OwnerID: b, Score: 9, Rank: 1},
				{OwnerID: c, Score: 5, Rank: 2},
				{OwnerID: a, Score: 5, Rank: 3},
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			got := stats.Rank(tc.Scores, tc.TopN)
			assert.Equal(t, tc.Expected, got)
		})
	}
}

func TestRankDeterministicAcrossCalls(t *testing.T) {
	t.Parallel()
	a, b := uuid.New(), uuid.New()
	scores := []stats.Score{
		{OwnerID: a, Value: 7},
		{OwnerID: b, Value: 7},
	}
	first := stats.Rank(scores, 10)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, stats.Rank(scores, 10))
	}
	require.Len(t, first, 2)
	assert.Equal(t, a, first[0].OwnerID)
	assert.Equal(t, b, first[1].OwnerID)
}
