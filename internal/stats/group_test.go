package stats_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/lifelog/internal/stats"
	"github.com/limbo/lifelog/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketOfTruncatesToUTCDate(t *testing.T) {
	t.Parallel()
	taipei := time.FixedZone("CST", 8*3600)
	testCases := []struct {
		Desc     string
		Time     time.Time
		Expected string
	}{
		{
			Desc:     "midday UTC",
			Time:     time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			Expected: "2024-03-10",
		},
		{
			Desc:     "one second before midnight UTC",
			Time:     time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC),
			Expected: "2024-03-10",
		},
		{
			Desc: "local early morning lands on previous UTC date",
			Time: time.Date(2024, 3, 11, 6, 0, 0, 0, taipei),
			// 06:00 +08:00 is 22:00 UTC the day before.
			Expected: "2024-03-10",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			assert.Equal(t, tc.Expected, stats.BucketOf(tc.Time).String())
		})
	}
}

func TestBucketAddDays(t *testing.T) {
	t.Parallel()
	b := mustBucket(t, "2024-03-01")
	assert.Equal(t, "2024-02-29", b.AddDays(-1).String())
	assert.Equal(t, "2024-03-02", b.AddDays(1).String())
	assert.Equal(t, b, b.AddDays(0))
}

func TestParseBucketRejectsGarbage(t *testing.T) {
	t.Parallel()
	_, err := stats.ParseBucket("03/10/2024")
	assert.Error(t, err)
}

func TestGroupByDate(t *testing.T) {
	t.Parallel()
	owner := uuid.New()
	events := []entity.Event{
		eventAt(t, owner, entity.KindWater, "2024-01-01", nil),
		eventAt(t, owner, entity.KindMeal, "2024-01-01", nil),
		eventAt(t, owner, entity.KindWater, "2024-01-03", nil),
	}
	grouped := stats.GroupByDate(events)
	require.Len(t, grouped, 2)
	assert.Len(t, grouped[mustBucket(t, "2024-01-01")], 2)
	assert.Len(t, grouped[mustBucket(t, "2024-01-03")], 1)
}

func TestGroupByDateEmptyInput(t *testing.T) {
	t.Parallel()
	assert.Empty(t, stats.GroupByDate(nil))
	assert.Empty(t, stats.GroupByDateAndKind(nil))
	assert.Empty(t, stats.ActiveDates(nil))
}

func TestGroupByDateAndKind(t *testing.T) {
	t.Parallel()
	owner := uuid.New()
	events := []entity.Event{
		eventAt(t, owner, entity.KindWater, "2024-01-01", nil),
		eventAt(t, owner, entity.KindWater, "2024-01-01", nil),
		eventAt(t, owner, entity.KindMeal, "2024-01-01", nil),
	}
	grouped := stats.GroupByDateAndKind(events)
	day := grouped[mustBucket(t, "2024-01-01")]
	require.NotNil(t, day)
	assert.Len(t, day[entity.KindWater], 2)
	assert.Len(t, day[entity.KindMeal], 1)
}

func TestActiveDates(t *testing.T) {
	t.Parallel()
	owner := uuid.New()
	events := []entity.Event{
		eventAt(t, owner, entity.KindWater, "2024-01-01", nil),
		eventAt(t, owner, entity.KindMeal, "2024-01-01", nil),
		eventAt(t, owner, entity.KindMood, "2024-01-05", nil),
	}
	active := stats.ActiveDates(events)
	assert.Len(t, active, 2)
	assert.Contains(t, active, mustBucket(t, "2024-01-01"))
	assert.Contains(t, active, mustBucket(t, "2024-01-05"))
}
