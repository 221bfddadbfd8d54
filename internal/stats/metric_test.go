package stats_test

import (
	"testing"

	errorvalues "github.com/limbo/lifelog/internal/error_values"
	"github.com/limbo/lifelog/internal/stats"
	"github.com/limbo/lifelog/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSleepDurationHours(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		Desc        string
		Payload     entity.Payload
		Expected    float64
		Contributes bool
	}{
		{
			Desc:        "normal night crossing midnight",
			Payload:     entity.Payload{"bedtime": "23:30", "wake_time": "07:00"},
			Expected:    7.5,
			Contributes: true,
		},
		{
			Desc:        "same clock time means full day",
			Payload:     entity.Payload{"bedtime": "07:00", "wake_time": "07:00"},
			Expected:    24.0,
			Contributes: true,
		},
		{
			Desc:        "nap within one day",
			Payload:     entity.Payload{"bedtime": "13:00", "wake_time": "14:30"},
			Expected:    1.5,
			Contributes: true,
		},
		{
			Desc:        "wake before bed wraps to next day",
			Payload:     entity.Payload{"bedtime": "22:00", "wake_time": "06:15"},
			Expected:    8.25,
			Contributes: true,
		},
		{
			Desc:        "missing wake time contributes nothing",
			Payload:     entity.Payload{"bedtime": "23:00"},
			Contributes: false,
		},
		{
			Desc:        "malformed clock string contributes nothing",
			Payload:     entity.Payload{"bedtime": "25:99", "wake_time": "07:00"},
			Contributes: false,
		},
		{
			Desc:        "non-string field contributes nothing",
			Payload:     entity.Payload{"bedtime": 2330, "wake_time": "07:00"},
			Contributes: false,
		},
		{
			Desc:        "empty payload",
			Payload:     entity.Payload{},
			Contributes: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			hours, ok := stats.SleepDurationHours(entity.Event{Kind: entity.KindSleep, Payload: tc.Payload})
			assert.Equal(t, tc.Contributes, ok)
			if tc.Contributes {
				assert.InDelta(t, tc.Expected, hours, 1e-9)
			}
		})
	}
}

func TestSumField(t *testing.T) {
	t.Parallel()
	fn := stats.SumField("amount")
	testCases := []struct {
		Desc        string
		Payload     entity.Payload
		Expected    float64
		Contributes bool
	}{
		{"float value", entity.Payload{"amount": 300.0}, 300, true},
		{"int value", entity.Payload{"amount": 250}, 250, true},
		{"numeric string", entity.Payload{"amount": "500"}, 500, true},
		{"missing field", entity.Payload{"volume": 300.0}, 0, false},
		{"non-numeric string", entity.Payload{"amount": "a lot"}, 0, false},
		{"boolean", entity.Payload{"amount": true}, 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			v, ok := fn(entity.Event{Kind: entity.KindWater, Payload: tc.Payload})
			assert.Equal(t, tc.Contributes, ok)
			assert.Equal(t, tc.Expected, v)
		})
	}
}

func TestCount(t *testing.T) {
	t.Parallel()
	v, ok := stats.Count(entity.Event{Kind: entity.KindMood})
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestMetricFor(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		Name    string
		WantErr bool
	}{
		{"count", false},
		{"", false},
		{"sleep_hours", false},
		{"sum:amount", false},
		{"sum:", true},
		{"median", true},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			fn, err := stats.MetricFor(tc.Name)
			if tc.WantErr {
				assert.ErrorIs(t, err, errorvalues.ErrUnknownMetric)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, fn)
		})
	}
}
