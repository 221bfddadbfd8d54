package stats

import (
	"fmt"
	"strconv"
	"strings"

	errorvalues "github.com/limbo/lifelog/internal/error_values"
	"github.com/limbo/lifelog/pkg/entity"
)

// ValueFunc extracts a numeric value from a single event. The bool reports
// whether the event contributes at all; missing or malformed payload fields
// mean "contributes nothing", never an error.
type ValueFunc func(entity.Event) (float64, bool)

// Count values every event as 1.
func Count(entity.Event) (float64, bool) {
	return 1, true
}

// SumField reads a named numeric payload field, e.g. water "amount" or
// exercise "duration".
func SumField(field string) ValueFunc {
	return func(ev entity.Event) (float64, bool) {
		return numberField(ev.Payload, field)
	}
}

// SleepDurationHours derives hours slept from the "bedtime" and "wake_time"
// payload fields, both "HH:MM" strings. A wake time at or before bedtime is
// taken as crossing midnight and gets 24h added; equal times therefore mean
// a full 24h sleep, not zero.
func SleepDurationHours(ev entity.Event) (float64, bool) {
	bed, ok := clockField(ev.Payload, "bedtime")
	if !ok {
		return 0, false
	}
	wake, ok := clockField(ev.Payload, "wake_time")
	if !ok {
		return 0, false
	}
	if wake <= bed {
		wake += 24 * 60
	}
	return float64(wake-bed) / 60, true
}

// MetricFor resolves an API-facing metric name to its value function.
// "count" works for any kind; "sum:<field>" reads that payload field;
// "sleep_hours" is the sleep duration metric. An unresolvable name wraps
// errorvalues.ErrUnknownMetric so callers can tell it from a store failure.
func MetricFor(name string) (ValueFunc, error) {
	switch {
	case name == "count" || name == "":
		return Count, nil
	case name == "sleep_hours":
		return SleepDurationHours, nil
	case strings.HasPrefix(name, "sum:"):
		field := strings.TrimPrefix(name, "sum:")
		if field == "" {
			return nil, fmt.Errorf("metric %q names no payload field: %w", name, errorvalues.ErrUnknownMetric)
		}
		return SumField(field), nil
	}
	return nil, fmt.Errorf("%w %q", errorvalues.ErrUnknownMetric, name)
}

// numberField reads a payload field as float64. JSON decoding hands numbers
// over as float64, but ints and numeric strings show up from other ingest
// paths, so all three are accepted.
func numberField(p entity.Payload, field string) (float64, bool) {
	raw, ok := p[field]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// clockField parses an "HH:MM" payload string into minutes after midnight.
func clockField(p entity.Payload, field string) (int, bool) {
	raw, ok := p[field]
	if !ok {
		return 0, false
	}
	s, ok := raw.(string)
	if !ok {
		return 0, false
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
