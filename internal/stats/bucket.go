// Package stats is a pure computation library over an in-memory event
// collection: grouping by calendar date, streaks, fixed-window trend series,
// heatmaps and cross-user rankings. Nothing here does I/O or keeps state;
// every function takes a snapshot and returns a fresh value.
//
// All calendar bucketing happens in UTC. The timestamp of an event is
// truncated to its UTC calendar date regardless of where the user is; events
// logged near midnight in other zones may land on the neighbouring date.
package stats

import (
	"fmt"
	"time"
)

// DateBucket is a calendar date used as a grouping key. It carries no time
// component and compares by value, so it works as a map key.
type DateBucket struct {
	Year  int
	Month time.Month
	Day   int
}

// BucketOf truncates t to its UTC calendar date.
func BucketOf(t time.Time) DateBucket {
	y, m, d := t.UTC().Date()
	return DateBucket{Year: y, Month: m, Day: d}
}

// ParseBucket reads a "2006-01-02" date string.
func ParseBucket(s string) (DateBucket, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return DateBucket{}, fmt.Errorf("parsing date bucket %q: %w", s, err)
	}
	return BucketOf(t), nil
}

// Time returns midnight UTC of the bucket's date.
func (b DateBucket) Time() time.Time {
	return time.Date(b.Year, b.Month, b.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays steps the bucket n calendar days forward (negative n steps back).
func (b DateBucket) AddDays(n int) DateBucket {
	return BucketOf(b.Time().AddDate(0, 0, n))
}

func (b DateBucket) Before(other DateBucket) bool {
	return b.Time().Before(other.Time())
}

func (b DateBucket) String() string {
	return b.Time().Format(time.DateOnly)
}

func (b DateBucket) IsZero() bool {
	return b == DateBucket{}
}

// MarshalJSON renders the bucket as a "2006-01-02" string.
func (b DateBucket) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

func (b *DateBucket) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date bucket must be a %q string", time.DateOnly)
	}
	parsed, err := ParseBucket(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
