package stats

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/lifelog/internal/error_values"
	"github.com/limbo/lifelog/pkg/entity"
)

// RawEvent is an event as it arrives from outside the system: everything a
// string, nothing trusted yet.
type RawEvent struct {
	ID         string         `json:"id"`
	OwnerID    string         `json:"owner_id"`
	Kind       string         `json:"kind"`
	Payload    map[string]any `json:"payload"`
	Visibility string         `json:"visibility"`
	OccurredAt string         `json:"occurred_at"`
}

// NormalizationError reports which required field made a raw event unusable.
// It unwraps to errorvalues.ErrMissingField.
type NormalizationError struct {
	Field string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization failed: field %q missing or invalid", e.Field)
}

func (e *NormalizationError) Unwrap() error {
	return errorvalues.ErrMissingField
}

// Normalize shapes a raw event into a canonical entity.Event. It fails only
// on a missing/unparsable owner, kind or timestamp; payload shape is never
// validated here, the derived-metric readers handle that defensively.
// OccurredAt accepts RFC 3339 or a bare "2006-01-02" date.
func Normalize(raw RawEvent) (entity.Event, error) {
	owner, err := uuid.Parse(raw.OwnerID)
	if err != nil {
		return entity.Event{}, &NormalizationError{Field: "owner_id"}
	}
	if raw.Kind == "" {
		return entity.Event{}, &NormalizationError{Field: "kind"}
	}
	occurredAt, err := parseTimestamp(raw.OccurredAt)
	if err != nil {
		return entity.Event{}, &NormalizationError{Field: "occurred_at"}
	}
	id := uuid.Nil
	if raw.ID != "" {
		// A malformed id is not fatal, the store assigns one anyway.
		if parsed, err := uuid.Parse(raw.ID); err == nil {
			id = parsed
		}
	}
	visibility := entity.Visibility(raw.Visibility)
	if !visibility.Valid() {
		visibility = entity.VisibilityPrivate
	}
	return entity.Event{
		ID:         id,
		OwnerID:    owner,
		Kind:       entity.Kind(raw.Kind),
		Payload:    entity.Payload(raw.Payload),
		Visibility: visibility,
		OccurredAt: occurredAt,
	}, nil
}

// NormalizeAll normalizes a batch, dropping events that fail and reporting
// how many were dropped. A bad event never fails the whole batch.
func NormalizeAll(raws []RawEvent) ([]entity.Event, int) {
	events := make([]entity.Event, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		ev, err := Normalize(raw)
		if err != nil {
			dropped++
			continue
		}
		events = append(events, ev)
	}
	return events, dropped
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errorvalues.ErrMissingField
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
