package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

// Kind tags an event with its record category. The eight builtin kinds are
// known to the stats package; anything else is a user-defined tag and is
// treated opaquely everywhere.
type Kind string

const (
	KindMeal       Kind = "meal"
	KindSleep      Kind = "sleep"
	KindExercise   Kind = "exercise"
	KindWater      Kind = "water"
	KindMood       Kind = "mood"
	KindMedication Kind = "medication"
	KindIntimacy   Kind = "intimacy"
	KindBowel      Kind = "bowel"
)

func (k Kind) IsBuiltin() bool {
	switch k {
	case KindMeal, KindSleep, KindExercise, KindWater, KindMood, KindMedication, KindIntimacy, KindBowel:
		return true
	}
	return false
}

// Visibility controls who may see an event outside its owner.
// Leaderboards only read stats_only and public events.
type Visibility string

const (
	VisibilityPrivate   Visibility = "private"
	VisibilityStatsOnly Visibility = "stats_only"
	VisibilityPublic    Visibility = "public"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityStatsOnly || v == VisibilityPublic
}

// Payload holds the kind-specific fields of an event. Only the derived-metric
// readers in internal/stats interpret named fields; everything else passes it
// through untouched.
type Payload map[string]any

type Event struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	Kind       Kind       `json:"kind"`
	Payload    Payload    `json:"payload"`
	Visibility Visibility `json:"visibility"`
	// OccurredAt is the moment the event is about, chosen by the user.
	// All calendar bucketing keys off this, never CreatedAt.
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}
