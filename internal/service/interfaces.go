package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/lifelog/internal/stats"
	"github.com/limbo/lifelog/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type LogEventRequest struct {
	Kind       string         `validate:"required,kind_tag,max=64"`
	Payload    map[string]any `validate:"-"`
	Visibility string         `validate:"omitempty,oneof=private stats_only public"`
	OccurredAt string         `validate:"required"`
}

type EventsQueryOpts struct {
	Kinds []entity.Kind
	From  *time.Time
	To    *time.Time
	// Limit pages the listing when positive, Offset rows in
	Limit  int
	Offset int
}

type ImportReport struct {
	Imported int `json:"imported"`
	Dropped  int `json:"dropped"`
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type EventsServiceI interface {
	// Normalizes and stores a single event for uid. The event date may not
	// lie in the future.
	LogEvent(ctx context.Context, uid uuid.UUID, req *LogEventRequest) (*entity.Event, error)
	// Lists uid's events matching the query options, unsorted
	GetEvents(ctx context.Context, uid uuid.UUID, opts EventsQueryOpts) ([]entity.Event, error)
	// Deletes an event after checking ownership
	DeleteEvent(ctx context.Context, eventID, uid uuid.UUID) error
	// Bulk-ingests raw events for uid, dropping the malformed ones and
	// reporting how many were kept and dropped
	ImportEvents(ctx context.Context, uid uuid.UUID, raws []stats.RawEvent) (*ImportReport, error)
}

type StatsServiceI interface {
	// Streak, today's count and per-kind totals for uid's dashboard
	DashboardSummary(ctx context.Context, uid uuid.UUID) (*stats.DashboardSummary, error)
	// Daily metric series over the trailing window ending today
	TrendSeries(ctx context.Context, uid uuid.UUID, kind entity.Kind, metric string, windowDays int) (stats.AggregateSeries, error)
	// Per-day activity intensities over the trailing window ending today
	Heatmap(ctx context.Context, uid uuid.UUID, kind entity.Kind, metric string, windowDays int) (stats.AggregateSeries, error)
	// Cross-user top-N ranking on a metric over non-private events
	Leaderboard(ctx context.Context, kind entity.Kind, metric string, topN int) ([]stats.RankedEntry, error)
}
