package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/lifelog/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Updates user's info
	Update(ctx context.Context, user *entity.User) error
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

// EventFilter narrows a fetch. Nil fields mean "no constraint". From/To
// bound OccurredAt inclusively. A positive Limit or Offset pages the result
// ordered by OccurredAt; either works without the other.
type EventFilter struct {
	OwnerID *uuid.UUID
	Kinds   []entity.Kind
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

type EventsRepositoryI interface {
	// Stores a new event and returns its assigned id
	Create(ctx context.Context, event *entity.Event) (uuid.UUID, error)
	// Searches event with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	// Fetches events matching the filter, unsorted. Failures propagate
	// as-is; callers never get partial or stale data
	GetByFilter(ctx context.Context, filter EventFilter) ([]entity.Event, error)
	// Fetches non-private events of all users since the given time,
	// ordered by creation so leaderboard tie-breaking is stable
	GetVisibleSince(ctx context.Context, from time.Time) ([]entity.Event, error)
	// Deletes event with id
	Delete(ctx context.Context, id uuid.UUID) error
	// Returns count of events logged by owner
	CountByOwner(ctx context.Context, owner uuid.UUID) (int, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
