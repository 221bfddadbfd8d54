package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/lifelog/internal/error_values"
	"github.com/limbo/lifelog/pkg/cleanup"
	"github.com/limbo/lifelog/pkg/entity"
)

type EventsRepository struct {
	conn PgConnection
}

func NewEventsRepo(cfg DBConfig) *EventsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for eventsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for eventsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &EventsRepository{
		conn: pool,
	}
}

func NewEventsRepoWithConn(conn PgConnection) *EventsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for eventsRepo: " + err.Error())
	}
	return &EventsRepository{
		conn: conn,
	}
}

func (er *EventsRepository) Create(ctx context.Context, event *entity.Event) (uuid.UUID, error) {
	if event == nil {
		return uuid.Nil, errors.New("event is nil")
	}
	payload, err := sonic.Marshal(event.Payload)
	if err != nil {
		return uuid.Nil, errors.New("encoding event payload error: " + err.Error())
	}
	var id uuid.UUID
	row := er.conn.QueryRow(
		ctx,
		`INSERT INTO events (owner_id, kind, payload, visibility, occurred_at) VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		event.OwnerID,
		string(event.Kind),
		payload,
		string(event.Visibility),
		event.OccurredAt,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// FK violation
			if pgErr.Code == "23503" {
				return uuid.Nil, errorvalues.ErrUserNotFound
			}
		}
		return uuid.Nil, errors.New("creating event error: " + err.Error())
	}
	return id, nil
}

func (er *EventsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	row := er.conn.QueryRow(
		ctx,
		`SELECT id, owner_id, kind, payload, visibility, occurred_at, created_at FROM events WHERE id = $1;`,
		id,
	)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrEventNotFound
		}
		return nil, errors.New("getting event by id error: " + err.Error())
	}
	return event, nil
}

func (er *EventsRepository) GetByFilter(ctx context.Context, filter EventFilter) ([]entity.Event, error) {
	query := `SELECT id, owner_id, kind, payload, visibility, occurred_at, created_at FROM events`
	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if len(filter.Kinds) > 0 {
		kinds := make([]string, len(filter.Kinds))
		for i, k := range filter.Kinds {
			kinds[i] = string(k)
		}
		args = append(args, kinds)
		conditions = append(conditions, fmt.Sprintf("kind = ANY($%d)", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("occurred_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("occurred_at <= $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if filter.Limit > 0 || filter.Offset > 0 {
		// Paging needs a stable order to mean anything.
		query += " ORDER BY occurred_at"
		if filter.Limit > 0 {
			args = append(args, filter.Limit)
			query += fmt.Sprintf(" LIMIT $%d", len(args))
		}
		if filter.Offset > 0 {
			args = append(args, filter.Offset)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}
	query += ";"
	rows, err := er.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.New("getting events by filter error: " + err.Error())
	}
	return collectEvents(rows)
}

func (er *EventsRepository) GetVisibleSince(ctx context.Context, from time.Time) ([]entity.Event, error) {
	rows, err := er.conn.Query(
		ctx,
		`SELECT id, owner_id, kind, payload, visibility, occurred_at, created_at FROM events WHERE visibility <> 'private' AND occurred_at >= $1 ORDER BY created_at;`,
		from,
	)
	if err != nil {
		return nil, errors.New("getting visible events error: " + err.Error())
	}
	return collectEvents(rows)
}

func (er *EventsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := er.conn.Exec(ctx, `DELETE FROM events WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting event error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrEventNotFound
	}
	return nil
}

func (er *EventsRepository) CountByOwner(ctx context.Context, owner uuid.UUID) (int, error) {
	row := er.conn.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE owner_id = $1;`, owner)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting events: " + err.Error())
	}
	return count, nil
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var event entity.Event
	var kind, visibility string
	var payload []byte
	err := row.Scan(&event.ID, &event.OwnerID, &kind, &payload, &visibility, &event.OccurredAt, &event.CreatedAt)
	if err != nil {
		return nil, err
	}
	event.Kind = entity.Kind(kind)
	event.Visibility = entity.Visibility(visibility)
	if len(payload) > 0 {
		if err := sonic.Unmarshal(payload, &event.Payload); err != nil {
			return nil, errors.New("decoding event payload error: " + err.Error())
		}
	}
	return &event, nil
}

func collectEvents(rows pgx.Rows) ([]entity.Event, error) {
	defer rows.Close()
	result := make([]entity.Event, 0, 16)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, errors.New("event row parsing error: " + err.Error())
		}
		result = append(result, *event)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected event rows error: " + rows.Err().Error())
	}
	return result, nil
}
