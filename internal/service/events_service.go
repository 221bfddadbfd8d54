package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/lifelog/internal/error_values"
	"github.com/limbo/lifelog/internal/repository"
	"github.com/limbo/lifelog/internal/stats"
	"github.com/limbo/lifelog/pkg/entity"
)

type EventsService struct {
	repo repository.EventsRepositoryI
}

func NewEventsService(eventsRepo repository.EventsRepositoryI) *EventsService {
	if eventsRepo == nil {
		log.Fatal("provided nil eventsRepo")
	}
	return &EventsService{
		repo: eventsRepo,
	}
}

func (es *EventsService) LogEvent(ctx context.Context, uid uuid.UUID, req *LogEventRequest) (*entity.Event, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	event, err := stats.Normalize(stats.RawEvent{
		OwnerID:    uid.String(),
		Kind:       req.Kind,
		Payload:    req.Payload,
		Visibility: req.Visibility,
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		return nil, err
	}
	if event.OccurredAt.After(time.Now()) {
		return nil, errorvalues.ErrEventDateNotAllowed
	}
	id, err := es.repo.Create(ctx, &event)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("events repository error: " + err.Error())
	}
	stored, err := es.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEventNotFound) {
			return nil, err
		}
		return nil, errors.New("events repository error: " + err.Error())
	}
	return stored, nil
}

func (es *EventsService) GetEvents(ctx context.Context, uid uuid.UUID, opts EventsQueryOpts) ([]entity.Event, error) {
	events, err := es.repo.GetByFilter(ctx, repository.EventFilter{
		OwnerID: &uid,
		Kinds:   opts.Kinds,
		From:    opts.From,
		To:      opts.To,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
	})
	if err != nil {
		return nil, errors.New("events repository error: " + err.Error())
	}
	return events, nil
}

func (es *EventsService) DeleteEvent(ctx context.Context, eventID, uid uuid.UUID) error {
	event, err := es.repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEventNotFound) {
			return err
		}
		return errors.New("events repository error: " + err.Error())
	}
	if event.OwnerID != uid {
		return errorvalues.ErrWrongOwner
	}
	err = es.repo.Delete(ctx, eventID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEventNotFound) {
			return err
		}
		return errors.New("events repository error: " + err.Error())
	}
	return nil
}

func (es *EventsService) ImportEvents(ctx context.Context, uid uuid.UUID, raws []stats.RawEvent) (*ImportReport, error) {
	// The importing user owns every imported event, whatever the raw data claims.
	for i := range raws {
		raws[i].OwnerID = uid.String()
	}
	events, dropped := stats.NormalizeAll(raws)
	now := time.Now()
	report := &ImportReport{Dropped: dropped}
	for _, event := range events {
		if event.OccurredAt.After(now) {
			report.Dropped++
			continue
		}
		if _, err := es.repo.Create(ctx, &event); err != nil {
			return nil, errors.New("events repository error: " + err.Error())
		}
		report.Imported++
	}
	return report, nil
}
