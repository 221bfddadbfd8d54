package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/lifelog/internal/error_values"
	"github.com/limbo/lifelog/internal/service"
	"github.com/limbo/lifelog/internal/stats"
	"github.com/limbo/lifelog/pkg/entity"
	"github.com/limbo/lifelog/pkg/httputil"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LogEventRequest struct {
	Kind       string         `json:"kind"`
	Payload    map[string]any `json:"payload"`
	Visibility string         `json:"visibility"`
	OccurredAt string         `json:"occurred_at"`
}

type GetEventsResponse struct {
	UserID string         `json:"uid"`
	Events []entity.Event `json:"events"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such name already exists", nil)
			return
		}
		logger.Error("registering error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID.String(),
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("login error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user with such name doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid username or password", nil)
			return
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
			return
		}
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID.String(),
		"token": token,
	})
	logger.Info("successful login")
}

func (s *Server) LogEvent(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("log event error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req LogEventRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("log event error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	event, err := s.eventsService.LogEvent(ctx, uid, &service.LogEventRequest{
		Kind:       req.Kind,
		Payload:    req.Payload,
		Visibility: req.Visibility,
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrMissingField):
			logger.Error("log event error: malformed event")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "event is missing a required field", err)
		case errors.Is(err, errorvalues.ErrEventDateNotAllowed):
			logger.Error("log event error: future date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "event date may not be in the future", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("log event error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't log event: user doesn't exists", nil)
		default:
			logger.Error("log event error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while logging event", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"event_id": event.ID.String()})
	logger.Info("event logged")
}

func (s *Server) GetEvents(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get events error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	opts := service.EventsQueryOpts{}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		opts.Kinds = []entity.Kind{entity.Kind(kind)}
	}
	if from := r.URL.Query().Get("from"); from != "" {
		bucket, err := stats.ParseBucket(from)
		if err != nil {
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid from date", nil)
			return
		}
		fromTime := bucket.Time()
		opts.From = &fromTime
	}
	if to := r.URL.Query().Get("to"); to != "" {
		bucket, err := stats.ParseBucket(to)
		if err != nil {
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid to date", nil)
			return
		}
		// Inclusive upper bound: the whole last day belongs to the range.
		toTime := bucket.AddDays(1).Time().Add(-time.Nanosecond)
		opts.To = &toTime
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		opts.Limit, err = strconv.Atoi(limit)
		if err != nil || opts.Limit < 0 {
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid limit", nil)
			return
		}
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		opts.Offset, err = strconv.Atoi(offset)
		if err != nil || opts.Offset < 0 {
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid offset", nil)
			return
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	events, err := s.eventsService.GetEvents(ctx, uid, opts)
	if err != nil {
		logger.Error("getting events list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting events list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetEventsResponse{
		UserID: uid.String(),
		Events: events,
	})
	logger.Info("events provided")
}

func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("event deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("event deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid event id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.eventsService.DeleteEvent(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrEventNotFound):
			logger.Error("event deletion error: unexist event")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "event doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("event deletion error: event has different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "event doesn't exist", nil)
		default:
			logger.Error("event deletion error: service error")
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting event", nil)
		}
		return
	}
	logger.Info("event deleted")
}

func (s *Server) ImportEvents(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("import error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var raws []stats.RawEvent
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&raws)
	if err != nil {
		logger.Error("import error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	report, err := s.eventsService.ImportEvents(ctx, uid, raws)
	if err != nil {
		logger.Error("import error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while importing events", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, report)
	logger.Info("events imported",
		slog.Int("imported", report.Imported),
		slog.Int("dropped", report.Dropped))
}
