package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	errorvalues "github.com/limbo/lifelog/internal/error_values"
	"github.com/limbo/lifelog/internal/stats"
	"github.com/limbo/lifelog/pkg/entity"
	"github.com/limbo/lifelog/pkg/httputil"
)

type HeatmapCell struct {
	Date  stats.DateBucket `json:"date"`
	Value float64          `json:"value"`
	Level int              `json:"level"`
}

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("dashboard error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	summary, err := s.statsService.DashboardSummary(ctx, uid)
	if err != nil {
		logger.Error("dashboard error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while computing dashboard summary", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("dashboard summary provided")
}

func (s *Server) TrendSeries(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("trend error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	kind := entity.Kind(r.PathValue("kind"))
	metric := r.URL.Query().Get("metric")
	windowDays, _ := strconv.Atoi(r.URL.Query().Get("window"))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	series, err := s.statsService.TrendSeries(ctx, uid, kind, metric, windowDays)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUnknownMetric) {
			logger.Error("trend error: unknown metric")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "unknown metric", nil)
			return
		}
		logger.Error("trend error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while computing trend series", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"kind":   kind,
		"series": series,
	})
	logger.Info("trend series provided")
}

func (s *Server) Heatmap(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("heatmap error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	kind := entity.Kind(r.PathValue("kind"))
	metric := r.URL.Query().Get("metric")
	windowDays, _ := strconv.Atoi(r.URL.Query().Get("window"))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	series, err := s.statsService.Heatmap(ctx, uid, kind, metric, windowDays)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUnknownMetric) {
			logger.Error("heatmap error: unknown metric")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "unknown metric", nil)
			return
		}
		logger.Error("heatmap error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while computing heatmap", nil)
		return
	}
	cells := make([]HeatmapCell, len(series))
	for i, point := range series {
		cells[i] = HeatmapCell{
			Date:  point.Date,
			Value: point.Value,
			Level: stats.HeatLevel(point.Value),
		}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"kind":  kind,
		"cells": cells,
	})
	logger.Info("heatmap provided")
}

func (s *Server) Leaderboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	kind := entity.Kind(r.URL.Query().Get("kind"))
	metric := r.URL.Query().Get("metric")
	topN, _ := strconv.Atoi(r.URL.Query().Get("top"))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	entries, err := s.statsService.Leaderboard(ctx, kind, metric, topN)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUnknownMetric) {
			logger.Error("leaderboard error: unknown metric")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "unknown metric", nil)
			return
		}
		logger.Error("leaderboard error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while computing leaderboard", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"entries": entries,
	})
	logger.Info("leaderboard provided")
}
