package api_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/limbo/lifelog/internal/api"
	errorvalues "github.com/limbo/lifelog/internal/error_values"
	"github.com/limbo/lifelog/internal/service"
	"github.com/limbo/lifelog/internal/stats"
	"github.com/limbo/lifelog/pkg/entity"
	jwtservice "github.com/limbo/lifelog/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	uid      = uuid.New()
	username = "test_user"
	testUser = &entity.User{ID: uid, Name: username, PasswordHash: "hash"}
)

type UserServiceMock struct {
	success bool
}

func (m *UserServiceMock) ChangeState(success bool) { m.success = success }

func (m *UserServiceMock) Register(ctx context.Context, req *service.RegisterRequest) (*entity.User, error) {
	if m.success {
		return testUser, nil
	}
	return nil, errorvalues.ErrUserExists
}

func (m *UserServiceMock) Login(ctx context.Context, name, password string) (*entity.User, error) {
	if m.success {
		return testUser, nil
	}
	return nil, errorvalues.ErrUserNotFound
}

func (m *UserServiceMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.success {
		return testUser, nil
	}
	return nil, errorvalues.ErrUserNotFound
}

func (m *UserServiceMock) GetByName(ctx context.Context, name string) (*entity.User, error) {
	if m.success {
		return testUser, nil
	}
	return nil, errorvalues.ErrUserNotFound
}

func (m *UserServiceMock) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	if m.success {
		return nil
	}
	return errorvalues.ErrUserNotFound
}

type EventsServiceMock struct {
	success bool
	lastErr error
}

func (m *EventsServiceMock) fail(err error) { m.success, m.lastErr = false, err }

func (m *EventsServiceMock) LogEvent(ctx context.Context, owner uuid.UUID, req *service.LogEventRequest) (*entity.Event, error) {
	if m.success {
		return &entity.Event{ID: uuid.New(), OwnerID: owner, Kind: entity.Kind(req.Kind)}, nil
	}
	return nil, m.lastErr
}

func (m *EventsServiceMock) GetEvents(ctx context.Context, owner uuid.UUID, opts service.EventsQueryOpts) ([]entity.Event, error) {
	if m.success {
		return []entity.Event{{ID: uuid.New(), OwnerID: owner, Kind: entity.KindWater}}, nil
	}
	return nil, m.lastErr
}

func (m *EventsServiceMock) DeleteEvent(ctx context.Context, eventID, owner uuid.UUID) error {
	if m.success {
		return nil
	}
	return m.lastErr
}

func (m *EventsServiceMock) ImportEvents(ctx context.Context, owner uuid.UUID, raws []stats.RawEvent) (*service.ImportReport, error) {
	if m.success {
		return &service.ImportReport{Imported: len(raws)}, nil
	}
	return nil, m.lastErr
}

type StatsServiceMock struct {
	success bool
	lastErr error
}

func (m *StatsServiceMock) fail(err error) { m.success, m.lastErr = false, err }

func (m *StatsServiceMock) DashboardSummary(ctx context.Context, owner uuid.UUID) (*stats.DashboardSummary, error) {
	if m.success {
		return &stats.DashboardSummary{Streak: 3, TodayCount: 2}, nil
	}
	return nil, m.lastErr
}

func (m *StatsServiceMock) TrendSeries(ctx context.Context, owner uuid.UUID, kind entity.Kind, metric string, windowDays int) (stats.AggregateSeries, error) {
	if m.success {
		return stats.AggregateSeries{{Value: 1}}, nil
	}
	return nil, m.lastErr
}

func (m *StatsServiceMock) Heatmap(ctx context.Context, owner uuid.UUID, kind entity.Kind, metric string, windowDays int) (stats.AggregateSeries, error) {
	if m.success {
		return stats.AggregateSeries{{Value: 4}}, nil
	}
	return nil, m.lastErr
}

func (m *StatsServiceMock) Leaderboard(ctx context.Context, kind entity.Kind, metric string, topN int) ([]stats.RankedEntry, error) {
	if m.success {
		return []stats.RankedEntry{{OwnerID: uid, Score: 10, Rank: 1}}, nil
	}
	return nil, m.lastErr
}

type testEnv struct {
	server    *api.Server
	users     *UserServiceMock
	events    *EventsServiceMock
	stats     *StatsServiceMock
	authToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := &UserServiceMock{success: true}
	events := &EventsServiceMock{success: true}
	statsMock := &StatsServiceMock{success: true}
	jwtService := jwtservice.New("test_secret")
	server := api.New(&api.ServicesList{
		UserService:   users,
		EventsService: events,
		StatsService:  statsMock,
		JwtService:    jwtService,
	})
	token, err := jwtService.GenerateToken(testUser)
	require.NoError(t, err)
	return &testEnv{
		server:    server,
		users:     users,
		events:    events,
		stats:     statsMock,
		authToken: "Bearer " + token,
	}
}

func (env *testEnv) do(t *testing.T, method, target string, body any, authorized bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if authorized {
		req.Header.Set("Authorization", env.authToken)
	}
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRegisterHandler(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/register", RegisterBody("new_user", "password123"), false)
	assert.Equal(t, http.StatusCreated, rec.Code)

	env.users.ChangeState(false)
	rec = env.do(t, http.MethodPost, "/api/v1/register", RegisterBody("new_user", "password123"), false)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func RegisterBody(name, password string) map[string]string {
	return map[string]string{"name": name, "password": password}
}

func TestLoginHandler(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/login", RegisterBody(username, "password123"), false)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uid.String(), resp["uid"])
	assert.NotEmpty(t, resp["token"])

	env.users.ChangeState(false)
	rec = env.do(t, http.MethodPost, "/api/v1/login", RegisterBody(username, "password123"), false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)
	for _, target := range []string{
		"/api/v1/events",
		"/api/v1/stats/dashboard",
		"/api/v1/stats/trends/water",
		"/api/v1/leaderboard",
	} {
		rec := env.do(t, http.MethodGet, target, nil, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestLogEventHandler(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]any{
		"kind":        "water",
		"payload":     map[string]any{"amount": 300},
		"occurred_at": "2024-01-01T08:00:00Z",
	}
	rec := env.do(t, http.MethodPost, "/api/v1/events", body, true)
	assert.Equal(t, http.StatusCreated, rec.Code)

	env.events.fail(errorvalues.ErrEventDateNotAllowed)
	rec = env.do(t, http.MethodPost, "/api/v1/events", body, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.events.fail(errors.New("db down"))
	rec = env.do(t, http.MethodPost, "/api/v1/events", body, true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetEventsHandler(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/events?kind=water&from=2024-01-01&to=2024-01-31", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		UserID string         `json:"uid"`
		Events []entity.Event `json:"events"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uid.String(), resp.UserID)
	assert.Len(t, resp.Events, 1)

	rec = env.do(t, http.MethodGet, "/api/v1/events?from=01/01/2024", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEventHandler(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodDelete, "/api/v1/events/"+uuid.NewString(), nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/events/not-an-id", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.events.fail(errorvalues.ErrEventNotFound)
	rec = env.do(t, http.MethodDelete, "/api/v1/events/"+uuid.NewString(), nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportEventsHandler(t *testing.T) {
	env := newTestEnv(t)
	body := []map[string]any{
		{"kind": "water", "occurred_at": "2024-01-01"},
		{"kind": "meal", "occurred_at": "2024-01-02"},
	}
	rec := env.do(t, http.MethodPost, "/api/v1/events/import", body, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var report service.ImportReport
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Imported)
}

func TestDashboardHandler(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/stats/dashboard", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary stats.DashboardSummary
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.Streak)

	env.stats.fail(errors.New("store unavailable"))
	rec = env.do(t, http.MethodGet, "/api/v1/stats/dashboard", nil, true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTrendSeriesHandler(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/stats/trends/water?metric=count&window=7", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)

	env.stats.fail(errorvalues.ErrUnknownMetric)
	rec = env.do(t, http.MethodGet, "/api/v1/stats/trends/water?metric=median", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.stats.fail(errors.New("store unavailable"))
	rec = env.do(t, http.MethodGet, "/api/v1/stats/trends/water?metric=count", nil, true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHeatmapHandler(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/stats/heatmap/exercise?window=30", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Cells []api.HeatmapCell `json:"cells"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Cells, 1)
	assert.Equal(t, 2, resp.Cells[0].Level)
}

func TestLeaderboardHandler(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/leaderboard?metric=count&top=5", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Entries []stats.RankedEntry `json:"entries"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, 1, resp.Entries[0].Rank)

	env.stats.fail(errorvalues.ErrUnknownMetric)
	rec = env.do(t, http.MethodGet, "/api/v1/leaderboard?metric=median", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
