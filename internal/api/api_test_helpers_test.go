package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api/middleware"
	"github.com/Cipollinka/MinSpiritCountdown/internal/config"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/draw"
	"github.com/Cipollinka/MinSpiritCountdown/internal/events"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/memory"
	"github.com/Cipollinka/MinSpiritCountdown/internal/runner"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service/auth"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

type testServer struct {
	handler http.Handler
	clock   *clockwork.FakeClock
	store   *memory.KVStore
	runner  *runner.Runner
	hub     *events.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithTabs(t, nil)
}

// newTestServerWithTabs lets wrap replace the tab source the runner reads
// default durations from.
func newTestServerWithTabs(t *testing.T, wrap func(runner.TabSource) runner.TabSource) *testServer {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := clockwork.NewFakeClock()
	kv := memory.NewKVStore()

	timers, err := service.NewTimerService(kv, log)
	require.NoError(t, err)
	meditations, err := service.NewMeditationService(kv, log)
	require.NoError(t, err)
	predictions, err := service.NewPredictionService(kv, draw.NewSource(1), log)
	require.NoError(t, err)
	settings, err := service.NewSettingsService(kv, log)
	require.NoError(t, err)
	profiles, err := service.NewProfileService(kv, log)
	require.NoError(t, err)

	jwtService, err := auth.NewJWTServiceWithClock(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	}, clock)
	require.NoError(t, err)

	emitter := events.NewInMemoryEventEmitter(log)
	hub := events.NewHub(16, log)
	emitter.RegisterHandler(hub)

	var tabs runner.TabSource = timers
	if wrap != nil {
		tabs = wrap(tabs)
	}
	run, err := runner.NewRunner(clock, emitter, tabs, runner.DefaultRunnerConfig(), log)
	require.NoError(t, err)
	t.Cleanup(run.Shutdown)

	sessions := &runner.Sessions{Runner: run, Timers: timers, Meditations: meditations}

	handler := NewRouter(Handlers{
		Sessions:    NewSessionHandler(profiles, jwtService, time.Hour, clock),
		Timers:      NewTimerHandler(timers, sessions),
		Meditations: NewMeditationHandler(meditations, sessions),
		Predictions: NewPredictionHandler(predictions),
		Settings:    NewSettingsHandler(settings),
		Countdowns:  NewCountdownHandler(sessions, hub, StreamConfig{}),
	}, middleware.NewAuthMiddleware(jwtService), RouterConfig{Logger: log})

	return &testServer{handler: handler, clock: clock, store: kv, runner: run, hub: hub}
}

// do sends a request with an optional JSON body and bearer token.
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// session opens a session for deviceID and returns its token.
func (s *testServer) session(t *testing.T, deviceID string) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/devices/"+deviceID+"/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SessionResponse
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rec, &body)
	return body.Error
}

// advance moves the fake clock one second once a ticker waits on it.
func (s *testServer) advance(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.clock.BlockUntilContext(ctx, 1))
	s.clock.Advance(time.Second)
}
