package api_test

import (
	"bufio"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/colorflash/internal/api"
	"github.com/vytor/colorflash/internal/game"
	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/models"
	"github.com/vytor/colorflash/internal/repository/memory"
	"github.com/vytor/colorflash/internal/services"
	"github.com/vytor/colorflash/internal/testutil/mocks"
)

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newServer(t *testing.T) (*api.Server, *game.Engine) {
	t.Helper()
	results := memory.NewResultRepository()
	engine := game.New(context.Background(), memory.NewKeyValueStore(),
		game.WithScheduler(game.NewManualScheduler()),
		game.WithResults(results),
		game.WithLogger(logger.Discard()),
	)
	t.Cleanup(engine.Close)
	return &api.Server{
		Engine:            engine,
		StatsService:      services.NewStatsService(results),
		DB:                pinger{},
		HeartbeatInterval: time.Hour,
	}, engine
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndReady(t *testing.T) {
	s, _ := newServer(t)
	h := s.Routes()

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	s.DB = pinger{err: stderrors.New("closed")}
	rec = do(t, s.Routes(), http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "UNAVAILABLE", decode[errorResponse](t, rec).Error.Code)
}

func TestGameFlow(t *testing.T) {
	s, engine := newServer(t)
	h := s.Routes()

	rec := do(t, h, http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"not_started"`)

	rec = do(t, h, http.MethodPost, "/api/game/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[models.Snapshot](t, rec)
	assert.Equal(t, models.StatePlaying, snap.State)
	assert.Equal(t, 30.0, snap.TimeRemaining)
	assert.Len(t, snap.ColorOptions, 4)

	rec = do(t, h, http.MethodPost, "/api/game/select", `{"color":"`+snap.TargetColor.Hex()+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	snap = decode[models.Snapshot](t, rec)
	assert.Equal(t, 12, snap.Score)
	assert.Equal(t, 1, snap.Streak)

	rec = do(t, h, http.MethodPost, "/api/game/pause", "")
	assert.Equal(t, models.StatePaused, decode[models.Snapshot](t, rec).State)
	rec = do(t, h, http.MethodPost, "/api/game/resume", "")
	assert.Equal(t, models.StatePlaying, decode[models.Snapshot](t, rec).State)

	rec = do(t, h, http.MethodPost, "/api/game/end", "")
	snap = decode[models.Snapshot](t, rec)
	assert.Equal(t, models.StateGameOver, snap.State)
	assert.Equal(t, 12, snap.HighScore)

	rec = do(t, h, http.MethodPost, "/api/game/menu", "")
	assert.Equal(t, models.StateNotStarted, decode[models.Snapshot](t, rec).State)
	assert.Equal(t, models.StateNotStarted, engine.Snapshot().State)
}

func TestInvalidTransitionIsNoop(t *testing.T) {
	s, _ := newServer(t)
	h := s.Routes()

	rec := do(t, h, http.MethodPost, "/api/game/pause", "")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[models.Snapshot](t, rec)
	assert.Equal(t, models.StateNotStarted, snap.State)
	assert.Equal(t, uint64(0), snap.Version)
}

func TestSelect_BadInput(t *testing.T) {
	s, _ := newServer(t)
	h := s.Routes()
	do(t, h, http.MethodPost, "/api/game/start", "")

	cases := map[string]string{
		"bad color":     `{"color":"chartreuse-ish"}`,
		"empty body":    ``,
		"unknown field": `{"colour":"#ffffff"}`,
		"not json":      `color=#ffffff`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/game/select", strings.NewReader(body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[errorResponse](t, rec).Error.Code)
		})
	}
	assert.Equal(t, models.StatePlaying, s.Engine.Snapshot().State)
}

func TestSettings(t *testing.T) {
	s, _ := newServer(t)
	h := s.Routes()

	rec := do(t, h, http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Settings{Difficulty: models.DifficultyNormal}, decode[models.Settings](t, rec))

	rec = do(t, h, http.MethodPut, "/api/settings", `{"difficulty":"hard"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Settings{Difficulty: models.DifficultyHard}, decode[models.Settings](t, rec))

	rec = do(t, h, http.MethodPut, "/api/settings", `{"sound_enabled":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Settings{SoundEnabled: true, Difficulty: models.DifficultyHard}, decode[models.Settings](t, rec))

	rec = do(t, h, http.MethodPut, "/api/settings", `{"difficulty":"Brutal"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[errorResponse](t, rec).Error.Code)
	assert.Equal(t, models.DifficultyHard, s.Engine.Settings().Difficulty)
}

func TestSettings_ConcurrentPartialUpdatesKeepBothFields(t *testing.T) {
	s, _ := newServer(t)
	h := s.Routes()

	for i := 0; i < 50; i++ {
		rec := do(t, h, http.MethodPut, "/api/settings", `{"sound_enabled":false,"difficulty":"Normal"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			do(t, h, http.MethodPut, "/api/settings", `{"sound_enabled":true}`)
		}()
		go func() {
			defer wg.Done()
			do(t, h, http.MethodPut, "/api/settings", `{"difficulty":"Hard"}`)
		}()
		wg.Wait()

		require.Equal(t, models.Settings{SoundEnabled: true, Difficulty: models.DifficultyHard}, s.Engine.Settings(), "round %d", i)
	}
}

func TestPalette(t *testing.T) {
	s, _ := newServer(t)
	rec := do(t, s.Routes(), http.MethodGet, "/api/palette", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Colors []string `json:"colors"`
	}](t, rec)
	require.Len(t, body.Colors, len(models.DefaultPalette))
	assert.Equal(t, "#fbd600", body.Colors[0])
}

func TestStatsEndpoints(t *testing.T) {
	s, engine := newServer(t)
	h := s.Routes()

	engine.StartGame()
	engine.SelectColor(engine.Snapshot().TargetColor)
	engine.EndGame()

	require.Eventually(t, func() bool {
		rec := do(t, h, http.MethodGet, "/api/results?limit=5", "")
		return rec.Code == http.StatusOK && strings.Contains(rec.Body.String(), `"end_reason":"quit"`)
	}, time.Second, 5*time.Millisecond)

	rec := do(t, h, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.ResultStats](t, rec)
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 12, stats.BestScores[models.DifficultyNormal])

	rec = do(t, h, http.MethodGet, "/api/stats/best", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.BestScore](t, rec), 1)
}

func TestResults_LimitValidation(t *testing.T) {
	s, _ := newServer(t)
	h := s.Routes()

	for _, q := range []string{"0", "101", "abc", "-3"} {
		rec := do(t, h, http.MethodGet, "/api/results?limit="+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Equal(t, "VALIDATION_ERROR", decode[errorResponse](t, rec).Error.Code, q)
	}

	rec := do(t, h, http.MethodGet, "/api/results", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestStats_RepositoryFailure(t *testing.T) {
	s, _ := newServer(t)
	repo := new(mocks.MockResultRepository)
	repo.On("Stats", mock.Anything).Return(nil, stderrors.New("disk full"))
	s.StatsService = services.NewStatsService(repo)

	rec := do(t, s.Routes(), http.MethodGet, "/api/stats", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[errorResponse](t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "disk full")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	s, _ := newServer(t)
	h := s.Routes()

	rec := do(t, h, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorResponse](t, rec).Error.Code)

	rec = do(t, h, http.MethodGet, "/api/game/start", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func readEvent(t *testing.T, r *bufio.Reader) (event string, data string) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "" && data != "":
			return event, data
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestEvents_StreamsSnapshots(t *testing.T) {
	s, engine := newServer(t)
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	event, data := readEvent(t, reader)
	assert.Equal(t, "snapshot", event)
	var snap models.Snapshot
	require.NoError(t, json.Unmarshal([]byte(data), &snap))
	assert.Equal(t, models.StateNotStarted, snap.State)

	engine.StartGame()
	_, data = readEvent(t, reader)
	require.NoError(t, json.Unmarshal([]byte(data), &snap))
	assert.Equal(t, models.StatePlaying, snap.State)

	cancel()
	assert.Eventually(t, func() bool { return engine.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}
