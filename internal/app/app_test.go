package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cfg := config.Default()
	cfg.JWT.Secret = "test-secret"
	cfg.Game.Seed = 7

	a := New(cfg, logger)
	store, err := a.openStore(context.Background())
	require.NoError(t, err)
	a.store = store
	a.jwt, err = config.NewJWT(cfg.JWT)
	require.NoError(t, err)
	a.ws = cfg.NewWebSocket()
	a.loadRoutes()
	return a
}

func TestRoutes(t *testing.T) {
	a := newTestApp(t)

	for _, tc := range []struct {
		method, target string
		want           int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodPost, "/game", http.StatusCreated},
		{http.MethodGet, "/game", http.StatusMethodNotAllowed},
		{http.MethodGet, "/game/x", http.StatusBadRequest},
		{http.MethodPost, "/game/00000000-0000-0000-0000-000000000000/reveal", http.StatusUnauthorized},
		{http.MethodPost, "/game/x/forfeit", http.StatusNotFound},
	} {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			a.router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := config.Default()
	cfg.Store.Driver = "sqlite"

	_, err := New(cfg, logger).openStore(context.Background())
	assert.ErrorContains(t, err, "sqlite")
}

func TestStartStopsOnCancel(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	cfg.JWT.Secret = "test-secret"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(cfg, logger).Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
