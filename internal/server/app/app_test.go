package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdesk/internal/server/config"
)

func TestNewAndServeShutdown(t *testing.T) {
	cfg := config.Config{
		HTTPAddr:        "127.0.0.1:0",
		DatabaseDSN:     "file:app_serve?mode=memory&cache=shared",
		MaxRequestBytes: 1 << 20,
		KafkaTopic:      "user-events",
	}
	a, err := New(cfg, "1.0.0", "2026-10-19", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewFailsOnUnreachableBrokers(t *testing.T) {
	cfg := config.Config{
		HTTPAddr:     "127.0.0.1:0",
		DatabaseDSN:  "file:app_brokers?mode=memory&cache=shared",
		KafkaBrokers: []string{"127.0.0.1:1"},
		KafkaTopic:   "user-events",
	}
	_, err := New(cfg, "dev", "unknown", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
