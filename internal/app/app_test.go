package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/futdraft/internal/config"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                   config.EnvDev,
		ServiceName:              "futdraft-test",
		HTTPAddr:                 "127.0.0.1:0",
		ReadTimeout:              time.Second,
		WriteTimeout:             time.Second,
		CORSAllowedOrigins:       []string{"*"},
		StoreBackend:             config.StoreMemory,
		SeedData:                 true,
		StoreCircuitEnabled:      true,
		StoreCircuitFailureCount: 3,
		StoreCircuitOpenTimeout:  time.Second,
		PlayerCacheTTL:           time.Minute,
		RateLimitRPS:             10,
		RateLimitBurst:           10,
		WorkerPoolSize:           2,
		StreamQueueSize:          4,
		NATSSubjectPrefix:        "futdraft.drafts",
	}
}

func TestNewApp_ServesSeededCatalog(t *testing.T) {
	a, err := newApp(context.Background(), memoryConfig(), logging.NewNop(), clockwork.NewFakeClock())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			t.Fatalf("close app: %v", err)
		}
	}()

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected healthz status: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players/rodri", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected player status: %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"rodri"`) {
		t.Fatalf("expected seeded player in body: %s", rec.Body.String())
	}
}

func TestNewApp_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := newApp(context.Background(), cfg, logging.NewNop(), clockwork.NewFakeClock()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	a, err := newApp(context.Background(), memoryConfig(), logging.NewNop(), clockwork.NewFakeClock())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not stop after cancel")
	}
}
