package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/futdraft/internal/config"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	cfg := config.Config{
		ServiceName:    "futdraft-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	tel, err := Start(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if tel.tracing || tel.profiler != nil {
		t.Fatalf("expected no exporters, got %+v", tel)
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown telemetry: %v", err)
	}
}

func TestStart_UptraceWithoutDSNStaysOff(t *testing.T) {
	tel, err := Start(config.Config{UptraceEnabled: true}, logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if tel.tracing {
		t.Fatalf("expected tracing off without dsn")
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown telemetry: %v", err)
	}
}

func TestPprof_Disabled(t *testing.T) {
	srv := NewPprofServer(config.Config{PprofEnabled: false})
	if srv != nil {
		t.Fatalf("expected no server when disabled")
	}
	if err := Serve(context.Background(), nil, "pprof", logging.NewNop()); err != nil {
		t.Fatalf("serve nil pprof: %v", err)
	}
}
