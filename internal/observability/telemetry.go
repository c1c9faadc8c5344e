package observability

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/futdraft/internal/config"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
)

// Telemetry owns the process-wide exporters: Uptrace for traces and metrics,
// Pyroscope for continuous profiles. Either may be off.
type Telemetry struct {
	logger   *logging.Logger
	tracing  bool
	profiler *pyroscope.Profiler
}

// Start configures the enabled exporters. On error nothing is left running.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	if cfg.UptraceEnabled && strings.TrimSpace(cfg.UptraceDSN) != "" {
		uptrace.ConfigureOpentelemetry(
			uptrace.WithDSN(cfg.UptraceDSN),
			uptrace.WithServiceName(cfg.ServiceName),
			uptrace.WithServiceVersion(cfg.ServiceVersion),
			uptrace.WithDeploymentEnvironment(cfg.AppEnv),
			uptrace.WithResourceAttributes(attribute.String("service.namespace", "futdraft")),
		)
		t.tracing = true
		logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "environment", cfg.AppEnv)
	} else {
		logger.Info("uptrace disabled", "enabled", cfg.UptraceEnabled, "dsn_set", cfg.UptraceDSN != "")
	}

	if cfg.PyroscopeEnabled {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: cfg.PyroscopeAppName,
			ServerAddress:   cfg.PyroscopeServerAddress,
			AuthToken:       cfg.PyroscopeAuthToken,
			UploadRate:      cfg.PyroscopeUploadRate,
			Tags: map[string]string{
				"env":     cfg.AppEnv,
				"service": cfg.ServiceName,
				"version": cfg.ServiceVersion,
			},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseSpace,
				pyroscope.ProfileGoroutines,
				pyroscope.ProfileMutexDuration,
				pyroscope.ProfileBlockDuration,
			},
		})
		if err != nil {
			return nil, errors.CombineErrors(errors.Wrap(err, "start pyroscope"), t.Shutdown(context.Background()))
		}
		t.profiler = profiler
		logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	}

	return t, nil
}

// Shutdown stops profiling and flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var err error
	if t.profiler != nil {
		err = errors.CombineErrors(err, errors.Wrap(t.profiler.Stop(), "stop pyroscope"))
		t.profiler = nil
	}
	if t.tracing {
		err = errors.CombineErrors(err, errors.Wrap(uptrace.Shutdown(ctx), "shutdown uptrace"))
		t.tracing = false
	}
	return err
}
