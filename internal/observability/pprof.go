package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/futdraft/internal/config"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
)

const shutdownGrace = 5 * time.Second

// NewPprofServer returns nil when profiling endpoints are disabled.
func NewPprofServer(cfg config.Config) *http.Server {
	if !cfg.PprofEnabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	for name, h := range map[string]http.HandlerFunc{
		"cmdline": pprof.Cmdline,
		"profile": pprof.Profile,
		"symbol":  pprof.Symbol,
		"trace":   pprof.Trace,
	} {
		mux.HandleFunc("/debug/pprof/"+name, h)
	}
	return &http.Server{Addr: cfg.PprofAddr, Handler: mux, ReadHeaderTimeout: shutdownGrace}
}

// Serve runs srv until ctx ends and then shuts it down gracefully. A nil srv
// returns immediately.
func Serve(ctx context.Context, srv *http.Server, name string, logger *logging.Logger) error {
	if srv == nil {
		return nil
	}
	logger = logger.With("server", name, "addr", srv.Addr)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s server: %w", name, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s shutdown: %w", name, err)
	}
	logger.Info("server stopped")
	return nil
}
