package app

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/futdraft/internal/config"
	"github.com/riskibarqy/futdraft/internal/interfaces/httpapi"
	"github.com/riskibarqy/futdraft/internal/interfaces/realtime"
	"github.com/riskibarqy/futdraft/internal/observability"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
	"github.com/riskibarqy/futdraft/internal/usecase"
)

const (
	limiterSweepIdle = 5 * time.Minute
	stoppedRetention = 15 * time.Minute
)

// App owns every long-lived component of the API process.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	clock   clockwork.Clock
	stores  *stores
	drafts  *usecase.DraftService
	hub     *realtime.Hub
	bridge  *realtime.NATSBridge
	limiter *httpapi.RateLimiter
	server  *http.Server
	pprof   *http.Server
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	return newApp(ctx, cfg, logger, clockwork.NewRealClock())
}

func newApp(ctx context.Context, cfg config.Config, logger *logging.Logger, clock clockwork.Clock) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, errors.New("http server addr cannot be empty")
	}

	st, err := openStores(ctx, cfg, logger, clock)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, logger: logger, clock: clock, stores: st}

	a.hub, err = realtime.NewHub(realtime.HubConfig{
		PoolSize:  cfg.WorkerPoolSize,
		QueueSize: cfg.StreamQueueSize,
		Logger:    logger,
	})
	if err != nil {
		_ = st.close()
		return nil, err
	}

	a.drafts = usecase.NewDraftService(usecase.DraftSessionConfig{
		Repository:  st.drafts,
		Leaderboard: st.leaderboard,
		Publisher:   a.hub,
		Clock:       clock,
		Logger:      logger,
	}, st.players)

	if cfg.NATSEnabled {
		conn, err := realtime.ConnectNATS(realtime.NATSConfig{
			URL:  cfg.NATSURL,
			Name: cfg.ServiceName,
		}, logger)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.bridge = realtime.NewNATSBridge(conn, cfg.NATSSubjectPrefix, logger)
		a.hub.AddSink(a.bridge)
		if err := a.bridge.Listen(a.drafts); err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	handler := httpapi.NewHandler(httpapi.HandlerDeps{
		Drafts:         a.drafts,
		Players:        usecase.NewPlayerService(st.players),
		Trivia:         usecase.NewTriviaService(st.trivia, a.drafts),
		Leaderboard:    usecase.NewLeaderboardService(st.leaderboard),
		Hub:            a.hub,
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	if cfg.RateLimitRPS > 0 {
		a.limiter = httpapi.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	a.server = &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(handler, httpapi.RouterConfig{
			Logger:             logger,
			SwaggerEnabled:     cfg.SwaggerEnabled,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimiter:        a.limiter,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	a.pprof = observability.NewPprofServer(cfg)

	return a, nil
}

// Handler exposes the routed API without a listener.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx ends or a server fails, then shuts down.
func (a *App) Run(ctx context.Context) error {
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	p.Go(func(ctx context.Context) error {
		return observability.Serve(ctx, a.server, "http", a.logger)
	})
	p.Go(func(ctx context.Context) error {
		return observability.Serve(ctx, a.pprof, "pprof", a.logger)
	})
	p.Go(func(ctx context.Context) error {
		a.sweep(ctx)
		return nil
	})

	runErr := p.Wait()
	return errors.CombineErrors(runErr, a.Close())
}

// sweep drops idle limiter buckets and stopped drafts once a minute.
func (a *App) sweep(ctx context.Context) {
	ticker := a.clock.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if a.limiter != nil {
				if n := a.limiter.Sweep(limiterSweepIdle); n > 0 {
					a.logger.Debug("rate limiter swept", "clients", n)
				}
			}
			if n := a.drafts.SweepStopped(stoppedRetention); n > 0 {
				a.logger.Debug("stopped drafts swept", "sessions", n)
			}
		}
	}
}

// Close stops draft loops without writing, then releases transports and stores.
func (a *App) Close() error {
	if a.drafts != nil {
		a.drafts.Shutdown()
	}
	var err error
	if a.bridge != nil {
		err = errors.CombineErrors(err, a.bridge.Close())
	}
	if a.hub != nil {
		a.hub.Close()
	}
	if a.stores != nil {
		err = errors.CombineErrors(err, a.stores.close())
	}
	return err
}
