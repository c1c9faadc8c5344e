package httpapi

import (
	"errors"
	"net/http"

	"github.com/riskibarqy/futdraft/internal/platform/logging"
)

type RouterConfig struct {
	Logger             *logging.Logger
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	RateLimiter        *RateLimiter
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	api := http.NewServeMux()
	registerCatalogRoutes(api, handler)
	registerDraftRoutes(api, handler)

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerStreamRoutes(mux, handler)
	mux.Handle("/v1/", RateLimit(cfg.RateLimiter, api))

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

var errPanic = errors.New("handler panicked")

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
				writeError(r.Context(), w, errPanic)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
