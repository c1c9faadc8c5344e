package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/riskibarqy/futdraft/internal/interfaces/realtime"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
	"github.com/riskibarqy/futdraft/internal/usecase"
)

// DefaultClassicUsername is recorded when a classic stop names no player.
const DefaultClassicUsername = "Classic Player"

const maxBodyBytes = 64 << 10

type HandlerDeps struct {
	Drafts      *usecase.DraftService
	Players     *usecase.PlayerService
	Trivia      *usecase.TriviaService
	Leaderboard *usecase.LeaderboardService
	Hub         *realtime.Hub
	Logger      *logging.Logger

	// AllowedOrigins gates websocket upgrades; "*" or empty allows any origin.
	AllowedOrigins []string
	StreamPing     time.Duration
}

type Handler struct {
	drafts      *usecase.DraftService
	players     *usecase.PlayerService
	trivia      *usecase.TriviaService
	leaderboard *usecase.LeaderboardService
	hub         *realtime.Hub
	logger      *logging.Logger
	validator   *validator.Validate
	upgrader    websocket.Upgrader
	streamPing  time.Duration
}

func NewHandler(deps HandlerDeps) *Handler {
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}
	if deps.StreamPing <= 0 {
		deps.StreamPing = 30 * time.Second
	}

	return &Handler{
		drafts:      deps.Drafts,
		players:     deps.Players,
		trivia:      deps.Trivia,
		leaderboard: deps.Leaderboard,
		hub:         deps.Hub,
		logger:      deps.Logger,
		validator:   validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(deps.AllowedOrigins),
		},
		streamPing: deps.StreamPing,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody reads a JSON body, rejecting unknown fields. An empty body leaves
// dst untouched when allowEmpty is set.
func (h *Handler) decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxBodyBytes {
		return fmt.Errorf("%w: request body too large", usecase.ErrInvalidInput)
	}
	if strings.TrimSpace(string(body)) == "" {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}

	decoder := sonic.ConfigDefault.NewDecoder(strings.NewReader(string(body)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func originChecker(allowed []string) func(*http.Request) bool {
	allowMap := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		if origin != "" {
			allowMap[origin] = struct{}{}
		}
	}
	if len(allowMap) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			return true
		}
		_, ok := allowMap[origin]
		return ok
	}
}
