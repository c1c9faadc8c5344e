package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_HidesInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: password authentication failed"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	var body envelope[any]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil || body.Error.Message != "internal server error" {
		t.Fatalf("expected generic message, got %+v", body.Error)
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{
			name:   "purchase rejected",
			err:    draft.Invalid(draft.ErrInsufficientFunds, "price=%d purse=%d", 10, 5),
			status: http.StatusBadRequest,
			reason: "insufficientFunds",
		},
		{
			name:   "quota",
			err:    draft.Invalid(draft.ErrRoleQuotaExceeded, "role=keeper"),
			status: http.StatusBadRequest,
			reason: "roleQuotaExceeded",
		},
		{
			name:   "session already running",
			err:    draft.Invalid(draft.ErrSessionActive, "id=d1"),
			status: http.StatusConflict,
			reason: "sessionActive",
		},
		{
			name:   "session stopped",
			err:    draft.Invalid(draft.ErrSessionNotActive, "id=d1"),
			status: http.StatusConflict,
			reason: "sessionNotActive",
		},
		{
			name:   "bad input",
			err:    fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput),
			status: http.StatusBadRequest,
			reason: "invalidInput",
		},
		{
			name:   "missing",
			err:    fmt.Errorf("%w: draft session=d1", usecase.ErrNotFound),
			status: http.StatusNotFound,
			reason: "notFound",
		},
		{
			name:   "write failed",
			err:    draft.PersistenceFailed("save draft", errors.New("timeout")),
			status: http.StatusServiceUnavailable,
			reason: "persistenceFailed",
		},
		{
			name:   "dependency",
			err:    fmt.Errorf("%w: list players", usecase.ErrDependencyUnavailable),
			status: http.StatusServiceUnavailable,
			reason: "dependencyUnavailable",
		},
		{
			name:   "misconfigured",
			err:    draft.Misconfigured(errors.New("formation has 10 slots")),
			status: http.StatusInternalServerError,
			reason: "misconfigured",
		},
		{
			name:   "throttled",
			err:    errRateLimited,
			status: http.StatusTooManyRequests,
			reason: "rateLimitExceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if got.status != tt.status || got.reason != tt.reason {
				t.Fatalf("mapError(%v) = %d/%s, want %d/%s", tt.err, got.status, got.reason, tt.status, tt.reason)
			}
		})
	}
}

func TestStopUsername(t *testing.T) {
	blank := "  "
	named := " Ada "
	tests := []struct {
		name      string
		requested *string
		mode      draft.Mode
		want      string
	}{
		{name: "classic default", mode: draft.ModeClassic, want: DefaultClassicUsername},
		{name: "blank falls back", requested: &blank, mode: draft.ModeClassic, want: DefaultClassicUsername},
		{name: "wildcard default", mode: draft.ModeWildcard, want: usecase.WildcardUsername},
		{name: "trimmed name", requested: &named, mode: draft.ModeWildcard, want: "Ada"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stopUsername(tt.requested, tt.mode); got != tt.want {
				t.Fatalf("stopUsername() = %q, want %q", got, tt.want)
			}
		})
	}
}
