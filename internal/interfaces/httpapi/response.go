package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/usecase"
)

// Responses follow the Google JSON style guide envelope.
const (
	apiVersion  = "2.0"
	errorDomain = "futdraft"
)

type responseBody struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Status  string        `json:"status"`
	Errors  []errorDetail `json:"errors,omitempty"`
}

type errorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorMapping struct {
	status int
	reason string
	code   string
}

// errorRules is matched in order; the first sentinel found in the chain wins.
// An empty reason defers to draft.ReasonCode.
var errorRules = []struct {
	targets []error
	errorMapping
}{
	{[]error{draft.ErrSessionActive, draft.ErrSessionNotActive}, errorMapping{http.StatusConflict, "", "FAILED_PRECONDITION"}},
	{[]error{usecase.ErrValidation}, errorMapping{http.StatusBadRequest, "", "INVALID_ARGUMENT"}},
	{[]error{usecase.ErrInvalidInput}, errorMapping{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{[]error{usecase.ErrNotFound}, errorMapping{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{[]error{errRateLimited}, errorMapping{http.StatusTooManyRequests, "rateLimitExceeded", "RESOURCE_EXHAUSTED"}},
	{[]error{usecase.ErrPersistence}, errorMapping{http.StatusServiceUnavailable, "persistenceFailed", "UNAVAILABLE"}},
	{[]error{usecase.ErrDependencyUnavailable}, errorMapping{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{[]error{usecase.ErrConfiguration}, errorMapping{http.StatusInternalServerError, "misconfigured", "INTERNAL"}},
}

var internalError = errorMapping{http.StatusInternalServerError, "internalError", "INTERNAL"}

func mapError(err error) errorMapping {
	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if !errors.Is(err, target) {
				continue
			}
			m := rule.errorMapping
			if m.reason == "" {
				m.reason = draft.ReasonCode(err)
			}
			if m.reason == "" {
				m.reason = "invalidDraftOperation"
			}
			return m
		}
	}
	return internalError
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, responseBody{APIVersion: apiVersion, Data: data})
}

// writeError never exposes the message of an unmapped or internal error.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	m := mapError(err)
	msg := err.Error()
	if m.status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeJSON(ctx, w, m.status, responseBody{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    m.status,
			Message: msg,
			Status:  m.code,
			Errors:  []errorDetail{{Domain: errorDomain, Reason: m.reason, Message: msg}},
		},
	})
}
