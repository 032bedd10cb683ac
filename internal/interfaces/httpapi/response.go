package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/league-sync/internal/platform/resilience"
	"github.com/riskibarqy/league-sync/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "league-sync"

	// syncRetryAfter is the hint sent while a run holds the sync lock. Runs
	// usually finish well within it.
	syncRetryAfter = 30 * time.Second
)

// errSyncDisabled answers the sync routes when no report source is wired.
var errSyncDisabled = fmt.Errorf("%w: sync is not configured", usecase.ErrDependencyUnavailable)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	RetryAfter time.Duration
}

// errorMappings is checked in order; the first target found in the chain wins.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{errSyncDisabled, mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "syncDisabled", Status: "UNAVAILABLE"}},
	{usecase.ErrSyncInProgress, mappedError{HTTPStatus: http.StatusConflict, Reason: "syncInProgress", Status: "ABORTED", RetryAfter: syncRetryAfter}},
	{resilience.ErrCircuitOpen, mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "sourceCircuitOpen", Status: "UNAVAILABLE", RetryAfter: syncRetryAfter}},
	{usecase.ErrInvalidInput, mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}},
	{usecase.ErrUnauthorized, mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}},
	{usecase.ErrDependencyUnavailable, mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}},
}

var internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		// Unmapped errors may carry SQL or upstream details.
		message = "internal server error"
	}
	writeMappedError(ctx, w, mapped, message)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeMappedError(ctx, w, internalError, "internal server error")
}

func writeMappedError(ctx context.Context, w http.ResponseWriter, mapped mappedError, message string) {
	if mapped.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(mapped.RetryAfter/time.Second)))
	}
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{{
				Domain:  errorDomain,
				Reason:  mapped.Reason,
				Message: message,
			}},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.mapped
		}
	}
	return internalError
}
