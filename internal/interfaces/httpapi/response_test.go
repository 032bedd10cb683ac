package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/league-sync/internal/platform/resilience"
	"github.com/riskibarqy/league-sync/internal/usecase"
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

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{name: "not found", err: fmt.Errorf("%w: competition id=9", usecase.ErrNotFound), wantStatus: http.StatusNotFound, wantReason: "notFound"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantReason: "unauthorized"},
		{name: "dependency", err: fmt.Errorf("fetch: %w", usecase.ErrDependencyUnavailable), wantStatus: http.StatusServiceUnavailable, wantReason: "dependencyUnavailable"},
		{name: "sync in progress", err: usecase.ErrSyncInProgress, wantStatus: http.StatusConflict, wantReason: "syncInProgress"},
		{name: "sync disabled", err: errSyncDisabled, wantStatus: http.StatusServiceUnavailable, wantReason: "syncDisabled"},
		{name: "source circuit open", err: fmt.Errorf("fetch matches page: %w", errors.Join(resilience.ErrCircuitOpen, errors.New("open state"))), wantStatus: http.StatusServiceUnavailable, wantReason: "sourceCircuitOpen"},
		{name: "unknown", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError, wantReason: "internalError"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := mapError(context.Background(), tc.err)
			if got.HTTPStatus != tc.wantStatus || got.Reason != tc.wantReason {
				t.Fatalf("mapError(%v)=%+v", tc.err, got)
			}
		})
	}
}

func TestWriteError_Headers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		retryAfter  string
		wantMessage string
	}{
		{name: "lock held", err: usecase.ErrSyncInProgress, retryAfter: "30", wantMessage: usecase.ErrSyncInProgress.Error()},
		{name: "bad input", err: fmt.Errorf("%w: limit must be at most 100", usecase.ErrInvalidInput), wantMessage: "invalid input: limit must be at most 100"},
		{name: "unmapped", err: errors.New("pq: relation \"events\" does not exist"), wantMessage: "internal server error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tc.err)

			if got := rec.Header().Get("Retry-After"); got != tc.retryAfter {
				t.Fatalf("expected Retry-After=%q, got=%q", tc.retryAfter, got)
			}
			var body struct {
				Error googleErrorBody `json:"error"`
			}
			if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			if body.Error.Message != tc.wantMessage {
				t.Fatalf("expected message %q, got=%q", tc.wantMessage, body.Error.Message)
			}
		})
	}
}
