package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/league-sync/internal/usecase"
)

type repairScoresRequest struct {
	CompetitionID int64 `json:"competition_id" validate:"gte=0"`
}

func (h *Handler) RunSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSync")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, errSyncDisabled)
		return
	}

	report, err := h.syncService.Run(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrSyncInProgress) {
			h.logger.InfoContext(ctx, "sync trigger rejected", "reason", err)
		} else {
			h.logger.ErrorContext(ctx, "sync run failed", "run_id", report.RunID, "error", err)
		}
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) RepairScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RepairScores")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, errSyncDisabled)
		return
	}

	var req repairScoresRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if len(body) > 0 {
		if err := sonic.Unmarshal(body, &req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON body", usecase.ErrInvalidInput))
			return
		}
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	repairs, err := h.syncService.RepairScores(ctx, req.CompetitionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "score repair failed", "competition_id", req.CompetitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]scoreRepairDTO, 0, len(repairs))
	for _, repair := range repairs {
		out = append(out, scoreRepairToDTO(repair))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLastSyncRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLastSyncRun")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, errSyncDisabled)
		return
	}

	entry, err := h.syncService.LastRun(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, syncLogDTO{
		RunID:            entry.RunID,
		SyncDate:         entry.SyncDate,
		RecordsProcessed: entry.RecordsProcessed,
	})
}
