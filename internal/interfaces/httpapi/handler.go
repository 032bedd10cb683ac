package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/league-sync/internal/platform/logging"
	"github.com/riskibarqy/league-sync/internal/usecase"
)

const maxRequestBodyBytes = 1 << 16

type Handler struct {
	standingsService *usecase.StandingsService
	statsService     *usecase.StatsService
	syncService      *usecase.SyncService
	logger           *logging.Logger
	validator        *validator.Validate
}

// NewHandler wires the read services. syncService may be nil when the
// process runs without upstream credentials; sync routes then answer 503.
func NewHandler(
	standingsService *usecase.StandingsService,
	statsService *usecase.StatsService,
	syncService *usecase.SyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingsService: standingsService,
		statsService:     statsService,
		syncService:      syncService,
		logger:           logger.Named("httpapi"),
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type competitionQuery struct {
	CompetitionID int64  `validate:"required,gt=0"`
	Zone          string `validate:"omitempty,max=100"`
	Limit         int    `validate:"omitempty,min=1,max=100"`
}

// competitionQueryFromRequest reads the competition path id plus the
// optional zone and limit query parameters.
func (h *Handler) competitionQueryFromRequest(ctx context.Context, r *http.Request) (competitionQuery, error) {
	id, err := parsePathID(r, "competitionID")
	if err != nil {
		return competitionQuery{}, err
	}
	q := competitionQuery{
		CompetitionID: id,
		Zone:          strings.TrimSpace(r.URL.Query().Get("zone")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if q.Limit, err = strconv.Atoi(raw); err != nil {
			return competitionQuery{}, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput)
		}
	}
	if err := h.validateRequest(ctx, q); err != nil {
		return competitionQuery{}, err
	}
	return q, nil
}

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}

func parseBoolQuery(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, name)
	}
	return value, nil
}
