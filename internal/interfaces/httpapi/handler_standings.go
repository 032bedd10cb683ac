package httpapi

import (
	"net/http"

	"github.com/riskibarqy/league-sync/internal/domain/standing"
)

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.standingsService.ListCompetitions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]competitionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, competitionToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListZones(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListZones")
	defer span.End()

	q, err := h.competitionQueryFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	zones, err := h.standingsService.ListZones(ctx, q.CompetitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list zones failed", "competition_id", q.CompetitionID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, zones)
}

// GetStandings serves the whole-competition table, or one zone with ?zone=.
// ?extended=true attaches recent form.
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	q, err := h.competitionQueryFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	extended, err := parseBoolQuery(r, "extended")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var rows []standing.TeamStanding
	if extended {
		rows, err = h.standingsService.ExtendedStandings(ctx, q.CompetitionID, q.Zone)
	} else {
		rows, err = h.standingsService.Standings(ctx, q.CompetitionID, q.Zone)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "competition_id", q.CompetitionID, "zone", q.Zone, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(rows))
}

func (h *Handler) GetAllZoneStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAllZoneStandings")
	defer span.End()

	q, err := h.competitionQueryFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tables, err := h.standingsService.AllZoneStandings(ctx, q.CompetitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get zone standings failed", "competition_id", q.CompetitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]zoneTableDTO, 0, len(tables))
	for _, table := range tables {
		out = append(out, zoneTableDTO{Zone: table.Zone, Standings: standingsToDTO(table.Standings)})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
