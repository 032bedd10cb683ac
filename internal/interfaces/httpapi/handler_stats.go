package httpapi

import (
	"net/http"
)

func (h *Handler) ListStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStreaks")
	defer span.End()

	q, err := h.competitionQueryFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.statsService.Streaks(ctx, q.CompetitionID, q.Zone)
	if err != nil {
		h.logger.WarnContext(ctx, "list streaks failed", "competition_id", q.CompetitionID, "error", err)
		writeError(ctx, w, err)
		return
	}
	out := make([]streakDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, streakDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListCleanSheets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCleanSheets")
	defer span.End()

	q, err := h.competitionQueryFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.statsService.CleanSheets(ctx, q.CompetitionID, q.Zone)
	if err != nil {
		h.logger.WarnContext(ctx, "list clean sheets failed", "competition_id", q.CompetitionID, "error", err)
		writeError(ctx, w, err)
		return
	}
	out := make([]cleanSheetDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, cleanSheetDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListCardRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCardRanking")
	defer span.End()

	q, err := h.competitionQueryFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.statsService.CardRanking(ctx, q.CompetitionID, q.Zone)
	if err != nil {
		h.logger.WarnContext(ctx, "list card ranking failed", "competition_id", q.CompetitionID, "error", err)
		writeError(ctx, w, err)
		return
	}
	out := make([]cardRankingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, cardRankingDTO{
			PlayerID:   row.PlayerID,
			PlayerName: row.PlayerName,
			TeamName:   row.TeamName,
			Yellow:     row.Yellow,
			Red:        row.Red,
			Total:      row.Total(),
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopScorers")
	defer span.End()

	q, err := h.competitionQueryFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.statsService.TopScorers(ctx, q.CompetitionID, q.Zone, q.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list top scorers failed", "competition_id", q.CompetitionID, "error", err)
		writeError(ctx, w, err)
		return
	}
	out := make([]scorerDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, scorerDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListPlayerGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerGoals")
	defer span.End()

	playerID, err := parsePathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	rows, err := h.statsService.PlayerGoals(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player goals failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, eventDetailsToDTO(rows))
}

func (h *Handler) ListPlayerSanctions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerSanctions")
	defer span.End()

	playerID, err := parsePathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	rows, err := h.statsService.PlayerSanctions(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player sanctions failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, eventDetailsToDTO(rows))
}
