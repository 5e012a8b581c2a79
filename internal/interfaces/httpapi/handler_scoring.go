package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func (h *Handler) PreviewPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewPoints")
	defer span.End()

	var req performanceRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{
		"points": h.scoringService.PreviewPoints(req.toDomain()),
	})
}

func (h *Handler) ListWeekPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekPoints")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	week, err := pathWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.scoringService.PlayerPoints(ctx, leagueID, week)
	if err != nil {
		h.fail(ctx, w, "list week points failed", err, "league_id", leagueID, "week", week)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerPointsToDTO(items))
}

func (h *Handler) GetManagerWeekPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetManagerWeekPoints")
	defer span.End()

	leagueID, managerID := rosterPath(r)
	week, err := pathWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.ManagerWeekPoints(ctx, leagueID, managerID, week)
	if err != nil {
		h.fail(ctx, w, "get manager week points failed", err, "league_id", leagueID, "manager_id", managerID, "week", week)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, managerWeekPointsDTO{
		ManagerID: result.ManagerID,
		Week:      result.Week,
		Points:    result.Points,
		Players:   playerPointsToDTO(result.Players),
	})
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	rows, err := h.standingsService.Standings(ctx, leagueID)
	if err != nil {
		h.fail(ctx, w, "list standings failed", err, "league_id", leagueID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(rows))
}

func (h *Handler) RecordPerformances(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordPerformances")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req recordPerformancesRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.RecordPerformancesInput{
		UserID:       principal.UserID,
		LeagueID:     req.LeagueID,
		MatchID:      req.MatchID,
		Week:         req.Week,
		Performances: make([]usecase.PlayerPerformanceInput, 0, len(req.Performances)),
	}
	for _, item := range req.Performances {
		input.Performances = append(input.Performances, usecase.PlayerPerformanceInput{
			PlayerID:    item.PlayerID,
			Performance: item.toDomain(),
		})
	}

	recorded, err := h.scoringService.RecordPerformances(ctx, input)
	if err != nil {
		h.fail(ctx, w, "record performances failed", err, "league_id", req.LeagueID, "match_id", req.MatchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"league_id": req.LeagueID,
		"match_id":  req.MatchID,
		"recorded":  recorded,
	})
}
