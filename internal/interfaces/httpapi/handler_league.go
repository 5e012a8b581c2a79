package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	items, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.fail(ctx, w, "list leagues failed", err)
		return
	}

	out := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, leagueToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	item, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		h.fail(ctx, w, "get league failed", err, "league_id", leagueID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item))
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createLeagueRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cfg := roster.DefaultConfig()
	if req.Roster != nil {
		cfg = req.Roster.toDomain()
	}

	item, err := h.leagueService.CreateLeague(ctx, usecase.CreateLeagueInput{
		UserID:           principal.UserID,
		Name:             req.Name,
		Season:           req.Season,
		Roster:           cfg,
		DoubleRoundRobin: req.DoubleRoundRobin,
	})
	if err != nil {
		h.fail(ctx, w, "create league failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(item))
}

func (h *Handler) UpdateRosterConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRosterConfig")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateRosterConfigRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	item, err := h.leagueService.UpdateRosterConfig(ctx, usecase.UpdateRosterConfigInput{
		UserID:           principal.UserID,
		LeagueID:         leagueID,
		Roster:           req.Roster.toDomain(),
		DoubleRoundRobin: req.DoubleRoundRobin,
	})
	if err != nil {
		h.fail(ctx, w, "update roster config failed", err, "league_id", leagueID, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item))
}

func (h *Handler) ListManagers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListManagers")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	items, err := h.leagueService.ListManagers(ctx, leagueID)
	if err != nil {
		h.fail(ctx, w, "list managers failed", err, "league_id", leagueID)
		return
	}

	out := make([]managerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, managerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinLeagueRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	item, err := h.leagueService.JoinLeague(ctx, usecase.JoinLeagueInput{
		UserID:   principal.UserID,
		LeagueID: leagueID,
		TeamName: req.TeamName,
	})
	if err != nil {
		h.fail(ctx, w, "join league failed", err, "league_id", leagueID, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, managerToDTO(item))
}
