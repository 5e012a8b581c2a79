package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func rosterPath(r *http.Request) (string, string) {
	return strings.TrimSpace(r.PathValue("leagueID")), strings.TrimSpace(r.PathValue("managerID"))
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	leagueID, managerID := rosterPath(r)
	view, err := h.rosterService.GetRoster(ctx, leagueID, managerID)
	if err != nil {
		h.fail(ctx, w, "get roster failed", err, "league_id", leagueID, "manager_id", managerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterViewToDTO(view))
}

func (h *Handler) GetRosterProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterProgress")
	defer span.End()

	leagueID, managerID := rosterPath(r)
	progress, err := h.rosterService.GetProgress(ctx, leagueID, managerID)
	if err != nil {
		h.fail(ctx, w, "get roster progress failed", err, "league_id", leagueID, "manager_id", managerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, progressToDTO(progress))
}

func (h *Handler) GetRosterSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterSlots")
	defer span.End()

	leagueID, managerID := rosterPath(r)
	slots, err := h.rosterService.GetActiveSlots(ctx, leagueID, managerID)
	if err != nil {
		h.fail(ctx, w, "get roster slots failed", err, "league_id", leagueID, "manager_id", managerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, slotsToDTO(slots))
}

func (h *Handler) AddRosterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRosterPlayer")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req rosterPlayerRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID, managerID := rosterPath(r)
	change, err := h.rosterService.AddPlayer(ctx, usecase.AddRosterPlayerInput{
		UserID:    principal.UserID,
		LeagueID:  leagueID,
		ManagerID: managerID,
		PlayerID:  req.PlayerID,
		ToBench:   req.ToBench,
	})
	if err != nil {
		h.fail(ctx, w, "add roster player failed", err, "league_id", leagueID, "manager_id", managerID, "player_id", req.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterChangeToDTO(change))
}

func (h *Handler) DropRosterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DropRosterPlayer")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID, managerID := rosterPath(r)
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	change, err := h.rosterService.DropPlayer(ctx, usecase.DropRosterPlayerInput{
		UserID:    principal.UserID,
		LeagueID:  leagueID,
		ManagerID: managerID,
		PlayerID:  playerID,
	})
	if err != nil {
		h.fail(ctx, w, "drop roster player failed", err, "league_id", leagueID, "manager_id", managerID, "player_id", playerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterChangeToDTO(change))
}

func (h *Handler) MoveRosterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MoveRosterPlayer")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req rosterPlayerRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID, managerID := rosterPath(r)
	change, err := h.rosterService.MovePlayer(ctx, usecase.MoveRosterPlayerInput{
		UserID:    principal.UserID,
		LeagueID:  leagueID,
		ManagerID: managerID,
		PlayerID:  req.PlayerID,
		ToBench:   req.ToBench,
	})
	if err != nil {
		h.fail(ctx, w, "move roster player failed", err, "league_id", leagueID, "manager_id", managerID, "player_id", req.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterChangeToDTO(change))
}

func (h *Handler) ProposeTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProposeTrade")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req tradeRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	result, err := h.rosterService.ProposeTrade(ctx, usecase.TradeInput{
		UserID:             principal.UserID,
		LeagueID:           leagueID,
		FromManagerID:      req.FromManagerID,
		ToManagerID:        req.ToManagerID,
		OfferedPlayerIDs:   req.OfferedPlayerIDs,
		RequestedPlayerIDs: req.RequestedPlayerIDs,
	})
	if err != nil {
		h.fail(ctx, w, "trade failed", err, "league_id", leagueID, "from_manager_id", req.FromManagerID, "to_manager_id", req.ToManagerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tradeDTO{
		From: rosterChangeToDTO(result.From),
		To:   rosterChangeToDTO(result.To),
	})
}
