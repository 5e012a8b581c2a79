package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	items, err := h.playerService.ListPlayers(ctx, leagueID)
	if err != nil {
		h.fail(ctx, w, "list players failed", err, "league_id", leagueID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(items))
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req addPoolPlayerRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	item, err := h.playerService.AddPlayer(ctx, usecase.AddPoolPlayerInput{
		UserID:          principal.UserID,
		LeagueID:        leagueID,
		Name:            req.Name,
		Team:            req.Team,
		Role:            req.Role,
		IsInternational: req.IsInternational,
	})
	if err != nil {
		h.fail(ctx, w, "add pool player failed", err, "league_id", leagueID, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemovePlayer")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.playerService.RemovePlayer(ctx, principal.UserID, leagueID, playerID); err != nil {
		h.fail(ctx, w, "remove pool player failed", err, "league_id", leagueID, "player_id", playerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"player_id": playerID, "status": "removed"})
}
