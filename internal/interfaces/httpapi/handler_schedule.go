package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	fixtures, err := h.scheduleService.GenerateSchedule(ctx, principal.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "generate schedule failed", err, "league_id", leagueID, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, fixturesToDTO(fixtures))
}

func (h *Handler) ListSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSchedule")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	fixtures, err := h.scheduleService.ListSchedule(ctx, leagueID)
	if err != nil {
		h.fail(ctx, w, "list schedule failed", err, "league_id", leagueID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixturesToDTO(fixtures))
}
