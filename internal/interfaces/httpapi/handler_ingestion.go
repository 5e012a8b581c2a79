package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func (h *Handler) ImportScorecard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportScorecard")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req importScorecardRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.ingestionService.ImportScorecard(ctx, usecase.ImportScorecardInput{
		UserID:   principal.UserID,
		LeagueID: req.LeagueID,
		Week:     req.Week,
		MatchID:  req.MatchID,
	})
	if err != nil {
		h.fail(ctx, w, "import scorecard failed", err, "league_id", req.LeagueID, "match_id", req.MatchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importResultDTO{
		MatchID:   result.MatchID,
		Recorded:  result.Recorded,
		Unmatched: nonNil(result.Unmatched),
	})
}

func (h *Handler) RunSyncScorecardsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncScorecardsJob")
	defer span.End()

	var req syncScorecardsRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.ingestionService.SyncScorecards(ctx, usecase.SyncScorecardsInput{
		LeagueID:   req.LeagueID,
		Week:       req.Week,
		MatchIDs:   req.MatchIDs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.fail(ctx, w, "sync scorecards job failed", err, "league_id", req.LeagueID, "week", req.Week)
		return
	}

	h.logger.InfoContext(ctx, "sync scorecards job finished",
		"league_id", result.LeagueID,
		"week", result.Week,
		"success", result.SuccessCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, syncResultToDTO(result))
}
