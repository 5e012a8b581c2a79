package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Services struct {
	League    *usecase.LeagueService
	Player    *usecase.PlayerService
	Roster    *usecase.RosterService
	Schedule  *usecase.ScheduleService
	Scoring   *usecase.ScoringService
	Standings *usecase.StandingsService
	Ingestion *usecase.IngestionService
}

type Handler struct {
	leagueService    *usecase.LeagueService
	playerService    *usecase.PlayerService
	rosterService    *usecase.RosterService
	scheduleService  *usecase.ScheduleService
	scoringService   *usecase.ScoringService
	standingsService *usecase.StandingsService
	ingestionService *usecase.IngestionService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:    services.League,
		playerService:    services.Player,
		rosterService:    services.Roster,
		scheduleService:  services.Schedule,
		scoringService:   services.Scoring,
		standingsService: services.Standings,
		ingestionService: services.Ingestion,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeAndValidate reads a JSON body into target. An empty body decodes to
// the zero value and is left to validation.
func (h *Handler) decodeAndValidate(r *http.Request, target any) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(strings.TrimSpace(string(raw))) > 0 {
		if err := sonic.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
		}
	}
	return h.validateRequest(r.Context(), target)
}

func pathWeek(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("week"))
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		return 0, fmt.Errorf("%w: week must be a positive integer", usecase.ErrInvalidInput)
	}
	return week, nil
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if isClientError(err) {
		h.logger.WarnContext(ctx, msg, args...)
	} else {
		h.logger.ErrorContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

func isClientError(err error) bool {
	return errors.Is(err, usecase.ErrInvalidInput) ||
		errors.Is(err, usecase.ErrNotFound) ||
		errors.Is(err, usecase.ErrUnauthorized) ||
		errors.Is(err, usecase.ErrForbidden) ||
		errors.Is(err, usecase.ErrConflict)
}
