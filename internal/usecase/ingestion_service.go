package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

const (
	syncStatusSuccess = "success"
	syncStatusSkipped = "skipped"
	syncStatusFailed  = "failed"

	maxSyncWorkers = 8
)

// ScorecardProvider fetches a finished or live match scorecard.
type ScorecardProvider interface {
	FetchScorecard(ctx context.Context, matchID string) (scoring.Scorecard, error)
}

type ImportResult struct {
	MatchID   string
	Recorded  int
	Unmatched []string
}

type SyncScorecardsInput struct {
	LeagueID   string
	Week       int
	MatchIDs   []string
	MaxWorkers int
}

type SyncTaskResult struct {
	MatchID    string
	Status     string
	Records    int
	Unmatched  []string
	Message    string
	DurationMs int64
}

type SyncResult struct {
	LeagueID     string
	Week         int
	WorkerCount  int
	SuccessCount int
	SkippedCount int
	FailedCount  int
	Tasks        []SyncTaskResult
}

type IngestionService struct {
	leagueRepo     league.Repository
	playerRepo     player.Repository
	scoringService *ScoringService
	provider       ScorecardProvider
	workers        int
	logger         *logging.Logger
}

func NewIngestionService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	scoringService *ScoringService,
	provider ScorecardProvider,
	workers int,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &IngestionService{
		leagueRepo:     leagueRepo,
		playerRepo:     playerRepo,
		scoringService: scoringService,
		provider:       provider,
		workers:        workers,
		logger:         logger,
	}
}

type ImportScorecardInput struct {
	UserID   string
	LeagueID string
	Week     int
	MatchID  string
}

// ImportScorecard pulls one match from the provider and records a stat line for
// every scorecard player found in the league pool by name. Only the league
// commissioner may import.
func (s *IngestionService) ImportScorecard(ctx context.Context, input ImportScorecardInput) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ImportScorecard")
	defer span.End()

	lg, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return ImportResult{}, err
	}
	if err := requireCommissioner(lg, input.UserID); err != nil {
		return ImportResult{}, err
	}
	matchID, err := requireID("match id", input.MatchID)
	if err != nil {
		return ImportResult{}, err
	}
	if input.Week < 1 {
		return ImportResult{}, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}

	pool, err := s.playerRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list players by league: %w", err)
	}
	return s.importScorecard(ctx, lg, input.Week, matchID, indexPlayersByName(pool))
}

func (s *IngestionService) importScorecard(
	ctx context.Context,
	lg league.League,
	week int,
	matchID string,
	byName map[string]string,
) (ImportResult, error) {
	if s.provider == nil {
		return ImportResult{}, fmt.Errorf("%w: scorecard provider is disabled", ErrDependencyUnavailable)
	}

	card, err := s.provider.FetchScorecard(ctx, matchID)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: fetch scorecard match=%s: %v", ErrDependencyUnavailable, matchID, err)
	}

	result := ImportResult{MatchID: matchID, Unmatched: []string{}}
	performances := make([]PlayerPerformanceInput, 0)
	for name, perf := range card.Performances() {
		playerID, ok := byName[name]
		if !ok {
			result.Unmatched = append(result.Unmatched, name)
			continue
		}
		performances = append(performances, PlayerPerformanceInput{PlayerID: playerID, Performance: perf})
	}
	slices.Sort(result.Unmatched)
	slices.SortFunc(performances, func(a, b PlayerPerformanceInput) int {
		return strings.Compare(a.PlayerID, b.PlayerID)
	})

	recorded, err := s.scoringService.recordPerformances(ctx, lg, RecordPerformancesInput{
		LeagueID:     lg.ID,
		MatchID:      matchID,
		Week:         week,
		Performances: performances,
	})
	if err != nil {
		return ImportResult{}, err
	}
	result.Recorded = recorded

	if len(result.Unmatched) > 0 {
		s.logger.WarnContext(ctx, "some scorecard players are not in the league pool",
			"league_id", lg.ID,
			"match_id", matchID,
			"unmatched", result.Unmatched,
		)
	}
	return result, nil
}

// SyncScorecards imports several matches of one week on a bounded worker pool.
// A failed match does not stop the others.
func (s *IngestionService) SyncScorecards(ctx context.Context, input SyncScorecardsInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncScorecards")
	defer span.End()

	lg, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return SyncResult{}, err
	}
	if input.Week < 1 {
		return SyncResult{}, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	matchIDs, err := cleanIDs("match", input.MatchIDs)
	if err != nil {
		return SyncResult{}, err
	}

	workerCount := normalizeSyncWorkerCount(cmp.Or(input.MaxWorkers, s.workers), len(matchIDs))
	result := SyncResult{
		LeagueID:    lg.ID,
		Week:        input.Week,
		WorkerCount: workerCount,
		Tasks:       make([]SyncTaskResult, 0, len(matchIDs)),
	}
	if len(matchIDs) == 0 {
		return result, nil
	}

	pool, err := s.playerRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("list players by league: %w", err)
	}
	byName := indexPlayersByName(pool)

	results := make(chan SyncTaskResult, len(matchIDs))
	var successCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return SyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, matchID := range matchIDs {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := SyncTaskResult{MatchID: matchID}
			imported, err := s.importScorecard(ctx, lg, input.Week, matchID, byName)
			switch {
			case err != nil:
				row.Status = syncStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			case imported.Recorded == 0:
				row.Status = syncStatusSkipped
				row.Message = "no scorecard players matched the league pool"
				row.Unmatched = imported.Unmatched
				skippedCount.Add(1)
			default:
				row.Status = syncStatusSuccess
				row.Records = imported.Recorded
				row.Unmatched = imported.Unmatched
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()
			results <- row
		}); err != nil {
			workers.Done()
			return SyncResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	slices.SortStableFunc(result.Tasks, func(a, b SyncTaskResult) int {
		return strings.Compare(a.MatchID, b.MatchID)
	})

	result.SuccessCount = int(successCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "scorecard sync finished",
		"league_id", lg.ID,
		"week", input.Week,
		"success", result.SuccessCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("sync scorecards: %w", err)
	}
	return result, nil
}

// indexPlayersByName maps normalized names to ids. Names shared by two pool
// players are dropped so an import never guesses.
func indexPlayersByName(players []player.Player) map[string]string {
	out := make(map[string]string, len(players))
	ambiguous := make(map[string]struct{})
	for _, p := range players {
		key := player.NormalizeName(p.Name)
		if _, taken := out[key]; taken {
			ambiguous[key] = struct{}{}
			continue
		}
		out[key] = p.ID
	}
	for key := range ambiguous {
		delete(out, key)
	}
	return out
}

func normalizeSyncWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > maxSyncWorkers {
		value = maxSyncWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
