package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

type PlayerPerformanceInput struct {
	PlayerID    string
	Performance scoring.Performance
}

type RecordPerformancesInput struct {
	UserID       string
	LeagueID     string
	MatchID      string
	Week         int
	Performances []PlayerPerformanceInput
}

type ManagerWeekPoints struct {
	ManagerID string
	Week      int
	Points    int
	Players   []scoring.PlayerPoints
}

type ScoringService struct {
	leagueRepo  league.Repository
	playerRepo  player.Repository
	managerRepo manager.Repository
	scoringRepo scoring.Repository
	logger      *logging.Logger
	now         func() time.Time
}

func NewScoringService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	managerRepo manager.Repository,
	scoringRepo scoring.Repository,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		leagueRepo:  leagueRepo,
		playerRepo:  playerRepo,
		managerRepo: managerRepo,
		scoringRepo: scoringRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ScoringService) PreviewPoints(p scoring.Performance) int {
	return scoring.CalculateFantasyPoints(p)
}

// RecordPerformances upserts raw stat lines for one match on behalf of the
// league commissioner. Players outside the league pool are rejected.
func (s *ScoringService) RecordPerformances(ctx context.Context, input RecordPerformancesInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecordPerformances")
	defer span.End()

	lg, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return 0, err
	}
	if err := requireCommissioner(lg, input.UserID); err != nil {
		return 0, err
	}
	return s.recordPerformances(ctx, lg, input)
}

// recordPerformances skips the caller check; the scorecard sync job uses it
// after authenticating with the internal job token.
func (s *ScoringService) recordPerformances(ctx context.Context, lg league.League, input RecordPerformancesInput) (int, error) {
	matchID, err := requireID("match id", input.MatchID)
	if err != nil {
		return 0, err
	}
	if input.Week < 1 {
		return 0, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	if len(input.Performances) == 0 {
		return 0, nil
	}

	playerIDs := make([]string, 0, len(input.Performances))
	for _, item := range input.Performances {
		playerIDs = append(playerIDs, strings.TrimSpace(item.PlayerID))
	}
	playerIDs, err = cleanIDs("player", playerIDs)
	if err != nil {
		return 0, err
	}

	known, err := s.playerRepo.GetByIDs(ctx, lg.ID, playerIDs)
	if err != nil {
		return 0, fmt.Errorf("get players by ids: %w", err)
	}
	if len(known) != len(playerIDs) {
		return 0, fmt.Errorf("%w: some players are missing from league=%s", ErrInvalidInput, lg.ID)
	}

	now := s.now().UTC()
	stats := make([]scoring.PlayerMatchStat, 0, len(input.Performances))
	for i, item := range input.Performances {
		stat := scoring.PlayerMatchStat{
			LeagueID:    lg.ID,
			MatchID:     matchID,
			Week:        input.Week,
			PlayerID:    playerIDs[i],
			Performance: item.Performance,
			UpdatedAt:   now,
		}
		if err := stat.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		stats = append(stats, stat)
	}

	if err := s.scoringRepo.UpsertStats(ctx, stats); err != nil {
		return 0, fmt.Errorf("upsert player match stats: %w", err)
	}

	s.logger.InfoContext(ctx, "player performances recorded",
		"league_id", lg.ID,
		"match_id", matchID,
		"week", input.Week,
		"count", len(stats),
	)
	return len(stats), nil
}

// PlayerPoints recomputes every player's total for a week from raw stats.
func (s *ScoringService) PlayerPoints(ctx context.Context, leagueID string, week int) ([]scoring.PlayerPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.PlayerPoints")
	defer span.End()

	lg, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	if week < 1 {
		return nil, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}

	byPlayer, err := weekPlayerPoints(ctx, s.scoringRepo, lg.ID, week)
	if err != nil {
		return nil, err
	}

	out := make([]scoring.PlayerPoints, 0, len(byPlayer))
	for _, item := range byPlayer {
		out = append(out, item)
	}
	slices.SortFunc(out, func(a, b scoring.PlayerPoints) int {
		return cmp.Or(cmp.Compare(b.Points, a.Points), strings.Compare(a.PlayerID, b.PlayerID))
	})
	return out, nil
}

// ManagerWeekPoints sums the week's points of the manager's current active players.
func (s *ScoringService) ManagerWeekPoints(ctx context.Context, leagueID, managerID string, week int) (ManagerWeekPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ManagerWeekPoints")
	defer span.End()

	lg, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return ManagerWeekPoints{}, err
	}
	m, err := loadManager(ctx, s.managerRepo, lg.ID, managerID)
	if err != nil {
		return ManagerWeekPoints{}, err
	}
	if week < 1 {
		return ManagerWeekPoints{}, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}

	byPlayer, err := weekPlayerPoints(ctx, s.scoringRepo, lg.ID, week)
	if err != nil {
		return ManagerWeekPoints{}, err
	}
	return managerPoints(m, week, byPlayer), nil
}

func weekPlayerPoints(ctx context.Context, repo scoring.Repository, leagueID string, week int) (map[string]scoring.PlayerPoints, error) {
	stats, err := repo.ListByLeagueWeek(ctx, leagueID, week)
	if err != nil {
		return nil, fmt.Errorf("list player match stats: %w", err)
	}

	out := make(map[string]scoring.PlayerPoints, len(stats))
	for _, stat := range stats {
		item := out[stat.PlayerID]
		item.PlayerID = stat.PlayerID
		item.Week = week
		item.Points += scoring.CalculateFantasyPoints(stat.Performance)
		item.Matches++
		out[stat.PlayerID] = item
	}
	return out, nil
}

func managerPoints(m manager.Manager, week int, byPlayer map[string]scoring.PlayerPoints) ManagerWeekPoints {
	out := ManagerWeekPoints{
		ManagerID: m.ID,
		Week:      week,
		Players:   make([]scoring.PlayerPoints, 0, len(m.ActivePlayerIDs)),
	}
	for _, playerID := range m.ActivePlayerIDs {
		item, ok := byPlayer[playerID]
		if !ok {
			item = scoring.PlayerPoints{PlayerID: playerID, Week: week}
		}
		out.Points += item.Points
		out.Players = append(out.Players, item)
	}
	return out
}
