package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/schedule"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

type ScheduleService struct {
	leagueRepo   league.Repository
	managerRepo  manager.Repository
	scheduleRepo schedule.Repository
	logger       *logging.Logger
}

func NewScheduleService(
	leagueRepo league.Repository,
	managerRepo manager.Repository,
	scheduleRepo schedule.Repository,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleService{
		leagueRepo:   leagueRepo,
		managerRepo:  managerRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GenerateSchedule replaces the league's fixtures with a fresh round robin.
// Managers are seeded by draft order, so regenerating with the same members
// yields the same fixtures.
func (s *ScheduleService) GenerateSchedule(ctx context.Context, userID, leagueID string) ([]schedule.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GenerateSchedule")
	defer span.End()

	lg, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	if err := requireCommissioner(lg, strings.TrimSpace(userID)); err != nil {
		return nil, err
	}

	managers, err := s.managerRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	if len(managers) < 2 {
		return nil, fmt.Errorf("%w: at least two managers are required, league=%s has %d", ErrInvalidInput, lg.ID, len(managers))
	}

	slices.SortStableFunc(managers, func(a, b manager.Manager) int {
		return cmp.Or(cmp.Compare(a.DraftOrder, b.DraftOrder), strings.Compare(a.ID, b.ID))
	})
	managerIDs := make([]string, 0, len(managers))
	for _, m := range managers {
		managerIDs = append(managerIDs, m.ID)
	}

	matchups := schedule.Generate(managerIDs)
	if lg.DoubleRoundRobin {
		matchups = append(matchups, schedule.MirrorSecondLeg(matchups)...)
	}
	fixtures := schedule.ToFixtures(lg.ID, matchups)

	if err := s.scheduleRepo.ReplaceByLeague(ctx, lg.ID, fixtures); err != nil {
		return nil, fmt.Errorf("replace league schedule: %w", err)
	}

	s.logger.InfoContext(ctx, "league schedule generated",
		"league_id", lg.ID,
		"managers", len(managerIDs),
		"rounds", schedule.RoundCount(matchups),
		"fixtures", len(fixtures),
		"double_round_robin", lg.DoubleRoundRobin,
	)
	return fixtures, nil
}

func (s *ScheduleService) ListSchedule(ctx context.Context, leagueID string) ([]schedule.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListSchedule")
	defer span.End()

	lg, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	fixtures, err := s.scheduleRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list league schedule: %w", err)
	}
	return fixtures, nil
}
