package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/schedule"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

const defaultStandingsWorkers = 4

type StandingRow struct {
	Rank          int
	ManagerID     string
	TeamName      string
	Played        int
	Wins          int
	Losses        int
	Ties          int
	Byes          int
	PointsFor     int
	PointsAgainst int
}

type StandingsService struct {
	leagueRepo   league.Repository
	managerRepo  manager.Repository
	scheduleRepo schedule.Repository
	scoringRepo  scoring.Repository
	workers      int
	logger       *logging.Logger
}

func NewStandingsService(
	leagueRepo league.Repository,
	managerRepo manager.Repository,
	scheduleRepo schedule.Repository,
	scoringRepo scoring.Repository,
	workers int,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultStandingsWorkers
	}

	return &StandingsService{
		leagueRepo:   leagueRepo,
		managerRepo:  managerRepo,
		scheduleRepo: scheduleRepo,
		scoringRepo:  scoringRepo,
		workers:      workers,
		logger:       logger,
	}
}

type roundPoints struct {
	round     int
	byManager map[string]int
}

// Standings replays every scheduled round that has stats. Week points use each
// manager's current active roster. Byes add points for but no result.
func (s *StandingsService) Standings(ctx context.Context, leagueID string) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()

	lg, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	managers, err := s.managerRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	fixtures, err := s.scheduleRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list league schedule: %w", err)
	}
	weeks, err := s.scoringRepo.ListWeeks(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list scored weeks: %w", err)
	}

	scheduled := make(map[int]struct{})
	for _, f := range fixtures {
		scheduled[f.Round] = struct{}{}
	}

	p := pool.NewWithResults[roundPoints]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(s.workers)
	for _, week := range weeks {
		if _, ok := scheduled[week]; !ok {
			continue
		}
		p.Go(func(ctx context.Context) (roundPoints, error) {
			byPlayer, err := weekPlayerPoints(ctx, s.scoringRepo, lg.ID, week)
			if err != nil {
				return roundPoints{}, fmt.Errorf("week=%d: %w", week, err)
			}
			out := roundPoints{round: week, byManager: make(map[string]int, len(managers))}
			for _, m := range managers {
				out.byManager[m.ID] = managerPoints(m, week, byPlayer).Points
			}
			return out, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	pointsByRound := make(map[int]map[string]int, len(results))
	for _, r := range results {
		pointsByRound[r.round] = r.byManager
	}

	rows := make(map[string]*StandingRow, len(managers))
	for _, m := range managers {
		rows[m.ID] = &StandingRow{ManagerID: m.ID, TeamName: m.TeamName}
	}

	for _, f := range fixtures {
		points, ok := pointsByRound[f.Round]
		if !ok {
			continue
		}
		home, ok := rows[f.HomeManagerID]
		if !ok {
			s.logger.WarnContext(ctx, "fixture references unknown manager", "league_id", lg.ID, "manager_id", f.HomeManagerID)
			continue
		}
		homePoints := points[f.HomeManagerID]
		if f.IsBye() {
			home.Byes++
			home.PointsFor += homePoints
			continue
		}
		away, ok := rows[f.AwayManagerID]
		if !ok {
			s.logger.WarnContext(ctx, "fixture references unknown manager", "league_id", lg.ID, "manager_id", f.AwayManagerID)
			continue
		}
		awayPoints := points[f.AwayManagerID]
		recordResult(home, homePoints, awayPoints)
		recordResult(away, awayPoints, homePoints)
	}

	out := make([]StandingRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	slices.SortFunc(out, func(a, b StandingRow) int {
		return cmp.Or(
			cmp.Compare(b.Wins, a.Wins),
			cmp.Compare(b.PointsFor, a.PointsFor),
			strings.Compare(a.ManagerID, b.ManagerID),
		)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func recordResult(row *StandingRow, pointsFor, pointsAgainst int) {
	row.Played++
	row.PointsFor += pointsFor
	row.PointsAgainst += pointsAgainst
	switch {
	case pointsFor > pointsAgainst:
		row.Wins++
	case pointsFor < pointsAgainst:
		row.Losses++
	default:
		row.Ties++
	}
}
