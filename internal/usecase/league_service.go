package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

type CreateLeagueInput struct {
	UserID           string
	Name             string
	Season           string
	Roster           roster.Config
	DoubleRoundRobin bool
}

type UpdateRosterConfigInput struct {
	UserID           string
	LeagueID         string
	Roster           roster.Config
	DoubleRoundRobin *bool
}

type JoinLeagueInput struct {
	UserID   string
	LeagueID string
	TeamName string
}

type LeagueService struct {
	leagueRepo  league.Repository
	managerRepo manager.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	managerRepo manager.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo:  leagueRepo,
		managerRepo: managerRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	return loadLeague(ctx, s.leagueRepo, leagueID)
}

// validateRosterConfig is the only gate on saving roster rules.
func validateRosterConfig(cfg roster.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := roster.ValidateLeagueMinimums(cfg).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	input.Season = strings.TrimSpace(input.Season)

	if input.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if input.Season == "" {
		return league.League{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if err := validateRosterConfig(input.Roster); err != nil {
		return league.League{}, err
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	now := s.now().UTC()
	item := league.League{
		ID:                 leagueID,
		Name:               input.Name,
		Season:             input.Season,
		CommissionerUserID: input.UserID,
		Roster:             input.Roster,
		DoubleRoundRobin:   input.DoubleRoundRobin,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.leagueRepo.Create(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	s.logger.InfoContext(ctx, "league created",
		"league_id", item.ID,
		"commissioner_user_id", item.CommissionerUserID,
		"active_size", item.Roster.ActiveSize,
		"manager_count", item.Roster.ManagerCount,
	)
	return item, nil
}

func (s *LeagueService) UpdateRosterConfig(ctx context.Context, input UpdateRosterConfigInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateRosterConfig")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return league.League{}, err
	}
	if err := requireCommissioner(item, strings.TrimSpace(input.UserID)); err != nil {
		return league.League{}, err
	}
	if err := validateRosterConfig(input.Roster); err != nil {
		return league.League{}, err
	}

	managers, err := s.managerRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return league.League{}, fmt.Errorf("list managers: %w", err)
	}
	if len(managers) > input.Roster.ManagerCount {
		return league.League{}, fmt.Errorf("%w: league already has %d managers", ErrConflict, len(managers))
	}

	item.Roster = input.Roster
	if input.DoubleRoundRobin != nil {
		item.DoubleRoundRobin = *input.DoubleRoundRobin
	}
	item.UpdatedAt = s.now().UTC()
	if err := s.leagueRepo.Update(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	s.logger.InfoContext(ctx, "league roster config updated", "league_id", item.ID)
	return item, nil
}

func (s *LeagueService) JoinLeague(ctx context.Context, input JoinLeagueInput) (manager.Manager, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinLeague")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.TeamName = strings.TrimSpace(input.TeamName)
	if input.UserID == "" {
		return manager.Manager{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if input.TeamName == "" {
		return manager.Manager{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	item, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return manager.Manager{}, err
	}

	if _, exists, err := s.managerRepo.GetByUser(ctx, item.ID, input.UserID); err != nil {
		return manager.Manager{}, fmt.Errorf("get manager by user: %w", err)
	} else if exists {
		return manager.Manager{}, fmt.Errorf("%w: user already manages a team in league=%s", ErrConflict, item.ID)
	}

	managers, err := s.managerRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("list managers: %w", err)
	}
	if len(managers) >= item.Roster.ManagerCount {
		return manager.Manager{}, fmt.Errorf("%w: league=%s is full (%d managers)", ErrConflict, item.ID, item.Roster.ManagerCount)
	}

	managerID, err := s.idGen.NewID()
	if err != nil {
		return manager.Manager{}, fmt.Errorf("generate manager id: %w", err)
	}

	now := s.now().UTC()
	created := manager.Manager{
		ID:              managerID,
		LeagueID:        item.ID,
		UserID:          input.UserID,
		TeamName:        input.TeamName,
		DraftOrder:      len(managers) + 1,
		ActivePlayerIDs: []string{},
		BenchPlayerIDs:  []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := created.Validate(); err != nil {
		return manager.Manager{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.managerRepo.Create(ctx, created); err != nil {
		return manager.Manager{}, fmt.Errorf("create manager: %w", err)
	}

	s.logger.InfoContext(ctx, "manager joined league",
		"league_id", item.ID,
		"manager_id", created.ID,
		"draft_order", created.DraftOrder,
	)
	return created, nil
}

func (s *LeagueService) ListManagers(ctx context.Context, leagueID string) ([]manager.Manager, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListManagers")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	managers, err := s.managerRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	return managers, nil
}
