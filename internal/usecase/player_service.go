package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

type AddPoolPlayerInput struct {
	UserID          string
	LeagueID        string
	Name            string
	Team            string
	Role            string
	IsInternational bool
}

type PlayerService struct {
	leagueRepo  league.Repository
	playerRepo  player.Repository
	managerRepo manager.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
}

func NewPlayerService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	managerRepo manager.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		leagueRepo:  leagueRepo,
		playerRepo:  playerRepo,
		managerRepo: managerRepo,
		idGen:       idGen,
		logger:      logger,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context, leagueID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list players by league: %w", err)
	}

	return players, nil
}

// AddPlayer adds a cricketer to the league pool. Commissioner only.
func (s *PlayerService) AddPlayer(ctx context.Context, input AddPoolPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.AddPlayer")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return player.Player{}, err
	}
	if err := requireCommissioner(item, strings.TrimSpace(input.UserID)); err != nil {
		return player.Player{}, err
	}

	role, err := player.ParseRole(input.Role)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	created := player.Player{
		ID:              playerID,
		LeagueID:        item.ID,
		Name:            strings.TrimSpace(input.Name),
		Team:            strings.ToUpper(strings.TrimSpace(input.Team)),
		Role:            role,
		IsInternational: input.IsInternational,
	}
	if err := created.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Create(ctx, created); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player added to pool",
		"league_id", item.ID,
		"player_id", created.ID,
		"role", string(created.Role),
	)
	return created, nil
}

// RemovePlayer deletes a player from the pool. Rostered players must be dropped first.
func (s *PlayerService) RemovePlayer(ctx context.Context, userID, leagueID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.RemovePlayer")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return err
	}
	if err := requireCommissioner(item, strings.TrimSpace(userID)); err != nil {
		return err
	}
	playerID, err = requireID("player id", playerID)
	if err != nil {
		return err
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, item.ID, playerID); err != nil {
		return fmt.Errorf("get player: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	managers, err := s.managerRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list managers: %w", err)
	}
	for _, m := range managers {
		if m.HasPlayer(playerID) {
			return fmt.Errorf("%w: player=%s is rostered by manager=%s", ErrConflict, playerID, m.ID)
		}
	}

	if err := s.playerRepo.Delete(ctx, item.ID, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	s.logger.InfoContext(ctx, "player removed from pool", "league_id", item.ID, "player_id", playerID)
	return nil
}
