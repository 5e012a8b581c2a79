package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

type RosterView struct {
	Manager  manager.Manager
	Active   []player.Player
	Bench    []player.Player
	Progress roster.Progress
	Slots    []roster.Slot
}

// RosterChange is the outcome of an allowed mutation. Warnings lists the
// categories still short of their minimum; they never block.
type RosterChange struct {
	Manager  manager.Manager
	Progress roster.Progress
	Warnings []roster.Category
}

type AddRosterPlayerInput struct {
	UserID    string
	LeagueID  string
	ManagerID string
	PlayerID  string
	ToBench   bool
}

type DropRosterPlayerInput struct {
	UserID    string
	LeagueID  string
	ManagerID string
	PlayerID  string
}

type MoveRosterPlayerInput struct {
	UserID    string
	LeagueID  string
	ManagerID string
	PlayerID  string
	ToBench   bool
}

type TradeInput struct {
	UserID             string
	LeagueID           string
	FromManagerID      string
	ToManagerID        string
	OfferedPlayerIDs   []string
	RequestedPlayerIDs []string
}

type TradeResult struct {
	From RosterChange
	To   RosterChange
}

type RosterService struct {
	leagueRepo  league.Repository
	playerRepo  player.Repository
	managerRepo manager.Repository
	logger      *logging.Logger
	locks       *leagueLocks
	now         func() time.Time
}

func NewRosterService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	managerRepo manager.Repository,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		leagueRepo:  leagueRepo,
		playerRepo:  playerRepo,
		managerRepo: managerRepo,
		logger:      logger,
		locks:       newLeagueLocks(),
		now:         time.Now,
	}
}

func (s *RosterService) GetRoster(ctx context.Context, leagueID, managerID string) (RosterView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetRoster")
	defer span.End()

	lg, m, err := s.load(ctx, leagueID, managerID)
	if err != nil {
		return RosterView{}, err
	}

	players, err := s.playersByID(ctx, lg.ID, m.AllPlayerIDs())
	if err != nil {
		return RosterView{}, err
	}
	active := pick(players, m.ActivePlayerIDs)

	return RosterView{
		Manager:  m,
		Active:   active,
		Bench:    pick(players, m.BenchPlayerIDs),
		Progress: roster.GetProgress(active, lg.Roster),
		Slots:    roster.GetActiveSlots(active, lg.Roster),
	}, nil
}

func (s *RosterService) GetProgress(ctx context.Context, leagueID, managerID string) (roster.Progress, error) {
	view, err := s.GetRoster(ctx, leagueID, managerID)
	if err != nil {
		return roster.Progress{}, err
	}
	return view.Progress, nil
}

func (s *RosterService) GetActiveSlots(ctx context.Context, leagueID, managerID string) ([]roster.Slot, error) {
	view, err := s.GetRoster(ctx, leagueID, managerID)
	if err != nil {
		return nil, err
	}
	return view.Slots, nil
}

// AddPlayer puts a free agent on a manager's active roster or bench.
func (s *RosterService) AddPlayer(ctx context.Context, input AddRosterPlayerInput) (RosterChange, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddPlayer", leagueAttr(input.LeagueID))
	defer span.End()
	defer s.locks.lock(input.LeagueID)()

	lg, m, err := s.loadForWrite(ctx, input.UserID, input.LeagueID, input.ManagerID)
	if err != nil {
		return RosterChange{}, err
	}
	playerID, err := requireID("player id", input.PlayerID)
	if err != nil {
		return RosterChange{}, err
	}
	if _, exists, err := s.playerRepo.GetByID(ctx, lg.ID, playerID); err != nil {
		return RosterChange{}, fmt.Errorf("get player: %w", err)
	} else if !exists {
		return RosterChange{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if err := s.ensureFreeAgent(ctx, lg.ID, playerID); err != nil {
		return RosterChange{}, err
	}

	next := m.Clone()
	if input.ToBench {
		next.BenchPlayerIDs = append(next.BenchPlayerIDs, playerID)
	} else {
		next.ActivePlayerIDs = append(next.ActivePlayerIDs, playerID)
	}

	change, err := s.evaluate(ctx, lg, m, next)
	if err != nil {
		return RosterChange{}, err
	}
	if err := s.save(ctx, change.Manager); err != nil {
		return RosterChange{}, err
	}

	s.logger.InfoContext(ctx, "player added to roster",
		"league_id", lg.ID,
		"manager_id", m.ID,
		"player_id", playerID,
		"to_bench", input.ToBench,
		"warnings", categoryNames(change.Warnings),
	)
	return change, nil
}

func (s *RosterService) DropPlayer(ctx context.Context, input DropRosterPlayerInput) (RosterChange, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DropPlayer", leagueAttr(input.LeagueID))
	defer span.End()
	defer s.locks.lock(input.LeagueID)()

	lg, m, err := s.loadForWrite(ctx, input.UserID, input.LeagueID, input.ManagerID)
	if err != nil {
		return RosterChange{}, err
	}
	playerID, err := requireID("player id", input.PlayerID)
	if err != nil {
		return RosterChange{}, err
	}
	if !m.HasPlayer(playerID) {
		return RosterChange{}, fmt.Errorf("%w: %w: player=%s manager=%s", ErrNotFound, roster.ErrPlayerNotRostered, playerID, m.ID)
	}

	change, err := s.evaluate(ctx, lg, m, m.Without(playerID))
	if err != nil {
		return RosterChange{}, err
	}
	if err := s.save(ctx, change.Manager); err != nil {
		return RosterChange{}, err
	}

	s.logger.InfoContext(ctx, "player dropped from roster",
		"league_id", lg.ID,
		"manager_id", m.ID,
		"player_id", playerID,
		"warnings", categoryNames(change.Warnings),
	)
	return change, nil
}

// MovePlayer swaps a rostered player between the active roster and the bench.
func (s *RosterService) MovePlayer(ctx context.Context, input MoveRosterPlayerInput) (RosterChange, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.MovePlayer", leagueAttr(input.LeagueID))
	defer span.End()
	defer s.locks.lock(input.LeagueID)()

	lg, m, err := s.loadForWrite(ctx, input.UserID, input.LeagueID, input.ManagerID)
	if err != nil {
		return RosterChange{}, err
	}
	playerID, err := requireID("player id", input.PlayerID)
	if err != nil {
		return RosterChange{}, err
	}
	if !m.HasPlayer(playerID) {
		return RosterChange{}, fmt.Errorf("%w: %w: player=%s manager=%s", ErrNotFound, roster.ErrPlayerNotRostered, playerID, m.ID)
	}
	if m.IsActive(playerID) != input.ToBench {
		return RosterChange{}, fmt.Errorf("%w: player=%s is already there", ErrInvalidInput, playerID)
	}

	next := m.Without(playerID)
	if input.ToBench {
		next.BenchPlayerIDs = append(next.BenchPlayerIDs, playerID)
	} else {
		next.ActivePlayerIDs = append(next.ActivePlayerIDs, playerID)
	}

	change, err := s.evaluate(ctx, lg, m, next)
	if err != nil {
		return RosterChange{}, err
	}
	if err := s.save(ctx, change.Manager); err != nil {
		return RosterChange{}, err
	}

	s.logger.InfoContext(ctx, "roster player moved",
		"league_id", lg.ID,
		"manager_id", m.ID,
		"player_id", playerID,
		"to_bench", input.ToBench,
	)
	return change, nil
}

// ProposeTrade swaps players between two managers. Each incoming player takes
// the active or bench spot of the outgoing player at the same index; extra
// incoming players go to the bench while it has room, then to the active roster.
func (s *RosterService) ProposeTrade(ctx context.Context, input TradeInput) (TradeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ProposeTrade", leagueAttr(input.LeagueID))
	defer span.End()
	defer s.locks.lock(input.LeagueID)()

	lg, from, err := s.loadForWrite(ctx, input.UserID, input.LeagueID, input.FromManagerID)
	if err != nil {
		return TradeResult{}, err
	}
	to, err := loadManager(ctx, s.managerRepo, lg.ID, input.ToManagerID)
	if err != nil {
		return TradeResult{}, err
	}
	if from.ID == to.ID {
		return TradeResult{}, fmt.Errorf("%w: cannot trade with yourself", ErrInvalidInput)
	}

	offered, err := cleanIDs("offered player", input.OfferedPlayerIDs)
	if err != nil {
		return TradeResult{}, err
	}
	requested, err := cleanIDs("requested player", input.RequestedPlayerIDs)
	if err != nil {
		return TradeResult{}, err
	}
	if len(offered) == 0 && len(requested) == 0 {
		return TradeResult{}, fmt.Errorf("%w: trade moves no players", ErrInvalidInput)
	}
	for _, id := range offered {
		if !from.HasPlayer(id) {
			return TradeResult{}, fmt.Errorf("%w: %w: player=%s manager=%s", ErrInvalidInput, roster.ErrPlayerNotRostered, id, from.ID)
		}
	}
	for _, id := range requested {
		if !to.HasPlayer(id) {
			return TradeResult{}, fmt.Errorf("%w: %w: player=%s manager=%s", ErrInvalidInput, roster.ErrPlayerNotRostered, id, to.ID)
		}
	}

	fromChange, err := s.evaluate(ctx, lg, from, exchangePlayers(from, offered, requested, lg.Roster))
	if err != nil {
		return TradeResult{}, fmt.Errorf("manager=%s: %w", from.ID, err)
	}
	toChange, err := s.evaluate(ctx, lg, to, exchangePlayers(to, requested, offered, lg.Roster))
	if err != nil {
		return TradeResult{}, fmt.Errorf("manager=%s: %w", to.ID, err)
	}

	if err := s.save(ctx, fromChange.Manager, toChange.Manager); err != nil {
		return TradeResult{}, err
	}

	s.logger.InfoContext(ctx, "trade executed",
		"league_id", lg.ID,
		"from_manager_id", from.ID,
		"to_manager_id", to.ID,
		"offered", offered,
		"requested", requested,
	)
	return TradeResult{From: fromChange, To: toChange}, nil
}

func exchangePlayers(m manager.Manager, outgoing, incoming []string, cfg roster.Config) manager.Manager {
	next := m.Clone()
	for _, id := range outgoing {
		next = next.Without(id)
	}
	for i, id := range incoming {
		switch {
		case i < len(outgoing) && m.IsActive(outgoing[i]):
			next.ActivePlayerIDs = append(next.ActivePlayerIDs, id)
		case i < len(outgoing):
			next.BenchPlayerIDs = append(next.BenchPlayerIDs, id)
		case len(next.BenchPlayerIDs) < cfg.BenchSize:
			next.BenchPlayerIDs = append(next.BenchPlayerIDs, id)
		default:
			next.ActivePlayerIDs = append(next.ActivePlayerIDs, id)
		}
	}
	return next
}

// evaluate compares the active roster before and after a mutation. It blocks
// growth past the roster sizes and any category that newly becomes exceeded.
func (s *RosterService) evaluate(ctx context.Context, lg league.League, before, after manager.Manager) (RosterChange, error) {
	cfg := lg.Roster
	if len(after.ActivePlayerIDs) > cfg.ActiveSize && len(after.ActivePlayerIDs) > len(before.ActivePlayerIDs) {
		return RosterChange{}, fmt.Errorf("%w: %w: active roster holds %d", ErrConflict, roster.ErrRosterFull, cfg.ActiveSize)
	}
	if len(after.BenchPlayerIDs) > cfg.BenchSize && len(after.BenchPlayerIDs) > len(before.BenchPlayerIDs) {
		return RosterChange{}, fmt.Errorf("%w: %w: bench holds %d", ErrConflict, roster.ErrRosterFull, cfg.BenchSize)
	}

	ids := append(append([]string{}, before.ActivePlayerIDs...), after.ActivePlayerIDs...)
	players, err := s.playersByID(ctx, lg.ID, ids)
	if err != nil {
		return RosterChange{}, err
	}

	beforeProgress := roster.GetProgress(pick(players, before.ActivePlayerIDs), cfg)
	afterProgress := roster.GetProgress(pick(players, after.ActivePlayerIDs), cfg)
	if exceeded := roster.NewlyExceeded(beforeProgress, afterProgress); len(exceeded) > 0 {
		return RosterChange{}, fmt.Errorf("%w: %w: %s", ErrConflict, roster.ErrConstraintExceeded, strings.Join(categoryNames(exceeded), ","))
	}

	return RosterChange{
		Manager:  after,
		Progress: afterProgress,
		Warnings: afterProgress.Warnings(),
	}, nil
}

func (s *RosterService) ensureFreeAgent(ctx context.Context, leagueID, playerID string) error {
	managers, err := s.managerRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("list managers: %w", err)
	}
	for _, m := range managers {
		if m.HasPlayer(playerID) {
			return fmt.Errorf("%w: %w: player=%s manager=%s", ErrConflict, roster.ErrPlayerAlreadyRostered, playerID, m.ID)
		}
	}
	return nil
}

func (s *RosterService) save(ctx context.Context, managers ...manager.Manager) error {
	now := s.now().UTC()
	for i := range managers {
		managers[i].UpdatedAt = now
	}
	if err := s.managerRepo.UpdateRosters(ctx, managers); err != nil {
		if errors.Is(err, manager.ErrPlayerHeld) {
			return fmt.Errorf("%w: %w: %w", ErrConflict, roster.ErrPlayerAlreadyRostered, err)
		}
		return fmt.Errorf("update rosters: %w", err)
	}
	return nil
}

func (s *RosterService) load(ctx context.Context, leagueID, managerID string) (league.League, manager.Manager, error) {
	lg, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return league.League{}, manager.Manager{}, err
	}
	m, err := loadManager(ctx, s.managerRepo, lg.ID, managerID)
	if err != nil {
		return league.League{}, manager.Manager{}, err
	}
	return lg, m, nil
}

func (s *RosterService) loadForWrite(ctx context.Context, userID, leagueID, managerID string) (league.League, manager.Manager, error) {
	lg, m, err := s.load(ctx, leagueID, managerID)
	if err != nil {
		return league.League{}, manager.Manager{}, err
	}
	if err := requireManagerAccess(lg, m, strings.TrimSpace(userID)); err != nil {
		return league.League{}, manager.Manager{}, err
	}
	return lg, m, nil
}

func (s *RosterService) playersByID(ctx context.Context, leagueID string, ids []string) (map[string]player.Player, error) {
	out := make(map[string]player.Player, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	players, err := s.playerRepo.GetByIDs(ctx, leagueID, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	for _, p := range players {
		out[p.ID] = p
	}
	return out, nil
}

// pick keeps the order of ids and skips ids missing from the pool.
func pick(players map[string]player.Player, ids []string) []player.Player {
	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func categoryNames(categories []roster.Category) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, string(c))
	}
	return out
}
