package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

type PlayerRepository struct {
	mu              sync.RWMutex
	playersByLeague map[string][]player.Player
	indexByLeague   map[string]map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	repo := &PlayerRepository{
		playersByLeague: make(map[string][]player.Player),
		indexByLeague:   make(map[string]map[string]player.Player),
	}
	for _, p := range players {
		repo.insert(p)
	}

	return repo
}

func (r *PlayerRepository) insert(p player.Player) {
	r.playersByLeague[p.LeagueID] = append(r.playersByLeague[p.LeagueID], p)
	if _, ok := r.indexByLeague[p.LeagueID]; !ok {
		r.indexByLeague[p.LeagueID] = make(map[string]player.Player)
	}
	r.indexByLeague[p.LeagueID][p.ID] = p
}

func (r *PlayerRepository) ListByLeague(_ context.Context, leagueID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.playersByLeague[leagueID]), nil
}

// GetByIDs returns players in the order of playerIDs, skipping unknown ids.
func (r *PlayerRepository) GetByIDs(_ context.Context, leagueID string, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.indexByLeague[leagueID]
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, leagueID, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.indexByLeague[leagueID][playerID]
	return p, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indexByLeague[item.LeagueID][item.ID]; exists {
		return fmt.Errorf("player already exists: %s", item.ID)
	}
	r.insert(item)
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, leagueID, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indexByLeague[leagueID][playerID]; !exists {
		return nil
	}
	delete(r.indexByLeague[leagueID], playerID)
	r.playersByLeague[leagueID] = slices.DeleteFunc(r.playersByLeague[leagueID], func(p player.Player) bool {
		return p.ID == playerID
	})
	return nil
}
