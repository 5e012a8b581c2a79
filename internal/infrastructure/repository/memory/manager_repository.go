package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
)

type ManagerRepository struct {
	mu     sync.RWMutex
	items  map[string]manager.Manager
	orders []string
}

func NewManagerRepository(managers []manager.Manager) *ManagerRepository {
	repo := &ManagerRepository{items: make(map[string]manager.Manager, len(managers))}
	for _, m := range managers {
		repo.items[managerKey(m.LeagueID, m.ID)] = m.Clone()
		repo.orders = append(repo.orders, managerKey(m.LeagueID, m.ID))
	}
	return repo
}

func (r *ManagerRepository) ListByLeague(_ context.Context, leagueID string) ([]manager.Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.leagueLocked(leagueID)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out, nil
}

func (r *ManagerRepository) GetByID(_ context.Context, leagueID, managerID string) (manager.Manager, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[managerKey(leagueID, managerID)]
	if !ok {
		return manager.Manager{}, false, nil
	}
	return m.Clone(), true, nil
}

func (r *ManagerRepository) GetByUser(_ context.Context, leagueID, userID string) (manager.Manager, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, key := range r.orders {
		m := r.items[key]
		if m.LeagueID == leagueID && m.UserID == userID {
			return m.Clone(), true, nil
		}
	}
	return manager.Manager{}, false, nil
}

func (r *ManagerRepository) Create(_ context.Context, item manager.Manager) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := managerKey(item.LeagueID, item.ID)
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("manager already exists: %s", item.ID)
	}
	r.items[key] = item.Clone()
	r.orders = append(r.orders, key)
	return nil
}

// UpdateRosters checks and writes under one lock, so two writers can never
// both place the same player.
func (r *ManagerRepository) UpdateRosters(_ context.Context, items []manager.Manager) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byLeague := make(map[string][]manager.Manager)
	for _, item := range items {
		if _, exists := r.items[managerKey(item.LeagueID, item.ID)]; !exists {
			return fmt.Errorf("manager not found: %s", item.ID)
		}
		byLeague[item.LeagueID] = append(byLeague[item.LeagueID], item)
	}
	for leagueID, updates := range byLeague {
		if err := manager.CheckExclusive(r.leagueLocked(leagueID), updates); err != nil {
			return err
		}
	}

	for _, item := range items {
		key := managerKey(item.LeagueID, item.ID)
		current := r.items[key]
		updated := item.Clone()
		current.ActivePlayerIDs = updated.ActivePlayerIDs
		current.BenchPlayerIDs = updated.BenchPlayerIDs
		current.UpdatedAt = item.UpdatedAt
		r.items[key] = current
	}
	return nil
}

// leagueLocked expects r.mu to be held.
func (r *ManagerRepository) leagueLocked(leagueID string) []manager.Manager {
	out := make([]manager.Manager, 0)
	for _, key := range r.orders {
		if m := r.items[key]; m.LeagueID == leagueID {
			out = append(out, m)
		}
	}
	return out
}

func managerKey(leagueID, managerID string) string {
	return leagueID + "::" + managerID
}
