package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/schedule"
)

type ScheduleRepository struct {
	mu       sync.RWMutex
	byLeague map[string][]schedule.Fixture
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{byLeague: make(map[string][]schedule.Fixture)}
}

func (r *ScheduleRepository) ReplaceByLeague(_ context.Context, leagueID string, fixtures []schedule.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byLeague[leagueID] = slices.Clone(fixtures)
	return nil
}

func (r *ScheduleRepository) ListByLeague(_ context.Context, leagueID string) ([]schedule.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.byLeague[leagueID]), nil
}
