package usecase

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

type sequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

var testNow = time.Date(2025, 4, 5, 18, 30, 0, 0, time.UTC)

type testRepos struct {
	leagues   *memory.LeagueRepository
	players   *memory.PlayerRepository
	managers  *memory.ManagerRepository
	schedules *memory.ScheduleRepository
	stats     *memory.ScoringRepository
}

func newTestRepos(t *testing.T, managers ...manager.Manager) testRepos {
	t.Helper()

	return testRepos{
		leagues:   memory.NewLeagueRepository(memory.SeedLeagues()),
		players:   memory.NewPlayerRepository(memory.SeedPlayers()),
		managers:  memory.NewManagerRepository(managers),
		schedules: memory.NewScheduleRepository(),
		stats:     memory.NewScoringRepository(),
	}
}

func seedManager(id, userID string, draftOrder int, active, bench []string) manager.Manager {
	return manager.Manager{
		ID:              id,
		LeagueID:        memory.LeagueIDIPLFriends,
		UserID:          userID,
		TeamName:        "Team " + id,
		DraftOrder:      draftOrder,
		ActivePlayerIDs: active,
		BenchPlayerIDs:  bench,
		CreatedAt:       testNow,
		UpdatedAt:       testNow,
	}
}

func testLogger() *logging.Logger {
	return logging.NewNop()
}
