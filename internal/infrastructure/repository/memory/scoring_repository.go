package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/scoring"
)

type ScoringRepository struct {
	mu    sync.RWMutex
	items map[statKey]scoring.PlayerMatchStat
}

type statKey struct {
	leagueID string
	matchID  string
	playerID string
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{items: make(map[statKey]scoring.PlayerMatchStat)}
}

func (r *ScoringRepository) UpsertStats(_ context.Context, stats []scoring.PlayerMatchStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range stats {
		r.items[statKey{leagueID: s.LeagueID, matchID: s.MatchID, playerID: s.PlayerID}] = s
	}
	return nil
}

// ListByLeagueWeek orders rows by match then player for stable output.
func (r *ScoringRepository) ListByLeagueWeek(_ context.Context, leagueID string, week int) ([]scoring.PlayerMatchStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.PlayerMatchStat, 0)
	for key, s := range r.items {
		if key.leagueID == leagueID && s.Week == week {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b scoring.PlayerMatchStat) int {
		return cmp.Or(strings.Compare(a.MatchID, b.MatchID), strings.Compare(a.PlayerID, b.PlayerID))
	})
	return out, nil
}

func (r *ScoringRepository) ListWeeks(_ context.Context, leagueID string) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int]struct{})
	for key, s := range r.items {
		if key.leagueID == leagueID {
			seen[s.Week] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for week := range seen {
		out = append(out, week)
	}
	slices.Sort(out)
	return out, nil
}
