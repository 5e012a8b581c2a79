package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	basecache "github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	items, err := basecache.Load(ctx, r.cache, "league:list", func(ctx context.Context) ([]league.League, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "league:id:"+leagueID, func(ctx context.Context) (cachedLookup[league.League], error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return cachedLookup[league.League]{}, err
		}
		return cachedLookup[league.League]{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.ID)
	return nil
}

func (r *LeagueRepository) Update(ctx context.Context, item league.League) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.ID)
	return nil
}

func (r *LeagueRepository) invalidate(ctx context.Context, leagueID string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, "league:list")
	r.cache.Delete(ctx, "league:id:"+leagueID)
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, playerPrefix(leagueID)+"list", func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

// GetByIDs caches on the sorted id set; the result keeps the caller's order.
func (r *PlayerRepository) GetByIDs(ctx context.Context, leagueID string, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := playerPrefix(leagueID) + "ids:" + strings.Join(ids, ",")

	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.GetByIDs(ctx, leagueID, ids)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]player.Player, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	out := make([]player.Player, 0, len(items))
	for _, id := range playerIDs {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, leagueID, playerID string) (player.Player, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, playerPrefix(leagueID)+"id:"+playerID, func(ctx context.Context) (cachedLookup[player.Player], error) {
		item, exists, err := r.next.GetByID(ctx, leagueID, playerID)
		if err != nil {
			return cachedLookup[player.Player]{}, err
		}
		return cachedLookup[player.Player]{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.LeagueID)
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, leagueID, playerID string) error {
	if err := r.next.Delete(ctx, leagueID, playerID); err != nil {
		return err
	}
	r.invalidate(ctx, leagueID)
	return nil
}

func (r *PlayerRepository) invalidate(ctx context.Context, leagueID string) {
	if r.cache == nil {
		return
	}
	r.cache.DeletePrefix(ctx, playerPrefix(leagueID))
}

func playerPrefix(leagueID string) string {
	return "player:" + leagueID + ":"
}

type cachedLookup[T any] struct {
	value  T
	exists bool
}
