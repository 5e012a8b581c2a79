package scoring

import "context"

type Repository interface {
	// UpsertStats is keyed by league, match and player.
	UpsertStats(ctx context.Context, stats []PlayerMatchStat) error
	ListByLeagueWeek(ctx context.Context, leagueID string, week int) ([]PlayerMatchStat, error)
	ListWeeks(ctx context.Context, leagueID string) ([]int, error)
}
