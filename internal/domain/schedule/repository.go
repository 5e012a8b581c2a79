package schedule

import "context"

type Repository interface {
	// ReplaceByLeague drops any existing fixtures of the league and stores the given set.
	ReplaceByLeague(ctx context.Context, leagueID string, fixtures []Fixture) error
	ListByLeague(ctx context.Context, leagueID string) ([]Fixture, error)
}
