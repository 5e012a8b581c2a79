package manager

import "context"

type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Manager, error)
	GetByID(ctx context.Context, leagueID, managerID string) (Manager, bool, error)
	GetByUser(ctx context.Context, leagueID, userID string) (Manager, bool, error)
	Create(ctx context.Context, item Manager) error
	// UpdateRosters saves the roster lists of every given manager atomically.
	UpdateRosters(ctx context.Context, items []Manager) error
}
