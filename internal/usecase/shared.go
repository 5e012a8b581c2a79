package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
)

func requireID(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	return value, nil
}

func loadLeague(ctx context.Context, repo league.Repository, leagueID string) (league.League, error) {
	leagueID, err := requireID("league id", leagueID)
	if err != nil {
		return league.League{}, err
	}

	item, exists, err := repo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return item, nil
}

func loadManager(ctx context.Context, repo manager.Repository, leagueID, managerID string) (manager.Manager, error) {
	managerID, err := requireID("manager id", managerID)
	if err != nil {
		return manager.Manager{}, err
	}

	item, exists, err := repo.GetByID(ctx, leagueID, managerID)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("get manager: %w", err)
	}
	if !exists {
		return manager.Manager{}, fmt.Errorf("%w: manager=%s league=%s", ErrNotFound, managerID, leagueID)
	}
	return item, nil
}

func requireCommissioner(lg league.League, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if !lg.IsCommissioner(userID) {
		return fmt.Errorf("%w: only the commissioner can change league=%s", ErrForbidden, lg.ID)
	}
	return nil
}

// requireManagerAccess allows the manager's owner and the league commissioner.
func requireManagerAccess(lg league.League, m manager.Manager, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if m.UserID != userID && !lg.IsCommissioner(userID) {
		return fmt.Errorf("%w: user does not own manager=%s", ErrForbidden, m.ID)
	}
	return nil
}

func cleanIDs(name string, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			return nil, fmt.Errorf("%w: %s contains an empty id", ErrInvalidInput, name)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate %s %s", ErrInvalidInput, name, id)
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
