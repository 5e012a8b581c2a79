package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
)

type managerTableModel struct {
	ID              int64          `db:"id,readonly"`
	PublicID        string         `db:"public_id"`
	LeagueID        string         `db:"league_public_id"`
	UserID          string         `db:"user_id"`
	TeamName        string         `db:"team_name"`
	DraftOrder      int            `db:"draft_order"`
	ActivePlayerIDs pq.StringArray `db:"active_player_ids"`
	BenchPlayerIDs  pq.StringArray `db:"bench_player_ids"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at,readonly"`
}

func managerFromDomain(item manager.Manager) managerTableModel {
	return managerTableModel{
		PublicID:        item.ID,
		LeagueID:        item.LeagueID,
		UserID:          item.UserID,
		TeamName:        item.TeamName,
		DraftOrder:      item.DraftOrder,
		ActivePlayerIDs: nonNilStrings(item.ActivePlayerIDs),
		BenchPlayerIDs:  nonNilStrings(item.BenchPlayerIDs),
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

func (m managerTableModel) toDomain() manager.Manager {
	return manager.Manager{
		ID:              m.PublicID,
		LeagueID:        m.LeagueID,
		UserID:          m.UserID,
		TeamName:        m.TeamName,
		DraftOrder:      m.DraftOrder,
		ActivePlayerIDs: nonNilStrings(m.ActivePlayerIDs),
		BenchPlayerIDs:  nonNilStrings(m.BenchPlayerIDs),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// nonNilStrings keeps NOT NULL text[] columns from receiving a NULL array.
func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string(nil), values...)
}
