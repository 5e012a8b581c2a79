package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

type playerTableModel struct {
	ID              int64      `db:"id,readonly"`
	PublicID        string     `db:"public_id"`
	LeagueID        string     `db:"league_public_id"`
	Name            string     `db:"name"`
	Team            string     `db:"team"`
	Role            string     `db:"role"`
	IsInternational bool       `db:"is_international"`
	CreatedAt       time.Time  `db:"created_at,readonly"`
	UpdatedAt       time.Time  `db:"updated_at,readonly"`
	DeletedAt       *time.Time `db:"deleted_at,readonly"`
}

func playerFromDomain(item player.Player) playerTableModel {
	return playerTableModel{
		PublicID:        item.ID,
		LeagueID:        item.LeagueID,
		Name:            item.Name,
		Team:            item.Team,
		Role:            string(item.Role),
		IsInternational: item.IsInternational,
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:              m.PublicID,
		LeagueID:        m.LeagueID,
		Name:            m.Name,
		Team:            m.Team,
		Role:            player.Role(m.Role),
		IsInternational: m.IsInternational,
	}
}
