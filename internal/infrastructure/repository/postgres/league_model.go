package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
)

type leagueTableModel struct {
	ID                 int64      `db:"id,readonly"`
	PublicID           string     `db:"public_id"`
	Name               string     `db:"name"`
	Season             string     `db:"season"`
	CommissionerUserID string     `db:"commissioner_user_id"`
	ActiveSize         int        `db:"active_size"`
	BenchSize          int        `db:"bench_size"`
	MinWicketKeepers   int        `db:"min_wicket_keepers"`
	MinBatsmen         int        `db:"min_batsmen"`
	MaxBatsmen         int        `db:"max_batsmen"`
	MinBowlers         int        `db:"min_bowlers"`
	MinAllRounders     int        `db:"min_all_rounders"`
	MaxInternational   int        `db:"max_international"`
	ManagerCount       int        `db:"manager_count"`
	DoubleRoundRobin   bool       `db:"double_round_robin"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at,readonly"`
}

func leagueFromDomain(item league.League) leagueTableModel {
	return leagueTableModel{
		PublicID:           item.ID,
		Name:               item.Name,
		Season:             item.Season,
		CommissionerUserID: item.CommissionerUserID,
		ActiveSize:         item.Roster.ActiveSize,
		BenchSize:          item.Roster.BenchSize,
		MinWicketKeepers:   item.Roster.MinWicketKeepers,
		MinBatsmen:         item.Roster.MinBatsmen,
		MaxBatsmen:         item.Roster.MaxBatsmen,
		MinBowlers:         item.Roster.MinBowlers,
		MinAllRounders:     item.Roster.MinAllRounders,
		MaxInternational:   item.Roster.MaxInternational,
		ManagerCount:       item.Roster.ManagerCount,
		DoubleRoundRobin:   item.DoubleRoundRobin,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:                 m.PublicID,
		Name:               m.Name,
		Season:             m.Season,
		CommissionerUserID: m.CommissionerUserID,
		Roster: roster.Config{
			ActiveSize:       m.ActiveSize,
			BenchSize:        m.BenchSize,
			MinWicketKeepers: m.MinWicketKeepers,
			MinBatsmen:       m.MinBatsmen,
			MaxBatsmen:       m.MaxBatsmen,
			MinBowlers:       m.MinBowlers,
			MinAllRounders:   m.MinAllRounders,
			MaxInternational: m.MaxInternational,
			ManagerCount:     m.ManagerCount,
		},
		DoubleRoundRobin: m.DoubleRoundRobin,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
