package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/scoring"
)

type playerMatchStatTableModel struct {
	ID            int64     `db:"id,readonly"`
	LeagueID      string    `db:"league_public_id"`
	MatchID       string    `db:"match_id"`
	Week          int       `db:"week"`
	PlayerID      string    `db:"player_public_id"`
	Runs          int       `db:"runs"`
	Fours         int       `db:"fours"`
	Sixes         int       `db:"sixes"`
	IsNotOut      bool      `db:"is_not_out"`
	Wickets       int       `db:"wickets"`
	Overs         float64   `db:"overs"`
	Economy       float64   `db:"economy"`
	Maidens       int       `db:"maidens"`
	Catches       int       `db:"catches"`
	Stumpings     int       `db:"stumpings"`
	RunOuts       int       `db:"run_outs"`
	DismissalType string    `db:"dismissal_type"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// statUpdateColumns are overwritten when a match is imported again.
var statUpdateColumns = []string{
	"week",
	"runs",
	"fours",
	"sixes",
	"is_not_out",
	"wickets",
	"overs",
	"economy",
	"maidens",
	"catches",
	"stumpings",
	"run_outs",
	"dismissal_type",
	"updated_at",
}

func statFromDomain(item scoring.PlayerMatchStat) playerMatchStatTableModel {
	p := item.Performance
	return playerMatchStatTableModel{
		LeagueID:      item.LeagueID,
		MatchID:       item.MatchID,
		Week:          item.Week,
		PlayerID:      item.PlayerID,
		Runs:          p.Runs,
		Fours:         p.Fours,
		Sixes:         p.Sixes,
		IsNotOut:      p.IsNotOut,
		Wickets:       p.Wickets,
		Overs:         p.Overs,
		Economy:       p.Economy,
		Maidens:       p.Maidens,
		Catches:       p.Catches,
		Stumpings:     p.Stumpings,
		RunOuts:       p.RunOuts,
		DismissalType: p.DismissalType,
		UpdatedAt:     item.UpdatedAt,
	}
}

func (m playerMatchStatTableModel) toDomain() scoring.PlayerMatchStat {
	return scoring.PlayerMatchStat{
		LeagueID: m.LeagueID,
		MatchID:  m.MatchID,
		Week:     m.Week,
		PlayerID: m.PlayerID,
		Performance: scoring.Performance{
			Runs:          m.Runs,
			Fours:         m.Fours,
			Sixes:         m.Sixes,
			IsNotOut:      m.IsNotOut,
			Wickets:       m.Wickets,
			Overs:         m.Overs,
			Economy:       m.Economy,
			Maidens:       m.Maidens,
			Catches:       m.Catches,
			Stumpings:     m.Stumpings,
			RunOuts:       m.RunOuts,
			DismissalType: m.DismissalType,
		},
		UpdatedAt: m.UpdatedAt,
	}
}
