package memory

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
)

const (
	LeagueIDIPLFriends   = "ipl-2025-friends"
	SeedCommissionerUser = "user-commissioner"
)

func SeedLeagues() []league.League {
	createdAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []league.League{
		{
			ID:                 LeagueIDIPLFriends,
			Name:               "IPL Friends League",
			Season:             "2025",
			CommissionerUserID: SeedCommissionerUser,
			Roster:             roster.DefaultConfig(),
			DoubleRoundRobin:   true,
			CreatedAt:          createdAt,
			UpdatedAt:          createdAt,
		},
	}
}

func SeedPlayers() []player.Player {
	type row struct {
		id            string
		name          string
		team          string
		role          player.Role
		international bool
	}
	rows := []row{
		{"ipl-wk-01", "MS Dhoni", "CSK", player.RoleWicketKeeper, false},
		{"ipl-wk-02", "Jos Buttler", "GT", player.RoleWicketKeeper, true},
		{"ipl-wk-03", "Rishabh Pant", "LSG", player.RoleWicketKeeper, false},
		{"ipl-wk-04", "Heinrich Klaasen", "SRH", player.RoleWicketKeeper, true},
		{"ipl-bat-01", "Virat Kohli", "RCB", player.RoleBatsman, false},
		{"ipl-bat-02", "Rohit Sharma", "MI", player.RoleBatsman, false},
		{"ipl-bat-03", "Shubman Gill", "GT", player.RoleBatsman, false},
		{"ipl-bat-04", "Travis Head", "SRH", player.RoleBatsman, true},
		{"ipl-bat-05", "Ruturaj Gaikwad", "CSK", player.RoleBatsman, false},
		{"ipl-bat-06", "Faf du Plessis", "DC", player.RoleBatsman, true},
		{"ipl-bat-07", "Yashasvi Jaiswal", "RR", player.RoleBatsman, false},
		{"ipl-bat-08", "Suryakumar Yadav", "MI", player.RoleBatsman, false},
		{"ipl-ar-01", "Hardik Pandya", "MI", player.RoleAllRounder, false},
		{"ipl-ar-02", "Ravindra Jadeja", "CSK", player.RoleAllRounder, false},
		{"ipl-ar-03", "Andre Russell", "KKR", player.RoleAllRounder, true},
		{"ipl-ar-04", "Glenn Maxwell", "PBKS", player.RoleAllRounder, true},
		{"ipl-ar-05", "Axar Patel", "DC", player.RoleAllRounder, false},
		{"ipl-ar-06", "Sunil Narine", "KKR", player.RoleAllRounder, true},
		{"ipl-bwl-01", "Jasprit Bumrah", "MI", player.RoleBowler, false},
		{"ipl-bwl-02", "Rashid Khan", "GT", player.RoleBowler, true},
		{"ipl-bwl-03", "Mohammed Siraj", "GT", player.RoleBowler, false},
		{"ipl-bwl-04", "Pat Cummins", "SRH", player.RoleBowler, true},
		{"ipl-bwl-05", "Yuzvendra Chahal", "PBKS", player.RoleBowler, false},
		{"ipl-bwl-06", "Kuldeep Yadav", "DC", player.RoleBowler, false},
		{"ipl-bwl-07", "Trent Boult", "MI", player.RoleBowler, true},
		{"ipl-bwl-08", "Arshdeep Singh", "PBKS", player.RoleBowler, false},
		{"ipl-bwl-09", "Varun Chakravarthy", "KKR", player.RoleBowler, false},
		{"ipl-bwl-10", "Mitchell Starc", "DC", player.RoleBowler, true},
	}

	out := make([]player.Player, 0, len(rows))
	for _, r := range rows {
		out = append(out, player.Player{
			ID:              r.id,
			LeagueID:        LeagueIDIPLFriends,
			Name:            r.name,
			Team:            r.team,
			Role:            r.role,
			IsInternational: r.international,
		})
	}
	return out
}
