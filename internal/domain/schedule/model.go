package schedule

import "fmt"

// Fixture is the persisted form of a matchup within a league.
type Fixture struct {
	LeagueID      string
	Round         int
	Slot          int
	HomeManagerID string
	AwayManagerID string
}

func (f Fixture) IsBye() bool {
	return f.AwayManagerID == ""
}

func (f Fixture) Matchup() Matchup {
	return Matchup{Round: f.Round, Home: f.HomeManagerID, Away: f.AwayManagerID}
}

func (f Fixture) Validate() error {
	if f.LeagueID == "" {
		return fmt.Errorf("fixture league id is required")
	}
	if f.Round < 1 {
		return fmt.Errorf("fixture round must be >= 1")
	}
	if f.HomeManagerID == "" {
		return fmt.Errorf("fixture home manager id is required")
	}
	if f.HomeManagerID == f.AwayManagerID {
		return fmt.Errorf("fixture manager cannot face itself: %s", f.HomeManagerID)
	}
	return nil
}

// ToFixtures numbers matchups within each round in output order.
func ToFixtures(leagueID string, matchups []Matchup) []Fixture {
	out := make([]Fixture, 0, len(matchups))
	slotByRound := make(map[int]int)
	for _, m := range matchups {
		slotByRound[m.Round]++
		out = append(out, Fixture{
			LeagueID:      leagueID,
			Round:         m.Round,
			Slot:          slotByRound[m.Round],
			HomeManagerID: m.Home,
			AwayManagerID: m.Away,
		})
	}
	return out
}
