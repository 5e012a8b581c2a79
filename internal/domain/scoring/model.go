package scoring

import (
	"fmt"
	"time"
)

// PlayerMatchStat is a stored stat line. Points are never stored with it;
// they are recomputed from Performance on every read.
type PlayerMatchStat struct {
	LeagueID    string
	MatchID     string
	Week        int
	PlayerID    string
	Performance Performance
	UpdatedAt   time.Time
}

func (s PlayerMatchStat) Validate() error {
	if s.LeagueID == "" {
		return fmt.Errorf("stat league id is required")
	}
	if s.MatchID == "" {
		return fmt.Errorf("stat match id is required")
	}
	if s.PlayerID == "" {
		return fmt.Errorf("stat player id is required")
	}
	if s.Week < 1 {
		return fmt.Errorf("stat week must be >= 1")
	}
	return nil
}

// PlayerPoints is a player's total for a week.
type PlayerPoints struct {
	PlayerID string
	Week     int
	Points   int
	Matches  int
}
