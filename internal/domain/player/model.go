package player

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRole = errors.New("unknown player role")

// Role is the cricket role a player is drafted as.
type Role string

const (
	RoleBatsman      Role = "BAT"
	RoleBowler       Role = "BWL"
	RoleAllRounder   Role = "AR"
	RoleWicketKeeper Role = "WK"
)

var AllRoles = map[Role]struct{}{
	RoleBatsman:      {},
	RoleBowler:       {},
	RoleAllRounder:   {},
	RoleWicketKeeper: {},
}

var roleLabels = map[Role]string{
	RoleBatsman:      "Batsman",
	RoleBowler:       "Bowler",
	RoleAllRounder:   "All Rounder",
	RoleWicketKeeper: "Wicket Keeper",
}

// ParseRole accepts either the short code or the display label, case-insensitive.
func ParseRole(raw string) (Role, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	value = strings.NewReplacer("-", " ", "_", " ").Replace(value)
	value = strings.Join(strings.Fields(value), " ")

	switch value {
	case "BAT", "BATSMAN", "BATTER":
		return RoleBatsman, nil
	case "BWL", "BOWL", "BOWLER":
		return RoleBowler, nil
	case "AR", "ALL ROUNDER", "ALLROUNDER", "BATTING ALLROUNDER", "BOWLING ALLROUNDER":
		return RoleAllRounder, nil
	case "WK", "WICKET KEEPER", "WICKETKEEPER", "WK BATSMAN", "WK BATTER":
		return RoleWicketKeeper, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
}

func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// Player is a selectable cricketer in a league's player pool.
type Player struct {
	ID              string
	LeagueID        string
	Name            string
	Team            string
	Role            Role
	IsInternational bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.LeagueID == "" {
		return fmt.Errorf("player league id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Team == "" {
		return fmt.Errorf("player team is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRole, p.Role)
	}

	return nil
}

// NormalizeName folds a display name for matching provider scorecards
// against the pool: lower case, no dots, single spaces.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.ReplaceAll(name, ".", " "))
	return strings.Join(strings.Fields(name), " ")
}
