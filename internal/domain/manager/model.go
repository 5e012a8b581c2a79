package manager

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrPlayerHeld reports a roster write that would put a player on two
// managers of the same league.
var ErrPlayerHeld = errors.New("player held by another manager")

// Manager is a user's team inside one league.
type Manager struct {
	ID              string
	LeagueID        string
	UserID          string
	TeamName        string
	DraftOrder      int
	ActivePlayerIDs []string
	BenchPlayerIDs  []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (m Manager) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("manager id is required")
	}
	if m.LeagueID == "" {
		return fmt.Errorf("manager league id is required")
	}
	if m.UserID == "" {
		return fmt.Errorf("manager user id is required")
	}
	if m.TeamName == "" {
		return fmt.Errorf("manager team name is required")
	}

	seen := make(map[string]struct{}, len(m.ActivePlayerIDs)+len(m.BenchPlayerIDs))
	for _, id := range m.AllPlayerIDs() {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate player in roster: %s", id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// AllPlayerIDs returns active ids followed by bench ids.
func (m Manager) AllPlayerIDs() []string {
	out := make([]string, 0, len(m.ActivePlayerIDs)+len(m.BenchPlayerIDs))
	out = append(out, m.ActivePlayerIDs...)
	return append(out, m.BenchPlayerIDs...)
}

func (m Manager) HasPlayer(playerID string) bool {
	return slices.Contains(m.ActivePlayerIDs, playerID) || slices.Contains(m.BenchPlayerIDs, playerID)
}

func (m Manager) IsActive(playerID string) bool {
	return slices.Contains(m.ActivePlayerIDs, playerID)
}

// Clone copies the id slices so edits do not leak into the source.
func (m Manager) Clone() Manager {
	m.ActivePlayerIDs = slices.Clone(m.ActivePlayerIDs)
	m.BenchPlayerIDs = slices.Clone(m.BenchPlayerIDs)
	return m
}

// Without returns a copy with playerID removed from both lists.
func (m Manager) Without(playerID string) Manager {
	out := m.Clone()
	out.ActivePlayerIDs = slices.DeleteFunc(out.ActivePlayerIDs, func(id string) bool { return id == playerID })
	out.BenchPlayerIDs = slices.DeleteFunc(out.BenchPlayerIDs, func(id string) bool { return id == playerID })
	return out
}

// CheckExclusive verifies that no player in updates is held by a league
// manager outside updates, or by two of the updates. current is the stored
// state of the league.
func CheckExclusive(current, updates []Manager) error {
	writing := make(map[string]struct{}, len(updates))
	for _, m := range updates {
		writing[m.ID] = struct{}{}
	}

	holders := make(map[string]string)
	for _, m := range current {
		if _, ok := writing[m.ID]; ok {
			continue
		}
		for _, id := range m.AllPlayerIDs() {
			holders[id] = m.ID
		}
	}
	for _, m := range updates {
		for _, id := range m.AllPlayerIDs() {
			if holder, ok := holders[id]; ok && holder != m.ID {
				return fmt.Errorf("%w: player=%s manager=%s", ErrPlayerHeld, id, holder)
			}
			holders[id] = m.ID
		}
	}
	return nil
}
