package roster

import (
	"fmt"
	"slices"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

const flexSlotPrefix = "FLEX"

var rolePriority = map[player.Role]int{
	player.RoleWicketKeeper: 0,
	player.RoleBatsman:      1,
	player.RoleAllRounder:   2,
	player.RoleBowler:       3,
}

var slotPrefixes = []struct {
	role   player.Role
	prefix string
}{
	{player.RoleWicketKeeper, "WK"},
	{player.RoleBatsman, "BAT"},
	{player.RoleAllRounder, "AR"},
	{player.RoleBowler, "BOWL"},
}

// Slot is one labeled position on the active roster. Role is empty for FLEX slots.
type Slot struct {
	Label  string
	Role   player.Role
	Player *player.Player
}

func (s Slot) Filled() bool {
	return s.Player != nil
}

// SortPlayersByRole orders players WK, BAT, AR, BWL. Ties keep input order and
// unknown roles sort last. The input slice is not modified.
func SortPlayersByRole(players []player.Player) []player.Player {
	out := slices.Clone(players)
	slices.SortStableFunc(out, func(a, b player.Player) int {
		return rolePriorityOf(a.Role) - rolePriorityOf(b.Role)
	})
	return out
}

func rolePriorityOf(role player.Role) int {
	if p, ok := rolePriority[role]; ok {
		return p
	}
	return len(rolePriority)
}

// GetActiveSlots lays the active roster out as labeled slots. Required role
// slots come first, then FLEX slots up to ActiveSize. Players that do not fit
// a role slot go to FLEX; if there are more of them than FLEX slots, extra
// FLEX slots are appended so no player is hidden.
func GetActiveSlots(players []player.Player, cfg Config) []Slot {
	required := map[player.Role]int{
		player.RoleWicketKeeper: max(0, cfg.MinWicketKeepers),
		player.RoleBatsman:      max(0, cfg.batsmanSlots()),
		player.RoleAllRounder:   max(0, cfg.MinAllRounders),
		player.RoleBowler:       max(0, cfg.MinBowlers),
	}

	byRole := make(map[player.Role][]player.Player, len(required))
	surplus := make([]player.Player, 0)
	for _, item := range SortPlayersByRole(players) {
		if len(byRole[item.Role]) < required[item.Role] {
			byRole[item.Role] = append(byRole[item.Role], item)
			continue
		}
		surplus = append(surplus, item)
	}

	slots := make([]Slot, 0, max(cfg.ActiveSize, len(players)))
	requiredTotal := 0
	for _, group := range slotPrefixes {
		assigned := byRole[group.role]
		for i := 0; i < required[group.role]; i++ {
			slot := Slot{Label: fmt.Sprintf("%s%d", group.prefix, i+1), Role: group.role}
			if i < len(assigned) {
				p := assigned[i]
				slot.Player = &p
			}
			slots = append(slots, slot)
		}
		requiredTotal += required[group.role]
	}

	flexCount := max(cfg.ActiveSize-requiredTotal, len(surplus), 0)
	for i := 0; i < flexCount; i++ {
		slot := Slot{Label: fmt.Sprintf("%s%d", flexSlotPrefix, i+1)}
		if i < len(surplus) {
			p := surplus[i]
			slot.Player = &p
		}
		slots = append(slots, slot)
	}

	return slots
}
