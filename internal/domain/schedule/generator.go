package schedule

// Matchup is one pairing in a round. An empty Away is a bye for Home.
type Matchup struct {
	Round int
	Home  string
	Away  string
}

func (m Matchup) IsBye() bool {
	return m.Away == ""
}

// byeIndex marks the padding entry added for an odd number of managers. It is
// an index, not an id, so no real manager id can collide with it.
const byeIndex = -1

// Generate builds a single round robin with the circle method. The first id
// stays fixed while the rest rotate; for N entries (padded to even) it yields
// N-1 rounds of N/2 matchups. Fewer than two ids yields an empty schedule.
func Generate(managerIDs []string) []Matchup {
	if len(managerIDs) < 2 {
		return []Matchup{}
	}

	slots := make([]int, 0, len(managerIDs)+1)
	for i := range managerIDs {
		slots = append(slots, i)
	}
	if len(slots)%2 == 1 {
		slots = append(slots, byeIndex)
	}

	n := len(slots)
	fixed := slots[0]
	rotating := append([]int(nil), slots[1:]...)
	out := make([]Matchup, 0, (n-1)*(n/2))

	for round := 1; round < n; round++ {
		last := len(rotating) - 1
		out = append(out, pair(managerIDs, round, fixed, rotating[last]))
		for i := 0; i < last/2; i++ {
			out = append(out, pair(managerIDs, round, rotating[i], rotating[last-1-i]))
		}

		tail := rotating[last]
		copy(rotating[1:], rotating[:last])
		rotating[0] = tail
	}

	return out
}

func pair(ids []string, round, home, away int) Matchup {
	switch {
	case home == byeIndex:
		return Matchup{Round: round, Home: ids[away]}
	case away == byeIndex:
		return Matchup{Round: round, Home: ids[home]}
	default:
		return Matchup{Round: round, Home: ids[home], Away: ids[away]}
	}
}

// MirrorSecondLeg returns the return fixtures of a single round robin: home and
// away swapped and rounds shifted past the first leg. Byes keep their manager.
func MirrorSecondLeg(firstLeg []Matchup) []Matchup {
	offset := RoundCount(firstLeg)
	out := make([]Matchup, 0, len(firstLeg))
	for _, m := range firstLeg {
		mirrored := Matchup{Round: m.Round + offset, Home: m.Home}
		if !m.IsBye() {
			mirrored.Home, mirrored.Away = m.Away, m.Home
		}
		out = append(out, mirrored)
	}
	return out
}

// GenerateDouble is Generate followed by its mirrored second leg.
func GenerateDouble(managerIDs []string) []Matchup {
	first := Generate(managerIDs)
	return append(first, MirrorSecondLeg(first)...)
}

func RoundCount(matchups []Matchup) int {
	rounds := 0
	for _, m := range matchups {
		rounds = max(rounds, m.Round)
	}
	return rounds
}
