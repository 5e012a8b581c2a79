package scoring

import "strings"

// Performance is one player's line from a single match.
type Performance struct {
	Runs          int
	Fours         int
	Sixes         int
	IsNotOut      bool
	Wickets       int
	Overs         float64
	Economy       float64
	Maidens       int
	Catches       int
	Stumpings     int
	RunOuts       int
	DismissalType string
}

type RunBonus struct {
	MinRuns int
	Points  int
}

// EconomyBand applies when economy is below Below. Bands are checked in order.
type EconomyBand struct {
	Below  float64
	Points int
}

// Rules is the points table. Tiers are ordered data so a new tier is a table edit.
type Rules struct {
	PerRun  int
	PerFour int
	PerSix  int
	// Milestones is sorted by MinRuns descending; only the first reached counts.
	Milestones        []RunBonus
	NotOutBonus       int
	NotOutMinRuns     int
	PerWicket         int
	PerMaiden         int
	EconomyBands      []EconomyBand
	EconomyOverflow   int
	PerCatch          int
	PerStumping       int
	PerRunOut         int
	DuckPenalty       int
	DuckExemptions    map[string]struct{}
	NotDismissedTypes map[string]struct{}
}

func DefaultRules() Rules {
	return Rules{
		PerRun:  1,
		PerFour: 1,
		PerSix:  2,
		Milestones: []RunBonus{
			{MinRuns: 100, Points: 16},
			{MinRuns: 50, Points: 8},
			{MinRuns: 30, Points: 4},
		},
		NotOutBonus:   4,
		NotOutMinRuns: 10,
		PerWicket:     25,
		PerMaiden:     12,
		EconomyBands: []EconomyBand{
			{Below: 5, Points: 6},
			{Below: 6, Points: 4},
			{Below: 7, Points: 2},
			{Below: 10, Points: 0},
			{Below: 11, Points: -2},
			{Below: 12, Points: -4},
		},
		EconomyOverflow: -6,
		PerCatch:        8,
		PerStumping:     12,
		PerRunOut:       6,
		DuckPenalty:     -2,
		DuckExemptions: map[string]struct{}{
			"run out":      {},
			"retired hurt": {},
			"did not bat":  {},
		},
		NotDismissedTypes: map[string]struct{}{
			"":        {},
			"not out": {},
		},
	}
}

var defaultRules = DefaultRules()

// CalculateFantasyPoints scores a performance with the default rules.
func CalculateFantasyPoints(p Performance) int {
	return defaultRules.Points(p)
}

func (r Rules) Points(p Performance) int {
	return r.battingPoints(p) + r.bowlingPoints(p) + r.fieldingPoints(p) + r.dismissalAdjustment(p)
}

func (r Rules) battingPoints(p Performance) int {
	points := p.Runs*r.PerRun + p.Fours*r.PerFour + p.Sixes*r.PerSix
	for _, milestone := range r.Milestones {
		if p.Runs >= milestone.MinRuns {
			points += milestone.Points
			break
		}
	}
	if p.IsNotOut && p.Runs >= r.NotOutMinRuns {
		points += r.NotOutBonus
	}
	return points
}

func (r Rules) bowlingPoints(p Performance) int {
	points := p.Wickets*r.PerWicket + p.Maidens*r.PerMaiden
	if p.Overs > 0 {
		points += r.economyPoints(p.Economy)
	}
	return points
}

func (r Rules) economyPoints(economy float64) int {
	for _, band := range r.EconomyBands {
		if economy < band.Below {
			return band.Points
		}
	}
	return r.EconomyOverflow
}

func (r Rules) fieldingPoints(p Performance) int {
	return p.Catches*r.PerCatch + p.Stumpings*r.PerStumping + p.RunOuts*r.PerRunOut
}

// dismissalAdjustment only touches a batter who was out without scoring.
func (r Rules) dismissalAdjustment(p Performance) int {
	if p.IsNotOut || p.Runs != 0 {
		return 0
	}
	dismissal := NormalizeDismissal(p.DismissalType)
	if _, notOut := r.NotDismissedTypes[dismissal]; notOut {
		return 0
	}
	if _, exempt := r.DuckExemptions[dismissal]; exempt {
		return 0
	}
	return r.DuckPenalty
}

// NormalizeDismissal lowercases and collapses whitespace so provider strings
// such as "Run Out" or "run  out" match the table keys.
func NormalizeDismissal(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
