package roster

import (
	"errors"
	"fmt"
)

var (
	ErrLeagueMinimums        = errors.New("role minimums exceed active roster size")
	ErrInvalidConfig         = errors.New("invalid roster config")
	ErrRosterFull            = errors.New("roster is full")
	ErrConstraintExceeded    = errors.New("roster constraint exceeded")
	ErrPlayerAlreadyRostered = errors.New("player already rostered")
	ErrPlayerNotRostered     = errors.New("player not on roster")
)

// Config holds the roster rules a league is created with. A zero Min field
// is met by zero players. A zero Max field (MaxBatsmen, MaxInternational)
// means the league set no cap.
type Config struct {
	ActiveSize       int
	BenchSize        int
	MinWicketKeepers int
	MinBatsmen       int
	MaxBatsmen       int
	MinBowlers       int
	MinAllRounders   int
	MaxInternational int
	ManagerCount     int
}

func DefaultConfig() Config {
	return Config{
		ActiveSize:       11,
		BenchSize:        4,
		MinWicketKeepers: 1,
		MinBatsmen:       3,
		MaxBatsmen:       5,
		MinBowlers:       4,
		MinAllRounders:   2,
		MaxInternational: 4,
		ManagerCount:     8,
	}
}

// Validate rejects structurally broken values. Role minimum feasibility is
// checked separately by ValidateLeagueMinimums.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"active size", c.ActiveSize},
		{"bench size", c.BenchSize},
		{"min wicket keepers", c.MinWicketKeepers},
		{"min batsmen", c.MinBatsmen},
		{"max batsmen", c.MaxBatsmen},
		{"min bowlers", c.MinBowlers},
		{"min all rounders", c.MinAllRounders},
		{"max international", c.MaxInternational},
		{"manager count", c.ManagerCount},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0", ErrInvalidConfig, f.name)
		}
	}
	if c.ActiveSize == 0 {
		return fmt.Errorf("%w: active size must be > 0", ErrInvalidConfig)
	}
	if c.ManagerCount < 2 {
		return fmt.Errorf("%w: manager count must be >= 2", ErrInvalidConfig)
	}

	return nil
}

func (c Config) MinimumSum() int {
	return c.MinWicketKeepers + c.MinBatsmen + c.MinBowlers + c.MinAllRounders
}

// optionalCap turns a zero max into no cap.
func optionalCap(limit int) *int {
	if limit > 0 {
		return intPtr(limit)
	}
	return nil
}

func (c Config) batsmanSlots() int {
	if c.MaxBatsmen > 0 {
		return c.MaxBatsmen
	}
	return c.MinBatsmen
}

// Validation is the outcome of a config-only feasibility check.
type Validation struct {
	IsValid bool
	Message string
}

// Err returns nil for a valid result and ErrLeagueMinimums otherwise.
func (v Validation) Err() error {
	if v.IsValid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrLeagueMinimums, v.Message)
}

// ValidateLeagueMinimums checks that the role minimums fit in the active roster.
// It looks only at the config, never at actual player counts.
func ValidateLeagueMinimums(cfg Config) Validation {
	sum := cfg.MinimumSum()
	if sum > cfg.ActiveSize {
		return Validation{
			IsValid: false,
			Message: fmt.Sprintf(
				"sum of role minimums (%d) exceeds active roster size (%d): wicket keepers %d, batsmen %d, bowlers %d, all rounders %d",
				sum, cfg.ActiveSize, cfg.MinWicketKeepers, cfg.MinBatsmen, cfg.MinBowlers, cfg.MinAllRounders,
			),
		}
	}

	return Validation{IsValid: true}
}
