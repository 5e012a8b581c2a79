package roster

import "github.com/riskibarqy/fantasy-cricket/internal/domain/player"

// Fixed bands for the combined-role rules. They do not follow the
// per-role config fields.
const (
	WKBatCombinedMin = 4
	WKBatCombinedMax = 6
	BwlArCombinedMin = 5
)

type Status string

const (
	StatusMet      Status = "met"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

type Category string

const (
	CategoryWicketKeepers Category = "wicket_keepers"
	CategoryBatsmen       Category = "batsmen"
	CategoryAllRounders   Category = "all_rounders"
	CategoryBowlers       Category = "bowlers"
	CategoryWKBatCombined Category = "wk_bat_combined"
	CategoryBwlArCombined Category = "bwl_ar_combined"
	CategoryInternational Category = "international"
	CategoryTotal         Category = "total"
)

// ConstraintProgress reports how one category stands against its bounds.
// Nil bounds mean the category has no such bound.
type ConstraintProgress struct {
	Current int
	Min     *int
	Max     *int
	Target  *int
	Status  Status
	Needed  *int
}

type Progress struct {
	WicketKeepers ConstraintProgress
	Batsmen       ConstraintProgress
	AllRounders   ConstraintProgress
	Bowlers       ConstraintProgress
	WKBatCombined ConstraintProgress
	BwlArCombined ConstraintProgress
	International ConstraintProgress
	Total         ConstraintProgress
}

type CategoryProgress struct {
	Category Category
	ConstraintProgress
}

// GetProgress counts the given players against cfg. Pass the active roster.
func GetProgress(players []player.Player, cfg Config) Progress {
	counts := make(map[player.Role]int, len(player.AllRoles))
	international := 0
	for _, item := range players {
		counts[item.Role]++
		if item.IsInternational {
			international++
		}
	}

	return Progress{
		WicketKeepers: bounded(counts[player.RoleWicketKeeper], intPtr(cfg.MinWicketKeepers), nil),
		Batsmen:       bounded(counts[player.RoleBatsman], intPtr(cfg.MinBatsmen), optionalCap(cfg.MaxBatsmen)),
		AllRounders:   bounded(counts[player.RoleAllRounder], intPtr(cfg.MinAllRounders), nil),
		Bowlers:       bounded(counts[player.RoleBowler], intPtr(cfg.MinBowlers), nil),
		WKBatCombined: bounded(
			counts[player.RoleWicketKeeper]+counts[player.RoleBatsman],
			intPtr(WKBatCombinedMin),
			intPtr(WKBatCombinedMax),
		),
		BwlArCombined: bounded(counts[player.RoleBowler]+counts[player.RoleAllRounder], intPtr(BwlArCombinedMin), nil),
		International: bounded(international, nil, optionalCap(cfg.MaxInternational)),
		Total:         targeted(len(players), cfg.ActiveSize),
	}
}

func bounded(current int, minimum, maximum *int) ConstraintProgress {
	out := ConstraintProgress{Current: current, Min: minimum, Max: maximum}
	switch {
	case maximum != nil && current > *maximum:
		out.Status = StatusExceeded
	case minimum == nil || current >= *minimum:
		out.Status = StatusMet
	default:
		out.Status = StatusWarning
	}
	if minimum != nil {
		out.Needed = intPtr(max(0, *minimum-current))
	}
	return out
}

func targeted(current, target int) ConstraintProgress {
	out := ConstraintProgress{Current: current, Target: intPtr(target)}
	switch {
	case current > target:
		out.Status = StatusExceeded
	case current == target:
		out.Status = StatusMet
	default:
		out.Status = StatusWarning
	}
	out.Needed = intPtr(max(0, target-current))
	return out
}

func intPtr(v int) *int {
	return &v
}

// Categories returns every category in display order.
func (p Progress) Categories() []CategoryProgress {
	return []CategoryProgress{
		{Category: CategoryWicketKeepers, ConstraintProgress: p.WicketKeepers},
		{Category: CategoryBatsmen, ConstraintProgress: p.Batsmen},
		{Category: CategoryAllRounders, ConstraintProgress: p.AllRounders},
		{Category: CategoryBowlers, ConstraintProgress: p.Bowlers},
		{Category: CategoryWKBatCombined, ConstraintProgress: p.WKBatCombined},
		{Category: CategoryBwlArCombined, ConstraintProgress: p.BwlArCombined},
		{Category: CategoryInternational, ConstraintProgress: p.International},
		{Category: CategoryTotal, ConstraintProgress: p.Total},
	}
}

func (p Progress) Get(category Category) (ConstraintProgress, bool) {
	for _, item := range p.Categories() {
		if item.Category == category {
			return item.ConstraintProgress, true
		}
	}
	return ConstraintProgress{}, false
}

func (p Progress) IsComplete() bool {
	for _, item := range p.Categories() {
		if item.Status != StatusMet {
			return false
		}
	}
	return true
}

func (p Progress) withStatus(status Status) []Category {
	out := make([]Category, 0)
	for _, item := range p.Categories() {
		if item.Status == status {
			out = append(out, item.Category)
		}
	}
	return out
}

func (p Progress) Exceeded() []Category {
	return p.withStatus(StatusExceeded)
}

func (p Progress) Warnings() []Category {
	return p.withStatus(StatusWarning)
}

// NewlyExceeded lists categories that are exceeded in after but were not in before.
// A roster mutation producing any of these should be blocked.
func NewlyExceeded(before, after Progress) []Category {
	prev := make(map[Category]Status, 8)
	for _, item := range before.Categories() {
		prev[item.Category] = item.Status
	}

	out := make([]Category, 0)
	for _, item := range after.Categories() {
		if item.Status == StatusExceeded && prev[item.Category] != StatusExceeded {
			out = append(out, item.Category)
		}
	}
	return out
}
