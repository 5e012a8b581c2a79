package scoring

import (
	"math"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

// Dismissal types as stored on a Performance.
const (
	DismissalCaught          = "caught"
	DismissalCaughtAndBowled = "caught and bowled"
	DismissalBowled          = "bowled"
	DismissalLBW             = "lbw"
	DismissalStumped         = "stumped"
	DismissalRunOut          = "run out"
	DismissalHitWicket       = "hit wicket"
	DismissalRetiredHurt     = "retired hurt"
	DismissalNotOut          = "not out"
	DismissalDidNotBat       = "did not bat"
)

type PlayerRef struct {
	ID   string
	Name string
}

func (r PlayerRef) Empty() bool {
	return r.ID == "" && r.Name == ""
}

type BattingEntry struct {
	Batter    PlayerRef
	Runs      int
	Balls     int
	Fours     int
	Sixes     int
	Dismissal string
	Bowler    PlayerRef
	Fielder   PlayerRef
}

type BowlingEntry struct {
	Bowler       PlayerRef
	Balls        int
	Maidens      int
	RunsConceded int
	Wickets      int
}

type Innings struct {
	Name    string
	Batting []BattingEntry
	Bowling []BowlingEntry
}

// Scorecard is a provider-neutral match scorecard.
type Scorecard struct {
	MatchID string
	Name    string
	Innings []Innings
}

type performanceAcc struct {
	perf         Performance
	balls        int
	runsConceded int
	bowled       bool
}

// Performances folds the scorecard into one Performance per player, keyed by
// player.NormalizeName. Batting and bowling figures add up across innings;
// the dismissal comes from the player's last batting innings. Fielders are
// credited from the dismissal they took part in.
func (c Scorecard) Performances() map[string]Performance {
	acc := make(map[string]*performanceAcc)
	get := func(ref PlayerRef) *performanceAcc {
		key := player.NormalizeName(ref.Name)
		if key == "" {
			return nil
		}
		item, ok := acc[key]
		if !ok {
			item = &performanceAcc{}
			acc[key] = item
		}
		return item
	}

	for _, innings := range c.Innings {
		for _, bat := range innings.Batting {
			if item := get(bat.Batter); item != nil {
				item.perf.Runs += bat.Runs
				item.perf.Fours += bat.Fours
				item.perf.Sixes += bat.Sixes
				dismissal := NormalizeDismissal(bat.Dismissal)
				item.perf.IsNotOut = dismissal == DismissalNotOut || dismissal == ""
				item.perf.DismissalType = dismissal
			}

			switch NormalizeDismissal(bat.Dismissal) {
			case DismissalCaught:
				if item := get(bat.Fielder); item != nil {
					item.perf.Catches++
				}
			case DismissalCaughtAndBowled:
				if item := get(bat.Bowler); item != nil {
					item.perf.Catches++
				}
			case DismissalStumped:
				if item := get(bat.Fielder); item != nil {
					item.perf.Stumpings++
				}
			case DismissalRunOut:
				if item := get(bat.Fielder); item != nil {
					item.perf.RunOuts++
				}
			}
		}

		for _, bowl := range innings.Bowling {
			item := get(bowl.Bowler)
			if item == nil {
				continue
			}
			item.bowled = true
			item.balls += bowl.Balls
			item.runsConceded += bowl.RunsConceded
			item.perf.Maidens += bowl.Maidens
			item.perf.Wickets += bowl.Wickets
		}
	}

	out := make(map[string]Performance, len(acc))
	for key, item := range acc {
		perf := item.perf
		if item.bowled && item.balls > 0 {
			perf.Overs = BallsToOvers(item.balls)
			// Unrounded: 4.995 must still land in the under-5 band.
			perf.Economy = float64(item.runsConceded) * 6 / float64(item.balls)
		}
		out[key] = perf
	}
	return out
}

// BallsToOvers renders a ball count in cricket notation, 22 balls -> 3.4.
func BallsToOvers(balls int) float64 {
	return float64(balls/6) + float64(balls%6)/10
}

// OversToBalls parses cricket notation, 3.4 -> 22 balls.
func OversToBalls(overs float64) int {
	whole := math.Floor(overs)
	part := int(math.Round((overs - whole) * 10))
	return int(whole)*6 + part
}
