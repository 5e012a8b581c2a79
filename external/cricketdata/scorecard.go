package cricketdata

import (
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/scoring"
)

type scorecardEnvelope struct {
	Status string        `json:"status"`
	Reason string        `json:"reason"`
	Data   scorecardData `json:"data"`
}

type scorecardData struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Scorecard []inningsRecord `json:"scorecard"`
}

type playerRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type inningsRecord struct {
	Inning  string          `json:"inning"`
	Batting []battingRecord `json:"batting"`
	Bowling []bowlingRecord `json:"bowling"`
}

type battingRecord struct {
	Batsman       playerRecord `json:"batsman"`
	Dismissal     string       `json:"dismissal"`
	DismissalText string       `json:"dismissal-text"`
	Bowler        playerRecord `json:"bowler"`
	Catcher       playerRecord `json:"catcher"`
	Runs          int          `json:"r"`
	Balls         int          `json:"b"`
	Fours         int          `json:"4s"`
	Sixes         int          `json:"6s"`
}

type bowlingRecord struct {
	Bowler  playerRecord `json:"bowler"`
	Overs   float64      `json:"o"`
	Maidens int          `json:"m"`
	Runs    int          `json:"r"`
	Wickets int          `json:"w"`
}

func (d scorecardData) toDomain() scoring.Scorecard {
	card := scoring.Scorecard{
		MatchID: strings.TrimSpace(d.ID),
		Name:    strings.TrimSpace(d.Name),
		Innings: make([]scoring.Innings, 0, len(d.Scorecard)),
	}

	for _, inn := range d.Scorecard {
		innings := scoring.Innings{
			Name:    strings.TrimSpace(inn.Inning),
			Batting: make([]scoring.BattingEntry, 0, len(inn.Batting)),
			Bowling: make([]scoring.BowlingEntry, 0, len(inn.Bowling)),
		}
		for _, bat := range inn.Batting {
			innings.Batting = append(innings.Batting, scoring.BattingEntry{
				Batter:    bat.Batsman.toDomain(),
				Runs:      bat.Runs,
				Balls:     bat.Balls,
				Fours:     bat.Fours,
				Sixes:     bat.Sixes,
				Dismissal: mapDismissal(bat.Dismissal, bat.DismissalText),
				Bowler:    bat.Bowler.toDomain(),
				Fielder:   bat.Catcher.toDomain(),
			})
		}
		for _, bowl := range inn.Bowling {
			innings.Bowling = append(innings.Bowling, scoring.BowlingEntry{
				Bowler:       bowl.Bowler.toDomain(),
				Balls:        scoring.OversToBalls(bowl.Overs),
				Maidens:      bowl.Maidens,
				RunsConceded: bowl.Runs,
				Wickets:      bowl.Wickets,
			})
		}
		card.Innings = append(card.Innings, innings)
	}

	return card
}

func (p playerRecord) toDomain() scoring.PlayerRef {
	return scoring.PlayerRef{ID: strings.TrimSpace(p.ID), Name: strings.TrimSpace(p.Name)}
}

var dismissalCodes = map[string]string{
	"catch":         scoring.DismissalCaught,
	"caught":        scoring.DismissalCaught,
	"cb":            scoring.DismissalCaughtAndBowled,
	"caught bowled": scoring.DismissalCaughtAndBowled,
	"bowled":        scoring.DismissalBowled,
	"lbw":           scoring.DismissalLBW,
	"stumped":       scoring.DismissalStumped,
	"stumping":      scoring.DismissalStumped,
	"runout":        scoring.DismissalRunOut,
	"run out":       scoring.DismissalRunOut,
	"hitwicket":     scoring.DismissalHitWicket,
	"hit wicket":    scoring.DismissalHitWicket,
	"retired":       scoring.DismissalRetiredHurt,
	"retired hurt":  scoring.DismissalRetiredHurt,
	"not out":       scoring.DismissalNotOut,
	"notout":        scoring.DismissalNotOut,
	"dnb":           scoring.DismissalDidNotBat,
}

// mapDismissal prefers the coded field and falls back to the printed text,
// where "c X b Y", "st X b Y" and "run out (X)" are the usual shapes.
func mapDismissal(code, text string) string {
	if mapped, ok := dismissalCodes[scoring.NormalizeDismissal(code)]; ok {
		return mapped
	}

	text = scoring.NormalizeDismissal(text)
	switch {
	case text == "" || text == "not out" || text == "batting":
		return scoring.DismissalNotOut
	case strings.HasPrefix(text, "c & b"), strings.HasPrefix(text, "c and b"):
		return scoring.DismissalCaughtAndBowled
	case strings.HasPrefix(text, "c "):
		return scoring.DismissalCaught
	case strings.HasPrefix(text, "st "):
		return scoring.DismissalStumped
	case strings.HasPrefix(text, "run out"):
		return scoring.DismissalRunOut
	case strings.HasPrefix(text, "lbw"):
		return scoring.DismissalLBW
	case strings.HasPrefix(text, "hit wicket"):
		return scoring.DismissalHitWicket
	case strings.HasPrefix(text, "retired"):
		return scoring.DismissalRetiredHurt
	case strings.HasPrefix(text, "b "):
		return scoring.DismissalBowled
	}
	return text
}
