package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/schedule"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

type rosterConfigRequest struct {
	ActiveSize       int `json:"active_size" validate:"required,min=1,max=30"`
	BenchSize        int `json:"bench_size" validate:"min=0,max=15"`
	MinWicketKeepers int `json:"min_wicket_keepers" validate:"min=0"`
	MinBatsmen       int `json:"min_batsmen" validate:"min=0"`
	MaxBatsmen       int `json:"max_batsmen" validate:"min=0"`
	MinBowlers       int `json:"min_bowlers" validate:"min=0"`
	MinAllRounders   int `json:"min_all_rounders" validate:"min=0"`
	MaxInternational int `json:"max_international" validate:"min=0"`
	ManagerCount     int `json:"manager_count" validate:"required,min=2,max=20"`
}

func (r rosterConfigRequest) toDomain() roster.Config {
	return roster.Config{
		ActiveSize:       r.ActiveSize,
		BenchSize:        r.BenchSize,
		MinWicketKeepers: r.MinWicketKeepers,
		MinBatsmen:       r.MinBatsmen,
		MaxBatsmen:       r.MaxBatsmen,
		MinBowlers:       r.MinBowlers,
		MinAllRounders:   r.MinAllRounders,
		MaxInternational: r.MaxInternational,
		ManagerCount:     r.ManagerCount,
	}
}

type createLeagueRequest struct {
	Name             string               `json:"name" validate:"required,max=100"`
	Season           string               `json:"season" validate:"required,max=20"`
	Roster           *rosterConfigRequest `json:"roster" validate:"omitempty"`
	DoubleRoundRobin bool                 `json:"double_round_robin"`
}

type updateRosterConfigRequest struct {
	Roster           rosterConfigRequest `json:"roster" validate:"required"`
	DoubleRoundRobin *bool               `json:"double_round_robin"`
}

type joinLeagueRequest struct {
	TeamName string `json:"team_name" validate:"required,max=60"`
}

type addPoolPlayerRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Team            string `json:"team" validate:"required,max=10"`
	Role            string `json:"role" validate:"required"`
	IsInternational bool   `json:"is_international"`
}

type rosterPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	ToBench  bool   `json:"to_bench"`
}

type tradeRequest struct {
	FromManagerID      string   `json:"from_manager_id" validate:"required"`
	ToManagerID        string   `json:"to_manager_id" validate:"required,nefield=FromManagerID"`
	OfferedPlayerIDs   []string `json:"offered_player_ids" validate:"required,min=1,dive,required"`
	RequestedPlayerIDs []string `json:"requested_player_ids" validate:"required,min=1,dive,required"`
}

type performanceRequest struct {
	Runs          int     `json:"runs" validate:"min=0"`
	Fours         int     `json:"fours" validate:"min=0"`
	Sixes         int     `json:"sixes" validate:"min=0"`
	IsNotOut      bool    `json:"is_not_out"`
	Wickets       int     `json:"wickets" validate:"min=0,max=10"`
	Overs         float64 `json:"overs" validate:"min=0"`
	Economy       float64 `json:"economy" validate:"min=0"`
	Maidens       int     `json:"maidens" validate:"min=0"`
	Catches       int     `json:"catches" validate:"min=0"`
	Stumpings     int     `json:"stumpings" validate:"min=0"`
	RunOuts       int     `json:"run_outs" validate:"min=0"`
	DismissalType string  `json:"dismissal_type" validate:"max=40"`
}

func (p performanceRequest) toDomain() scoring.Performance {
	return scoring.Performance{
		Runs:          p.Runs,
		Fours:         p.Fours,
		Sixes:         p.Sixes,
		IsNotOut:      p.IsNotOut,
		Wickets:       p.Wickets,
		Overs:         p.Overs,
		Economy:       p.Economy,
		Maidens:       p.Maidens,
		Catches:       p.Catches,
		Stumpings:     p.Stumpings,
		RunOuts:       p.RunOuts,
		DismissalType: p.DismissalType,
	}
}

type playerPerformanceRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	performanceRequest
}

type recordPerformancesRequest struct {
	LeagueID     string                     `json:"league_id" validate:"required"`
	MatchID      string                     `json:"match_id" validate:"required"`
	Week         int                        `json:"week" validate:"required,min=1"`
	Performances []playerPerformanceRequest `json:"performances" validate:"required,min=1,dive"`
}

type importScorecardRequest struct {
	LeagueID string `json:"league_id" validate:"required"`
	Week     int    `json:"week" validate:"required,min=1"`
	MatchID  string `json:"match_id" validate:"required"`
}

type syncScorecardsRequest struct {
	LeagueID   string   `json:"league_id" validate:"required"`
	Week       int      `json:"week" validate:"required,min=1"`
	MatchIDs   []string `json:"match_ids" validate:"required,min=1,max=50,dive,required"`
	MaxWorkers int      `json:"max_workers" validate:"min=0"`
}

type rosterConfigDTO struct {
	ActiveSize       int `json:"active_size"`
	BenchSize        int `json:"bench_size"`
	MinWicketKeepers int `json:"min_wicket_keepers"`
	MinBatsmen       int `json:"min_batsmen"`
	MaxBatsmen       int `json:"max_batsmen"`
	MinBowlers       int `json:"min_bowlers"`
	MinAllRounders   int `json:"min_all_rounders"`
	MaxInternational int `json:"max_international"`
	ManagerCount     int `json:"manager_count"`
}

type leagueDTO struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Season             string          `json:"season"`
	CommissionerUserID string          `json:"commissioner_user_id"`
	Roster             rosterConfigDTO `json:"roster"`
	DoubleRoundRobin   bool            `json:"double_round_robin"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func leagueToDTO(v league.League) leagueDTO {
	c := v.Roster
	return leagueDTO{
		ID:                 v.ID,
		Name:               v.Name,
		Season:             v.Season,
		CommissionerUserID: v.CommissionerUserID,
		Roster: rosterConfigDTO{
			ActiveSize:       c.ActiveSize,
			BenchSize:        c.BenchSize,
			MinWicketKeepers: c.MinWicketKeepers,
			MinBatsmen:       c.MinBatsmen,
			MaxBatsmen:       c.MaxBatsmen,
			MinBowlers:       c.MinBowlers,
			MinAllRounders:   c.MinAllRounders,
			MaxInternational: c.MaxInternational,
			ManagerCount:     c.ManagerCount,
		},
		DoubleRoundRobin: v.DoubleRoundRobin,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

type managerDTO struct {
	ID              string   `json:"id"`
	LeagueID        string   `json:"league_id"`
	UserID          string   `json:"user_id"`
	TeamName        string   `json:"team_name"`
	DraftOrder      int      `json:"draft_order"`
	ActivePlayerIDs []string `json:"active_player_ids"`
	BenchPlayerIDs  []string `json:"bench_player_ids"`
}

func managerToDTO(v manager.Manager) managerDTO {
	return managerDTO{
		ID:              v.ID,
		LeagueID:        v.LeagueID,
		UserID:          v.UserID,
		TeamName:        v.TeamName,
		DraftOrder:      v.DraftOrder,
		ActivePlayerIDs: nonNil(v.ActivePlayerIDs),
		BenchPlayerIDs:  nonNil(v.BenchPlayerIDs),
	}
}

type playerDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Team            string `json:"team"`
	Role            string `json:"role"`
	RoleLabel       string `json:"role_label"`
	IsInternational bool   `json:"is_international"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:              v.ID,
		Name:            v.Name,
		Team:            v.Team,
		Role:            string(v.Role),
		RoleLabel:       v.Role.Label(),
		IsInternational: v.IsInternational,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	return out
}

type constraintDTO struct {
	Category string `json:"category"`
	Current  int    `json:"current"`
	Min      *int   `json:"min,omitempty"`
	Max      *int   `json:"max,omitempty"`
	Target   *int   `json:"target,omitempty"`
	Status   string `json:"status"`
	Needed   *int   `json:"needed,omitempty"`
}

type progressDTO struct {
	IsComplete bool            `json:"is_complete"`
	Categories []constraintDTO `json:"categories"`
}

func progressToDTO(p roster.Progress) progressDTO {
	categories := p.Categories()
	out := progressDTO{
		IsComplete: p.IsComplete(),
		Categories: make([]constraintDTO, 0, len(categories)),
	}
	for _, item := range categories {
		out.Categories = append(out.Categories, constraintDTO{
			Category: string(item.Category),
			Current:  item.Current,
			Min:      item.Min,
			Max:      item.Max,
			Target:   item.Target,
			Status:   string(item.Status),
			Needed:   item.Needed,
		})
	}
	return out
}

type slotDTO struct {
	Label  string     `json:"label"`
	Role   string     `json:"role"`
	Player *playerDTO `json:"player,omitempty"`
}

func slotsToDTO(slots []roster.Slot) []slotDTO {
	out := make([]slotDTO, 0, len(slots))
	for _, slot := range slots {
		item := slotDTO{Label: slot.Label, Role: string(slot.Role)}
		if slot.Player != nil {
			p := playerToDTO(*slot.Player)
			item.Player = &p
		}
		out = append(out, item)
	}
	return out
}

type rosterDTO struct {
	Manager  managerDTO  `json:"manager"`
	Active   []playerDTO `json:"active"`
	Bench    []playerDTO `json:"bench"`
	Progress progressDTO `json:"progress"`
	Slots    []slotDTO   `json:"slots"`
}

func rosterViewToDTO(v usecase.RosterView) rosterDTO {
	return rosterDTO{
		Manager:  managerToDTO(v.Manager),
		Active:   playersToDTO(v.Active),
		Bench:    playersToDTO(v.Bench),
		Progress: progressToDTO(v.Progress),
		Slots:    slotsToDTO(v.Slots),
	}
}

type rosterChangeDTO struct {
	Manager  managerDTO  `json:"manager"`
	Progress progressDTO `json:"progress"`
	Warnings []string    `json:"warnings"`
}

func rosterChangeToDTO(v usecase.RosterChange) rosterChangeDTO {
	warnings := make([]string, 0, len(v.Warnings))
	for _, category := range v.Warnings {
		warnings = append(warnings, string(category))
	}
	return rosterChangeDTO{
		Manager:  managerToDTO(v.Manager),
		Progress: progressToDTO(v.Progress),
		Warnings: warnings,
	}
}

type tradeDTO struct {
	From rosterChangeDTO `json:"from"`
	To   rosterChangeDTO `json:"to"`
}

type fixtureDTO struct {
	Round         int    `json:"round"`
	Slot          int    `json:"slot"`
	HomeManagerID string `json:"home_manager_id"`
	AwayManagerID string `json:"away_manager_id,omitempty"`
	IsBye         bool   `json:"is_bye"`
}

func fixturesToDTO(items []schedule.Fixture) []fixtureDTO {
	out := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, fixtureDTO{
			Round:         item.Round,
			Slot:          item.Slot,
			HomeManagerID: item.HomeManagerID,
			AwayManagerID: item.AwayManagerID,
			IsBye:         item.IsBye(),
		})
	}
	return out
}

type playerPointsDTO struct {
	PlayerID string `json:"player_id"`
	Week     int    `json:"week"`
	Points   int    `json:"points"`
	Matches  int    `json:"matches"`
}

func playerPointsToDTO(items []scoring.PlayerPoints) []playerPointsDTO {
	out := make([]playerPointsDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerPointsDTO{
			PlayerID: item.PlayerID,
			Week:     item.Week,
			Points:   item.Points,
			Matches:  item.Matches,
		})
	}
	return out
}

type managerWeekPointsDTO struct {
	ManagerID string            `json:"manager_id"`
	Week      int               `json:"week"`
	Points    int               `json:"points"`
	Players   []playerPointsDTO `json:"players"`
}

type standingDTO struct {
	Rank          int    `json:"rank"`
	ManagerID     string `json:"manager_id"`
	TeamName      string `json:"team_name"`
	Played        int    `json:"played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Ties          int    `json:"ties"`
	Byes          int    `json:"byes"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
}

func standingsToDTO(rows []usecase.StandingRow) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingDTO{
			Rank:          row.Rank,
			ManagerID:     row.ManagerID,
			TeamName:      row.TeamName,
			Played:        row.Played,
			Wins:          row.Wins,
			Losses:        row.Losses,
			Ties:          row.Ties,
			Byes:          row.Byes,
			PointsFor:     row.PointsFor,
			PointsAgainst: row.PointsAgainst,
		})
	}
	return out
}

type importResultDTO struct {
	MatchID   string   `json:"match_id"`
	Recorded  int      `json:"recorded"`
	Unmatched []string `json:"unmatched"`
}

type syncTaskDTO struct {
	MatchID    string   `json:"match_id"`
	Status     string   `json:"status"`
	Records    int      `json:"records"`
	Unmatched  []string `json:"unmatched,omitempty"`
	Message    string   `json:"message,omitempty"`
	DurationMs int64    `json:"duration_ms"`
}

type syncResultDTO struct {
	LeagueID     string        `json:"league_id"`
	Week         int           `json:"week"`
	WorkerCount  int           `json:"worker_count"`
	SuccessCount int           `json:"success_count"`
	SkippedCount int           `json:"skipped_count"`
	FailedCount  int           `json:"failed_count"`
	Tasks        []syncTaskDTO `json:"tasks"`
}

func syncResultToDTO(v usecase.SyncResult) syncResultDTO {
	tasks := make([]syncTaskDTO, 0, len(v.Tasks))
	for _, task := range v.Tasks {
		tasks = append(tasks, syncTaskDTO{
			MatchID:    task.MatchID,
			Status:     task.Status,
			Records:    task.Records,
			Unmatched:  task.Unmatched,
			Message:    task.Message,
			DurationMs: task.DurationMs,
		})
	}
	return syncResultDTO{
		LeagueID:     v.LeagueID,
		Week:         v.Week,
		WorkerCount:  v.WorkerCount,
		SuccessCount: v.SuccessCount,
		SkippedCount: v.SkippedCount,
		FailedCount:  v.FailedCount,
		Tasks:        tasks,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
