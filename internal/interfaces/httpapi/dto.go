package httpapi

import (
	"time"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/standing"
	"github.com/riskibarqy/league-sync/internal/usecase"
)

type competitionDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Season   string `json:"season"`
	Category string `json:"category,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

type standingDTO struct {
	Position       int      `json:"position"`
	TeamID         int64    `json:"team_id"`
	TeamName       string   `json:"team_name"`
	Played         int      `json:"played"`
	Won            int      `json:"won"`
	Drawn          int      `json:"drawn"`
	Lost           int      `json:"lost"`
	GoalsFor       int      `json:"goals_for"`
	GoalsAgainst   int      `json:"goals_against"`
	GoalDifference int      `json:"goal_difference"`
	Points         int      `json:"points"`
	Recent         []string `json:"recent,omitempty"`
}

type zoneTableDTO struct {
	Zone      string        `json:"zone"`
	Standings []standingDTO `json:"standings"`
}

// Field sets mirror the domain rows so plain conversions apply.
type streakDTO struct {
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
	Played   int    `json:"played"`
	Winning  int    `json:"winning"`
	Unbeaten int    `json:"unbeaten"`
}

type cleanSheetDTO struct {
	TeamID      int64  `json:"team_id"`
	TeamName    string `json:"team_name"`
	Played      int    `json:"played"`
	CleanSheets int    `json:"clean_sheets"`
}

type scorerDTO struct {
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
	TeamName   string `json:"team_name"`
	Goals      int    `json:"goals"`
}

type cardRankingDTO struct {
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
	TeamName   string `json:"team_name"`
	Yellow     int    `json:"yellow"`
	Red        int    `json:"red"`
	Total      int    `json:"total"`
}

type eventDetailDTO struct {
	MatchExternalID int64      `json:"match_external_id"`
	MatchDate       *time.Time `json:"match_date"`
	Minute          *int       `json:"minute"`
	Kind            string     `json:"kind"`
	SubType         *string    `json:"sub_type,omitempty"`
	IsHome          bool       `json:"is_home"`
	OpponentName    string     `json:"opponent_name"`
}

type scoreRepairDTO struct {
	MatchID      int64  `json:"match_id"`
	BeforeHome   *int   `json:"before_home_score"`
	BeforeAway   *int   `json:"before_away_score"`
	BeforeStatus string `json:"before_status"`
	HomeScore    int    `json:"home_score"`
	AwayScore    int    `json:"away_score"`
	Status       string `json:"status"`
}

type syncLogDTO struct {
	RunID            string    `json:"run_id"`
	SyncDate         time.Time `json:"sync_date"`
	RecordsProcessed int       `json:"records_processed"`
}

func competitionToDTO(item competition.Competition) competitionDTO {
	return competitionDTO{
		ID:       item.ID,
		Name:     item.Name,
		Season:   item.Season,
		Category: item.Category,
		Gender:   item.Gender,
	}
}

func standingsToDTO(rows []standing.TeamStanding) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		item := standingDTO{
			Position:       row.Position,
			TeamID:         row.TeamID,
			TeamName:       row.TeamName,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference(),
			Points:         row.Points,
		}
		for _, outcome := range row.Recent {
			item.Recent = append(item.Recent, string(outcome))
		}
		out = append(out, item)
	}
	return out
}

func eventDetailsToDTO(rows []standing.EventDetail) []eventDetailDTO {
	out := make([]eventDetailDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventDetailDTO(row))
	}
	return out
}

func scoreRepairToDTO(repair usecase.ScoreRepair) scoreRepairDTO {
	return scoreRepairDTO{
		MatchID:      repair.MatchID,
		BeforeHome:   repair.Before.HomeScore,
		BeforeAway:   repair.Before.AwayScore,
		BeforeStatus: repair.Before.Status,
		HomeScore:    repair.After.HomeScore,
		AwayScore:    repair.After.AwayScore,
		Status:       repair.After.Status,
	}
}
