package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/league-sync/internal/domain/competition"
	"github.com/riskibarqy/league-sync/internal/domain/match"
	"github.com/riskibarqy/league-sync/internal/domain/matchevent"
	"github.com/riskibarqy/league-sync/internal/domain/player"
	"github.com/riskibarqy/league-sync/internal/domain/referee"
	"github.com/riskibarqy/league-sync/internal/domain/synclog"
	"github.com/riskibarqy/league-sync/internal/domain/team"
)

type competitionTableModel struct {
	ID       int64  `db:"id,omitinsert"`
	Name     string `db:"name"`
	Season   string `db:"season"`
	Category string `db:"category"`
	Gender   string `db:"gender"`
}

func (m competitionTableModel) domain() competition.Competition {
	return competition.Competition{ID: m.ID, Name: m.Name, Season: m.Season, Category: m.Category, Gender: m.Gender}
}

type teamTableModel struct {
	ID           int64         `db:"id,omitinsert"`
	ExternalID   int64         `db:"external_id"`
	Name         string        `db:"name"`
	ParentClubID sql.NullInt64 `db:"parent_club_id"`
	Association  string        `db:"association"`
}

func (m teamTableModel) domain() team.Team {
	return team.Team{
		ID:           m.ID,
		ExternalID:   m.ExternalID,
		Name:         m.Name,
		ParentClubID: nullInt64ToPtr(m.ParentClubID),
		Association:  m.Association,
	}
}

type playerTableModel struct {
	ID         int64         `db:"id,omitinsert"`
	ExternalID int64         `db:"external_id"`
	Name       string        `db:"name"`
	TeamID     sql.NullInt64 `db:"team_id"`
}

func (m playerTableModel) domain() player.Player {
	return player.Player{ID: m.ID, ExternalID: m.ExternalID, Name: m.Name, TeamID: nullInt64ToPtr(m.TeamID)}
}

type refereeTableModel struct {
	ID          int64        `db:"id,omitinsert"`
	ExternalID  int64        `db:"external_id"`
	Name        string       `db:"name"`
	Gender      string       `db:"gender"`
	Nationality string       `db:"nationality"`
	DateOfBirth sql.NullTime `db:"date_of_birth"`
}

func (m refereeTableModel) domain() referee.Referee {
	return referee.Referee{
		ID:          m.ID,
		ExternalID:  m.ExternalID,
		Name:        m.Name,
		Gender:      m.Gender,
		Nationality: m.Nationality,
		DateOfBirth: nullTimeToPtr(m.DateOfBirth),
	}
}

type matchTableModel struct {
	ID            int64          `db:"id,omitinsert"`
	ExternalID    int64          `db:"external_id"`
	CompetitionID int64          `db:"competition_id"`
	HomeTeamID    int64          `db:"home_team_id"`
	AwayTeamID    int64          `db:"away_team_id"`
	RefereeID     sql.NullInt64  `db:"referee_id"`
	MatchDate     sql.NullTime   `db:"match_date"`
	Status        string         `db:"status"`
	Facility      string         `db:"facility"`
	Round         sql.NullString `db:"round"`
	Zone          sql.NullString `db:"zone"`
	HomeScore     sql.NullInt32  `db:"home_score"`
	AwayScore     sql.NullInt32  `db:"away_score"`
}

func matchModelFrom(item match.Match) matchTableModel {
	return matchTableModel{
		ExternalID:    item.ExternalID,
		CompetitionID: item.CompetitionID,
		HomeTeamID:    item.HomeTeamID,
		AwayTeamID:    item.AwayTeamID,
		RefereeID:     nullInt64(item.RefereeID),
		MatchDate:     nullTime(item.Date),
		Status:        item.Status,
		Facility:      item.Facility,
		Round:         nullString(item.Round),
		Zone:          nullString(item.Zone),
		HomeScore:     nullInt32(item.HomeScore),
		AwayScore:     nullInt32(item.AwayScore),
	}
}

func (m matchTableModel) domain() match.Match {
	return match.Match{
		ID:            m.ID,
		ExternalID:    m.ExternalID,
		CompetitionID: m.CompetitionID,
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		RefereeID:     nullInt64ToPtr(m.RefereeID),
		Date:          nullTimeToPtr(m.MatchDate),
		Status:        m.Status,
		Facility:      m.Facility,
		Round:         nullStringToPtr(m.Round),
		Zone:          nullStringToPtr(m.Zone),
		HomeScore:     nullInt32ToPtr(m.HomeScore),
		AwayScore:     nullInt32ToPtr(m.AwayScore),
	}
}

type eventTableModel struct {
	ID                int64          `db:"id,omitinsert"`
	MatchID           int64          `db:"match_id"`
	PlayerID          int64          `db:"player_id"`
	TeamID            int64          `db:"team_id"`
	Kind              string         `db:"kind"`
	SubType           sql.NullString `db:"sub_type"`
	Minute            sql.NullInt32  `db:"minute"`
	Phase             string         `db:"phase"`
	IsHome            bool           `db:"is_home"`
	SecondPlayerID    sql.NullInt64  `db:"second_player_id"`
	StoppageTime      sql.NullInt32  `db:"stoppage_time"`
	AccumulatedYellow sql.NullString `db:"accumulated_yellow"`
}

func eventModelFrom(item matchevent.Event) eventTableModel {
	return eventTableModel{
		MatchID:           item.MatchID,
		PlayerID:          item.PlayerID,
		TeamID:            item.TeamID,
		Kind:              item.Kind,
		SubType:           nullString(item.SubType),
		Minute:            nullInt32(item.Minute),
		Phase:             item.Phase,
		IsHome:            item.IsHome,
		SecondPlayerID:    nullInt64(item.SecondPlayerID),
		StoppageTime:      nullInt32(item.StoppageTime),
		AccumulatedYellow: nullString(item.AccumulatedYellow),
	}
}

func (m eventTableModel) domain() matchevent.Event {
	return matchevent.Event{
		ID:                m.ID,
		MatchID:           m.MatchID,
		PlayerID:          m.PlayerID,
		TeamID:            m.TeamID,
		Kind:              m.Kind,
		SubType:           nullStringToPtr(m.SubType),
		Minute:            nullInt32ToPtr(m.Minute),
		Phase:             m.Phase,
		IsHome:            m.IsHome,
		SecondPlayerID:    nullInt64ToPtr(m.SecondPlayerID),
		StoppageTime:      nullInt32ToPtr(m.StoppageTime),
		AccumulatedYellow: nullStringToPtr(m.AccumulatedYellow),
	}
}

type syncLogTableModel struct {
	ID               int64     `db:"id,omitinsert"`
	RunID            string    `db:"run_id"`
	SyncDate         time.Time `db:"sync_date"`
	RecordsProcessed int       `db:"records_processed"`
}

func (m syncLogTableModel) domain() synclog.Entry {
	return synclog.Entry{ID: m.ID, RunID: m.RunID, SyncDate: m.SyncDate.UTC(), RecordsProcessed: m.RecordsProcessed}
}

func mapRows[M interface{ domain() D }, D any](rows []M) []D {
	out := make([]D, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.domain())
	}
	return out
}
