package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/schedule"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type fixtureTableModel struct {
	ID            int64          `db:"id,readonly"`
	LeagueID      string         `db:"league_public_id"`
	Round         int            `db:"round"`
	Slot          int            `db:"slot"`
	HomeManagerID string         `db:"home_manager_id"`
	AwayManagerID sql.NullString `db:"away_manager_id"`
	CreatedAt     time.Time      `db:"created_at,readonly"`
}

func fixtureFromDomain(item schedule.Fixture) fixtureTableModel {
	return fixtureTableModel{
		LeagueID:      item.LeagueID,
		Round:         item.Round,
		Slot:          item.Slot,
		HomeManagerID: item.HomeManagerID,
		AwayManagerID: sql.NullString{String: item.AwayManagerID, Valid: item.AwayManagerID != ""},
	}
}

func (m fixtureTableModel) toDomain() schedule.Fixture {
	return schedule.Fixture{
		LeagueID:      m.LeagueID,
		Round:         m.Round,
		Slot:          m.Slot,
		HomeManagerID: m.HomeManagerID,
		AwayManagerID: m.AwayManagerID.String,
	}
}

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ReplaceByLeague swaps the whole schedule atomically.
func (r *ScheduleRepository) ReplaceByLeague(ctx context.Context, leagueID string, fixtures []schedule.Fixture) error {
	return withTx(ctx, r.db, "league schedule replace", func(tx *sqlx.Tx) error {
		query, args, err := qb.DeleteFrom("league_fixtures").
			Where(qb.Eq("league_public_id", leagueID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete league fixtures query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete league fixtures: %w", err)
		}

		rows := make([]fixtureTableModel, 0, len(fixtures))
		for _, f := range fixtures {
			f.LeagueID = leagueID
			rows = append(rows, fixtureFromDomain(f))
		}
		for _, batch := range batches(rows, insertBatchSize) {
			insert, err := qb.InsertModels("league_fixtures", batch)
			if err != nil {
				return fmt.Errorf("build insert league fixtures model: %w", err)
			}
			query, args, err := insert.ToSQL()
			if err != nil {
				return fmt.Errorf("build insert league fixtures query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert league fixtures: %w", err)
			}
		}
		return nil
	})
}

func (r *ScheduleRepository) ListByLeague(ctx context.Context, leagueID string) ([]schedule.Fixture, error) {
	query, args, err := qb.Select("*").From("league_fixtures").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("round", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select league fixtures: %w", err)
	}

	out := make([]schedule.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
