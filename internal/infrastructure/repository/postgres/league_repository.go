package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	insert, err := qb.InsertModels("leagues", []leagueTableModel{leagueFromDomain(item)})
	if err != nil {
		return fmt.Errorf("build insert league model: %w", err)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("league already exists: %s", item.ID)
		}
		return fmt.Errorf("insert league: %w", err)
	}
	return nil
}

func (r *LeagueRepository) Update(ctx context.Context, item league.League) error {
	row := leagueFromDomain(item)
	query, args, err := qb.Update("leagues").
		Set("name", row.Name).
		Set("season", row.Season).
		Set("active_size", row.ActiveSize).
		Set("bench_size", row.BenchSize).
		Set("min_wicket_keepers", row.MinWicketKeepers).
		Set("min_batsmen", row.MinBatsmen).
		Set("max_batsmen", row.MaxBatsmen).
		Set("min_bowlers", row.MinBowlers).
		Set("min_all_rounders", row.MinAllRounders).
		Set("max_international", row.MaxInternational).
		Set("manager_count", row.ManagerCount).
		Set("double_round_robin", row.DoubleRoundRobin).
		Set("updated_at", row.UpdatedAt).
		Where(qb.Eq("public_id", row.PublicID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update league: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("league not found: %s", item.ID)
	}
	return nil
}
