package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scoring"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

// UpsertStats keys rows by league, match and player; a re-import overwrites.
func (r *ScoringRepository) UpsertStats(ctx context.Context, stats []scoring.PlayerMatchStat) error {
	if len(stats) == 0 {
		return nil
	}

	rows := make([]playerMatchStatTableModel, 0, len(stats))
	for _, item := range stats {
		rows = append(rows, statFromDomain(item))
	}

	return withTx(ctx, r.db, "player match stats upsert", func(tx *sqlx.Tx) error {
		for _, batch := range batches(rows, insertBatchSize) {
			insert, err := qb.InsertModels("player_match_stats", batch)
			if err != nil {
				return fmt.Errorf("build upsert player match stats model: %w", err)
			}
			query, args, err := insert.
				OnConflict("league_public_id", "match_id", "player_public_id").
				DoUpdate(statUpdateColumns...).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build upsert player match stats query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert player match stats: %w", err)
			}
		}
		return nil
	})
}

func (r *ScoringRepository) ListByLeagueWeek(ctx context.Context, leagueID string, week int) ([]scoring.PlayerMatchStat, error) {
	query, args, err := qb.Select("*").From("player_match_stats").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("week", week),
		).
		OrderBy("match_id", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player match stats query: %w", err)
	}

	var rows []playerMatchStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player match stats: %w", err)
	}

	out := make([]scoring.PlayerMatchStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ScoringRepository) ListWeeks(ctx context.Context, leagueID string) ([]int, error) {
	query, args, err := qb.Select("DISTINCT week").From("player_match_stats").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("week").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select scored weeks query: %w", err)
	}

	var weeks []int
	if err := r.db.SelectContext(ctx, &weeks, query, args...); err != nil {
		return nil, fmt.Errorf("select scored weeks: %w", err)
	}
	if weeks == nil {
		weeks = []int{}
	}
	return weeks, nil
}
