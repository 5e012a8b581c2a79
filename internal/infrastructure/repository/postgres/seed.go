package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo league and its player pool into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	leagues := make([]leagueTableModel, 0)
	for _, l := range memory.SeedLeagues() {
		leagues = append(leagues, leagueFromDomain(l))
	}
	players := make([]playerTableModel, 0)
	for _, p := range memory.SeedPlayers() {
		players = append(players, playerFromDomain(p))
	}

	return withTx(ctx, db, "bootstrap seed", func(tx *sqlx.Tx) error {
		leagueInsert, err := qb.InsertModels("leagues", leagues)
		if err != nil {
			return fmt.Errorf("build seed leagues model: %w", err)
		}
		query, args, err := leagueInsert.OnConflict("public_id").ConflictWhere("deleted_at IS NULL").DoNothing().ToSQL()
		if err != nil {
			return fmt.Errorf("build seed leagues query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed leagues: %w", err)
		}

		playerInsert, err := qb.InsertModels("league_players", players)
		if err != nil {
			return fmt.Errorf("build seed players model: %w", err)
		}
		query, args, err = playerInsert.OnConflict("league_public_id", "public_id").ConflictWhere("deleted_at IS NULL").DoNothing().ToSQL()
		if err != nil {
			return fmt.Errorf("build seed players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed players: %w", err)
		}
		return nil
	})
}
