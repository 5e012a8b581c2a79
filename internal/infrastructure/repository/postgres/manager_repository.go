package postgres

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type ManagerRepository struct {
	db *sqlx.DB
}

func NewManagerRepository(db *sqlx.DB) *ManagerRepository {
	return &ManagerRepository{db: db}
}

func (r *ManagerRepository) ListByLeague(ctx context.Context, leagueID string) ([]manager.Manager, error) {
	query, args, err := qb.Select("*").From("league_managers").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("draft_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select managers by league query: %w", err)
	}

	var rows []managerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select managers by league: %w", err)
	}

	out := make([]manager.Manager, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ManagerRepository) GetByID(ctx context.Context, leagueID, managerID string) (manager.Manager, bool, error) {
	return r.getOne(ctx, "get manager by id", qb.Eq("league_public_id", leagueID), qb.Eq("public_id", managerID))
}

func (r *ManagerRepository) GetByUser(ctx context.Context, leagueID, userID string) (manager.Manager, bool, error) {
	return r.getOne(ctx, "get manager by user", qb.Eq("league_public_id", leagueID), qb.Eq("user_id", userID))
}

func (r *ManagerRepository) getOne(ctx context.Context, op string, conditions ...qb.Condition) (manager.Manager, bool, error) {
	query, args, err := qb.Select("*").From("league_managers").
		Where(append(conditions, qb.IsNull("deleted_at"))...).
		ToSQL()
	if err != nil {
		return manager.Manager{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row managerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return manager.Manager{}, false, nil
		}
		return manager.Manager{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return row.toDomain(), true, nil
}

func (r *ManagerRepository) Create(ctx context.Context, item manager.Manager) error {
	insert, err := qb.InsertModels("league_managers", []managerTableModel{managerFromDomain(item)})
	if err != nil {
		return fmt.Errorf("build insert manager model: %w", err)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert manager query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("manager already exists: %s", item.ID)
		}
		return fmt.Errorf("insert manager: %w", err)
	}
	return nil
}

// UpdateRosters writes active and bench ids for every manager in one
// transaction, so a trade lands on both sides or on neither. The league's
// manager rows stay locked from the exclusivity check until commit.
func (r *ManagerRepository) UpdateRosters(ctx context.Context, items []manager.Manager) error {
	if len(items) == 0 {
		return nil
	}

	byLeague := make(map[string][]manager.Manager)
	for _, item := range items {
		byLeague[item.LeagueID] = append(byLeague[item.LeagueID], item)
	}

	return withTx(ctx, r.db, "manager rosters update", func(tx *sqlx.Tx) error {
		for _, leagueID := range slices.Sorted(maps.Keys(byLeague)) {
			current, err := lockLeagueManagers(ctx, tx, leagueID)
			if err != nil {
				return err
			}
			if err := manager.CheckExclusive(current, byLeague[leagueID]); err != nil {
				return err
			}
		}

		for _, item := range items {
			query, args, err := qb.Update("league_managers").
				Set("active_player_ids", pq.Array(nonNilStrings(item.ActivePlayerIDs))).
				Set("bench_player_ids", pq.Array(nonNilStrings(item.BenchPlayerIDs))).
				Set("updated_at", item.UpdatedAt).
				Where(
					qb.Eq("league_public_id", item.LeagueID),
					qb.Eq("public_id", item.ID),
					qb.IsNull("deleted_at"),
				).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build update manager=%s roster query: %w", item.ID, err)
			}

			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("update manager=%s roster: %w", item.ID, err)
			}
			if affected, err := res.RowsAffected(); err == nil && affected == 0 {
				return fmt.Errorf("manager not found: %s", item.ID)
			}
		}
		return nil
	})
}

func lockLeagueManagers(ctx context.Context, tx *sqlx.Tx, leagueID string) ([]manager.Manager, error) {
	query, args, err := qb.Select("*").From("league_managers").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ForUpdate().
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lock managers query: %w", err)
	}

	var rows []managerTableModel
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("lock managers league=%s: %w", leagueID, err)
	}

	out := make([]manager.Manager, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
