package memory

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
)

func TestManagerRepository_UpdateRostersRejectsHeldPlayer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewManagerRepository([]manager.Manager{
		{ID: "m1", LeagueID: "lg", UserID: "u1", TeamName: "One", ActivePlayerIDs: []string{"p1"}},
		{ID: "m2", LeagueID: "lg", UserID: "u2", TeamName: "Two"},
		{ID: "m3", LeagueID: "other", UserID: "u3", TeamName: "Three", ActivePlayerIDs: []string{"p2"}},
	})

	err := repo.UpdateRosters(ctx, []manager.Manager{{ID: "m2", LeagueID: "lg", ActivePlayerIDs: []string{"p1"}}})
	if !errors.Is(err, manager.ErrPlayerHeld) {
		t.Fatalf("expected ErrPlayerHeld, got %v", err)
	}
	got, _, _ := repo.GetByID(ctx, "lg", "m2")
	if len(got.ActivePlayerIDs) != 0 {
		t.Fatalf("rejected write must not land: %+v", got)
	}

	// p2 belongs to a manager in another league.
	if err := repo.UpdateRosters(ctx, []manager.Manager{{ID: "m2", LeagueID: "lg", ActivePlayerIDs: []string{"p2"}}}); err != nil {
		t.Fatalf("update across leagues: %v", err)
	}
	got, _, _ = repo.GetByID(ctx, "lg", "m2")
	if !slices.Equal(got.ActivePlayerIDs, []string{"p2"}) {
		t.Fatalf("unexpected roster: %+v", got)
	}
}

func TestManagerRepository_UpdateRostersSwap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewManagerRepository([]manager.Manager{
		{ID: "m1", LeagueID: "lg", UserID: "u1", TeamName: "One", ActivePlayerIDs: []string{"p1"}},
		{ID: "m2", LeagueID: "lg", UserID: "u2", TeamName: "Two", BenchPlayerIDs: []string{"p2"}},
	})

	err := repo.UpdateRosters(ctx, []manager.Manager{
		{ID: "m1", LeagueID: "lg", ActivePlayerIDs: []string{"p2"}},
		{ID: "m2", LeagueID: "lg", BenchPlayerIDs: []string{"p1"}},
	})
	if err != nil {
		t.Fatalf("swap: %v", err)
	}

	managers, err := repo.ListByLeague(ctx, "lg")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !slices.Equal(managers[0].ActivePlayerIDs, []string{"p2"}) || !slices.Equal(managers[1].BenchPlayerIDs, []string{"p1"}) {
		t.Fatalf("unexpected rosters after swap: %+v", managers)
	}
	if err := repo.UpdateRosters(ctx, []manager.Manager{{ID: "ghost", LeagueID: "lg"}}); err == nil {
		t.Fatalf("expected not found for unknown manager")
	}
}
