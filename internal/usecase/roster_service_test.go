package usecase

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/manager"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/require"
)

func newRosterServiceForTest(t *testing.T, managers ...manager.Manager) (*RosterService, testRepos) {
	t.Helper()

	repos := newTestRepos(t, managers...)
	service := NewRosterService(repos.leagues, repos.players, repos.managers, testLogger())
	service.now = func() time.Time { return testNow }
	return service, repos
}

func TestRosterService_AddPlayerReturnsWarnings(t *testing.T) {
	t.Parallel()

	service, repos := newRosterServiceForTest(t, seedManager("m1", "user-a", 1, nil, nil))

	change, err := service.AddPlayer(t.Context(), AddRosterPlayerInput{
		UserID:    "user-a",
		LeagueID:  memory.LeagueIDIPLFriends,
		ManagerID: "m1",
		PlayerID:  "ipl-wk-01",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"ipl-wk-01"}, change.Manager.ActivePlayerIDs)

	wantWarnings := []roster.Category{
		roster.CategoryBatsmen,
		roster.CategoryAllRounders,
		roster.CategoryBowlers,
		roster.CategoryWKBatCombined,
		roster.CategoryBwlArCombined,
		roster.CategoryTotal,
	}
	if diff := cmp.Diff(wantWarnings, change.Warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}

	stored, exists, err := repos.managers.GetByID(t.Context(), memory.LeagueIDIPLFriends, "m1")
	require.NoError(t, err)
	require.True(t, exists)
	require.True(t, stored.UpdatedAt.Equal(testNow), "updated_at not stamped: %s", stored.UpdatedAt)
	require.True(t, stored.HasPlayer("ipl-wk-01"))
}

func TestRosterService_AddPlayerBlocksNewlyExceededCategory(t *testing.T) {
	t.Parallel()

	active := []string{"ipl-wk-01", "ipl-bat-01", "ipl-bat-02", "ipl-bat-03", "ipl-bat-05", "ipl-bat-07"}
	service, _ := newRosterServiceForTest(t, seedManager("m1", "user-a", 1, active, nil))

	for _, playerID := range []string{"ipl-bat-08", "ipl-wk-03"} {
		_, err := service.AddPlayer(t.Context(), AddRosterPlayerInput{
			UserID:    "user-a",
			LeagueID:  memory.LeagueIDIPLFriends,
			ManagerID: "m1",
			PlayerID:  playerID,
		})
		if !errors.Is(err, ErrConflict) || !errors.Is(err, roster.ErrConstraintExceeded) {
			t.Fatalf("expected constraint exceeded for %s, got %v", playerID, err)
		}
	}

	// The bench does not count toward role limits.
	change, err := service.AddPlayer(t.Context(), AddRosterPlayerInput{
		UserID:    "user-a",
		LeagueID:  memory.LeagueIDIPLFriends,
		ManagerID: "m1",
		PlayerID:  "ipl-bat-08",
		ToBench:   true,
	})
	if err != nil {
		t.Fatalf("add bench player: %v", err)
	}
	if !slices.Equal(change.Manager.BenchPlayerIDs, []string{"ipl-bat-08"}) {
		t.Fatalf("unexpected bench: %v", change.Manager.BenchPlayerIDs)
	}
}

func TestRosterService_AddPlayerBlocksInternationalCap(t *testing.T) {
	t.Parallel()

	active := []string{"ipl-wk-02", "ipl-bat-04", "ipl-ar-03", "ipl-bwl-02"}
	service, _ := newRosterServiceForTest(t, seedManager("m1", "user-a", 1, active, nil))

	_, err := service.AddPlayer(t.Context(), AddRosterPlayerInput{
		UserID:    "user-a",
		LeagueID:  memory.LeagueIDIPLFriends,
		ManagerID: "m1",
		PlayerID:  "ipl-bwl-04",
	})
	if !errors.Is(err, roster.ErrConstraintExceeded) {
		t.Fatalf("expected international cap to block, got %v", err)
	}

	if _, err := service.AddPlayer(t.Context(), AddRosterPlayerInput{
		UserID:    "user-a",
		LeagueID:  memory.LeagueIDIPLFriends,
		ManagerID: "m1",
		PlayerID:  "ipl-bwl-01",
	}); err != nil {
		t.Fatalf("domestic player should be allowed: %v", err)
	}
}

func TestRosterService_AddPlayerRosterFull(t *testing.T) {
	t.Parallel()

	active := []string{
		"ipl-wk-01",
		"ipl-bat-01", "ipl-bat-02", "ipl-bat-03",
		"ipl-ar-01", "ipl-ar-02",
		"ipl-bwl-01", "ipl-bwl-03", "ipl-bwl-05", "ipl-bwl-06", "ipl-bwl-08",
	}
	service, _ := newRosterServiceForTest(t, seedManager("m1", "user-a", 1, active, nil))

	progress, err := service.GetProgress(t.Context(), memory.LeagueIDIPLFriends, "m1")
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if !progress.IsComplete() {
		t.Fatalf("expected a complete roster, got %+v", progress)
	}

	_, err = service.AddPlayer(t.Context(), AddRosterPlayerInput{
		UserID:    "user-a",
		LeagueID:  memory.LeagueIDIPLFriends,
		ManagerID: "m1",
		PlayerID:  "ipl-bwl-09",
	})
	if !errors.Is(err, ErrConflict) || !errors.Is(err, roster.ErrRosterFull) {
		t.Fatalf("expected roster full, got %v", err)
	}
}

func TestRosterService_AddPlayerAccessAndExclusivity(t *testing.T) {
	t.Parallel()

	service, _ := newRosterServiceForTest(t,
		seedManager("m1", "user-a", 1, nil, nil),
		seedManager("m2", "user-b", 2, []string{"ipl-wk-01"}, nil),
	)

	tests := []struct {
		name    string
		input   AddRosterPlayerInput
		wantErr error
	}{
		{
			name:    "player already on another roster",
			input:   AddRosterPlayerInput{UserID: "user-a", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m1", PlayerID: "ipl-wk-01"},
			wantErr: roster.ErrPlayerAlreadyRostered,
		},
		{
			name:    "other user cannot edit",
			input:   AddRosterPlayerInput{UserID: "user-b", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m1", PlayerID: "ipl-wk-02"},
			wantErr: ErrForbidden,
		},
		{
			name:    "anonymous",
			input:   AddRosterPlayerInput{LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m1", PlayerID: "ipl-wk-02"},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "unknown player",
			input:   AddRosterPlayerInput{UserID: "user-a", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m1", PlayerID: "ipl-wk-99"},
			wantErr: ErrNotFound,
		},
		{
			name:    "unknown manager",
			input:   AddRosterPlayerInput{UserID: "user-a", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m9", PlayerID: "ipl-wk-02"},
			wantErr: ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.AddPlayer(t.Context(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	if _, err := service.AddPlayer(t.Context(), AddRosterPlayerInput{
		UserID:    memory.SeedCommissionerUser,
		LeagueID:  memory.LeagueIDIPLFriends,
		ManagerID: "m1",
		PlayerID:  "ipl-wk-02",
	}); err != nil {
		t.Fatalf("commissioner should be able to edit any roster: %v", err)
	}
}

// rendezvousManagerRepo holds every ListByLeague caller until parties callers
// have arrived or wait elapses, so concurrent writers read the same state.
type rendezvousManagerRepo struct {
	manager.Repository
	parties int
	wait    time.Duration

	mu      sync.Mutex
	arrived int
	release chan struct{}
}

func newRendezvousManagerRepo(inner manager.Repository, parties int) *rendezvousManagerRepo {
	return &rendezvousManagerRepo{
		Repository: inner,
		parties:    parties,
		wait:       100 * time.Millisecond,
		release:    make(chan struct{}),
	}
}

func (r *rendezvousManagerRepo) ListByLeague(ctx context.Context, leagueID string) ([]manager.Manager, error) {
	out, err := r.Repository.ListByLeague(ctx, leagueID)

	r.mu.Lock()
	r.arrived++
	if r.arrived == r.parties {
		close(r.release)
	}
	r.mu.Unlock()

	select {
	case <-r.release:
	case <-time.After(r.wait):
	}
	return out, err
}

func addConcurrently(t *testing.T, services []*RosterService, inputs []AddRosterPlayerInput) []error {
	t.Helper()

	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = services[i%len(services)].AddPlayer(t.Context(), input)
		}()
	}
	wg.Wait()
	return errs
}

func holdersOf(t *testing.T, repo manager.Repository, playerID string) []string {
	t.Helper()

	managers, err := repo.ListByLeague(t.Context(), memory.LeagueIDIPLFriends)
	require.NoError(t, err)
	var out []string
	for _, m := range managers {
		if m.HasPlayer(playerID) {
			out = append(out, m.ID)
		}
	}
	return out
}

func requireOneAddWins(t *testing.T, errs []error) {
	t.Helper()

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	require.Len(t, failed, 1, "errs=%v", errs)
	if !errors.Is(failed[0], ErrConflict) || !errors.Is(failed[0], roster.ErrPlayerAlreadyRostered) {
		t.Fatalf("expected already rostered conflict, got %v", failed[0])
	}
}

func TestRosterService_ConcurrentAddsKeepPlayerExclusive(t *testing.T) {
	t.Parallel()

	repos := newTestRepos(t,
		seedManager("m1", "user-a", 1, nil, nil),
		seedManager("m2", "user-b", 2, nil, nil),
	)
	managers := newRendezvousManagerRepo(repos.managers, 2)
	service := NewRosterService(repos.leagues, repos.players, managers, testLogger())

	errs := addConcurrently(t, []*RosterService{service}, []AddRosterPlayerInput{
		{UserID: "user-a", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m1", PlayerID: "ipl-bwl-01"},
		{UserID: "user-b", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m2", PlayerID: "ipl-bwl-01"},
	})

	requireOneAddWins(t, errs)
	require.Len(t, holdersOf(t, repos.managers, "ipl-bwl-01"), 1)
}

// Two services model two API processes sharing one store; only the
// repository stands between their writes.
func TestRosterService_ConcurrentAddsAcrossServices(t *testing.T) {
	t.Parallel()

	repos := newTestRepos(t,
		seedManager("m1", "user-a", 1, nil, nil),
		seedManager("m2", "user-b", 2, nil, nil),
	)
	managers := newRendezvousManagerRepo(repos.managers, 2)
	services := []*RosterService{
		NewRosterService(repos.leagues, repos.players, managers, testLogger()),
		NewRosterService(repos.leagues, repos.players, managers, testLogger()),
	}

	errs := addConcurrently(t, services, []AddRosterPlayerInput{
		{UserID: "user-a", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m1", PlayerID: "ipl-bwl-01"},
		{UserID: "user-b", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m2", PlayerID: "ipl-bwl-01"},
	})

	requireOneAddWins(t, errs)
	require.Len(t, holdersOf(t, repos.managers, "ipl-bwl-01"), 1)
}

func TestRosterService_ConcurrentAddsToOneManagerKeepBoth(t *testing.T) {
	t.Parallel()

	repos := newTestRepos(t, seedManager("m1", "user-a", 1, nil, nil))
	managers := newRendezvousManagerRepo(repos.managers, 2)
	service := NewRosterService(repos.leagues, repos.players, managers, testLogger())

	errs := addConcurrently(t, []*RosterService{service}, []AddRosterPlayerInput{
		{UserID: "user-a", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m1", PlayerID: "ipl-bwl-01"},
		{UserID: "user-a", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m1", PlayerID: "ipl-bwl-02", ToBench: true},
	})
	for _, err := range errs {
		require.NoError(t, err)
	}

	stored, _, err := repos.managers.GetByID(t.Context(), memory.LeagueIDIPLFriends, "m1")
	require.NoError(t, err)
	require.Equal(t, []string{"ipl-bwl-01"}, stored.ActivePlayerIDs)
	require.Equal(t, []string{"ipl-bwl-02"}, stored.BenchPlayerIDs)
}

func TestRosterService_DropAndMovePlayer(t *testing.T) {
	t.Parallel()

	service, _ := newRosterServiceForTest(t,
		seedManager("m1", "user-a", 1, []string{"ipl-wk-01", "ipl-bwl-01"}, []string{"ipl-bat-01"}),
	)

	_, err := service.DropPlayer(t.Context(), DropRosterPlayerInput{
		UserID: "user-a", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m1", PlayerID: "ipl-bat-02",
	})
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, roster.ErrPlayerNotRostered) {
		t.Fatalf("expected not rostered, got %v", err)
	}

	dropped, err := service.DropPlayer(t.Context(), DropRosterPlayerInput{
		UserID: "user-a", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m1", PlayerID: "ipl-bwl-01",
	})
	if err != nil {
		t.Fatalf("drop player: %v", err)
	}
	if dropped.Manager.HasPlayer("ipl-bwl-01") {
		t.Fatalf("dropped player still rostered: %+v", dropped.Manager)
	}

	_, err = service.MovePlayer(t.Context(), MoveRosterPlayerInput{
		UserID: "user-a", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m1", PlayerID: "ipl-wk-01",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for player already active, got %v", err)
	}

	moved, err := service.MovePlayer(t.Context(), MoveRosterPlayerInput{
		UserID: "user-a", LeagueID: memory.LeagueIDIPLFriends, ManagerID: "m1", PlayerID: "ipl-bat-01",
	})
	if err != nil {
		t.Fatalf("move player: %v", err)
	}
	if !slices.Equal(moved.Manager.ActivePlayerIDs, []string{"ipl-wk-01", "ipl-bat-01"}) || len(moved.Manager.BenchPlayerIDs) != 0 {
		t.Fatalf("unexpected roster after move: %+v", moved.Manager)
	}
	if moved.Progress.WKBatCombined.Current != 2 {
		t.Fatalf("expected wk+bat count 2, got %d", moved.Progress.WKBatCombined.Current)
	}
}

func TestRosterService_GetRoster(t *testing.T) {
	t.Parallel()

	service, _ := newRosterServiceForTest(t,
		seedManager("m1", "user-a", 1, []string{"ipl-bwl-01", "ipl-wk-01", "ipl-bat-01"}, []string{"ipl-ar-01"}),
	)

	view, err := service.GetRoster(t.Context(), memory.LeagueIDIPLFriends, "m1")
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if len(view.Active) != 3 || len(view.Bench) != 1 {
		t.Fatalf("unexpected roster sizes: active=%d bench=%d", len(view.Active), len(view.Bench))
	}
	if view.Active[0].ID != "ipl-bwl-01" {
		t.Fatalf("active players should keep roster order, got %s first", view.Active[0].ID)
	}

	filled := 0
	for _, slot := range view.Slots {
		if slot.Filled() {
			filled++
		}
	}
	// 1 WK + 5 BAT + 2 AR + 4 BOWL already covers the 11 active spots, so no FLEX.
	if len(view.Slots) != 12 || filled != 3 {
		t.Fatalf("expected 12 slots with 3 filled, got %d slots and %d filled", len(view.Slots), filled)
	}
	if view.Slots[0].Label != "WK1" || view.Slots[0].Player == nil || view.Slots[0].Player.ID != "ipl-wk-01" {
		t.Fatalf("expected wicket keeper in the first slot, got %+v", view.Slots[0])
	}
}

func TestRosterService_ProposeTrade(t *testing.T) {
	t.Parallel()

	service, repos := newRosterServiceForTest(t,
		seedManager("m1", "user-a", 1, []string{"ipl-wk-01", "ipl-bat-01"}, []string{"ipl-ar-01"}),
		seedManager("m2", "user-b", 2, []string{"ipl-bwl-01"}, nil),
	)

	result, err := service.ProposeTrade(t.Context(), TradeInput{
		UserID:             "user-a",
		LeagueID:           memory.LeagueIDIPLFriends,
		FromManagerID:      "m1",
		ToManagerID:        "m2",
		OfferedPlayerIDs:   []string{"ipl-bat-01"},
		RequestedPlayerIDs: []string{"ipl-bwl-01"},
	})
	if err != nil {
		t.Fatalf("propose trade: %v", err)
	}
	if !slices.Equal(result.From.Manager.ActivePlayerIDs, []string{"ipl-wk-01", "ipl-bwl-01"}) {
		t.Fatalf("unexpected from roster: %v", result.From.Manager.ActivePlayerIDs)
	}
	if !slices.Equal(result.To.Manager.ActivePlayerIDs, []string{"ipl-bat-01"}) {
		t.Fatalf("unexpected to roster: %v", result.To.Manager.ActivePlayerIDs)
	}

	stored, _, err := repos.managers.GetByID(t.Context(), memory.LeagueIDIPLFriends, "m2")
	if err != nil {
		t.Fatalf("get manager: %v", err)
	}
	if !stored.HasPlayer("ipl-bat-01") || stored.HasPlayer("ipl-bwl-01") {
		t.Fatalf("trade not persisted: %+v", stored)
	}
}

func TestRosterService_ProposeTradeBlockedLeavesBothRosters(t *testing.T) {
	t.Parallel()

	service, repos := newRosterServiceForTest(t,
		seedManager("m1", "user-a", 1, []string{"ipl-bat-08"}, nil),
		seedManager("m2", "user-b", 2, []string{"ipl-bat-01", "ipl-bat-02", "ipl-bat-03", "ipl-bat-05", "ipl-bat-07", "ipl-bwl-01"}, nil),
	)

	_, err := service.ProposeTrade(t.Context(), TradeInput{
		UserID:             "user-a",
		LeagueID:           memory.LeagueIDIPLFriends,
		FromManagerID:      "m1",
		ToManagerID:        "m2",
		OfferedPlayerIDs:   []string{"ipl-bat-08"},
		RequestedPlayerIDs: []string{"ipl-bwl-01"},
	})
	if !errors.Is(err, roster.ErrConstraintExceeded) {
		t.Fatalf("expected trade to be blocked, got %v", err)
	}

	from, _, _ := repos.managers.GetByID(t.Context(), memory.LeagueIDIPLFriends, "m1")
	to, _, _ := repos.managers.GetByID(t.Context(), memory.LeagueIDIPLFriends, "m2")
	if !from.HasPlayer("ipl-bat-08") || !to.HasPlayer("ipl-bwl-01") {
		t.Fatalf("blocked trade changed rosters: from=%+v to=%+v", from, to)
	}

	_, err = service.ProposeTrade(t.Context(), TradeInput{
		UserID:             "user-a",
		LeagueID:           memory.LeagueIDIPLFriends,
		FromManagerID:      "m1",
		ToManagerID:        "m2",
		OfferedPlayerIDs:   []string{"ipl-bat-01"},
		RequestedPlayerIDs: []string{"ipl-bwl-01"},
	})
	if !errors.Is(err, roster.ErrPlayerNotRostered) {
		t.Fatalf("expected offered player check, got %v", err)
	}
}
