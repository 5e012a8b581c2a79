package schedule

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
)

func TestGenerate_TooFewManagers(t *testing.T) {
	t.Parallel()

	for _, ids := range [][]string{nil, {}, {"solo"}} {
		got := Generate(ids)
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil schedule for %v, got %#v", ids, got)
		}
	}
}

func TestGenerate_FourManagersExactOrder(t *testing.T) {
	t.Parallel()

	got := Generate([]string{"A", "B", "C", "D"})
	want := []Matchup{
		{Round: 1, Home: "A", Away: "D"},
		{Round: 1, Home: "B", Away: "C"},
		{Round: 2, Home: "A", Away: "C"},
		{Round: 2, Home: "D", Away: "B"},
		{Round: 3, Home: "A", Away: "B"},
		{Round: 3, Home: "C", Away: "D"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected schedule (-want +got):\n%s", diff)
	}
}

func TestGenerate_FiveManagersOneByePerRound(t *testing.T) {
	t.Parallel()

	got := Generate([]string{"A", "B", "C", "D", "E"})
	want := []Matchup{
		{Round: 1, Home: "A"},
		{Round: 1, Home: "B", Away: "E"},
		{Round: 1, Home: "C", Away: "D"},
		{Round: 2, Home: "A", Away: "E"},
		{Round: 2, Home: "D"},
		{Round: 2, Home: "B", Away: "C"},
		{Round: 3, Home: "A", Away: "D"},
		{Round: 3, Home: "E", Away: "C"},
		{Round: 3, Home: "B"},
		{Round: 4, Home: "A", Away: "C"},
		{Round: 4, Home: "D", Away: "B"},
		{Round: 4, Home: "E"},
		{Round: 5, Home: "A", Away: "B"},
		{Round: 5, Home: "C"},
		{Round: 5, Home: "D", Away: "E"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected schedule (-want +got):\n%s", diff)
	}

	byesPerRound := make(map[int]int)
	for _, m := range got {
		if m.IsBye() {
			byesPerRound[m.Round]++
		}
	}
	for round := 1; round <= 5; round++ {
		if byesPerRound[round] != 1 {
			t.Fatalf("round %d: expected one bye, got %d", round, byesPerRound[round])
		}
	}
}

func TestGenerate_ManagerNamedLikeTheSentinel(t *testing.T) {
	t.Parallel()

	got := Generate([]string{"BYE", "X", "Y"})
	byes := 0
	for _, m := range got {
		if m.IsBye() {
			byes++
		}
	}
	if len(got) != 6 || byes != 3 {
		t.Fatalf("a manager called BYE must still play: matchups=%d byes=%d", len(got), byes)
	}
}

func assertRoundRobin(t *testing.T, ids []string, got []Matchup) {
	t.Helper()

	n := len(ids)
	padded := n + n%2
	wantRounds := padded - 1
	if RoundCount(got) != wantRounds {
		t.Fatalf("n=%d: expected %d rounds, got %d", n, wantRounds, RoundCount(got))
	}
	if len(got) != wantRounds*padded/2 {
		t.Fatalf("n=%d: expected %d matchups, got %d", n, wantRounds*padded/2, len(got))
	}

	perRound := make(map[int]int)
	seenInRound := make(map[string]bool)
	pairs := make(map[string]int)
	byes := make(map[string]int)
	for _, m := range got {
		perRound[m.Round]++
		for _, id := range []string{m.Home, m.Away} {
			if id == "" {
				continue
			}
			key := fmt.Sprintf("%d/%s", m.Round, id)
			if seenInRound[key] {
				t.Fatalf("n=%d: %s plays twice in round %d", n, id, m.Round)
			}
			seenInRound[key] = true
		}
		if m.IsBye() {
			byes[m.Home]++
			continue
		}
		a, b := m.Home, m.Away
		if a > b {
			a, b = b, a
		}
		pairs[a+"|"+b]++
	}

	for round := 1; round <= wantRounds; round++ {
		if perRound[round] != padded/2 {
			t.Fatalf("n=%d: round %d has %d matchups", n, round, perRound[round])
		}
	}
	if len(pairs) != n*(n-1)/2 {
		t.Fatalf("n=%d: expected %d distinct pairs, got %d", n, n*(n-1)/2, len(pairs))
	}
	for key, count := range pairs {
		if count != 1 {
			t.Fatalf("n=%d: pair %s met %d times", n, key, count)
		}
	}
	for _, id := range ids {
		want := n % 2
		if byes[id] != want {
			t.Fatalf("n=%d: %s has %d byes, want %d", n, id, byes[id], want)
		}
	}
}

func TestGenerate_RoundRobinProperties(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(20250301)
	for n := 2; n <= 16; n++ {
		ids := make([]string, 0, n)
		for i := 0; i < n; i++ {
			ids = append(ids, faker.UUID())
		}

		got := Generate(ids)
		assertRoundRobin(t, ids, got)

		again := Generate(ids)
		if diff := cmp.Diff(got, again); diff != "" {
			t.Fatalf("n=%d: schedule not deterministic (-first +second):\n%s", n, diff)
		}
	}
}

func TestGenerateDouble(t *testing.T) {
	t.Parallel()

	ids := []string{"A", "B", "C"}
	first := Generate(ids)
	got := GenerateDouble(ids)
	if len(got) != 2*len(first) {
		t.Fatalf("expected %d matchups, got %d", 2*len(first), len(got))
	}
	if RoundCount(got) != 6 {
		t.Fatalf("expected 6 rounds, got %d", RoundCount(got))
	}

	for i, m := range first {
		second := got[len(first)+i]
		if second.Round != m.Round+3 {
			t.Fatalf("second leg round: got=%d want=%d", second.Round, m.Round+3)
		}
		if m.IsBye() {
			if !second.IsBye() || second.Home != m.Home {
				t.Fatalf("bye should mirror to the same manager: %+v -> %+v", m, second)
			}
			continue
		}
		if second.Home != m.Away || second.Away != m.Home {
			t.Fatalf("home and away should swap: %+v -> %+v", m, second)
		}
	}
}

func TestToFixtures(t *testing.T) {
	t.Parallel()

	got := ToFixtures("lg-1", Generate([]string{"A", "B", "C", "D"}))
	if len(got) != 6 {
		t.Fatalf("expected 6 fixtures, got %d", len(got))
	}
	if got[0].Slot != 1 || got[1].Slot != 2 || got[2].Slot != 1 {
		t.Fatalf("slots should restart each round: %+v", got[:3])
	}
	for _, f := range got {
		if err := f.Validate(); err != nil {
			t.Fatalf("fixture invalid: %v", err)
		}
		if f.Matchup().Home != f.HomeManagerID {
			t.Fatalf("fixture should round trip to matchup")
		}
	}
}
