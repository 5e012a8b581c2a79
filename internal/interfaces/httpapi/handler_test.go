package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/user"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

const (
	commissionerToken = "token-commissioner"
	rivalToken        = "token-rival"
	testJobToken      = "job-secret"
)

type staticVerifier map[string]user.Principal

func (v staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

type counterIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *counterIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	return fmt.Sprintf("mgr-%03d", g.next), nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	managers := memory.NewManagerRepository(nil)
	schedules := memory.NewScheduleRepository()
	stats := memory.NewScoringRepository()
	ids := &counterIDGenerator{}

	scoringService := usecase.NewScoringService(leagues, players, managers, stats, logger)
	handler := NewHandler(Services{
		League:    usecase.NewLeagueService(leagues, managers, ids, logger),
		Player:    usecase.NewPlayerService(leagues, players, managers, ids, logger),
		Roster:    usecase.NewRosterService(leagues, players, managers, logger),
		Schedule:  usecase.NewScheduleService(leagues, managers, schedules, logger),
		Scoring:   scoringService,
		Standings: usecase.NewStandingsService(leagues, managers, schedules, stats, 2, logger),
		Ingestion: usecase.NewIngestionService(leagues, players, scoringService, nil, 2, logger),
	}, logger)

	verifier := staticVerifier{
		commissionerToken: {UserID: memory.SeedCommissionerUser},
		rivalToken:        {UserID: "user-rival"},
	}
	return NewRouter(handler, verifier, logger, []string{"*"}, testJobToken)
}

type apiResponse struct {
	status int
	body   map[string]any
}

func (r apiResponse) data() map[string]any {
	out, _ := r.body["data"].(map[string]any)
	return out
}

func (r apiResponse) list() []any {
	out, _ := r.body["data"].([]any)
	return out
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) apiResponse {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode %s %s response: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return apiResponse{status: rec.Code, body: decoded}
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	res := doRequest(t, newTestRouter(t), http.MethodGet, "/healthz", "", "")
	if res.status != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.status)
	}
	if got := res.data()["status"]; got != "ok" {
		t.Fatalf("unexpected health payload: %v", res.body)
	}
}

func TestRouter_GetLeague(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	res := doRequest(t, router, http.MethodGet, "/v1/leagues/"+memory.LeagueIDIPLFriends, "", "")
	if res.status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", res.status, res.body)
	}
	if got := res.data()["id"]; got != memory.LeagueIDIPLFriends {
		t.Fatalf("unexpected league id: %v", got)
	}
	rosterCfg, _ := res.data()["roster"].(map[string]any)
	if got, _ := rosterCfg["active_size"].(float64); got != 11 {
		t.Fatalf("expected active_size 11, got %v", rosterCfg["active_size"])
	}

	missing := doRequest(t, router, http.MethodGet, "/v1/leagues/unknown", "", "")
	if missing.status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.status)
	}
}

func TestRouter_AuthRequired(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	body := `{"name":"Office League","season":"2025"}`

	if res := doRequest(t, router, http.MethodPost, "/v1/leagues", "", body); res.status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.status)
	}
	if res := doRequest(t, router, http.MethodPost, "/v1/leagues", "bogus", body); res.status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with unknown token, got %d", res.status)
	}

	res := doRequest(t, router, http.MethodPost, "/v1/leagues", rivalToken, body)
	if res.status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", res.status, res.body)
	}
	if got := res.data()["commissioner_user_id"]; got != "user-rival" {
		t.Fatalf("expected creator to be commissioner, got %v", got)
	}
}

func TestRouter_CreateLeagueRejectsMinimumsAboveActiveSize(t *testing.T) {
	t.Parallel()

	body := `{"name":"Broken","season":"2025","roster":{"active_size":11,"bench_size":4,"min_wicket_keepers":2,"min_batsmen":5,"min_bowlers":4,"min_all_rounders":2,"manager_count":6}}`
	res := doRequest(t, newTestRouter(t), http.MethodPost, "/v1/leagues", rivalToken, body)
	if res.status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %v", res.status, res.body)
	}
}

func TestRouter_InvalidJSON(t *testing.T) {
	t.Parallel()

	res := doRequest(t, newTestRouter(t), http.MethodPost, "/v1/scoring/preview", "", `{"runs":`)
	if res.status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.status)
	}
}

func TestRouter_PreviewPoints(t *testing.T) {
	t.Parallel()

	res := doRequest(t, newTestRouter(t), http.MethodPost, "/v1/scoring/preview", "", `{"runs":30,"dismissal_type":"caught"}`)
	if res.status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", res.status, res.body)
	}
	if got, _ := res.data()["points"].(float64); got != 34 {
		t.Fatalf("expected 34 points, got %v", res.data()["points"])
	}
}

func TestRouter_JoinRosterAndScheduleFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	leaguePath := "/v1/leagues/" + memory.LeagueIDIPLFriends

	join := doRequest(t, router, http.MethodPost, leaguePath+"/managers", commissionerToken, `{"team_name":"Chepauk Kings"}`)
	if join.status != http.StatusCreated {
		t.Fatalf("expected 201 on join, got %d: %v", join.status, join.body)
	}
	commissionerManager, _ := join.data()["id"].(string)

	rival := doRequest(t, router, http.MethodPost, leaguePath+"/managers", rivalToken, `{"team_name":"Wankhede Waves"}`)
	if rival.status != http.StatusCreated {
		t.Fatalf("expected 201 on rival join, got %d: %v", rival.status, rival.body)
	}
	rivalManager, _ := rival.data()["id"].(string)

	again := doRequest(t, router, http.MethodPost, leaguePath+"/managers", rivalToken, `{"team_name":"Twice"}`)
	if again.status != http.StatusConflict {
		t.Fatalf("expected 409 on second join, got %d", again.status)
	}

	rosterPath := leaguePath + "/managers/" + commissionerManager + "/roster"
	add := doRequest(t, router, http.MethodPost, rosterPath+"/players", commissionerToken, `{"player_id":"ipl-bat-01"}`)
	if add.status != http.StatusOK {
		t.Fatalf("expected 200 on add, got %d: %v", add.status, add.body)
	}
	warnings, _ := add.data()["warnings"].([]any)
	if len(warnings) == 0 {
		t.Fatalf("expected roster warnings after first pick")
	}

	foreign := doRequest(t, router, http.MethodPost, rosterPath+"/players", rivalToken, `{"player_id":"ipl-bat-02"}`)
	if foreign.status != http.StatusForbidden {
		t.Fatalf("expected 403 editing another roster, got %d", foreign.status)
	}

	taken := doRequest(t, router, http.MethodPost, leaguePath+"/managers/"+rivalManager+"/roster/players", rivalToken, `{"player_id":"ipl-bat-01"}`)
	if taken.status != http.StatusConflict {
		t.Fatalf("expected 409 for rostered player, got %d", taken.status)
	}

	slots := doRequest(t, router, http.MethodGet, rosterPath+"/slots", "", "")
	if slots.status != http.StatusOK {
		t.Fatalf("expected 200 on slots, got %d", slots.status)
	}
	if got := len(slots.list()); got != 12 {
		t.Fatalf("expected 12 slots, got %d", got)
	}

	progress := doRequest(t, router, http.MethodGet, rosterPath+"/progress", "", "")
	if progress.status != http.StatusOK {
		t.Fatalf("expected 200 on progress, got %d", progress.status)
	}
	if complete, _ := progress.data()["is_complete"].(bool); complete {
		t.Fatalf("expected incomplete roster")
	}

	forbidden := doRequest(t, router, http.MethodPost, leaguePath+"/schedule", rivalToken, "")
	if forbidden.status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-commissioner schedule, got %d", forbidden.status)
	}

	generated := doRequest(t, router, http.MethodPost, leaguePath+"/schedule", commissionerToken, "")
	if generated.status != http.StatusCreated {
		t.Fatalf("expected 201 on schedule, got %d: %v", generated.status, generated.body)
	}
	// Two managers, double round robin: one fixture per leg.
	if got := len(generated.list()); got != 2 {
		t.Fatalf("expected 2 fixtures, got %d", got)
	}

	listed := doRequest(t, router, http.MethodGet, leaguePath+"/schedule", "", "")
	if got := len(listed.list()); got != 2 {
		t.Fatalf("expected 2 listed fixtures, got %d", got)
	}
}

func TestRouter_SyncScorecardsJobRequiresToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	body := fmt.Sprintf(`{"league_id":%q,"week":1,"match_ids":["m-1"]}`, memory.LeagueIDIPLFriends)

	res := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/sync-scorecards", "", body)
	if res.status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without job token, got %d", res.status)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-scorecards", bytes.NewBufferString(body))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with job token, got %d: %s", rec.Code, rec.Body.String())
	}

	var decoded struct {
		Data syncResultDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode sync result: %v", err)
	}
	// No provider is configured, so the match fails without aborting the job.
	if decoded.Data.FailedCount != 1 || len(decoded.Data.Tasks) != 1 || decoded.Data.Tasks[0].Status != "failed" {
		t.Fatalf("unexpected sync result: %+v", decoded.Data)
	}
}

func TestRouter_IngestionRequiresCommissioner(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	performances := fmt.Sprintf(`{"league_id":%q,"match_id":"m-1","week":1,"performances":[{"player_id":"ipl-bat-01","runs":30,"dismissal_type":"caught"}]}`, memory.LeagueIDIPLFriends)
	scorecard := fmt.Sprintf(`{"league_id":%q,"week":1,"match_id":"m-1"}`, memory.LeagueIDIPLFriends)

	tests := []struct {
		name       string
		path       string
		token      string
		body       string
		wantStatus int
	}{
		{name: "performances by rival", path: "/v1/internal/ingestion/performances", token: rivalToken, body: performances, wantStatus: http.StatusForbidden},
		{name: "performances anonymous", path: "/v1/internal/ingestion/performances", body: performances, wantStatus: http.StatusUnauthorized},
		{name: "scorecard by rival", path: "/v1/internal/ingestion/scorecards", token: rivalToken, body: scorecard, wantStatus: http.StatusForbidden},
		// The commissioner passes the check and hits the disabled provider.
		{name: "scorecard by commissioner", path: "/v1/internal/ingestion/scorecards", token: commissionerToken, body: scorecard, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := doRequest(t, router, http.MethodPost, tc.path, tc.token, tc.body)
			if res.status != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %v", tc.wantStatus, res.status, res.body)
			}
		})
	}

	points := doRequest(t, router, http.MethodGet, "/v1/leagues/"+memory.LeagueIDIPLFriends+"/weeks/1/points", "", "")
	if len(points.list()) != 0 {
		t.Fatalf("rejected ingestion must not store stats: %v", points.body)
	}
}

func TestRouter_RecordPerformancesAndWeekPoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	body := fmt.Sprintf(`{"league_id":%q,"match_id":"m-1","week":1,"performances":[{"player_id":"ipl-bat-01","runs":30,"dismissal_type":"caught"}]}`, memory.LeagueIDIPLFriends)

	recorded := doRequest(t, router, http.MethodPost, "/v1/internal/ingestion/performances", commissionerToken, body)
	if recorded.status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", recorded.status, recorded.body)
	}

	points := doRequest(t, router, http.MethodGet, "/v1/leagues/"+memory.LeagueIDIPLFriends+"/weeks/1/points", "", "")
	if points.status != http.StatusOK {
		t.Fatalf("expected 200, got %d", points.status)
	}
	items := points.list()
	if len(items) != 1 {
		t.Fatalf("expected 1 scored player, got %d", len(items))
	}
	first, _ := items[0].(map[string]any)
	if got, _ := first["points"].(float64); got != 34 {
		t.Fatalf("expected 34 points, got %v", first["points"])
	}

	bad := doRequest(t, router, http.MethodGet, "/v1/leagues/"+memory.LeagueIDIPLFriends+"/weeks/zero/points", "", "")
	if bad.status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad week, got %d", bad.status)
	}
}
