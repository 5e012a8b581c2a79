package cricketdata

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
)

const sampleScorecardJSON = `{
  "apikey": "secret-key",
  "status": "success",
  "data": {
    "id": "match-77",
    "name": "RCB vs MI, 12th Match",
    "scorecard": [
      {
        "inning": "Royal Challengers Bengaluru Inning 1",
        "batting": [
          {"batsman": {"id": "p1", "name": "Virat Kohli"}, "dismissal-text": "not out", "r": 50, "b": 32, "4s": 4, "6s": 2},
          {"batsman": {"id": "p2", "name": "Faf du Plessis"}, "dismissal": "catch", "dismissal-text": "c Hardik Pandya b Jasprit Bumrah",
           "bowler": {"id": "p3", "name": "Jasprit Bumrah"}, "catcher": {"id": "p4", "name": "Hardik Pandya"}, "r": 12, "b": 9, "4s": 2, "6s": 0}
        ],
        "bowling": [
          {"bowler": {"id": "p3", "name": "Jasprit Bumrah"}, "o": 3.4, "m": 1, "r": 26, "w": 1}
        ]
      }
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg ClientConfig) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.BaseURL = server.URL
	cfg.HTTPClient = server.Client()
	cfg.Logger = logging.NewNop()
	client := NewClient(cfg)
	client.backoffUnit = time.Millisecond
	return client
}

func TestClient_FetchScorecardMapsPerformances(t *testing.T) {
	t.Parallel()

	var gotKey, gotID, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("apikey")
		gotID = r.URL.Query().Get("id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleScorecardJSON))
	}, ClientConfig{APIKey: "secret-key"})

	card, err := client.FetchScorecard(context.Background(), "match-77")
	if err != nil {
		t.Fatalf("fetch scorecard: %v", err)
	}
	if gotPath != "/match_scorecard" || gotKey != "secret-key" || gotID != "match-77" {
		t.Fatalf("unexpected request path=%s apikey=%s id=%s", gotPath, gotKey, gotID)
	}
	if card.MatchID != "match-77" || len(card.Innings) != 1 {
		t.Fatalf("unexpected scorecard: %+v", card)
	}
	if got := card.Innings[0].Batting[1].Dismissal; got != scoring.DismissalCaught {
		t.Fatalf("expected caught dismissal, got %q", got)
	}

	perfs := card.Performances()

	kohli := perfs["virat kohli"]
	if kohli.Runs != 50 || kohli.Fours != 4 || kohli.Sixes != 2 || !kohli.IsNotOut {
		t.Fatalf("unexpected kohli performance: %+v", kohli)
	}
	if got := perfs["hardik pandya"].Catches; got != 1 {
		t.Fatalf("expected pandya catch, got %d", got)
	}

	bumrah := perfs["jasprit bumrah"]
	if bumrah.Wickets != 1 || bumrah.Maidens != 1 {
		t.Fatalf("unexpected bumrah performance: %+v", bumrah)
	}
	if balls := scoring.OversToBalls(bumrah.Overs); balls != 22 {
		t.Fatalf("expected 22 balls bowled, got %d", balls)
	}
	if math.Abs(bumrah.Economy-7.09) > 0.001 {
		t.Fatalf("expected economy 7.09, got %v", bumrah.Economy)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sampleScorecardJSON))
	}, ClientConfig{MaxRetries: 2})

	if _, err := client.FetchScorecard(context.Background(), "match-77"); err != nil {
		t.Fatalf("fetch scorecard: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"failure","reason":"invalid apikey"}`))
	}, ClientConfig{MaxRetries: 3})

	if _, err := client.FetchScorecard(context.Background(), "match-77"); err == nil {
		t.Fatalf("expected error on 401")
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}

func TestClient_FailureStatusNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"failure","reason":"Match not found"}`))
	}, ClientConfig{})

	_, err := client.FetchScorecard(context.Background(), "missing")
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestClient_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, ClientConfig{
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.FetchScorecard(context.Background(), "match-77"); err == nil {
		t.Fatalf("expected first call to fail")
	}
	_, err := client.FetchScorecard(context.Background(), "match-77")
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected open circuit to skip upstream, got %d hits", got)
	}
}

func TestClient_RequiresMatchID(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	if _, err := client.FetchScorecard(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for blank match id")
	}
}

func TestMapDismissal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		text string
		want string
	}{
		{code: "catch", want: scoring.DismissalCaught},
		{code: "cb", want: scoring.DismissalCaughtAndBowled},
		{code: "runout", want: scoring.DismissalRunOut},
		{code: "Stumped", want: scoring.DismissalStumped},
		{text: "c & b Rashid Khan", want: scoring.DismissalCaughtAndBowled},
		{text: "c Gill b Siraj", want: scoring.DismissalCaught},
		{text: "st Dhoni b Jadeja", want: scoring.DismissalStumped},
		{text: "run out (Jadeja)", want: scoring.DismissalRunOut},
		{text: "lbw b Chahal", want: scoring.DismissalLBW},
		{text: "b Starc", want: scoring.DismissalBowled},
		{text: "retired hurt", want: scoring.DismissalRetiredHurt},
		{text: "", want: scoring.DismissalNotOut},
	}

	for _, tc := range tests {
		if got := mapDismissal(tc.code, tc.text); got != tc.want {
			t.Fatalf("mapDismissal(%q, %q) = %q, want %q", tc.code, tc.text, got, tc.want)
		}
	}
}

func TestRedactAPIURL(t *testing.T) {
	t.Parallel()

	got := redactAPIURL("https://api.cricapi.com/v1/match_scorecard?apikey=abc123&id=m1")
	if got != "https://api.cricapi.com/v1/match_scorecard?apikey=REDACTED&id=m1" {
		t.Fatalf("unexpected redacted url: %s", got)
	}
	if got := sanitizeSensitiveText("dial failed apikey=abc123", ""); got != "dial failed apikey=REDACTED" {
		t.Fatalf("unexpected sanitized text: %s", got)
	}
}
