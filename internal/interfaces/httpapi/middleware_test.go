package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

func TestRequestLogging_RequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "client id kept", incoming: "req-123", keep: true},
		{name: "missing id minted"},
		{name: "oversized id replaced", incoming: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := logging.NewJSONWriter(&buf, logging.LevelInfo)

			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = requestIDFromContext(r.Context())
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte("gone"))
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/leagues/x", nil)
			if tc.incoming != "" {
				req.Header.Set(headerRequestID, tc.incoming)
			}
			rec := httptest.NewRecorder()
			RequestLogging(logger, next).ServeHTTP(rec, req)

			echoed := rec.Header().Get(headerRequestID)
			if echoed != seen {
				t.Fatalf("echoed id %q differs from context id %q", echoed, seen)
			}
			if tc.keep {
				if echoed != tc.incoming {
					t.Fatalf("expected client id %q, got %q", tc.incoming, echoed)
				}
			} else if _, err := uuid.Parse(echoed); err != nil {
				t.Fatalf("expected a minted uuid, got %q", echoed)
			}

			var line map[string]any
			if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
				t.Fatalf("decode access log %q: %v", buf.String(), err)
			}
			if line["request_id"] != echoed {
				t.Fatalf("access log request_id = %v, want %q", line["request_id"], echoed)
			}
			if line["level"] != "WARN" {
				t.Fatalf("expected WARN for a 404, got %v", line["level"])
			}
			if line["status"] != float64(http.StatusNotFound) || line["bytes"] != float64(len("gone")) {
				t.Fatalf("unexpected status/bytes in %v", line)
			}
		})
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "matching token", configured: "job-secret", provided: "job-secret", wantStatus: http.StatusAccepted},
		{name: "padded token", configured: "job-secret", provided: " job-secret ", wantStatus: http.StatusAccepted},
		{name: "wrong token", configured: "job-secret", provided: "job-secreT", wantStatus: http.StatusUnauthorized},
		{name: "prefix only", configured: "job-secret", provided: "job", wantStatus: http.StatusUnauthorized},
		{name: "missing token", configured: "job-secret", wantStatus: http.StatusUnauthorized},
		{name: "not configured", provided: "anything", wantStatus: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-scorecards", nil)
			if tc.provided != "" {
				req.Header.Set(headerInternalJob, tc.provided)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tc.configured, next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestRequireAuth_BearerScheme(t *testing.T) {
	t.Parallel()

	verifier := staticVerifier{commissionerToken: {UserID: "user-commissioner"}}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := requirePrincipal(r.Context()); err != nil {
			t.Errorf("principal missing after auth: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "bearer", header: "Bearer " + commissionerToken, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + commissionerToken, wantStatus: http.StatusOK},
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer   ", wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			RequireAuth(verifier, next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}
