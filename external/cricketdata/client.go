package cricketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultBaseURL     = "https://api.cricapi.com/v1"
	scorecardPath      = "/match_scorecard"
	maxResponseBytes   = 4 << 20
	defaultTimeout     = 15 * time.Second
	defaultBackoffUnit = time.Second
)

var (
	errTransient        = crerr.New("cricket data transient failure")
	ErrMatchNotFound    = crerr.New("match scorecard not found")
	apiKeyParamRegex    = regexp.MustCompile(`apikey=[^&\s"']+`)
	errProviderRejected = crerr.New("cricket data provider rejected request")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads match scorecards from a CricAPI compatible endpoint.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	maxRetries  int
	backoffUnit time.Duration
	logger      *logging.Logger
	breaker     *resilience.CircuitBreaker
	flight      resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		maxRetries:  max(cfg.MaxRetries, 0),
		backoffUnit: defaultBackoffUnit,
		logger:      logger,
		breaker:     resilience.NewCircuitBreaker("cricketdata", cfg.CircuitBreaker, isCircuitFailure),
	}
}

// FetchScorecard returns the provider scorecard of matchID mapped into the
// scoring domain. Concurrent calls for the same match share one request.
func (c *Client) FetchScorecard(ctx context.Context, matchID string) (scoring.Scorecard, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return scoring.Scorecard{}, fmt.Errorf("match id is required")
	}

	out, err, _ := c.flight.Do(matchID, func() (any, error) {
		return c.breaker.Execute(func() (any, error) {
			return c.fetch(ctx, matchID)
		})
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "cricket data circuit breaker rejected request", "match_id", matchID, "state", c.breaker.State())
		}
		return scoring.Scorecard{}, err
	}

	card, ok := out.(scoring.Scorecard)
	if !ok {
		return scoring.Scorecard{}, fmt.Errorf("unexpected scorecard payload type %T", out)
	}
	return card, nil
}

func (c *Client) fetch(ctx context.Context, matchID string) (scoring.Scorecard, error) {
	values := url.Values{}
	values.Set("apikey", c.apiKey)
	values.Set("id", matchID)
	fullURL := c.baseURL + scorecardPath + "?" + values.Encode()

	raw, err := c.executeRequest(ctx, fullURL)
	if err != nil {
		return scoring.Scorecard{}, err
	}

	var envelope scorecardEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return scoring.Scorecard{}, fmt.Errorf("decode scorecard payload: %w", err)
	}
	if !strings.EqualFold(envelope.Status, "success") {
		reason := strings.TrimSpace(envelope.Reason)
		if strings.Contains(strings.ToLower(reason), "not found") {
			return scoring.Scorecard{}, crerr.Wrapf(ErrMatchNotFound, "match=%s", matchID)
		}
		return scoring.Scorecard{}, crerr.Wrapf(errProviderRejected, "status=%s reason=%s", envelope.Status, sanitizeSensitiveText(reason, c.apiKey))
	}

	card := envelope.Data.toDomain()
	if card.MatchID == "" {
		card.MatchID = matchID
	}
	return card, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.backoffUnit)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "cricket data request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, maxResponseBytes)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

// Only transport trouble and 5xx/429 answers count against the breaker.
func isCircuitFailure(err error) bool {
	return crerr.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apikey=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("apikey") {
		query.Set("apikey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
