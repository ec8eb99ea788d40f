package fpl

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/draft-league/internal/platform/logging"
	"github.com/riskibarqy/draft-league/internal/platform/resilience"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

const (
	defaultBaseURL = "https://fantasy.premierleague.com/api"
	bootstrapPath  = "/bootstrap-static/"

	maxResponseBytes = 16 << 20
)

var errFPLTransient = crerr.New("fpl transient failure")

// elementTypeToPosition maps the provider's numeric element types onto the
// draft position enum.
var elementTypeToPosition = map[int]string{
	1: "GK",
	2: "DEF",
	3: "MID",
	4: "FWD",
}

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public Fantasy Premier League bootstrap feed. The feed is
// a single large document, so one fetch yields the whole player pool.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		},
		baseURL:        baseURL,
		timeout:        timeout,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type bootstrapEnvelope struct {
	Teams    []bootstrapTeam    `json:"teams"`
	Elements []bootstrapElement `json:"elements"`
}

type bootstrapTeam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type bootstrapElement struct {
	ID            int    `json:"id"`
	WebName       string `json:"web_name"`
	FirstName     string `json:"first_name"`
	SecondName    string `json:"second_name"`
	Team          int    `json:"team"`
	ElementType   int    `json:"element_type"`
	Status        string `json:"status"`
	NowCost       int    `json:"now_cost"`
	TotalPoints   int    `json:"total_points"`
	PointsPerGame string `json:"points_per_game"`
	GoalsScored   int    `json:"goals_scored"`
	Assists       int    `json:"assists"`
	Minutes       int    `json:"minutes"`
}

// FetchPlayers implements usecase.PlayerSource.
func (c *Client) FetchPlayers(ctx context.Context) ([]usecase.PlayerImportRow, error) {
	var envelope bootstrapEnvelope
	if err := c.doJSON(ctx, bootstrapPath, &envelope); err != nil {
		return nil, fmt.Errorf("fetch bootstrap: %w", err)
	}

	clubByID := make(map[int]string, len(envelope.Teams))
	for _, t := range envelope.Teams {
		clubByID[t.ID] = t.Name
	}

	rows := make([]usecase.PlayerImportRow, 0, len(envelope.Elements))
	skipped := 0
	for _, e := range envelope.Elements {
		position, ok := elementTypeToPosition[e.ElementType]
		if !ok {
			skipped++
			continue
		}
		club, ok := clubByID[e.Team]
		if !ok || club == "" {
			skipped++
			continue
		}

		row := usecase.PlayerImportRow{
			ExternalID:  "fpl-" + strconv.Itoa(e.ID),
			Name:        strings.TrimSpace(e.WebName),
			FullName:    strings.TrimSpace(e.FirstName + " " + e.SecondName),
			Club:        club,
			Position:    position,
			Status:      normalizeStatus(e.Status),
			NowCost:     floatPtr(float64(e.NowCost) / 10),
			TotalPoints: intPtr(e.TotalPoints),
			GoalsScored: intPtr(e.GoalsScored),
			Assists:     intPtr(e.Assists),
			Minutes:     intPtr(e.Minutes),
		}
		if ppg, err := strconv.ParseFloat(strings.TrimSpace(e.PointsPerGame), 64); err == nil {
			row.PointsPerGame = floatPtr(ppg)
		}
		rows = append(rows, row)
	}

	if skipped > 0 {
		c.logger.WarnContext(ctx, "skipped unmappable bootstrap elements", "skipped", skipped)
	}
	c.logger.InfoContext(ctx, "fetched fpl bootstrap", "players", len(rows), "clubs", len(clubByID))

	return rows, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: player feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFPLTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := c.doOnce(fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !crerr.Is(err, errFPLTransient) {
			return nil, err
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, crerr.Wrapf(errFPLTransient, "send request: %v", err)
	}

	status := resp.StatusCode()
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.Write(resp.Body())

	if status >= 200 && status < 300 {
		return append([]byte(nil), buf.B...), nil
	}
	if isRetryableStatus(status) {
		return nil, crerr.Wrapf(errFPLTransient, "provider status=%d body=%s", status, abbreviateBody(buf.B))
	}
	return nil, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(buf.B))
}

func normalizeStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "i", "d":
		return "i"
	case "s":
		return "s"
	default:
		return "a"
	}
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const maxPreview = 256
	trimmed := strings.TrimSpace(string(raw))
	if len(trimmed) > maxPreview {
		return trimmed[:maxPreview] + "...(truncated)"
	}
	return trimmed
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
