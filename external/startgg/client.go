// Package startgg is a client for the start.gg GraphQL API, covering event
// resolution, tournament event listings, and paginated final standings.
package startgg

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/bracketworks/bracketboard/internal/platform/logging"
	"github.com/bracketworks/bracketboard/internal/platform/resilience"
	"github.com/bracketworks/bracketboard/internal/usecase"
)

const (
	defaultEndpoint = "https://api.start.gg/gql/alpha"
	defaultPageSize = 128
	maxResponseSize = 6 << 20
)

var errStartGGTransient = crerr.New("startgg transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	Endpoint       string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	PageSize       int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	endpoint       string
	token          string
	maxRetries     int
	pageSize       int
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

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	pageSize := cfg.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		endpoint:       endpoint,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		pageSize:       pageSize,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) ResolveEvent(ctx context.Context, slug string) (usecase.ExternalEvent, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return usecase.ExternalEvent{}, fmt.Errorf("event slug is required")
	}

	var data eventWithTournamentData
	if err := c.doQuery(ctx, "EventWithTournament", queryEventWithTournament, map[string]any{"slug": slug}, &data); err != nil {
		return usecase.ExternalEvent{}, fmt.Errorf("resolve event slug=%s: %w", slug, err)
	}
	if data.Event == nil || data.Event.ID <= 0 {
		return usecase.ExternalEvent{}, fmt.Errorf("%w: event not found for slug %s", usecase.ErrNotFound, slug)
	}

	out := usecase.ExternalEvent{
		ID:   data.Event.ID,
		Name: strings.TrimSpace(data.Event.Name),
		Slug: strings.TrimSpace(data.Event.Slug),
	}
	if out.Slug == "" {
		out.Slug = slug
	}
	if data.Event.Tournament != nil {
		out.TournamentID = data.Event.Tournament.ID
		out.TournamentName = strings.TrimSpace(data.Event.Tournament.Name)
	}

	return out, nil
}

// FetchAllStandings walks standings pages until a page comes back empty or
// short. Any page failure aborts the whole fetch; callers never see a
// partial standings list.
func (c *Client) FetchAllStandings(ctx context.Context, eventID int64) ([]usecase.ExternalPlacement, error) {
	if eventID <= 0 {
		return nil, fmt.Errorf("event id must be greater than zero")
	}

	out := make([]usecase.ExternalPlacement, 0, c.pageSize)
	for page := 1; ; page++ {
		variables := map[string]any{
			"eventId": eventID,
			"page":    page,
			"perPage": c.pageSize,
		}

		var data eventStandingsData
		if err := c.doQuery(ctx, "EventStandings", queryEventStandings, variables, &data); err != nil {
			return nil, fmt.Errorf("fetch standings event_id=%d page=%d: %w", eventID, page, err)
		}
		if data.Event == nil {
			return nil, fmt.Errorf("%w: event not found for id %d", usecase.ErrNotFound, eventID)
		}

		nodes := data.Event.Standings.Nodes
		for _, node := range nodes {
			out = append(out, mapStandingNode(node))
		}

		if len(nodes) < c.pageSize {
			break
		}
	}

	return out, nil
}

func (c *Client) ListTournamentEvents(ctx context.Context, slug string) (usecase.ExternalTournament, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return usecase.ExternalTournament{}, fmt.Errorf("tournament slug is required")
	}

	var data tournamentEventsData
	if err := c.doQuery(ctx, "TournamentEvents", queryTournamentEvents, map[string]any{"slug": slug}, &data); err != nil {
		return usecase.ExternalTournament{}, fmt.Errorf("list tournament events slug=%s: %w", slug, err)
	}
	if data.Tournament == nil || data.Tournament.ID <= 0 {
		return usecase.ExternalTournament{}, fmt.Errorf("%w: tournament not found for slug %s", usecase.ErrNotFound, slug)
	}

	out := usecase.ExternalTournament{
		ID:   data.Tournament.ID,
		Name: strings.TrimSpace(data.Tournament.Name),
		Slug: strings.TrimSpace(data.Tournament.Slug),
	}
	for _, item := range data.Tournament.Events {
		if item.ID <= 0 {
			continue
		}
		out.Events = append(out.Events, usecase.ExternalTournamentEvent{
			ID:   item.ID,
			Name: strings.TrimSpace(item.Name),
			Slug: strings.TrimSpace(item.Slug),
		})
	}

	return out, nil
}

// doQuery posts one GraphQL operation and decodes the data payload into
// target. A response with in-band GraphQL errors counts as a failed fetch
// even when the transport status is 200.
func (c *Client) doQuery(ctx context.Context, operation, query string, variables map[string]any, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "startgg circuit breaker rejected request", "operation", operation, "state", c.breaker.State())
			return fmt.Errorf("%w: bracket provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	body, err := encodeRequest(query, variables)
	if err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}

	key := flightKey(operation, variables)
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, operation, body)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errStartGGTransient) {
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

	var envelope graphqlEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("provider returned errors: %s", joinGraphQLErrors(envelope.Errors))
	}
	if len(envelope.Data) == 0 {
		return fmt.Errorf("provider returned empty data")
	}
	if err := sonic.Unmarshal(envelope.Data, target); err != nil {
		return fmt.Errorf("decode provider data: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, operation string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("content-type", "application/json")
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errStartGGTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errStartGGTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errStartGGTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
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
	c.logger.WarnContext(ctx, "startgg request failed", "operation", operation, "error", lastErr)
	return nil, lastErr
}

func encodeRequest(query string, variables map[string]any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigDefault.NewEncoder(buf)
	if err := enc.Encode(graphqlRequest{Query: query, Variables: variables}); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

func flightKey(operation string, variables map[string]any) string {
	encoded, err := sonic.MarshalString(variables)
	if err != nil {
		return operation
	}
	return operation + "?" + encoded
}

func joinGraphQLErrors(errs []graphqlError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := strings.TrimSpace(e.Message)
		if msg == "" {
			msg = "unknown error"
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
