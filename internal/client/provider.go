package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ffl/syncer/internal/metrics"
	"ffl/syncer/internal/models"

	"github.com/rs/zerolog/log"
)

// Client is the fantasy data provider API client
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter chan struct{} // Rate limiting semaphore
	maxRetries  int
	retryDelay  time.Duration
}

// NewClient creates a new provider API client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	// Rate limiter (max 20 concurrent requests)
	rateLimiter := make(chan struct{}, 20)
	for i := 0; i < 20; i++ {
		rateLimiter <- struct{}{}
	}

	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		rateLimiter: rateLimiter,
		maxRetries:  3,
		retryDelay:  1 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET request to the provider API with retry logic and rate limiting
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)

	// First path segment only, to keep the metric label bounded
	endpoint := path
	if i := strings.Index(path, "/"); i > 0 {
		endpoint = path[:i]
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying API request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		// Rate limiting: acquire semaphore
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.rateLimiter:
		}

		attemptStart := time.Now()
		body, retryable, err := c.doRequest(ctx, url)
		c.rateLimiter <- struct{}{}

		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.RecordAPICall(endpoint, status, time.Since(attemptStart).Seconds())

		if err == nil {
			return body, nil
		}

		lastErr = err
		if !retryable || attempt == c.maxRetries {
			return nil, lastErr
		}

		log.Warn().
			Str("url", url).
			Int("attempt", attempt+1).
			Err(err).
			Msg("Request failed, will retry")
	}

	return nil, lastErr
}

// doRequest performs a single request attempt. The second return value
// reports whether the failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ffl-syncer/1.0")

	log.Debug().
		Str("url", url).
		Str("method", req.Method).
		Msg("Making API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network errors are retryable
		return nil, true, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		log.Debug().
			Str("url", url).
			Int("status", resp.StatusCode).
			Int("size", len(body)).
			Msg("API request successful")
		return body, false, nil

	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, true, fmt.Errorf("API returned retryable status %d: %s", resp.StatusCode, string(body))

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, false, fmt.Errorf("API authentication failed (status %d): %s", resp.StatusCode, string(body))

	default:
		return nil, false, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
}

// decode unmarshals a provider response strictly: unknown fields are allowed
// but a shape mismatch is an error, never silently coerced.
func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to unmarshal provider response: %w", err)
	}
	return nil
}

// FetchState fetches the provider's current season/week state
func (c *Client) FetchState(ctx context.Context) (*models.StateInput, error) {
	body, err := c.get(ctx, "state")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch state: %w", err)
	}

	var state models.StateInput
	if err := decode(body, &state); err != nil {
		return nil, err
	}
	if state.Season == 0 {
		return nil, fmt.Errorf("provider state response missing season")
	}

	return &state, nil
}

// FetchGames fetches the game schedule and scores for a season week
func (c *Client) FetchGames(ctx context.Context, year, week int) ([]models.GameInput, error) {
	path := fmt.Sprintf("games/%d/%d", year, week)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch games: %w", err)
	}

	var games []models.GameInput
	if err := decode(body, &games); err != nil {
		return nil, err
	}

	return games, nil
}

// FetchMatchups fetches per-team weekly scoring data for a season week
func (c *Client) FetchMatchups(ctx context.Context, year, week int) ([]models.MatchupInput, error) {
	path := fmt.Sprintf("matchups/%d/%d", year, week)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matchups: %w", err)
	}

	var matchups []models.MatchupInput
	if err := decode(body, &matchups); err != nil {
		return nil, err
	}

	return matchups, nil
}

// FetchPlayers fetches the full NFL player roster list
func (c *Client) FetchPlayers(ctx context.Context) ([]models.PlayerInput, error) {
	body, err := c.get(ctx, "players")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}

	var players []models.PlayerInput
	if err := decode(body, &players); err != nil {
		return nil, err
	}

	return players, nil
}

// FetchLeague fetches metadata for a league
func (c *Client) FetchLeague(ctx context.Context, leagueID string) (*models.LeagueInput, error) {
	path := fmt.Sprintf("league/%s", leagueID)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch league: %w", err)
	}

	var league models.LeagueInput
	if err := decode(body, &league); err != nil {
		return nil, err
	}
	if league.LeagueID == "" {
		return nil, fmt.Errorf("provider league response missing league_id")
	}

	return &league, nil
}

// FetchLeagueRosters fetches roster/record data for a league
func (c *Client) FetchLeagueRosters(ctx context.Context, leagueID string) ([]models.RosterInput, error) {
	path := fmt.Sprintf("league/%s/rosters", leagueID)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch league rosters: %w", err)
	}

	var rosters []models.RosterInput
	if err := decode(body, &rosters); err != nil {
		return nil, err
	}

	return rosters, nil
}
