package wows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"wows_recent_stats/internal/stats"
)

// Client talks to the Vortex stats API and the expected-values feed.
type Client struct {
	client       *http.Client
	apiCallCount int64
	apiCallMutex sync.Mutex
}

// NewClient creates a client with a sane request timeout.
func NewClient() *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IncrementAPICall safely increments the API call counter.
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count.
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero.
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

// makeAPIRequest creates and executes an HTTP GET request.
func (c *Client) makeAPIRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("url", url).
			Msg("API request failed")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	c.IncrementAPICall()
	return resp, nil
}

// handleAPIResponse processes the HTTP response and returns the body bytes.
func (c *Client) handleAPIResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// vortexShipResponse is the per-mode account stats payload. The top-level
// data map is keyed by account uid; statistics map ship ids to mode records.
type vortexShipResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Data   map[string]struct {
		Statistics    map[stats.ShipID]stats.ShipModeStats `json:"statistics"`
		HiddenProfile *bool                                `json:"hidden_profile"`
	} `json:"data"`
}

// ErrHiddenProfile reports an account whose statistics are not public.
var ErrHiddenProfile = errors.New("account has a hidden profile")

// AccountShips fetches the player's cumulative stats for every mode and
// merges them into one collection.
func (c *Client) AccountShips(ctx context.Context, region stats.Region, uid uint64) (stats.ShipStatsCollection, error) {
	merged := make(stats.ShipStatsCollection)

	for _, mode := range stats.AllModes {
		url := fmt.Sprintf("https://vortex.worldofwarships.%s/api/accounts/%d/ships/%s/",
			region.VortexDomain(), uid, mode)

		log.Debug().Str("url", url).Msg("Fetching account ship stats")

		resp, err := c.makeAPIRequest(ctx, url)
		if err != nil {
			return nil, err
		}
		body, err := c.handleAPIResponse(resp)
		if err != nil {
			return nil, err
		}

		var parsed vortexShipResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse ship stats response: %w", err)
		}
		if parsed.Status != "ok" {
			return nil, fmt.Errorf("API returned status %q: %s", parsed.Status, parsed.Error)
		}

		for _, account := range parsed.Data {
			if account.HiddenProfile != nil && *account.HiddenProfile {
				return nil, ErrHiddenProfile
			}
			for shipID, modeStats := range account.Statistics {
				if len(modeStats) == 0 {
					continue
				}
				if merged[shipID] == nil {
					merged[shipID] = make(stats.ShipModeStats, len(stats.AllModes))
				}
				for m, record := range modeStats {
					merged[shipID][m] = record
				}
			}
		}
	}

	log.Debug().
		Str("region", region.Lower()).
		Uint64("uid", uid).
		Int("ships", len(merged)).
		Msg("Fetched account ship stats")

	return merged, nil
}

const expectedStatsURL = "https://api.wows-numbers.com/personal/rating/expected/json/"

// ExpectedStats fetches the per-ship expected reference table.
func (c *Client) ExpectedStats(ctx context.Context) (*stats.ExpectedStats, error) {
	log.Debug().Str("url", expectedStatsURL).Msg("Fetching expected stats table")

	resp, err := c.makeAPIRequest(ctx, expectedStatsURL)
	if err != nil {
		return nil, err
	}
	body, err := c.handleAPIResponse(resp)
	if err != nil {
		return nil, err
	}

	expected := stats.NewExpectedStats()
	if err := json.Unmarshal(body, expected); err != nil {
		return nil, fmt.Errorf("failed to parse expected stats: %w", err)
	}

	log.Info().Int("ships", expected.Len()).Msg("Fetched expected stats table")
	return expected, nil
}
