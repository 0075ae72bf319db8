package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trazia/backend/internal/domain"
	"github.com/trazia/backend/internal/log"
	"golang.org/x/time/rate"
)

const maxAttempts = 3

// Client handles communication with the USDA FoodData Central API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
	backoff     func(attempt int) time.Duration
}

// NewClient creates a new USDA API client allowed requestsPerHour calls.
// A non-positive value uses the FoodData Central default of 1000/hour.
func NewClient(apiKey, baseURL string, requestsPerHour int) *Client {
	if requestsPerHour <= 0 {
		requestsPerHour = 1000
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerHour)/3600), 10) // burst of 10 requests

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: limiter,
		backoff:     exponentialBackoff,
	}
}

// SetDebug toggles request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Trazia/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
	}
	return resp, nil
}

// GetFoodDetails retrieves the nutrient list of a food by FDC ID. Transport
// errors, 429 and 5xx responses are retried with exponential backoff; 404
// maps to ErrProductNotFound and other 4xx fail immediately.
func (c *Client) GetFoodDetails(ctx context.Context, fdcID string) (*domain.USDAFood, error) {
	endpoint := fmt.Sprintf("%s/v1/food/%s", c.baseURL, url.PathEscape(fdcID))
	params := url.Values{}
	params.Add("api_key", c.apiKey)
	params.Add("format", "full")
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 && !c.sleep(ctx, attempt-1) {
			return nil, lastErr
		}
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}

		if c.debug {
			log.Debug(ctx, "usda request", "fdc_id", fdcID, "attempt", attempt)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Warn(ctx, "usda request failed", "fdc_id", fdcID, "attempt", attempt, "err", err)
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: read body: %v", domain.ErrUSDAAPIFailure, readErr)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusNotFound:
			return nil, fmt.Errorf("%w: fdcId %s", domain.ErrProductNotFound, fdcID)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			log.Warn(ctx, "usda api error", "fdc_id", fdcID, "attempt", attempt, "status", resp.StatusCode)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrUSDAAPIFailure, resp.StatusCode)
			continue
		default:
			return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrUSDAAPIFailure, resp.StatusCode, string(body))
		}

		var food domain.USDAFood
		if err := json.Unmarshal(body, &food); err != nil {
			return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrUSDAAPIFailure, err)
		}

		if c.debug {
			log.Debug(ctx, "usda response", "fdc_id", fdcID, "description", food.Description, "nutrients", len(food.Nutrients))
		}
		return &food, nil
	}

	log.Error(ctx, "usda retries exhausted", "fdc_id", fdcID, "err", lastErr)
	return nil, lastErr
}

// sleep waits out the backoff after attempt; false when ctx ends first
func (c *Client) sleep(ctx context.Context, attempt int) bool {
	timer := time.NewTimer(c.backoff(attempt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
