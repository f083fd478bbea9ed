package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultBaseURL   = "https://en.wikipedia.org/api/rest_v1"
	defaultUserAgent = "SednaFM/1.0"
)

// Client fetches historical events from Wikipedia's "on this day" feed.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// ClientConfig holds configuration for the feed client.
type ClientConfig struct {
	BaseURL   string // override for tests
	UserAgent string
}

// NewClient creates a new feed client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// feedResponse is the wire shape of the onthisday feed. Absent fields are
// left at their zero values; the feed is treated as untrusted.
type feedResponse struct {
	Events []Event `json:"events"`
}

// OnThisDay retrieves the raw event list for the given month and day.
func (c *Client) OnThisDay(ctx context.Context, month, day int) ([]Event, error) {
	url := fmt.Sprintf("%s/feed/onthisday/events/%02d/%02d", c.baseURL, month, day)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("events feed returned status %d", resp.StatusCode)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	slog.Debug("fetched events", "month", month, "day", day, "count", len(feed.Events))
	return feed.Events, nil
}
