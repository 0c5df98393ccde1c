package view

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"clubdesk/internal/domain/calendar"
)

// Client is an EventSource over the calendar HTTP API. It relies on the
// transport's defaults for timeouts and never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the API at baseURL (no trailing slash).
// PRE: baseURL is a valid absolute URL
// POST: client is ready; httpClient may be nil to use http.DefaultClient
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// WeeklyEvents fetches events for the 7-day range starting at startDate.
// PRE: startDate is YYYY-MM-DD
// POST: returns the decoded event list, or error on transport failure or
// non-success status
func (c *Client) WeeklyEvents(ctx context.Context, startDate string) ([]calendar.Event, error) {
	return c.fetch(ctx, "/api/calendar/weekly", url.Values{"start_date": {startDate}})
}

// DailyEvents fetches events for a single date.
// PRE: date is YYYY-MM-DD
// POST: returns the decoded event list, or error on transport failure or
// non-success status
func (c *Client) DailyEvents(ctx context.Context, date string) ([]calendar.Event, error) {
	return c.fetch(ctx, "/api/calendar/daily", url.Values{"date": {date}})
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values) ([]calendar.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build calendar request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	var events []calendar.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return events, nil
}
