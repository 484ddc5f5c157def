// Package feed fetches the daily and weekly snapshot tables from their
// upstream CSV sources.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sanglocn/us-daily/internal/config"
	"github.com/sanglocn/us-daily/internal/models"
)

// Client fetches the published CSV tables. Fetch failures and malformed
// rows surface as errors; there is no retry or partial result.
type Client struct {
	http      *resty.Client
	dailyURL  string
	weeklyURL string
}

// NewClient creates a feed client from feed configuration.
func NewClient(cfg config.FeedConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		http:      resty.New().SetTimeout(timeout),
		dailyURL:  cfg.DailyURL,
		weeklyURL: cfg.WeeklyURL,
	}
}

// FetchDaily downloads and parses the daily table.
func (c *Client) FetchDaily(ctx context.Context) ([]models.TickerRow, error) {
	body, err := c.get(ctx, c.dailyURL, "daily")
	if err != nil {
		return nil, err
	}
	return ParseDailyCSV(bytes.NewReader(body))
}

// FetchWeekly downloads and parses the weekly table.
func (c *Client) FetchWeekly(ctx context.Context) ([]models.StageRow, error) {
	body, err := c.get(ctx, c.weeklyURL, "weekly")
	if err != nil {
		return nil, err
	}
	return ParseWeeklyCSV(bytes.NewReader(body))
}

func (c *Client) get(ctx context.Context, url, table string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s feed: %w", table, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s feed returned %d: %s", table, resp.StatusCode(), resp.Status())
	}
	return resp.Body(), nil
}
