package wix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/farrdeeen/FastOrderLogic/internal/config"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
)

// Client talks to the Wix Stores v2 orders API.
type Client struct {
	httpClient *http.Client
	cfg        config.WixConfig
	log        logger.Logger
}

func NewClient(cfg config.WixConfig, log logger.Logger) *Client {
	return &Client{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

type queryRequest struct {
	Paging pagingRequest          `json:"paging"`
	Filter map[string]interface{} `json:"filter,omitempty"`
}

type pagingRequest struct {
	Limit  int    `json:"limit"`
	Cursor string `json:"cursor,omitempty"`
}

// updatedSinceFilter builds the incremental-window filter for the
// orders query endpoint.
func updatedSinceFilter(since time.Time) map[string]interface{} {
	return map[string]interface{}{
		"updatedDate": map[string]string{"$gte": since.UTC().Format(time.RFC3339)},
	}
}

type queryResponse struct {
	Orders []json.RawMessage `json:"orders"`
	Paging struct {
		Cursors struct {
			Next string `json:"next"`
		} `json:"cursors"`
	} `json:"paging"`
}

type getResponse struct {
	Order struct {
		Number FlexString `json:"number"`
	} `json:"order"`
}

// QueryOrders fetches a single page of recent orders.
func (c *Client) QueryOrders(ctx context.Context) ([]json.RawMessage, error) {
	page, _, err := c.queryPage(ctx, "", nil)
	return page, err
}

// QueryAllOrders walks the cursor pagination until exhausted, sleeping
// between pages like the upstream rate limit expects.
func (c *Client) QueryAllOrders(ctx context.Context) ([]json.RawMessage, error) {
	return c.queryAll(ctx, nil)
}

// QueryOrdersUpdatedSince walks only the orders updated on or after the
// given cursor, for incremental ingest runs.
func (c *Client) QueryOrdersUpdatedSince(ctx context.Context, since time.Time) ([]json.RawMessage, error) {
	return c.queryAll(ctx, updatedSinceFilter(since))
}

func (c *Client) queryAll(ctx context.Context, filter map[string]interface{}) ([]json.RawMessage, error) {
	sleep := time.Duration(c.cfg.SleepMS) * time.Millisecond
	if sleep <= 0 {
		sleep = 500 * time.Millisecond
	}

	all := make([]json.RawMessage, 0)
	cursor := ""
	for page := 1; ; page++ {
		orders, next, err := c.queryPage(ctx, cursor, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, orders...)
		c.log.Info("fetched wix orders page",
			logger.Int("page", page),
			logger.Int("orders", len(orders)),
			logger.Int("total", len(all)),
		)
		if next == "" {
			return all, nil
		}
		cursor = next

		select {
		case <-ctx.Done():
			return all, ctx.Err()
		case <-time.After(sleep):
		}
	}
}

func (c *Client) queryPage(ctx context.Context, cursor string, filter map[string]interface{}) ([]json.RawMessage, string, error) {
	if c.cfg.APIKey == "" || c.cfg.SiteID == "" {
		return nil, "", fmt.Errorf("api_key or site_id is empty")
	}

	limit := c.cfg.PageLimit
	if limit <= 0 {
		limit = 100
	}

	body, err := json.Marshal(queryRequest{Paging: pagingRequest{Limit: limit, Cursor: cursor}, Filter: filter})
	if err != nil {
		return nil, "", fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/orders/query", bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("wix api call failed", logger.Error(err))
		return nil, "", fmt.Errorf("call wix api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("wix api returned non-200", logger.Int("status", resp.StatusCode))
		return nil, "", fmt.Errorf("server error: status %d", resp.StatusCode)
	}

	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.log.Error("failed to decode wix response", logger.Error(err))
		return nil, "", fmt.Errorf("decode response: %w", err)
	}

	return decoded.Orders, decoded.Paging.Cursors.Next, nil
}

// FetchOrderNumber fetches a single order to recover the 'number' field
// when the bulk query response omitted it. Returns "" on any failure so
// callers can fall back to the remote UUID.
func (c *Client) FetchOrderNumber(ctx context.Context, orderID string) string {
	if orderID == "" {
		return ""
	}

	body, err := json.Marshal(map[string]string{"id": orderID})
	if err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/orders/get", bytes.NewReader(body))
	if err != nil {
		return ""
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("order number lookup failed", logger.String("order_id", orderID), logger.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var decoded getResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ""
	}
	return string(decoded.Order.Number)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.cfg.APIKey)
	req.Header.Set("wix-site-id", c.cfg.SiteID)
	req.Header.Set("Content-Type", "application/json")
}
