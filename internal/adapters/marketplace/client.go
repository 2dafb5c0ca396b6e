// Package marketplace contains the HTTP adapter for the trading platform's
// order listing.
package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/staletick/internal/models"
	"github.com/example/staletick/internal/ports/secondary"
)

const defaultTimeout = 20 * time.Second

const (
	ordersPath = "/api/orders"
)

// Client implements secondary.OrderSource against the marketplace's order
// endpoints.
type Client struct {
	baseURL    string
	account    secondary.Account
	httpClient *http.Client
}

// NewClient creates a marketplace client for the given account.
func NewClient(baseURL string, account secondary.Account) (*Client, error) {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		return nil, errors.New("baseURL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}

	timeout := account.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(base, "/"),
		account:    account,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// wireOrder is the order shape on the wire. The date field carries the
// locale-formatted display string; placed_at, when present, is RFC 3339.
type wireOrder struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Date     string `json:"date"`
	PlacedAt string `json:"placed_at,omitempty"`
}

type wireOrderPage struct {
	Next   string      `json:"next"`
	Orders []wireOrder `json:"orders"`
}

// ListOrders fetches one page of the seller's orders in the given status.
func (c *Client) ListOrders(ctx context.Context, cursor string, status models.OrderStatus, locale string) (*secondary.OrderPage, error) {
	query := url.Values{}
	query.Set("state", string(status))
	if locale != "" {
		query.Set("locale", locale)
	}
	if cursor != "" {
		query.Set("from", cursor)
	}

	body, err := c.get(ctx, ordersPath+"?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var page wireOrderPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse order page: %w", err)
	}

	out := &secondary.OrderPage{NextCursor: page.Next}
	for _, wo := range page.Orders {
		out.Orders = append(out.Orders, toOrder(wo))
	}
	return out, nil
}

// GetOrder fetches a single order with its current status.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	body, err := c.get(ctx, ordersPath+"/"+url.PathEscape(orderID))
	if err != nil {
		return nil, err
	}

	var wo wireOrder
	if err := json.Unmarshal(body, &wo); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}
	order := toOrder(wo)
	return &order, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Cookie", "golden_key="+c.account.GoldenKey)
	req.Header.Set("Accept", "application/json")
	if c.account.UserAgent != "" {
		req.Header.Set("User-Agent", c.account.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}
	return body, nil
}

func toOrder(wo wireOrder) models.Order {
	order := models.Order{
		ID:      wo.ID,
		Status:  models.OrderStatus(wo.Status),
		RawDate: wo.Date,
	}
	if wo.PlacedAt != "" {
		if ts, err := time.Parse(time.RFC3339, wo.PlacedAt); err == nil {
			order.PlacedAt = ts
		}
	}
	return order
}

// Ensure Client implements the interface
var _ secondary.OrderSource = (*Client)(nil)
