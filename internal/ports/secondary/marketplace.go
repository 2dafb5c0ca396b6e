// Package secondary defines the interfaces the application services
// consume (driven ports): the marketplace order source, the support
// portal gateway and the persistence stores.
package secondary

import (
	"context"
	"time"

	"github.com/example/staletick/internal/models"
)

// Account carries the seller-account parameters every marketplace and
// support request needs.
type Account struct {
	// GoldenKey is the long-lived account credential sent as a cookie on
	// every request.
	GoldenKey string

	Username       string
	UserAgent      string
	Locale         string
	RequestTimeout time.Duration
}

// OrderPage is one page of the paginated order listing.
type OrderPage struct {
	// NextCursor resumes pagination; empty when there are no further pages.
	NextCursor string
	Orders     []models.Order
}

// OrderSource lists and looks up the seller's orders.
type OrderSource interface {
	// ListOrders fetches one page of orders in the given status. An empty
	// cursor starts from the most recent orders.
	ListOrders(ctx context.Context, cursor string, status models.OrderStatus, locale string) (*OrderPage, error)

	// GetOrder fetches a single order with its current status.
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
}
