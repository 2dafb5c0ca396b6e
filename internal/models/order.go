// Package models contains the domain types shared across services and adapters.
package models

import "time"

// OrderStatus represents the lifecycle state of a marketplace order.
type OrderStatus string

const (
	// OrderStatusPaid is the only state eligible for escalation: the buyer
	// has paid but not yet confirmed delivery.
	OrderStatusPaid OrderStatus = "paid"

	OrderStatusClosed   OrderStatus = "closed"
	OrderStatusRefunded OrderStatus = "refunded"
)

// Order is a read-only view of a marketplace order as returned by the
// order source.
type Order struct {
	ID     string
	Status OrderStatus

	// PlacedAt is the absolute order timestamp when the source provides
	// one. Zero when only RawDate is available.
	PlacedAt time.Time

	// RawDate is the locale-formatted date string shown by the
	// marketplace ("Сегодня в 18:30", "2 янв, 14:00", ...). Normalized by
	// the orderdate package.
	RawDate string
}
