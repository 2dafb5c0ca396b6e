package models

// Settings bounds. Updates outside these ranges are rejected and leave the
// persisted settings unchanged.
const (
	MinOrderAgeHours = 1
	MaxOrderAgeHours = 720

	MinOrdersInTicket = 1
	MaxOrdersInTicket = 50
)

// Default values used when no settings file exists yet.
const (
	DefaultOrderAgeHours     = 24
	DefaultMaxOrdersInTicket = 10
)

// Settings is the persisted escalation configuration plus the dedup ledger
// of order IDs that already had a ticket filed. IDs are kept in insertion
// order for inspection; once added an ID is never removed.
type Settings struct {
	OrderAgeHours     int      `json:"order_age_hours"`
	MaxOrdersInTicket int      `json:"max_orders_in_ticket"`
	SentOrderIDs      []string `json:"sent_order_ids"`
}

// DefaultSettings returns a Settings value with default thresholds and an
// empty sent ledger.
func DefaultSettings() *Settings {
	return &Settings{
		OrderAgeHours:     DefaultOrderAgeHours,
		MaxOrdersInTicket: DefaultMaxOrdersInTicket,
		SentOrderIDs:      []string{},
	}
}

// HasSent reports whether the order ID is already in the sent ledger.
func (s *Settings) HasSent(orderID string) bool {
	for _, id := range s.SentOrderIDs {
		if id == orderID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the live slice.
func (s *Settings) Clone() *Settings {
	out := *s
	out.SentOrderIDs = append([]string(nil), s.SentOrderIDs...)
	return &out
}
