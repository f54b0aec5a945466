// internal/models/cart.go
package models

import "time"

// CartLine is one entry in a cart: a snapshot of the product at the time it
// was added plus a quantity. Quantity is always >= 1; a line that would reach
// zero is removed instead of being persisted.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart is a point-in-time snapshot returned by cart operations. Total and
// Count are derived from Lines on every snapshot and never stored.
type Cart struct {
	Lines []CartLine `json:"items"`
	Total float64    `json:"total"`
	Count int        `json:"count"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

type CartEventType string

const (
	CartEventItemAdded   CartEventType = "item_added"
	CartEventItemRemoved CartEventType = "item_removed"
	CartEventUpdated     CartEventType = "updated"
	CartEventCleared     CartEventType = "cleared"
)

// CartEvent is published after every cart mutation so the rendering layer
// can subscribe to snapshot changes instead of polling.
type CartEvent struct {
	Type    CartEventType `json:"type"`
	Message string        `json:"message,omitempty"`
	Cart    Cart          `json:"cart"`
	At      time.Time     `json:"at"`
}
