// internal/services/cart_service.go
package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fripetn/storefront/internal/i18n"
	"github.com/fripetn/storefront/internal/models"
	"github.com/fripetn/storefront/internal/store"
)

// CartService maintains per-session cart ledgers: ordered line sequences
// keyed by product id, at most one line per id. Every mutation persists the
// full line sequence synchronously before returning and publishes a cart
// event for subscribed renderers.
type CartService struct {
	store    *store.CartStore
	notifier *NotificationService

	// The original control flow was single-threaded; the HTTP surface is
	// not, so mutations are serialized here.
	mu sync.Mutex
}

func NewCartService(cartStore *store.CartStore, notifier *NotificationService) *CartService {
	return &CartService{
		store:    cartStore,
		notifier: notifier,
	}
}

// CalculateTotal derives the cart total from the line sequence. The total
// is never stored; callers recompute it whenever one is needed.
func CalculateTotal(lines []models.CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

func snapshot(lines []models.CartLine) models.Cart {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	return models.Cart{
		Lines: lines,
		Total: CalculateTotal(lines),
		Count: count,
	}
}

// Get loads the current cart for a session. Missing or corrupt persisted
// state yields an empty cart.
func (s *CartService) Get(sessionID string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.store.Load(sessionID))
}

// Add appends a new line with quantity 1, or increments the existing line
// for the same product id. The line copies the product fields at add time;
// later catalog changes do not reach into carts.
func (s *CartService) Add(sessionID string, product models.Product, lang string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.store.Load(sessionID)

	found := false
	for i := range lines {
		if lines[i].ID == product.ID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, models.CartLine{Product: product, Quantity: 1})
	}

	if err := s.store.Save(sessionID, lines); err != nil {
		return models.Cart{}, fmt.Errorf("failed to save cart: %w", err)
	}

	cartOperationsTotal.WithLabelValues("add").Inc()
	cartLinesGauge.Set(float64(len(lines)))

	cart := snapshot(lines)
	s.publish(sessionID, models.CartEventItemAdded, i18n.T(lang, i18n.KeyCartItemAdded, product.Name), cart)

	logrus.WithFields(logrus.Fields{
		"session": sessionID,
		"product": product.ID,
		"lines":   len(lines),
	}).Info("Cart item added")

	return cart, nil
}

// Remove deletes the line with the given product id. Removing an absent
// line is a no-op, not an error.
func (s *CartService) Remove(sessionID string, productID int, lang string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.store.Load(sessionID)

	kept := lines[:0]
	for _, line := range lines {
		if line.ID != productID {
			kept = append(kept, line)
		}
	}

	if err := s.store.Save(sessionID, kept); err != nil {
		return models.Cart{}, fmt.Errorf("failed to save cart: %w", err)
	}

	cartOperationsTotal.WithLabelValues("remove").Inc()
	cartLinesGauge.Set(float64(len(kept)))

	cart := snapshot(kept)
	s.publish(sessionID, models.CartEventItemRemoved, i18n.T(lang, i18n.KeyCartItemRemoved), cart)
	return cart, nil
}

// UpdateQuantity applies a signed delta to a line's quantity. A result
// below 1 removes the line entirely; quantities are never persisted at
// zero. Unknown product ids are a no-op.
func (s *CartService) UpdateQuantity(sessionID string, productID, delta int, lang string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.store.Load(sessionID)

	changed := false
	for i := range lines {
		if lines[i].ID != productID {
			continue
		}
		lines[i].Quantity += delta
		if lines[i].Quantity < 1 {
			lines = append(lines[:i], lines[i+1:]...)
		}
		changed = true
		break
	}

	if !changed {
		return snapshot(lines), nil
	}

	if err := s.store.Save(sessionID, lines); err != nil {
		return models.Cart{}, fmt.Errorf("failed to save cart: %w", err)
	}

	cartOperationsTotal.WithLabelValues("update_quantity").Inc()
	cartLinesGauge.Set(float64(len(lines)))

	cart := snapshot(lines)
	s.publish(sessionID, models.CartEventUpdated, i18n.T(lang, i18n.KeyCartUpdated), cart)
	return cart, nil
}

// Clear empties the cart for a session.
func (s *CartService) Clear(sessionID string, lang string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(sessionID); err != nil {
		return models.Cart{}, fmt.Errorf("failed to clear cart: %w", err)
	}

	cartOperationsTotal.WithLabelValues("clear").Inc()
	cartLinesGauge.Set(0)

	cart := snapshot(nil)
	s.publish(sessionID, models.CartEventCleared, i18n.T(lang, i18n.KeyCartCleared), cart)
	return cart, nil
}

func (s *CartService) publish(sessionID string, eventType models.CartEventType, message string, cart models.Cart) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(sessionID, models.CartEvent{
		Type:    eventType,
		Message: message,
		Cart:    cart,
		At:      time.Now(),
	})
}
