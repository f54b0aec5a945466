// internal/services/notification_service.go
package services

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fripetn/storefront/internal/models"
)

// NotificationService delivers transient cart notifications to subscribed
// renderers. Subscriptions are keyed by cart session; a slow subscriber
// drops events rather than blocking the mutation that produced them.
type NotificationService struct {
	mu   sync.RWMutex
	subs map[string]map[chan models.CartEvent]struct{}
}

const subscriberBuffer = 16

func NewNotificationService() *NotificationService {
	return &NotificationService{
		subs: make(map[string]map[chan models.CartEvent]struct{}),
	}
}

// Subscribe registers a listener for a session's cart events. The returned
// cancel function must be called when the listener goes away.
func (s *NotificationService) Subscribe(sessionID string) (<-chan models.CartEvent, func()) {
	ch := make(chan models.CartEvent, subscriberBuffer)

	s.mu.Lock()
	if s.subs[sessionID] == nil {
		s.subs[sessionID] = make(map[chan models.CartEvent]struct{})
	}
	s.subs[sessionID][ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if set, ok := s.subs[sessionID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(s.subs, sessionID)
			}
		}
		s.mu.Unlock()
		close(ch)
	}

	return ch, cancel
}

// Publish fans an event out to every subscriber of the session.
func (s *NotificationService) Publish(sessionID string, event models.CartEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for ch := range s.subs[sessionID] {
		select {
		case ch <- event:
		default:
			logrus.WithField("session", sessionID).Debug("Dropping cart event for slow subscriber")
		}
	}
}

// SubscriberCount reports how many listeners a session currently has.
func (s *NotificationService) SubscriberCount(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs[sessionID])
}
