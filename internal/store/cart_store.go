// internal/store/cart_store.go
package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
	"github.com/sirupsen/logrus"

	"github.com/fripetn/storefront/internal/models"
)

const cartKeyPrefix = "cart/"

// CartStore persists cart line sequences in a local key-value store, one key
// per session, overwritten wholesale on every save. It is the durable
// equivalent of the single browser-storage slot the cart lived in before.
type CartStore struct {
	db        *pebble.DB
	writeOpts *pebble.WriteOptions
}

func NewCartStore(dir string, syncWrites bool) (*CartStore, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open cart store: %w", err)
	}

	writeOpts := pebble.Sync
	if !syncWrites {
		writeOpts = pebble.NoSync
	}

	return &CartStore{db: db, writeOpts: writeOpts}, nil
}

func (s *CartStore) Close() error {
	return s.db.Close()
}

func cartKey(sessionID string) []byte {
	return []byte(cartKeyPrefix + sessionID)
}

// Load reads the persisted line sequence for a session. A missing key is an
// empty cart, not an error; so is a value that no longer parses.
func (s *CartStore) Load(sessionID string) []models.CartLine {
	value, closer, err := s.db.Get(cartKey(sessionID))
	if err != nil {
		if err != pebble.ErrNotFound {
			logrus.WithError(err).WithField("session", sessionID).Warn("Failed to read cart, starting empty")
		}
		return nil
	}
	defer closer.Close()

	var lines []models.CartLine
	if err := json.Unmarshal(value, &lines); err != nil {
		logrus.WithError(err).WithField("session", sessionID).Warn("Corrupt cart data, starting empty")
		return nil
	}

	return lines
}

// Save writes the full line sequence for a session, replacing prior state.
func (s *CartStore) Save(sessionID string, lines []models.CartLine) error {
	if lines == nil {
		lines = []models.CartLine{}
	}

	value, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.db.Set(cartKey(sessionID), value, s.writeOpts); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	return nil
}

// Delete removes a session's cart entirely.
func (s *CartStore) Delete(sessionID string) error {
	if err := s.db.Delete(cartKey(sessionID), s.writeOpts); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// SaveRaw writes an unvalidated payload under a session key. Used by tests
// to simulate corrupted persisted state.
func (s *CartStore) SaveRaw(sessionID string, value []byte) error {
	return s.db.Set(cartKey(sessionID), value, s.writeOpts)
}
