package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// cartFileName matches the storage key the web client used.
const cartFileName = "booksy_cart_v1.json"

// CartItem is a denormalized snapshot of a book at the moment it was added.
// The snapshot is deliberately not refreshed against the server: a book can
// stay in the cart after it was sold.
type CartItem struct {
	BookID         uuid.UUID `json:"bookId"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	PriceCents     int64     `json:"price_cents"`
	CoverImageURL  *string   `json:"cover_image_url"`
	SellerUsername string    `json:"sellerUsername,omitempty"`
	AddedAt        time.Time `json:"addedAt"`
}

// CartStore is the client-local persisted cart. At most one entry exists per
// book id.
type CartStore struct {
	mu        sync.Mutex
	path      string
	notify    *broadcaster
	stopWatch func() error
}

// NewCartStore opens the cart persisted under dir. A failing file watcher
// only disables the cross-process signal; the store itself keeps working.
func NewCartStore(dir string) (*CartStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	s := &CartStore{
		path:   filepath.Join(dir, cartFileName),
		notify: newBroadcaster(),
	}
	if stop, err := watchFile(s.path, s.notify.emit); err == nil {
		s.stopWatch = stop
	}
	return s, nil
}

// Get returns the current cart. Corrupt or unreadable storage is treated as
// an empty cart, never an error.
func (s *CartStore) Get() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *CartStore) read() []CartItem {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return []CartItem{}
	}
	var items []CartItem
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []CartItem{}
	}
	return items
}

// Set overwrites the cart and broadcasts the change.
func (s *CartStore) Set(items []CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(items)
}

func (s *CartStore) write(items []CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return err
	}
	s.notify.emit()
	return nil
}

// Add prepends the item unless its book id is already present. It reports
// whether the item was added, along with the resulting cart.
func (s *CartStore) Add(item CartItem) (bool, []CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.read()
	for _, existing := range items {
		if existing.BookID == item.BookID {
			return false, items, nil
		}
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	next := append([]CartItem{item}, items...)
	if err := s.write(next); err != nil {
		return false, items, err
	}
	return true, next, nil
}

// Remove drops the entry for the given book id, if any.
func (s *CartStore) Remove(bookID uuid.UUID) ([]CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.read()
	next := items[:0:0]
	for _, existing := range items {
		if existing.BookID != bookID {
			next = append(next, existing)
		}
	}
	if next == nil {
		next = []CartItem{}
	}
	if err := s.write(next); err != nil {
		return items, err
	}
	return next, nil
}

// InCart reports whether the book is already in the cart.
func (s *CartStore) InCart(bookID uuid.UUID) bool {
	for _, item := range s.Get() {
		if item.BookID == bookID {
			return true
		}
	}
	return false
}

// Count returns the number of cart entries.
func (s *CartStore) Count() int {
	return len(s.Get())
}

// Subscribe registers for change signals from both transports.
func (s *CartStore) Subscribe() (<-chan struct{}, func()) {
	return s.notify.subscribe()
}

// Close stops the cross-process watcher.
func (s *CartStore) Close() error {
	if s.stopWatch != nil {
		return s.stopWatch()
	}
	return nil
}
