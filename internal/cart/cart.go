// Package cart implements the shopping cart: the single source of truth for
// what the customer is ordering, persisted to the local store after every
// mutation so it survives restarts.
package cart

import (
	"encoding/json"
	"sync"

	"umami/internal/catalog"
	"umami/internal/logging"
)

// StorageKey is the fixed key the serialized cart lives under.
const StorageKey = "umami_cart"

// KV is the durable key-value storage the cart persists to.
type KV interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

// Line is one product entry in the cart. Product fields are copied by value
// when the line is created; later catalog changes do not affect it.
type Line struct {
	ProductID       string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Price           int    `json:"price"`
	Description     string `json:"description,omitempty"`
	Image           string `json:"image,omitempty"`
	IsNew           bool   `json:"is_new,omitempty"`
	Available       bool   `json:"available"`
	ShowWhenSoldOut bool   `json:"show_when_sold_out,omitempty"`
	Quantity        int    `json:"quantity"`
}

// Subtotal is this line's contribution to the cart total.
func (l Line) Subtotal() int {
	return l.Price * l.Quantity
}

func newLine(p catalog.Product) Line {
	return Line{
		ProductID:       p.ID,
		Name:            p.Name,
		Category:        p.Category,
		Price:           p.Price,
		Description:     p.Description,
		Image:           p.Image,
		IsNew:           p.IsNew,
		Available:       p.Available,
		ShowWhenSoldOut: p.ShowWhenSoldOut,
		Quantity:        1,
	}
}

// Store owns the cart line list. Construct once per session and inject into
// consumers; every mutation persists the full list before returning.
type Store struct {
	mu    sync.RWMutex
	kv    KV
	lines []Line
}

// New creates a cart store backed by kv and loads any previously persisted
// cart. A malformed persisted value is treated as an empty cart: logged,
// never surfaced.
func New(kv KV) *Store {
	s := &Store{kv: kv}
	s.load()
	return s
}

func (s *Store) load() {
	raw, found, err := s.kv.Get(StorageKey)
	if err != nil {
		logging.Get(logging.CategoryCart).Warn("Failed to read persisted cart: %v", err)
		return
	}
	if !found {
		return
	}
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		logging.Get(logging.CategoryCart).Warn("Persisted cart is malformed, starting empty: %v", err)
		return
	}
	// Defend the quantity invariant against hand-edited payloads.
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity < 1 {
			logging.Get(logging.CategoryCart).Warn("Persisted cart has invalid line, starting empty")
			return
		}
	}
	s.lines = lines
	logging.Cart("Loaded persisted cart: %d lines", len(lines))
}

// persist writes the full line list under the fixed key. Last write wins;
// failures are logged and otherwise ignored (the in-memory cart stays valid).
func (s *Store) persist() {
	data, err := json.Marshal(s.lines)
	if err != nil {
		logging.Get(logging.CategoryCart).Error("Failed to serialize cart: %v", err)
		return
	}
	if err := s.kv.Put(StorageKey, string(data)); err != nil {
		logging.Get(logging.CategoryCart).Error("Failed to persist cart: %v", err)
	}
}

// Add puts one unit of the product in the cart: an existing line's quantity
// is incremented, otherwise a new line is appended. Never creates a second
// line for the same product id.
func (s *Store) Add(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity++
			logging.CartDebug("Add %s: quantity now %d", p.ID, s.lines[i].Quantity)
			s.persist()
			return
		}
	}
	s.lines = append(s.lines, newLine(p))
	logging.CartDebug("Add %s: new line", p.ID)
	s.persist()
}

// Remove deletes the line matching id. Removing an absent id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			logging.CartDebug("Removed %s", id)
			s.persist()
			return
		}
	}
}

// UpdateQuantity applies a quantity delta to the line matching id. A result
// at or below zero leaves the line unchanged; decrementing never removes a
// line. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == id {
			newQty := s.lines[i].Quantity + delta
			if newQty > 0 {
				s.lines[i].Quantity = newQty
				logging.CartDebug("UpdateQuantity %s: %d", id, newQty)
				s.persist()
			}
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	logging.Cart("Cart cleared")
	s.persist()
}

// Lines returns a copy of the cart in its current iteration order.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}

// Total is the sum of price times quantity over all lines. Recomputed on
// every read; cart sizes make caching pointless.
func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, l := range s.lines {
		total += l.Price * l.Quantity
	}
	return total
}

// Count is the sum of quantities over all lines.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}
