// Package cart keeps the active cart for the current identity and migrates the
// guest cart into the account cart on login.
package cart

import (
	"errors"
	"fmt"
	"math"

	"Storefront/kvstore"
	"Storefront/models"
	"Storefront/observable"

	"github.com/rs/zerolog"
)

// Identity is what the cart needs from the identity store.
type Identity interface {
	CurrentAccount() (models.Account, bool)
	SubscribeSession(fn func(loggedIn bool)) func()
}

type Store struct {
	kv       kvstore.Store
	identity Identity
	logger   zerolog.Logger

	active      *observable.Subject[[]models.CartEntry]
	unsubscribe func()
	merging     bool
}

// New loads the cart of the current scope and starts following the session
// signal. The signal replays on subscribe, so a session restored at startup
// merges immediately.
func New(kv kvstore.Store, identity Identity, logger zerolog.Logger) *Store {
	s := &Store{
		kv:       kv,
		identity: identity,
		logger:   logger.With().Str("component", "cart").Logger(),
		active:   observable.NewSubject([]models.CartEntry{}),
	}
	s.active.Next(s.read(s.scopeKey()))
	s.unsubscribe = identity.SubscribeSession(s.onSessionChanged)
	return s
}

// Close stops following the session signal.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Subscribe replays the active cart to fn and then reports every change.
// Each call receives its own copy of the entries.
func (s *Store) Subscribe(fn func([]models.CartEntry)) func() {
	return s.active.Subscribe(func(entries []models.CartEntry) {
		fn(clone(entries))
	})
}

// CurrentEntries returns a copy of the active cart.
func (s *Store) CurrentEntries() []models.CartEntry {
	return clone(s.active.Value())
}

// AddItem adds quantity (floored, at least 1) of product to the active cart.
// A nil product is ignored.
func (s *Store) AddItem(product *models.Product, quantity float64) error {
	if product == nil {
		return nil
	}
	qty := Clamp(quantity)
	entries := s.CurrentEntries()
	if idx := find(entries, product.ID); idx >= 0 {
		entries[idx].Quantity = Clamp(float64(entries[idx].Quantity) + float64(qty))
	} else {
		entries = append(entries, models.CartEntry{Product: *product, Quantity: qty})
	}
	return s.commit(entries)
}

// SetQuantity replaces the quantity of an existing entry. Unknown ids are ignored.
func (s *Store) SetQuantity(id models.ProductID, quantity float64) error {
	entries := s.CurrentEntries()
	idx := find(entries, id)
	if idx < 0 {
		return nil
	}
	entries[idx].Quantity = Clamp(quantity)
	return s.commit(entries)
}

func (s *Store) RemoveItem(id models.ProductID) error {
	current := s.CurrentEntries()
	entries := make([]models.CartEntry, 0, len(current))
	for _, e := range current {
		if e.Product.ID != id {
			entries = append(entries, e)
		}
	}
	return s.commit(entries)
}

func (s *Store) Clear() error {
	return s.commit([]models.CartEntry{})
}

func (s *Store) Subtotal(entry models.CartEntry) float64 {
	return entry.Subtotal()
}

func (s *Store) Total() float64 {
	var total float64
	for _, e := range s.active.Value() {
		total += e.Subtotal()
	}
	return total
}

func (s *Store) TotalItemCount() int {
	n := 0
	for _, e := range s.active.Value() {
		n += e.Quantity
	}
	return n
}

// Clamp floors q and forces it to at least 1. NaN and infinities become 1.
func Clamp(q float64) int {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 1
	}
	q = math.Floor(q)
	if q < 1 {
		return 1
	}
	if q > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(q)
}

// ScopeKey selects the persisted cart bucket: the account cart when logged in
// with a known account, the guest cart otherwise.
func ScopeKey(account models.Account, loggedIn bool) string {
	email := models.NormalizeEmail(account.Email)
	if !loggedIn || email == "" {
		return kvstore.GuestCartKey
	}
	return kvstore.CartKeyPrefix + email
}

// scopeKey is recomputed on every call so mutations never hit a stale bucket.
func (s *Store) scopeKey() string {
	account, ok := s.identity.CurrentAccount()
	return ScopeKey(account, ok)
}

// commit persists entries under the active scope and broadcasts them. The
// broadcast happens even when the write fails.
func (s *Store) commit(entries []models.CartEntry) error {
	key := s.scopeKey()
	err := s.write(key, entries)
	s.active.Next(entries)
	return err
}

func (s *Store) read(key string) []models.CartEntry {
	var entries []models.CartEntry
	if _, err := kvstore.ReadJSON(s.kv, key, &entries); err != nil {
		if errors.Is(err, kvstore.ErrCorrupt) {
			s.logger.Warn().Err(err).Str("key", key).Msg("Cart unreadable, treating as empty")
		} else {
			s.logger.Error().Err(err).Str("key", key).Msg("Error reading cart")
		}
		return []models.CartEntry{}
	}
	if entries == nil {
		entries = []models.CartEntry{}
	}
	return entries
}

func (s *Store) write(key string, entries []models.CartEntry) error {
	if err := kvstore.WriteJSON(s.kv, key, entries); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Error saving cart")
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func find(entries []models.CartEntry, id models.ProductID) int {
	for i, e := range entries {
		if e.Product.ID == id {
			return i
		}
	}
	return -1
}

func clone(entries []models.CartEntry) []models.CartEntry {
	out := make([]models.CartEntry, len(entries))
	copy(out, entries)
	return out
}
