package cart

import (
	"Storefront/kvstore"
	"Storefront/models"
)

// Merge folds guest into account. Quantities of a product present in both
// are summed; both sides are clamped first. Neither input is modified.
func Merge(account, guest []models.CartEntry) []models.CartEntry {
	merged := make([]models.CartEntry, 0, len(account)+len(guest))
	index := make(map[models.ProductID]int, len(account)+len(guest))

	add := func(e models.CartEntry) {
		qty := Clamp(float64(e.Quantity))
		if i, ok := index[e.Product.ID]; ok {
			merged[i].Quantity = Clamp(float64(merged[i].Quantity) + float64(qty))
			return
		}
		index[e.Product.ID] = len(merged)
		merged = append(merged, models.CartEntry{Product: e.Product, Quantity: qty})
	}
	for _, e := range account {
		add(e)
	}
	for _, e := range guest {
		add(e)
	}
	return merged
}

func (s *Store) onSessionChanged(loggedIn bool) {
	account, known := s.identity.CurrentAccount()
	if !loggedIn || !known {
		s.active.Next(s.read(kvstore.GuestCartKey))
		return
	}
	if s.merging {
		return
	}
	s.merging = true
	defer func() { s.merging = false }()

	key := ScopeKey(account, true)
	guest := s.read(kvstore.GuestCartKey)
	merged := Merge(s.read(key), guest)

	if err := s.write(key, merged); err != nil {
		// the guest bucket is kept so the next login can retry
		s.logger.Error().Err(err).Str("email", account.Email).Msg("Merged cart not saved, keeping guest cart")
	} else if len(guest) > 0 {
		if err := s.write(kvstore.GuestCartKey, []models.CartEntry{}); err == nil {
			s.logger.Info().
				Str("email", account.Email).
				Int("guest_lines", len(guest)).
				Int("lines", len(merged)).
				Msg("Merged guest cart into account cart")
		}
	}
	s.active.Next(merged)
}
