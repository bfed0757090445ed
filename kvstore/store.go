// Package kvstore is the synchronous string-keyed persistence primitive the
// identity and cart stores are built on. Values are JSON documents.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Keys shared by every component on the same store.
const (
	AccountsKey    = "nestify_users"
	CurrentUserKey = "nestify_current_user"
	GuestCartKey   = "guest_cart_v1"
	CartKeyPrefix  = "cart_"
	OrdersKey      = "demo_orders"
	ProductsKey    = "nestify_products"
)

// ErrCorrupt marks a stored value that could not be decoded.
var ErrCorrupt = errors.New("kvstore: corrupt value")

type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// ReadJSON decodes the value at key into v. It reports false when the key is absent.
func ReadJSON(s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return false, fmt.Errorf("get %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("%w: %q: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func WriteJSON(s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.Set(key, string(raw)); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}
