package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ProductID accepts both JSON numbers and strings; carts compare ids by their
// string form.
type ProductID string

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ProductID(n.String())
	return nil
}

func (id ProductID) MarshalJSON() ([]byte, error) {
	if isNumber(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// isNumber reports whether s is written exactly as a JSON number, so that
// decoding the marshalled form yields s again.
func isNumber(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	if !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return false
	}
	return json.Valid([]byte(s))
}

type Product struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Image       string    `json:"image,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Description string    `json:"description,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	Available   *bool     `json:"available,omitempty"`
}

// UnitPrice is the price or 0 when the catalog left it out.
func (p Product) UnitPrice() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// IsAvailable falls back to stock when the flag was never set.
func (p Product) IsAvailable() bool {
	if p.Available != nil {
		return *p.Available
	}
	return p.Stock != nil && *p.Stock > 0
}
