package models

type CartEntry struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price times quantity, a missing price counts as 0.
func (e CartEntry) Subtotal() float64 {
	return e.Product.UnitPrice() * float64(e.Quantity)
}
