package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentCard PaymentMethod = "CARD"
	PaymentUPI  PaymentMethod = "UPI"
)

// ShippingAddress rules are checked with go-playground/validator; "phone" is
// a custom tag registered by the orders package.
type ShippingAddress struct {
	FullName     string `json:"fullName" validate:"required,min=2"`
	Phone        string `json:"phone" validate:"required,min=6,max=20,phone"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postalCode" validate:"required,min=3"`
	Country      string `json:"country" validate:"required"`
}

type OrderItem struct {
	ProductID ProductID `json:"productId"`
	Name      string    `json:"name,omitempty"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
}

type Order struct {
	ID              string           `json:"id"`
	Customer        string           `json:"customer"`
	Email           string           `json:"email,omitempty"`
	Items           []OrderItem      `json:"items,omitempty"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod,omitempty"`
	Subtotal        float64          `json:"subtotal"`
	ShippingFee     float64          `json:"shippingFee"`
	Total           float64          `json:"amount"`
	CreatedAt       *time.Time       `json:"createdAt,omitempty"`
	Status          OrderStatus      `json:"status"`
}
