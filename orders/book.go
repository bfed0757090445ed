// Package orders places checkout orders from the active cart and keeps the
// demo order list shown on the admin dashboard.
package orders

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"Storefront/clock"
	"Storefront/kvstore"
	"Storefront/models"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var (
	ErrNotAuthenticated   = errors.New("login required to place an order")
	ErrEmptyCart          = errors.New("your cart is empty")
	ErrIncompleteAddress  = errors.New("please complete the shipping address")
	ErrInvalidPayment     = errors.New("unsupported payment method")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

const (
	freeShippingOver = 1000
	shippingFee      = 50
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	// digits, '+', '-' and spaces
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if (r < '0' || r > '9') && r != '+' && r != '-' && r != ' ' {
				return false
			}
		}
		return true
	})
	return v
}

type Session interface {
	CurrentAccount() (models.Account, bool)
}

type Cart interface {
	CurrentEntries() []models.CartEntry
	Clear() error
}

type Book struct {
	kv      kvstore.Store
	session Session
	cart    Cart
	clock   clock.Clock
	logger  zerolog.Logger
}

func seedOrders() []models.Order {
	return []models.Order{
		{ID: "A101", Customer: "Rahul K", Total: 1340, Subtotal: 1340, Status: models.OrderPending},
		{ID: "A102", Customer: "Sana P", Total: 2400, Subtotal: 2400, Status: models.OrderCompleted},
		{ID: "A103", Customer: "Anil G", Total: 560, Subtotal: 560, Status: models.OrderCancelled},
	}
}

// NewBook seeds the demo orders when the list is empty.
func NewBook(kv kvstore.Store, session Session, cart Cart, c clock.Clock, logger zerolog.Logger) (*Book, error) {
	b := &Book{
		kv:      kv,
		session: session,
		cart:    cart,
		clock:   c,
		logger:  logger.With().Str("component", "orders").Logger(),
	}
	if len(b.List()) == 0 {
		if err := b.save(seedOrders()); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Book) List() []models.Order {
	var list []models.Order
	if _, err := kvstore.ReadJSON(b.kv, kvstore.OrdersKey, &list); err != nil {
		b.logger.Warn().Err(err).Msg("Order list unreadable, treating as empty")
		return []models.Order{}
	}
	if list == nil {
		list = []models.Order{}
	}
	return list
}

// DefaultPageSize is the admin dashboard's order page size.
const DefaultPageSize = 6

type Query struct {
	Search    string
	Status    models.OrderStatus
	MinAmount float64
	Page      int
	PageSize  int
}

// Filter matches the search against customer and order id without regard to
// case, keeps orders with the given status and an amount of at least
// MinAmount, then returns the requested page.
func (b *Book) Filter(q Query) models.Page[models.Order] {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	list := make([]models.Order, 0)
	for _, o := range b.List() {
		if search != "" &&
			!strings.Contains(strings.ToLower(o.Customer), search) &&
			!strings.Contains(strings.ToLower(o.ID), search) {
			continue
		}
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		if q.MinAmount > 0 && o.Total < q.MinAmount {
			continue
		}
		list = append(list, o)
	}
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	return models.Paginate(list, q.Page, size)
}

func (b *Book) UpdateStatus(id string, status models.OrderStatus) (models.Order, error) {
	switch status {
	case models.OrderPending, models.OrderCompleted, models.OrderCancelled:
	default:
		return models.Order{}, ErrInvalidOrderStatus
	}

	list := b.List()
	for i := range list {
		if list[i].ID != id {
			continue
		}
		list[i].Status = status
		if err := b.save(list); err != nil {
			return models.Order{}, err
		}
		b.logger.Info().Str("order_id", id).Str("status", string(status)).Msg("Order status updated")
		return list[i], nil
	}
	return models.Order{}, ErrOrderNotFound
}

// ShippingFeeFor is free for an empty cart and for subtotals over 1000.
func ShippingFeeFor(subtotal float64) float64 {
	if subtotal == 0 || subtotal > freeShippingOver {
		return 0
	}
	return shippingFee
}

// Checkout turns the active cart into an order and clears the cart.
func (b *Book) Checkout(address models.ShippingAddress, payment models.PaymentMethod) (models.Order, error) {
	account, ok := b.session.CurrentAccount()
	if !ok {
		return models.Order{}, ErrNotAuthenticated
	}
	entries := b.cart.CurrentEntries()
	if len(entries) == 0 {
		return models.Order{}, ErrEmptyCart
	}
	address = trimAddress(address)
	if err := validateAddress(address); err != nil {
		return models.Order{}, err
	}
	switch payment {
	case "":
		payment = models.PaymentCOD
	case models.PaymentCOD, models.PaymentCard, models.PaymentUPI:
	default:
		return models.Order{}, ErrInvalidPayment
	}

	items := make([]models.OrderItem, 0, len(entries))
	var subtotal float64
	for _, e := range entries {
		items = append(items, models.OrderItem{
			ProductID: e.Product.ID,
			Name:      e.Product.Name,
			Price:     e.Product.UnitPrice(),
			Quantity:  e.Quantity,
		})
		subtotal += e.Subtotal()
	}

	now := b.clock.Now()
	fee := ShippingFeeFor(subtotal)
	order := models.Order{
		ID:              fmt.Sprintf("ORD-%d", now.UnixMilli()),
		Customer:        account.Name,
		Email:           account.Email,
		Items:           items,
		ShippingAddress: &address,
		PaymentMethod:   payment,
		Subtotal:        subtotal,
		ShippingFee:     fee,
		Total:           subtotal + fee,
		CreatedAt:       &now,
		Status:          models.OrderPending,
	}

	if err := b.save(append(b.List(), order)); err != nil {
		return models.Order{}, err
	}
	if err := b.cart.Clear(); err != nil {
		b.logger.Error().Err(err).Str("order_id", order.ID).Msg("Order placed but cart not cleared")
	}

	b.logger.Info().Str("order_id", order.ID).Str("email", account.Email).Float64("total", order.Total).Msg("Order placed")
	return order, nil
}

func trimAddress(a models.ShippingAddress) models.ShippingAddress {
	a.FullName = strings.TrimSpace(a.FullName)
	a.AddressLine1 = strings.TrimSpace(a.AddressLine1)
	a.AddressLine2 = strings.TrimSpace(a.AddressLine2)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	return a
}

func validateAddress(a models.ShippingAddress) error {
	err := validate.Struct(a)
	var fields validator.ValidationErrors
	switch {
	case err == nil:
		return nil
	case errors.As(err, &fields) && len(fields) > 0:
		return fmt.Errorf("%w: %s", ErrIncompleteAddress, fields[0].Field())
	default:
		return fmt.Errorf("validate address: %w", err)
	}
}

func (b *Book) save(list []models.Order) error {
	if err := kvstore.WriteJSON(b.kv, kvstore.OrdersKey, list); err != nil {
		b.logger.Error().Err(err).Msg("Error saving orders")
		return fmt.Errorf("save orders: %w", err)
	}
	return nil
}
