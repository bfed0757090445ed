package handlers

import (
	"net/http"

	"Storefront/models"
	"Storefront/notify"
	"Storefront/orders"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler places an order from the active cart and clears it.
func CheckoutHandler(c *gin.Context, book *orders.Book, toasts *notify.Channel) {
	var req struct {
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
		PaymentMethod   models.PaymentMethod   `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := book.Checkout(req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		respondError(c, toasts, "order not placed", err)
		return
	}

	toasts.Success("Order placed successfully")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"orderId": order.ID,
		"order":   order,
	})
}
