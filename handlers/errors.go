package handlers

import (
	"errors"
	"net/http"

	"Storefront/identity"
	"Storefront/models"
	"Storefront/notify"
	"Storefront/orders"
	"Storefront/products"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, identity.ErrValidation),
		errors.Is(err, identity.ErrMissingCredentials),
		errors.Is(err, orders.ErrEmptyCart),
		errors.Is(err, orders.ErrIncompleteAddress),
		errors.Is(err, orders.ErrInvalidPayment),
		errors.Is(err, orders.ErrInvalidOrderStatus),
		errors.Is(err, products.ErrInvalidProduct):
		return http.StatusBadRequest
	case errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrNotAuthenticated),
		errors.Is(err, orders.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, identity.ErrAccountPending),
		errors.Is(err, identity.ErrAccountBlocked):
		return http.StatusForbidden
	case errors.Is(err, identity.ErrAccountNotFound),
		errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, products.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, identity.ErrDuplicateAccount),
		errors.Is(err, identity.ErrLastAdmin):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the failure and surfaces it on the toast queue.
func respondError(c *gin.Context, toasts *notify.Channel, message string, err error) {
	toasts.Error(err.Error())
	c.JSON(statusFor(err), gin.H{
		"message": message,
		"error":   err.Error(),
	})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "invalid request body",
		"error":   err.Error(),
	})
}

// accountView never includes the password.
func accountView(a models.Account) gin.H {
	return gin.H{
		"name":   a.Name,
		"email":  a.Email,
		"role":   a.Role,
		"status": a.Status,
		"phone":  a.Phone,
	}
}

func accountViews(accounts []models.Account) []gin.H {
	out := make([]gin.H, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountView(a))
	}
	return out
}
