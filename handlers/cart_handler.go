package handlers

import (
	"net/http"

	"Storefront/cart"
	"Storefront/models"

	"github.com/gin-gonic/gin"
)

func cartView(carts *cart.Store) gin.H {
	entries := carts.CurrentEntries()
	lines := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, gin.H{
			"product":  e.Product,
			"quantity": e.Quantity,
			"subtotal": carts.Subtotal(e),
		})
	}
	return gin.H{
		"entries":   lines,
		"total":     carts.Total(),
		"itemCount": carts.TotalItemCount(),
	}
}

func saveError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": "cart updated but not saved",
		"error":   err.Error(),
	})
}

func GetCartHandler(c *gin.Context, carts *cart.Store) {
	c.JSON(http.StatusOK, cartView(carts))
}

// AddToCartHandler adds the posted product; quantity defaults to 1.
func AddToCartHandler(c *gin.Context, carts *cart.Store) {
	var req struct {
		Product  *models.Product `json:"product"`
		Quantity *float64        `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	quantity := 1.0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := carts.AddItem(req.Product, quantity); err != nil {
		saveError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(carts))
}

func UpdateCartItemQuantityHandler(c *gin.Context, carts *cart.Store) {
	var req struct {
		Quantity float64 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := carts.SetQuantity(models.ProductID(c.Param("productID")), req.Quantity); err != nil {
		saveError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(carts))
}

func DeleteCartItemHandler(c *gin.Context, carts *cart.Store) {
	if err := carts.RemoveItem(models.ProductID(c.Param("productID"))); err != nil {
		saveError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(carts))
}

func ClearCartHandler(c *gin.Context, carts *cart.Store) {
	if err := carts.Clear(); err != nil {
		saveError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(carts))
}
