package handlers

import (
	"fmt"
	"net/http"

	"Storefront/models"
	"Storefront/notify"
	"Storefront/products"

	"github.com/gin-gonic/gin"
)

type productListQuery struct {
	Search   string `form:"q"`
	Category string `form:"category"`
	Sort     string `form:"sort" binding:"omitempty,oneof=name priceAsc priceDesc rating stock"`
	Page     int    `form:"page" binding:"gte=0"`
	Limit    int    `form:"limit" binding:"gte=0"`
}

// GetProductListHandler serves one filtered, sorted page of the catalog.
func GetProductListHandler(c *gin.Context, catalog *products.Catalog) {
	var q productListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page := catalog.List(products.Query{
		Search:   q.Search,
		Category: q.Category,
		Sort:     q.Sort,
		Page:     q.Page,
		PageSize: q.Limit,
	})
	c.JSON(http.StatusOK, gin.H{
		"products":   page.Items,
		"page":       page.Page,
		"totalPages": page.TotalPages,
		"totalCount": page.Total,
	})
}

func GetProductCategoriesHandler(c *gin.Context, catalog *products.Catalog) {
	c.JSON(http.StatusOK, gin.H{
		"categories": catalog.Categories(),
	})
}

func GetProductDataHandler(c *gin.Context, catalog *products.Catalog) {
	product, err := catalog.Get(models.ProductID(c.Param("productID")))
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"message": "product lookup failed",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

func CreateProductHandler(c *gin.Context, catalog *products.Catalog, toasts *notify.Channel) {
	var draft products.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		bindError(c, err)
		return
	}

	product, err := catalog.Create(draft)
	if err != nil {
		respondError(c, toasts, "product not added", err)
		return
	}

	toasts.Success("Product added.")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added.",
		"product": product,
	})
}

func ToggleProductAvailabilityHandler(c *gin.Context, catalog *products.Catalog, toasts *notify.Channel) {
	product, err := catalog.ToggleAvailability(models.ProductID(c.Param("productID")))
	if err != nil {
		respondError(c, toasts, "product not updated", err)
		return
	}

	state := "unavailable"
	if product.IsAvailable() {
		state = "available"
	}
	message := fmt.Sprintf("%s is now %s.", product.Name, state)
	toasts.Success(message)
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"product": product,
	})
}

func DeleteProductHandler(c *gin.Context, catalog *products.Catalog, toasts *notify.Channel) {
	if err := catalog.Delete(models.ProductID(c.Param("productID"))); err != nil {
		respondError(c, toasts, "product not deleted", err)
		return
	}

	toasts.Success("Product deleted.")
	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted.",
	})
}
