package handlers

import (
	"net/http"
	"strconv"

	"Storefront/identity"
	"Storefront/models"
	"Storefront/notify"
	"Storefront/orders"

	"github.com/gin-gonic/gin"
)

func GetAccountListHandler(c *gin.Context, ids *identity.Store) {
	c.JSON(http.StatusOK, gin.H{
		"accounts": accountViews(ids.ListAccounts()),
	})
}

func GetTopAccountsHandler(c *gin.Context, ids *identity.Store) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 {
		limit = 5
	}
	c.JSON(http.StatusOK, gin.H{
		"accounts": accountViews(ids.TopAccounts(limit)),
	})
}

// AccountActionHandler runs one of the admin mutators on the :email path parameter.
func AccountActionHandler(c *gin.Context, action func(email string) (string, error), toasts *notify.Channel) {
	message, err := action(c.Param("email"))
	if err != nil {
		respondError(c, toasts, "account update failed", err)
		return
	}

	toasts.Success(message)
	c.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

type orderListQuery struct {
	Search    string             `form:"q"`
	Status    models.OrderStatus `form:"status" binding:"omitempty,oneof=Pending Completed Cancelled"`
	MinAmount float64            `form:"minAmount" binding:"gte=0"`
	Page      int                `form:"page" binding:"gte=0"`
	Limit     int                `form:"limit" binding:"gte=0"`
}

// GetOrderListHandler serves one page of orders filtered by search text,
// status and minimum amount.
func GetOrderListHandler(c *gin.Context, book *orders.Book) {
	var q orderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page := book.Filter(orders.Query{
		Search:    q.Search,
		Status:    q.Status,
		MinAmount: q.MinAmount,
		Page:      q.Page,
		PageSize:  q.Limit,
	})
	c.JSON(http.StatusOK, gin.H{
		"orders":     page.Items,
		"page":       page.Page,
		"totalPages": page.TotalPages,
		"totalCount": page.Total,
	})
}

func UpdateOrderStatusHandler(c *gin.Context, book *orders.Book, toasts *notify.Channel) {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := book.UpdateStatus(c.Param("orderID"), req.Status)
	if err != nil {
		respondError(c, toasts, "order update failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "order updated",
		"order":   order,
	})
}
