package handlers

import (
	"net/http"

	"Storefront/notify"

	"github.com/gin-gonic/gin"
)

func GetNotificationsHandler(c *gin.Context, toasts *notify.Channel) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": toasts.Messages(),
	})
}
