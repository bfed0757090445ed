package middleware

import (
	"Storefront/models"

	"github.com/gin-gonic/gin"
)

const accountKey = "Account"

type Session interface {
	CurrentAccount() (models.Account, bool)
}

// AuthMiddleware exposes the logged-in account to later handlers.
func AuthMiddleware(session Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if account, ok := session.CurrentAccount(); ok {
			c.Set(accountKey, account)
		}
		c.Next()
	}
}

// CurrentAccount returns the account stored by AuthMiddleware.
func CurrentAccount(c *gin.Context) (models.Account, bool) {
	v, ok := c.Get(accountKey)
	if !ok {
		return models.Account{}, false
	}
	account, ok := v.(models.Account)
	return account, ok
}
