package routers

import (
	"net/http"
	"sync"

	"Storefront/cart"
	"Storefront/config"
	"Storefront/handlers"
	"Storefront/identity"
	"Storefront/middleware"
	"Storefront/notify"
	"Storefront/orders"
	"Storefront/products"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type Stores struct {
	Identity *identity.Store
	Cart     *cart.Store
	Orders   *orders.Book
	Products *products.Catalog
	Toasts   *notify.Channel
}

func corsConfig(server config.ServerConfig) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Authorization"},
		AllowCredentials: true,
	}
	for _, origin := range server.AllowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	cfg.AllowOrigins = server.AllowedOrigins
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}

func SetupRouters(stores Stores, server config.ServerConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), cors.New(corsConfig(server)))

	loginLimit := rate.Limit(server.LoginRate)
	if server.LoginRate <= 0 {
		loginLimit = rate.Inf
	}
	burst := server.LoginBurst
	if burst < 1 {
		burst = 1
	}
	loginLimiter := rate.NewLimiter(loginLimit, burst)

	ids, carts, book, catalog, toasts := stores.Identity, stores.Cart, stores.Orders, stores.Products, stores.Toasts

	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	api := router.Group("/api/v1")
	api.Use(middleware.Serialize(&sync.Mutex{}), middleware.AuthMiddleware(ids))
	{
		api.POST("/signup", func(c *gin.Context) {
			handlers.SignUpHandler(c, ids, toasts)
		})
		api.POST("/login", middleware.RateLimit(loginLimiter), func(c *gin.Context) {
			handlers.LoginHandler(c, ids, toasts)
		})
		api.POST("/logout", func(c *gin.Context) {
			handlers.LogOutHandler(c, ids)
		})
		api.GET("/session", func(c *gin.Context) {
			handlers.SessionHandler(c, ids)
		})
		// cart routes act on whichever cart is active
		api.GET("/cart", func(c *gin.Context) {
			handlers.GetCartHandler(c, carts)
		})
		api.POST("/cart/items", func(c *gin.Context) {
			handlers.AddToCartHandler(c, carts)
		})
		api.PATCH("/cart/items/:productID", func(c *gin.Context) {
			handlers.UpdateCartItemQuantityHandler(c, carts)
		})
		api.DELETE("/cart/items/:productID", func(c *gin.Context) {
			handlers.DeleteCartItemHandler(c, carts)
		})
		api.DELETE("/cart", func(c *gin.Context) {
			handlers.ClearCartHandler(c, carts)
		})
		api.GET("/products", func(c *gin.Context) {
			handlers.GetProductListHandler(c, catalog)
		})
		api.GET("/products/categories", func(c *gin.Context) {
			handlers.GetProductCategoriesHandler(c, catalog)
		})
		api.GET("/products/:productID", func(c *gin.Context) {
			handlers.GetProductDataHandler(c, catalog)
		})
		api.GET("/notifications", func(c *gin.Context) {
			handlers.GetNotificationsHandler(c, toasts)
		})

		loginRequired := api.Group("/user")
		loginRequired.Use(middleware.CheckLoginMiddleware())
		{
			loginRequired.GET("/profile", handlers.GetUserProfileHandler)
			loginRequired.PATCH("/profile", func(c *gin.Context) {
				handlers.UpdateUserProfileHandler(c, ids, toasts)
			})
			loginRequired.DELETE("/profile", func(c *gin.Context) {
				handlers.DeleteUserHandler(c, ids, toasts)
			})
			loginRequired.POST("/checkout", func(c *gin.Context) {
				handlers.CheckoutHandler(c, book, toasts)
			})
		}

		adminRequired := api.Group("/admin")
		adminRequired.Use(middleware.CheckAdminPermissionMiddleware())
		{
			adminRequired.GET("/accounts", func(c *gin.Context) {
				handlers.GetAccountListHandler(c, ids)
			})
			adminRequired.GET("/accounts/top", func(c *gin.Context) {
				handlers.GetTopAccountsHandler(c, ids)
			})
			adminRequired.POST("/accounts/:email/accept", func(c *gin.Context) {
				handlers.AccountActionHandler(c, ids.AcceptAccount, toasts)
			})
			adminRequired.POST("/accounts/:email/block", func(c *gin.Context) {
				handlers.AccountActionHandler(c, ids.BlockAccount, toasts)
			})
			adminRequired.POST("/accounts/:email/promote", func(c *gin.Context) {
				handlers.AccountActionHandler(c, ids.PromoteToAdmin, toasts)
			})
			adminRequired.DELETE("/accounts/:email", func(c *gin.Context) {
				handlers.AccountActionHandler(c, ids.RemoveAccount, toasts)
			})
			adminRequired.GET("/orders", func(c *gin.Context) {
				handlers.GetOrderListHandler(c, book)
			})
			adminRequired.PATCH("/orders/:orderID", func(c *gin.Context) {
				handlers.UpdateOrderStatusHandler(c, book, toasts)
			})
			adminRequired.POST("/products", func(c *gin.Context) {
				handlers.CreateProductHandler(c, catalog, toasts)
			})
			adminRequired.POST("/products/:productID/availability", func(c *gin.Context) {
				handlers.ToggleProductAvailabilityHandler(c, catalog, toasts)
			})
			adminRequired.DELETE("/products/:productID", func(c *gin.Context) {
				handlers.DeleteProductHandler(c, catalog, toasts)
			})
		}
	}

	return router
}
