package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"Storefront/cart"
	"Storefront/clock"
	"Storefront/config"
	"Storefront/identity"
	"Storefront/logger"
	"Storefront/notify"
	"Storefront/orders"
	"Storefront/products"
	"Storefront/routers"
)

func main() {
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.InitLogger(cfg.Log)

	kv, closeStore, err := config.SetupStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("Store connection failed")
	}
	defer closeStore()

	ids, err := identity.New(kv, log, identity.DefaultAdmin{
		Name:     cfg.Bootstrap.AdminName,
		Email:    cfg.Bootstrap.AdminEmail,
		Password: cfg.Bootstrap.AdminPassword,
		Phone:    cfg.Bootstrap.AdminPhone,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Identity store bootstrap failed")
	}

	carts := cart.New(kv, ids, log)
	defer carts.Close()

	clk := clock.Real{}
	book, err := orders.NewBook(kv, ids, carts, clk, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Order book bootstrap failed")
	}

	router := routers.SetupRouters(routers.Stores{
		Identity: ids,
		Cart:     carts,
		Orders:   book,
		Products: products.NewCatalog(kv, log),
		Toasts:   notify.NewChannel(clk, cfg.Notify.Lifetime),
	}, cfg.Server)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
