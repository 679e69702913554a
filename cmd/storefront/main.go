package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/cart"
	"github.com/mvoronov/storefront/internal/config"
	"github.com/mvoronov/storefront/internal/localstore"
	"github.com/mvoronov/storefront/internal/logging"
	"github.com/mvoronov/storefront/internal/session"
	"github.com/mvoronov/storefront/internal/views"
	"github.com/mvoronov/storefront/internal/webapp"
)

func main() {
	configuration, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LogLevel)

	persist, err := localstore.Open(configuration.StatePath)
	if err != nil {
		log.Fatalf("open local store: %v", err)
	}

	client := api.NewClient(configuration.APIBaseURL)

	sessionStore := session.NewStore(client, persist, logger)
	cartStore := cart.NewStore(client, sessionStore, logger)

	// One verify-then-hydrate round trip; resolving it triggers the
	// initial cart fetch through the session listener.
	sessionStore.Restore(context.Background())

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), webapp.RequestLogger(logger))

	deps := webapp.Deps{
		Client:          client,
		Session:         sessionStore,
		Cart:            cartStore,
		Log:             logger,
		Catalog:         views.NewCatalog(client),
		ProductDetail:   views.NewProductDetail(client),
		Orders:          views.NewOrders(client, sessionStore),
		AdminCategories: views.NewAdminCategories(client, sessionStore),
		AdminProducts:   views.NewAdminProducts(client, sessionStore),
		AdminOrders:     views.NewAdminOrders(client, sessionStore),
		Reports:         views.NewReports(client, sessionStore),
		APIBaseURL:      configuration.APIBaseURL,
	}
	if err := webapp.Register(e, &deps); err != nil {
		log.Fatalf("register routes: %v", err)
	}

	srv := &http.Server{
		Addr:         configuration.ListenAddr,
		Handler:      e,
		ReadTimeout:  configuration.ReadTimeout,
		WriteTimeout: configuration.WriteTimeout,
		IdleTimeout:  configuration.IdleTimeout,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("storefront listening", "addr", configuration.ListenAddr, "api", configuration.APIBaseURL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), configuration.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := persist.Close(); err != nil {
		logger.Error("local store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
