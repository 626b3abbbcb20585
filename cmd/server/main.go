package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pharmacare/storefront/internal/cart"
	"github.com/pharmacare/storefront/internal/checkout"
	"github.com/pharmacare/storefront/internal/config"
	"github.com/pharmacare/storefront/internal/es"
	"github.com/pharmacare/storefront/internal/handlers"
	"github.com/pharmacare/storefront/internal/hash"
	"github.com/pharmacare/storefront/internal/logging"
	"github.com/pharmacare/storefront/internal/mykafka"
	"github.com/pharmacare/storefront/internal/notify"
	"github.com/pharmacare/storefront/internal/orderid"
	"github.com/pharmacare/storefront/internal/repository"
	"github.com/pharmacare/storefront/internal/seed"
	"github.com/pharmacare/storefront/internal/service/token"
	"github.com/pharmacare/storefront/internal/transport/httpserver"
)

const productIndex = "products"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	adminHash, err := hash.HashPassword(configuration.ADMIN_PASSWORD)
	if err != nil {
		log.Fatalf("admin password hash error: %v", err)
	}

	// Kafka and Elasticsearch are optional; a storefront without either still
	// serves customers, it just skips events and search.
	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatalf("kafka producer error: %v", err)
		}
	}

	var esClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		esClient, err = es.NewClient(configuration)
		if err != nil {
			logger.Error("elasticsearch unavailable, search disabled", "error", err)
			esClient = nil
		}
	}

	toasts := notify.NewHub()
	repo := repository.NewGormRepo(db)
	carts := cart.NewStore(toasts)
	checkouts := checkout.NewStore(carts, repo, orderid.New(), toasts)
	tokenService := &token.Service{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	deps := httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{
			DB:                db,
			JWTSecret:         jwtSecret,
			RefreshSecret:     refreshSecret,
			Producer:          prod,
			Toasts:            toasts,
			AdminEmail:        configuration.ADMIN_EMAIL,
			AdminPasswordHash: adminHash,
		},
		AccountHandler: &handlers.AccountHandler{DB: db, Toasts: toasts},
		ProductHandler: &handlers.ProductHandler{
			Catalog:  repo,
			Producer: prod,
			Toasts:   toasts,
			ES:       esClient,
			Index:    productIndex,
		},
		CategoryHandler: &handlers.CategoryHandler{Catalog: repo, Toasts: toasts},
		StoreHandler:    &handlers.StoreHandler{Catalog: repo, Toasts: toasts},
		PageHandler:     &handlers.PageHandler{Catalog: repo, Toasts: toasts},
		CartHandler: &handlers.CartHandler{
			DB:        db,
			Carts:     carts,
			Checkouts: checkouts,
			Catalog:   repo,
			Settings:  repo,
			Producer:  prod,
		},
		OrderHandler:    &handlers.OrderHandler{Orders: repo, Producer: prod, Toasts: toasts},
		SettingsHandler: &handlers.SettingsHandler{Settings: repo, Toasts: toasts},
		SearchHandler:   &handlers.SearchHandler{ES: esClient, Index: productIndex},
		ToastHandler:    &handlers.ToastHandler{Toasts: toasts},
		TokenService:    tokenService,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
