package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/villagecraft/storefront/internal/cache"
	"github.com/villagecraft/storefront/internal/config"
	"github.com/villagecraft/storefront/internal/es"
	"github.com/villagecraft/storefront/internal/events"
	"github.com/villagecraft/storefront/internal/httpserver"
	"github.com/villagecraft/storefront/internal/logging"
	"github.com/villagecraft/storefront/internal/repo"
	"github.com/villagecraft/storefront/internal/seed"
	"github.com/villagecraft/storefront/internal/service"
	loggingmw "github.com/villagecraft/storefront/pkg/middleware/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := repo.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connect failed", "error", err)
		os.Exit(1)
	}
	if err := repo.EnsureIndexes(ctx, db); err != nil {
		logger.Error("ensure indexes failed", "error", err)
		os.Exit(1)
	}

	carts := repo.NewCartRepository(db)
	users := repo.NewUserRepository(db)
	products := repo.NewProductRepository(db)
	sessions := repo.NewSessionRepository(db)

	var cartCache cache.CartCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("redis ping failed", "error", err)
			os.Exit(1)
		}
		cartCache = cache.NewRedisCache(rdb)
	}

	var producer *events.Producer
	if cfg.KafkaAddress != "" {
		producer = events.NewProducer(cfg.KafkaAddress)
	}

	catalogSvc := &service.CatalogService{Products: products}
	if err := catalogSvc.SeedIfEmpty(ctx, seed.Products()); err != nil {
		logger.Error("catalog seed failed", "error", err)
		os.Exit(1)
	}

	authSvc := &service.AuthService{
		Users:      users,
		Sessions:   sessions,
		JWTSecret:  []byte(cfg.JWTSecret),
		SessionTTL: cfg.SessionTTL,
		Events:     producer,
	}
	cartSvc := &service.CartService{
		Repo:     carts,
		Products: products,
		Cache:    cartCache,
		Events:   producer,
	}

	deps := httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		Sessions:       &httpserver.SessionMiddleware{Auth: authSvc},
	}

	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			logger.Error("elasticsearch connect failed", "error", err)
			os.Exit(1)
		}
		deps.SearchHandler = &httpserver.SearchHTTP{ES: esClient, Index: "products"}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		logger.Error("mongo disconnect error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
