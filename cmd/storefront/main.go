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

	"github.com/redis/go-redis/v9"

	"github.com/globaloptima/storefront/internal/cart"
	"github.com/globaloptima/storefront/internal/catalog"
	"github.com/globaloptima/storefront/internal/filters"
	h "github.com/globaloptima/storefront/internal/http"
	"github.com/globaloptima/storefront/internal/orders"
	"github.com/globaloptima/storefront/internal/store"
	"github.com/globaloptima/storefront/internal/theme"
)

type Config struct {
	HTTPPort           string
	RedisAddr          string
	StateDir           string
	CatalogDBPath      string
	MigrationsPath     string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		StateDir:           getEnv("STATE_DIR", "./data/state"),
		CatalogDBPath:      getEnv("CATALOG_DB_PATH", "./data/catalog.db"),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "./migrations"),
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// newStore prefers Redis when an address is configured and falls back to
// files under StateDir otherwise.
func newStore(cfg *Config) (store.Store, error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		log.Printf("using redis state store at %s", cfg.RedisAddr)
		return store.NewRedisStore(client), nil
	}
	log.Printf("using file state store at %s", cfg.StateDir)
	return store.NewFileStore(cfg.StateDir)
}

func main() {
	cfg := loadConfig()

	repo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	st, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to set up state store: %v", err)
	}

	ctx := context.Background()
	engine := cart.NewEngine(ctx, st)
	themes := theme.NewManager(st)
	submitter := orders.NewSimulatedSubmitter(orders.RandomOutcome{})

	controller := filters.NewController(repo.ListProducts)

	productHandler := h.NewProductHandler(repo, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(engine, repo, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(engine, submitter, cfg.RequestTimeout)
	browseHandler := h.NewBrowseHandler(controller)
	themeHandler := h.NewThemeHandler(themes, cfg.RequestTimeout)

	router := h.NewRouter(h.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	}, productHandler, cartHandler, checkoutHandler, browseHandler, themeHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
