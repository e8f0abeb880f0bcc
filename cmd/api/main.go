package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/atelierhq/storefront-backend/api/routes"
	"github.com/atelierhq/storefront-backend/internal/cart"
	"github.com/atelierhq/storefront-backend/internal/catalog"
	"github.com/atelierhq/storefront-backend/internal/feedback"
	"github.com/atelierhq/storefront-backend/internal/identity"
	"github.com/atelierhq/storefront-backend/internal/orders"
	"github.com/atelierhq/storefront-backend/pkg/config"
	"github.com/atelierhq/storefront-backend/pkg/db"
	"github.com/atelierhq/storefront-backend/pkg/logger"
	"github.com/atelierhq/storefront-backend/pkg/metrics"
	"github.com/atelierhq/storefront-backend/pkg/migrate"
	"github.com/atelierhq/storefront-backend/pkg/redis"
	"github.com/atelierhq/storefront-backend/pkg/session"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	sessions, cleanup, err := buildSessionStore(cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create session store", err)
		os.Exit(1)
	}
	defer cleanup()

	conn := dbClient.DB()
	catalogRepo := catalog.NewRepository(conn)
	feedbackRepo := feedback.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)
	identityRepo := identity.NewRepository(conn)

	catalogService, err := catalog.NewService(catalogRepo, feedbackRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	identityService, err := identity.NewService(identityRepo, sessions, cfg.Password, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartRepo, catalogRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(dbClient, ordersRepo, cartRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	feedbackService, err := feedback.NewService(feedbackRepo, catalogRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create feedback service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"sessions": cfg.Session.Backend,
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, sessions, metrics.NewHTTP("api"),
			catalogService, identityService, cartService, ordersService, feedbackService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// buildSessionStore picks the backend from config. The memory store is the
// single-instance default; Redis makes logins survive restarts and scale-out.
func buildSessionStore(cfg *config.Config, logg *logger.Logger) (session.Store, func(), error) {
	opts := session.Options{TTL: cfg.Session.TTL}

	if strings.EqualFold(cfg.Session.Backend, "redis") {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			return nil, nil, err
		}
		store, err := session.NewRedisStore(redisClient, opts)
		if err != nil {
			redisClient.Close()
			return nil, nil, err
		}
		cleanup := func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}
		return store, cleanup, nil
	}

	return session.NewMemoryStore(opts), func() {}, nil
}
