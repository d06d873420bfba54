package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpserver "tipjar/internal/app/http-server"
	"tipjar/internal/broker/rabbitmq"
	"tipjar/internal/config"
	"tipjar/internal/handlers"
	"tipjar/internal/lib/fee"
	"tipjar/internal/lib/logger/sl"
	"tipjar/internal/middlewares"
	"tipjar/internal/repository/memory"
	"tipjar/internal/repository/postgres"
	"tipjar/internal/repository/redis"
	"tipjar/internal/routes"
	"tipjar/internal/services"
)

const confirmationRoutingKey = "tip.transfer.confirmed"

type App struct {
	HTTPServer *httpserver.Server

	log      *slog.Logger
	consumer *rabbitmq.Consumer
	closers  []func() error
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	a := &App{log: log}

	policy, err := fee.NewPolicy(cfg.Fee.Rate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		mem     *memory.Storage
		pg      *postgres.Storage
		redisDB *redis.Storage
	)

	if cfg.Storage.Backend == config.BackendMemory || cfg.Storage.NotificationBackend == config.BackendMemory {
		mem = memory.New(cfg.Redis.NotificationRetention)
	}

	if cfg.UsesPostgres() {
		pg, err = postgres.NewPostgres(ctx, cfg.Storage.PostgresConn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.closers = append(a.closers, pg.Close)

		pingCtx, cancel := context.WithTimeout(ctx, cfg.Server.StoreTimeout)
		err = pg.Ping(pingCtx)
		cancel()
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if cfg.UsesRedis() {
		redisDB, err = redis.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix,
			cfg.Redis.NotificationRetention)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.closers = append(a.closers, redisDB.Close)
	}

	var (
		transactionRepo services.TransactionRepository = mem
		userRepo        services.UserRepository        = mem
	)
	if cfg.Storage.Backend == config.BackendPostgres {
		transactionRepo = pg
		userRepo = pg
	}

	var notificationRepo services.NotificationRepository
	switch cfg.Storage.NotificationBackend {
	case config.BackendPostgres:
		notificationRepo = pg
	case config.BackendRedis:
		notificationRepo = redisDB
	default:
		notificationRepo = mem
	}

	log.Info("storage selected",
		slog.String("transactions", cfg.Storage.Backend),
		slog.String("notifications", cfg.Storage.NotificationBackend),
		slog.String("fee_rate", policy.Rate().String()),
	)

	notifier := services.NewNotifier(log, notificationRepo, cfg.Server.StoreTimeout)
	transactionService := services.NewTransactionService(log, transactionRepo, policy, notifier,
		cfg.Fee.RecipientAddress, cfg.Server.StoreTimeout)
	notificationService := services.NewNotificationService(log, notificationRepo, cfg.Server.StoreTimeout)
	userService := services.NewUserService(log, userRepo, transactionRepo, cfg.Server.StoreTimeout)

	transactionHandler := handlers.NewTransactionHandler(log, transactionService, userService)
	notificationHandler := handlers.NewNotificationHandler(log, notificationService)
	userHandler := handlers.NewUserHandler(log, userService)

	var tipLimiter *middlewares.RateLimitMiddleware
	if cfg.Redis.TipRateLimitPerMinute > 0 {
		limiter := redis.NewRateLimiter(redisDB.Client(), cfg.Redis.Prefix)
		tipLimiter = middlewares.NewRateLimitMiddleware(log, limiter, "tip_create", cfg.Redis.TipRateLimitPerMinute, time.Minute)
	}

	r := routes.InitRoutes(transactionHandler, notificationHandler, userHandler, tipLimiter, cfg.CORSAllowedOrigins)

	a.HTTPServer = httpserver.NewServer(log, cfg.Server.Address, r, cfg.Server.Timeout)

	if cfg.Broker.RabbitMQURL != "" {
		consumer, err := rabbitmq.NewConsumer(log, cfg.Broker.RabbitMQURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.consumer = consumer

		confirmations := services.NewConfirmationConsumer(log, transactionService, cfg.Server.StoreTimeout)
		err = consumer.ConsumeWithBindings(cfg.Broker.Exchange, cfg.Broker.ConfirmationQueue, map[string]rabbitmq.Handler{
			confirmationRoutingKey: confirmations.HandleMessage,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		log.Info("RABBITMQ_URL is empty, confirmations are accepted over HTTP only")
	}

	return a, nil
}

// Close releases the broker connection and the stores. Safe to call more than once.
func (a *App) Close() {
	if a.consumer != nil {
		a.consumer.Close()
		a.consumer = nil
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Error("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}

// Migrate applies the embedded Postgres schema.
func Migrate(ctx context.Context, log *slog.Logger, cfg *config.Config) error {
	const op = "app.Migrate"

	if cfg.Storage.PostgresConn == "" {
		return fmt.Errorf("%s: POSTGRES_CONN is required", op)
	}

	pg, err := postgres.NewPostgres(ctx, cfg.Storage.PostgresConn)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("migrations applied")

	return nil
}
