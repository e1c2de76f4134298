// Package portal собирает и запускает основное HTTP-приложение портала.
package portal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/arinakim/lingvo-portal/internal/cache"
	"github.com/arinakim/lingvo-portal/internal/config"
	"github.com/arinakim/lingvo-portal/internal/filestore"
	"github.com/arinakim/lingvo-portal/internal/lib/jwt"
	"github.com/arinakim/lingvo-portal/internal/lib/rabbitmq"
	"github.com/arinakim/lingvo-portal/internal/migrations"
	auditservice "github.com/arinakim/lingvo-portal/internal/services/audit"
	authservice "github.com/arinakim/lingvo-portal/internal/services/auth"
	cartservice "github.com/arinakim/lingvo-portal/internal/services/cart"
	catalogservice "github.com/arinakim/lingvo-portal/internal/services/catalog"
	subservice "github.com/arinakim/lingvo-portal/internal/services/subscription"
	"github.com/arinakim/lingvo-portal/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	receipts, err := filestore.NewLocalStore(cfg.ReceiptStoragePath)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.AddressRabbitMQ, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, err
	}
	queues := rabbitmq.GetNotificationQueues(cfg.NotificationQueue)
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(ch)

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	catalogService := catalogservice.NewCatalogService(db, cacheRedis, logger)
	cartService := cartservice.NewCartService(db, db, catalogService, logger)
	subscriptionService := subservice.NewSubscriptionService(
		db, db, catalogService, db, receipts, publisher, cacheRedis, logger)
	auditService := auditservice.NewAuditService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db,
		authService, cartService, subscriptionService, catalogService, auditService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   conn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.amqp.Close()
		a.db.DB.Close()
		return err
	}
}
