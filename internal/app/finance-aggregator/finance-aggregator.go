package financeaggregator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/finance-aggregator/internal/assistant"
	"github.com/magabrotheeeer/finance-aggregator/internal/cache"
	"github.com/magabrotheeeer/finance-aggregator/internal/config"
	"github.com/magabrotheeeer/finance-aggregator/internal/lib/jwt"
	"github.com/magabrotheeeer/finance-aggregator/internal/migrations"
	authservice "github.com/magabrotheeeer/finance-aggregator/internal/services/auth"
	budgetservice "github.com/magabrotheeeer/finance-aggregator/internal/services/budget"
	chatservice "github.com/magabrotheeeer/finance-aggregator/internal/services/chat"
	expenseservice "github.com/magabrotheeeer/finance-aggregator/internal/services/expense"
	reportservice "github.com/magabrotheeeer/finance-aggregator/internal/services/report"
	subservice "github.com/magabrotheeeer/finance-aggregator/internal/services/subscription"
	"github.com/magabrotheeeer/finance-aggregator/internal/storage/repository"
)

// App представляет основное HTTP-приложение.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создает основное приложение: хранилище, кеш, сервисы и HTTP-сервер.
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

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	expenseService := expenseservice.NewExpenseService(db, logger)
	subscriptionService := subservice.NewSubscriptionService(db, cacheRedis, logger)
	budgetService := budgetservice.NewBudgetService(db, logger)
	reportService := reportservice.NewReportService(db, logger)
	chatService := chatservice.NewChatService(db, assistant.NewClient(cfg.Assistant), cfg.ChatWeeklyLimit, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger,
		authService,
		expenseService,
		subscriptionService,
		budgetService,
		reportService,
		chatService,
		db.DB,
	)

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
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
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
		a.db.DB.Close()
		return err
	}
}
