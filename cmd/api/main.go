package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/hubex/account-service/internal/api/http"
	"github.com/hubex/account-service/internal/api/http/handlers"
	"github.com/hubex/account-service/internal/auth"
	"github.com/hubex/account-service/internal/cache"
	"github.com/hubex/account-service/internal/config"
	"github.com/hubex/account-service/internal/events"
	"github.com/hubex/account-service/internal/mail"
	"github.com/hubex/account-service/internal/observability"
	"github.com/hubex/account-service/internal/persistence"
	"github.com/hubex/account-service/internal/repository"
	"github.com/hubex/account-service/internal/service"
	"github.com/hubex/account-service/internal/worker"
)

const accountCacheTTL = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := cache.NewCachedAccountRepository(
		repository.NewAccountRepository(pool), redis.Client, accountCacheTTL, logger)
	roleRepo := repository.NewRoleRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	if err := persistence.SeedAuthData(ctx, *cfg, roleRepo, accountRepo, logger); err != nil {
		logger.Fatal("failed to seed auth data", zap.Error(err))
	}

	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret)
	dispatcher := events.NewInMemoryDispatcher(logger)
	sender := mail.NewSender(cfg.Mail, logger)

	accountService := service.NewAccountService(*cfg, service.AccountDependencies{
		AccountRepo: accountRepo,
		RoleRepo:    roleRepo,
		Codec:       codec,
		Dispatcher:  dispatcher,
	})
	verificationService := service.NewVerificationService(*cfg, accountRepo, codec, dispatcher)
	resetService := service.NewPasswordResetService(*cfg, service.PasswordResetDependencies{
		AccountRepo: accountRepo,
		ResetRepo:   resetRepo,
		Codec:       codec,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	notificationService := service.NewNotificationService(dispatcher, sender, logger)
	worker.StartMailWorker(notificationService)

	authMiddleware := auth.NewMiddleware(codec, accountRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Credentials:    handlers.NewCredentialsHandler(verificationService, resetService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	dispatcher.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
