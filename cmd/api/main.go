package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/casaflow/community-service/internal/api/http"
	"github.com/casaflow/community-service/internal/api/http/handlers"
	"github.com/casaflow/community-service/internal/auth"
	"github.com/casaflow/community-service/internal/config"
	"github.com/casaflow/community-service/internal/events"
	"github.com/casaflow/community-service/internal/observability"
	"github.com/casaflow/community-service/internal/oracle"
	"github.com/casaflow/community-service/internal/persistence"
	"github.com/casaflow/community-service/internal/repository"
	"github.com/casaflow/community-service/internal/service"
	"github.com/casaflow/community-service/internal/worker"
)

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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	residentRepo := repository.NewResidentRepository(pool)
	technicianRepo := repository.NewTechnicianRepository(pool)
	workItemRepo := repository.NewWorkItemRepository(pool)

	authService := service.NewAuthService(cfg.Auth, residentRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), residentRepo)
	sessionStore := auth.NewSessionStore(redis.Client, cfg.Session.TTL())

	oracleClient := oracle.NewHTTPClient(cfg.Oracle, logger)
	classifier := service.NewClassifier(oracleClient, logger, metrics)
	matcher := service.NewTechnicianMatcher(technicianRepo, logger)
	factory := service.NewRequestFactory(workItemRepo)

	intakeService := service.NewIntakeService(service.IntakeDependencies{
		ResidentRepo: residentRepo,
		Sessions:     sessionStore,
		Classifier:   classifier,
		Matcher:      matcher,
		Factory:      factory,
		Dispatcher:   dispatcher,
		Logger:       logger,
		Metrics:      metrics,
	})
	workItemService := service.NewWorkItemService(workItemRepo, technicianRepo, dispatcher)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Residents:      handlers.NewResidentsHandler(authService, sessionStore, cfg.Session.TTL()),
		Requests:       handlers.NewRequestsHandler(intakeService),
		WorkItems:      handlers.NewWorkItemsHandler(workItemService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	rejects, oracleCount, fallbackCount := metrics.PipelineSnapshot()
	logger.Info("pipeline totals",
		zap.Int64("validation_rejects", rejects),
		zap.Int64("oracle_classifications", oracleCount),
		zap.Int64("fallback_classifications", fallbackCount))

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
