package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/training-service/internal/activity"
	httptransport "github.com/spec-kit/training-service/internal/api/http"
	"github.com/spec-kit/training-service/internal/api/http/handlers"
	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/config"
	"github.com/spec-kit/training-service/internal/events"
	"github.com/spec-kit/training-service/internal/mailer"
	"github.com/spec-kit/training-service/internal/observability"
	"github.com/spec-kit/training-service/internal/persistence"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/internal/service"
	"github.com/spec-kit/training-service/internal/worker"
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

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	topicRepo := repository.NewExternalTopicRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	brandingRepo := repository.NewBrandingRepository(pool)
	inviteRepo := repository.NewInviteRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	mail := mailer.New(cfg.Mail, logger)
	denylist := auth.NewDenylist(redis.Client)
	unreadCache := activity.NewUnreadCache(redis.Client)
	activityLogger := activity.NewLogger(accountRepo, activityRepo, unreadCache, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo: accountRepo,
		Denylist:    denylist,
		Dispatcher:  dispatcher,
	})
	userService := service.NewUserService(*cfg, service.UserDependencies{
		AccountRepo:    accountRepo,
		DepartmentRepo: departmentRepo,
		Activities:     activityLogger,
	})
	sessionService := service.NewSessionService(service.SessionDependencies{
		SessionRepo: sessionRepo,
		AccountRepo: accountRepo,
		Dispatcher:  dispatcher,
	})
	departmentService := service.NewDepartmentService(departmentRepo, dispatcher)
	companyService := service.NewCompanyService(companyRepo, activityLogger)
	topicService := service.NewTopicService(topicRepo, dispatcher)
	activityService := service.NewActivityService(activityRepo, activityLogger)
	brandingService := service.NewBrandingService(brandingRepo)
	inviteService := service.NewInviteService(*cfg, service.InviteDependencies{
		InviteRepo:  inviteRepo,
		AccountRepo: accountRepo,
		CompanyRepo: companyRepo,
		Mailer:      mail,
		Activities:  activityLogger,
	})
	reportService := service.NewReportService(sessionRepo, accountRepo, dispatcher)

	recorder := service.NewActivityRecorder(accountRepo, activityLogger)
	worker.NewActivityWorker(recorder, dispatcher, logger).Start()

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), denylist, accountRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Sessions:       handlers.NewSessionsHandler(sessionService),
		Departments:    handlers.NewDepartmentsHandler(departmentService),
		Companies:      handlers.NewCompaniesHandler(companyService),
		Topics:         handlers.NewTopicsHandler(topicService),
		Activities:     handlers.NewActivitiesHandler(activityService),
		Branding:       handlers.NewBrandingHandler(brandingService, cfg.Uploads),
		Invites:        handlers.NewInvitesHandler(inviteService),
		Info:           handlers.NewInfoHandler(cfg.Mail, mail),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
