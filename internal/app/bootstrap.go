package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"talent-track/internal/config"
	"talent-track/internal/database/migration"
	"talent-track/internal/database/seeder"
	"talent-track/internal/delivery/http/handler"
	"talent-track/internal/delivery/http/middleware"
	"talent-track/internal/delivery/http/routes"
	v1 "talent-track/internal/delivery/http/routes/v1"
	"talent-track/internal/pkg/jwt"
	"talent-track/internal/pkg/logger"
	"talent-track/internal/repository"
	"talent-track/internal/sheets"
	syncsvc "talent-track/internal/sync"
	"talent-track/internal/usecase"
	"talent-track/internal/workbook"
	"talent-track/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container

	hub       *ws.Hub
	scheduler *sheets.Scheduler
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	log, err := logger.New(cfg.App.AppName, cfg.App.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	if cfg.App.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		r := migration.Runner{Dir: cfg.App.MigrationsDir, Log: log}
		err := r.Run(ctx, c.DB.SQLDB())
		cancel()
		if err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
	}

	if cfg.App.SeedDefaults {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := seeder.RunAll(ctx, c.DB, log, seeder.PreferenceSeeder{})
		cancel()
		if err != nil {
			_ = c.Close()
			return nil, nil, err
		}
	}

	candidateRepo := repository.NewPostgresCandidateRepository(c.DB)
	openingRepo := repository.NewPostgresOpeningRepository(c.DB)
	preferenceRepo := repository.NewPostgresPreferenceRepository(c.DB)
	overviewRepo := repository.NewPostgresOverviewRepository(c.DB)

	hub := ws.NewHub(log)
	notifier := ws.NewNotifier(hub)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authUC := usecase.NewAuthUsecase(c.Users, jwtSvc)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, openingRepo, preferenceRepo, c.Redis, notifier, log)
	openingUC := usecase.NewOpeningUsecase(openingRepo, preferenceRepo, c.Redis, notifier, log)
	preferenceUC := usecase.NewPreferenceUsecase(preferenceRepo, c.Redis, notifier, log)
	analyticsUC := usecase.NewAnalyticsUsecase(candidateRepo, openingRepo, preferenceRepo, overviewRepo, c.Redis, log, cfg.Redis.TTL)

	dataSvc := syncsvc.NewService(candidateRepo, openingRepo, preferenceRepo, c.Redis, notifier, log)
	workbookSvc := workbook.NewService(dataSvc, log)

	var (
		syncer    *sheets.Syncer
		scheduler *sheets.Scheduler
	)
	if cfg.Sheets.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		client, err := sheets.NewClient(ctx, cfg.Sheets, log)
		cancel()
		if err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("sheets client: %w", err)
		}
		syncer = sheets.NewSyncer(client, dataSvc, log)
		scheduler = sheets.NewScheduler(syncer, c.Redis, cfg.Sheets.SyncInterval, log)
	}

	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: 16 * 1024 * 1024,
	})

	f.Use(middleware.NewErrorMiddleware(log).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(log).Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Redis),
		ws.NewHandler(hub, log),
		v1.Deps{
			AuthMW:      middleware.NewAuthMiddleware(jwtSvc),
			Auth:        handler.NewAuthHandler(authUC),
			Candidates:  handler.NewCandidateHandler(candidateUC),
			Openings:    handler.NewOpeningHandler(openingUC),
			Preferences: handler.NewPreferenceHandler(preferenceUC),
			Metrics:     handler.NewMetricsHandler(analyticsUC),
			Sync:        handler.NewSyncHandler(syncer),
			Workbook:    handler.NewWorkbookHandler(workbookSvc),
		},
	)
	registry.Register(f)

	app := &App{Fiber: f, Container: c, hub: hub, scheduler: scheduler}

	cleanup := func() error {
		log.Info("shutting down")
		err := c.Close()
		_ = log.Sync()
		return err
	}
	return app, cleanup, nil
}

// Start launches the background loops: the websocket hub and, when Google
// Sheets sync is configured, the periodic import scheduler.
func (a *App) Start(ctx context.Context) {
	go a.hub.Run()
	if a.scheduler != nil {
		go a.scheduler.Run(ctx)
	}
}

func (a *App) Log() *zap.Logger {
	if a == nil || a.Container == nil {
		return zap.NewNop()
	}
	return a.Container.Log
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
