package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/security"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/services"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/go-extras/cobraflags"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const portFlag = "port"

var serveFlags = map[string]cobraflags.Flag{
	portFlag: &cobraflags.StringFlag{
		Name:  portFlag,
		Value: "",
		Usage: "Listen port (overrides PORT)",
	},
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  serveCommand,
	}
	cobraflags.RegisterMap(cmd, rootFlags)
	cobraflags.RegisterMap(cmd, serveFlags)
	return cmd
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if port := serveFlags[portFlag].GetString(); port != "" {
		cfg.Port = port
	}

	ctx := cmd.Context()
	if err := database.Migrate(ctx, db); err != nil {
		return err
	}
	if err := runSeed(ctx, cfg, db); err != nil {
		return err
	}

	// PostgreSQL log handler (ERROR+ async batch)
	logRepo := repository.NewSystemLogRepository(db)
	dbLogHandler := logging.NewDBHandler(logRepo, 5*time.Second)
	level := slog.LevelInfo
	if rootFlags[logLevelFlag].GetString() == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout, level),
		dbLogHandler,
	)))
	defer dbLogHandler.Stop()

	cleanupDone := make(chan struct{})
	defer close(cleanupDone)
	logging.StartCleanup(logRepo, cfg.LogRetention, cleanupDone)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err.Error())
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app, err := newApp(cfg, db)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err.Error())
	}
	slog.Info("server stopped")
	return nil
}

func newApp(cfg *config.Config, db *gorm.DB) (*fiber.App, error) {
	logger := slog.Default()

	tokens, err := security.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTAccessExpiry)
	if err != nil {
		return nil, err
	}

	users := repository.NewUserRepository(db)
	steps := repository.NewStepRepository(db)
	languages := repository.NewLanguageRepository(db)

	authService := services.NewAuthService(services.AuthDependencies{
		Users:           users,
		Roles:           repository.NewRoleRepository(db),
		Hasher:          security.NewBcryptHasher(cfg.BcryptCost),
		Tokens:          tokens,
		Mailer:          mail.NewLogSender(cfg.AppBaseURL, cfg.PasswordResetTTL, logger),
		Logger:          logger,
		VerificationTTL: cfg.EmailVerificationTTL,
		ResetTTL:        cfg.PasswordResetTTL,
	})
	routineService := services.NewRoutineService(repository.NewRoutineRepository(db), logger)
	stepService := services.NewStepService(routineService, steps, logger)
	translationService := services.NewTranslationService(routineService, steps, repository.NewTranslationRepository(db), languages, logger)
	tagService := services.NewTagService(repository.NewTagRepository(db), routineService, logger)
	languageService := services.NewLanguageService(languages, logger)

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	routes.Setup(app, cfg, routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Health:    handlers.NewHealthHandler(func(ctx context.Context) error { return database.Ping(ctx, db) }),
		Routines:  handlers.NewRoutineHandler(routineService),
		Steps:     handlers.NewStepHandler(stepService, translationService),
		Tags:      handlers.NewTagHandler(tagService),
		Languages: handlers.NewLanguageHandler(languageService),
	}, authService)

	return app, nil
}
