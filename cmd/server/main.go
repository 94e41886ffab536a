package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/security"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/seed"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const logLevelFlag = "log-level"

var rootFlags = map[string]cobraflags.Flag{
	logLevelFlag: &cobraflags.StringFlag{
		Name:  logLevelFlag,
		Value: "info",
		Usage: "Log level (debug, info)",
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err.Error())
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vardforalla",
		Short:         "VårdForAlla care-routine backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCommand,
	}
	cobraflags.RegisterMap(root, rootFlags)
	cobraflags.RegisterMap(root, serveFlags)

	root.AddCommand(newServeCommand(), newMigrateCommand(), newSeedCommand())
	return root
}

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			slog.Info("migrations applied", "database", cfg.DBName)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, rootFlags)
	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Install roles, the bootstrap administrator and languages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			return runSeed(cmd.Context(), cfg, db)
		},
	}
	cobraflags.RegisterMap(cmd, rootFlags)
	return cmd
}

// bootstrap loads and validates configuration and opens the database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	logging.Setup(rootFlags[logLevelFlag].GetString() == "debug")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func runSeed(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	seeder := &seed.Seeder{
		Roles:     repository.NewRoleRepository(db),
		Users:     repository.NewUserRepository(db),
		Languages: repository.NewLanguageRepository(db),
		Hasher:    security.NewBcryptHasher(cfg.BcryptCost),
		Logger:    slog.Default(),
	}
	if err := seeder.Run(ctx, seed.AdminCredentials{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	return nil
}
