// Command dealflow_seed creates the demo admin, analyst and partner accounts
// when the users table is empty.
package main

import (
	"log/slog"
	"os"

	"github.com/SscSPs/dealflow/internal/core/services"
	"github.com/SscSPs/dealflow/internal/platform/config"
	"github.com/SscSPs/dealflow/internal/repositories/database/pgsql"
	"github.com/SscSPs/dealflow/pkg/database"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var (
		password       string
		skipMigrations bool
	)

	cmd := &cobra.Command{
		Use:          "dealflow_seed",
		Short:        "Create demo users in an empty database",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
			if err != nil {
				return err
			}
			defer database.ClosePgxPool(dbPool)

			if !skipMigrations {
				if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
					return err
				}
			}

			userService := services.NewUserService(pgsql.NewRepositoryProvider(dbPool).UserRepo)
			created, err := userService.SeedDefaultUsers(ctx, password)
			if err != nil {
				return err
			}
			logger.Info("Seeding finished", slog.Int("created", created))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "password", "password given to every seeded user")
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "assume the schema is already up to date")

	if err := cmd.Execute(); err != nil {
		logger.Error("Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
