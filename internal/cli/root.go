// Package cli holds the rental-service command tree.
package cli

import (
	"fmt"

	"rental-service/pkg/config"
	"rental-service/pkg/database"
	"rental-service/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const ServiceName = "rental-service"

// NewRootCommand creates the root command with its subcommands
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   ServiceName,
		Short: "Rental properties, leases and payments API",
		Long: `Manages rental properties, their leases and payments.

Saving a lease recomputes the availability status of its property.
Configuration is read from .env and the environment.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewTokenCommand())

	return cmd
}

// bootstrap loads configuration and initializes the global logger
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(ServiceName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.InitLogger(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.GetLogger(), nil
}

// openMigrated connects to the configured database and migrates the schema
func openMigrated(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.Open(&cfg.DB)
	if err != nil {
		return nil, err
	}
	log.Info("Database connection established", zap.String("driver", cfg.DB.Driver))

	if err := database.Migrate(db, log); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
