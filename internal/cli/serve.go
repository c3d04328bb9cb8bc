package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental-service/internal/contract"
	"rental-service/internal/handler"
	"rental-service/internal/service"
	"rental-service/pkg/database"
	"rental-service/pkg/jwtutil"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting rental service...", cfg.LogConfig()...)

	db, err := openMigrated(cfg, log)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return err
	}
	defer func() { _ = database.Close(db) }()

	renderer, err := contract.NewHTMLRenderer()
	if err != nil {
		return err
	}

	e := handler.NewServer(handler.Dependencies{
		ServiceName: cfg.ServiceName,
		DB:          db,
		JWT:         jwtutil.NewJWTUtil(&cfg.JWT),
		Settings: service.Settings{
			Clock:              time.Now,
			Location:           cfg.Location(),
			PreserveRenovation: cfg.Reconcile.PreserveRenovation,
		},
		Renderer: renderer,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		errCh <- e.Start(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server stopped", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
