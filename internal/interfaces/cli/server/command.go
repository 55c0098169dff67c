package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"mealplan/internal/infrastructure/migration"
	"mealplan/internal/interfaces/cli/cliutil"
	httpRouter "mealplan/internal/interfaces/http"
	"mealplan/internal/shared/logger"
)

type options struct {
	autoMigrate        bool
	skipMigrationCheck bool
	shutdownTimeout    time.Duration
}

func NewCommand(flags *cliutil.Flags) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the meal planning HTTP API with the specified configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(*flags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&opts.skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")
	cmd.Flags().DurationVar(&opts.shutdownTimeout, "shutdown-timeout", 30*time.Second, "Grace period for in-flight requests on shutdown")

	return cmd
}

func run(flags cliutil.Flags, opts *options) error {
	rt, err := cliutil.Bootstrap(flags, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	log := rt.Log
	cfg := rt.Config
	log.Infow("starting server",
		"environment", rt.Env,
		"mode", cfg.Server.Mode,
		"auto_migrate", opts.autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := handleMigrations(rt, opts); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	container, err := httpRouter.NewContainer(rt.DB, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer func() {
		if err := container.Shutdown(); err != nil {
			log.Errorw("failed to release container resources", "error", err)
		}
	}()
	container.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(rt *cliutil.Runtime, opts *options) error {
	log := rt.Log
	if opts.skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	manager := migration.NewManager(&rt.Config.Database, log)
	if opts.autoMigrate {
		if rt.Env == "production" {
			log.Warnw("auto-migration is enabled in production environment")
		}
		return manager.Migrate(rt.DB)
	}

	return reportVersion(manager, rt.DB, log)
}

func reportVersion(manager *migration.Manager, db *gorm.DB, log logger.Interface) error {
	versioned, ok := manager.Versioned()
	if !ok {
		log.Warnw("schema has no version table, start with --auto-migrate to create it",
			"strategy", manager.GetStrategy().GetName())
		return nil
	}

	version, err := versioned.GetVersion(db)
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "version", version)
	return nil
}
