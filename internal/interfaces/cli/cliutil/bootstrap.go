// Package cliutil holds the start-up sequence shared by the cobra commands.
package cliutil

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"mealplan/internal/infrastructure/config"
	"mealplan/internal/infrastructure/database"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/logger"
)

// Flags are the persistent flags every command accepts.
type Flags struct {
	Env        string
	ConfigPath string
}

// Register adds --env and --config to cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
}

// Runtime is what a command needs after start-up.
type Runtime struct {
	Env    string
	Config *config.Config
	Log    logger.Interface
	DB     *gorm.DB
}

// Bootstrap loads the configuration, initializes the logger and the
// business timezone, and opens the database when withDB is set. The ENV
// variable overrides --env.
func Bootstrap(flags Flags, withDB bool) (*Runtime, error) {
	env := flags.Env
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env, flags.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = MapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Service days and invoice periods are calendar dates in this zone
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	rt := &Runtime{Env: env, Config: cfg, Log: logger.NewLogger()}
	if withDB {
		if err := database.Init(&cfg.Database); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		rt.DB = database.Get()
	}
	return rt, nil
}

// Close releases the database handle opened by Bootstrap.
func (r *Runtime) Close() {
	if r.DB == nil {
		return
	}
	if err := database.Close(); err != nil {
		r.Log.Warnw("failed to close database", "error", err)
	}
}

func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
