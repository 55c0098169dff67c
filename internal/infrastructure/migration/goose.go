package migration

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"mealplan/internal/shared/logger"
)

//go:embed scripts/*.sql
var scripts embed.FS

const scriptsDir = "scripts"

// goose keeps its dialect, base FS and logger as package state.
var gooseMu sync.Mutex

// GooseStrategy applies the embedded MySQL scripts.
type GooseStrategy struct {
	logger logger.Interface
}

func NewGooseStrategy(log logger.Interface) *GooseStrategy {
	return &GooseStrategy{logger: log.With("component", "migration.goose")}
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

// with prepares goose for the embedded scripts and runs fn on the raw handle.
func (s *GooseStrategy) with(db *gorm.DB, fn func(sqlDB *sql.DB) error) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(scripts)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&gooseLogger{log: s.logger})

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return fn(sqlDB)
}

func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	return s.with(db, func(sqlDB *sql.DB) error {
		currentVersion, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get current version: %w", err)
		}
		s.logger.Infow("current migration status", "version", currentVersion)

		if err := goose.Up(sqlDB, scriptsDir); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		finalVersion, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get final version: %w", err)
		}
		s.logger.Infow("migration completed successfully",
			"from_version", currentVersion,
			"to_version", finalVersion)
		return nil
	})
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)
	return s.with(db, func(sqlDB *sql.DB) error {
		for i := 0; i < steps; i++ {
			if err := goose.Down(sqlDB, scriptsDir); err != nil {
				return fmt.Errorf("failed to run down migration: %w", err)
			}
		}
		s.logger.Infow("down migration completed successfully")
		return nil
	})
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	var version int64
	err := s.with(db, func(sqlDB *sql.DB) error {
		v, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

func (s *GooseStrategy) Status(db *gorm.DB) error {
	return s.with(db, func(sqlDB *sql.DB) error {
		if err := goose.Status(sqlDB, scriptsDir); err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		return nil
	})
}

// Create writes a new SQL migration file into dir on disk.
func Create(dir, name string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}
	return nil
}

// gooseLogger forwards goose output to the application logger.
type gooseLogger struct {
	log logger.Interface
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Infow(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Errorw(strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
