// Package migration applies the database schema.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"mealplan/internal/infrastructure/persistence/models"
	"mealplan/internal/shared/config"
	"mealplan/internal/shared/logger"
)

// Strategy is one way of bringing the schema up to date.
type Strategy interface {
	Migrate(db *gorm.DB) error
	GetName() string
}

// VersionedStrategy is implemented by strategies that track applied versions.
type VersionedStrategy interface {
	Strategy
	MigrateDown(db *gorm.DB, steps int) error
	GetVersion(db *gorm.DB) (int64, error)
	Status(db *gorm.DB) error
}

// Manager runs a migration strategy.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose for MySQL and gorm AutoMigrate for SQLite, whose
// dialect the SQL scripts do not target.
func NewManager(cfg *config.DatabaseConfig, log logger.Interface) *Manager {
	var strategy Strategy
	if cfg.IsSQLite() {
		strategy = NewGormAutoMigrateStrategy(log)
	} else {
		strategy = NewGooseStrategy(log)
	}
	return NewManagerWithStrategy(strategy, log)
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed", "strategy", m.strategy.GetName())
	return nil
}

// Versioned returns the strategy when it supports down/status, or false.
func (m *Manager) Versioned() (VersionedStrategy, bool) {
	v, ok := m.strategy.(VersionedStrategy)
	return v, ok
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// GormAutoMigrateStrategy creates tables from the persistence models.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := models.All()
	s.logger.Infow("running gorm automigrate", "models_count", len(all))
	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
