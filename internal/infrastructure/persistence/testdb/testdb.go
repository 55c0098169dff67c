// Package testdb opens a migrated in-memory SQLite database for tests.
package testdb

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mealplan/internal/infrastructure/database"
	"mealplan/internal/infrastructure/persistence/models"
	"mealplan/internal/shared/config"
)

// New returns an isolated database that is closed when the test ends.
func New(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	gdb, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}
