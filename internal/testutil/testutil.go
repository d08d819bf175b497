// Package testutil provides shared utilities for testing.
package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Z4rru/hangulmastery/internal/content"
	"github.com/Z4rru/hangulmastery/internal/database"
	"github.com/Z4rru/hangulmastery/internal/loader"
)

// SetupTestDB creates an in-memory SQLite database with migrations applied.
// Returns the DB wrapper and Repository. Automatically cleans up on test completion.
func SetupTestDB(t testing.TB) (*database.DB, *database.Repository) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory database")

	// a second pooled connection would see a different, empty database
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := database.NewDBFromGorm(gormDB)
	require.NoError(t, db.Migrate(), "Failed to run migrations")

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, database.NewRepository(db)
}

// Catalog loads the embedded content.
func Catalog(t testing.TB) *content.Catalog {
	t.Helper()
	cat, err := loader.Embedded().LoadAll()
	require.NoError(t, err, "Failed to load embedded catalog")
	return cat
}

// SetupSeededDB is SetupTestDB with the embedded catalog seeded.
func SetupSeededDB(t testing.TB) (*database.DB, *database.Repository, *content.Catalog) {
	t.Helper()
	db, repo := SetupTestDB(t)
	cat := Catalog(t)
	_, err := repo.SeedCatalog(cat, false, nil)
	require.NoError(t, err, "Failed to seed catalog")
	return db, repo, cat
}

// SetupTestGin creates a test Gin engine with test mode enabled.
func SetupTestGin() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
