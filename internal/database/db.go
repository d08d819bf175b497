package database

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps the gorm connection.
type DB struct {
	*gorm.DB
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_journal_mode=WAL"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite serializes writers; a small pool avoids lock contention.
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return &DB{gormDB}, nil
}

// NewDBFromGorm wraps an existing gorm connection, mostly for tests.
func NewDBFromGorm(gormDB *gorm.DB) *DB {
	return &DB{gormDB}
}

// Migrate creates all tables and indexes and records the schema version.
func (db *DB) Migrate() error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(allModels...); err != nil {
			return fmt.Errorf("failed to migrate tables: %w", err)
		}
		for _, stmt := range CreateIndexesSQL {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}
		if err := setMeta(tx, metaSchemaVersion, strconv.Itoa(SchemaVersion)); err != nil {
			return fmt.Errorf("failed to update schema version: %w", err)
		}
		return nil
	})
}

// GetSchemaVersion returns the recorded schema version, 0 before Migrate.
func (db *DB) GetSchemaVersion() (int, error) {
	v, err := getMeta(db.DB, metaSchemaVersion)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func setMeta(tx *gorm.DB, key, value string) error {
	return tx.Save(&Metadata{Key: key, Value: value}).Error
}

func getMeta(tx *gorm.DB, key string) (string, error) {
	var m Metadata
	if err := tx.First(&m, "key = ?", key).Error; err != nil {
		return "", err
	}
	return m.Value, nil
}
