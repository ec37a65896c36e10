// Package testdb opens in-memory SQLite databases carrying the production schema.
package testdb

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"appointme.backend/internal/infrastructure/datasources/postgres"
)

// Open returns an empty database unique to the test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_busy_timeout=5000", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Discard,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err, "open sqlite")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// New returns a database with the full schema applied.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	db := Open(t)
	for _, stmt := range postgres.SchemaStatements() {
		require.NoError(t, db.Exec(stmt).Error, "schema: %s", stmt)
	}
	return db
}
