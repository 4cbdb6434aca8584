// Package dbtest provides an in-memory database for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emailcapture/emailcapture/internal/db"
)

// New creates a migrated in-memory SQLite database that is closed with the test.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to create test database")

	// every pooled connection would get its own empty :memory: database
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(conn), "failed to migrate test database")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return conn
}

// Seed inserts records into the database.
func Seed[T any](t *testing.T, conn *gorm.DB, records ...T) {
	t.Helper()

	for i := range records {
		require.NoError(t, conn.Create(&records[i]).Error, "failed to seed test data")
	}
}
