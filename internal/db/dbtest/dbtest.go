// Package dbtest provides a migrated in-memory database for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/profilemanager/profilemanager/internal/db/schema"
	gormadapter "github.com/profilemanager/profilemanager/internal/logger/adapter/gorm"
)

// New opens an in-memory sqlite database with the current schema.
// The pool is limited to one connection, every new connection would
// otherwise see its own empty database.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormadapter.New("silent"),
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, schema.Migrate(db), "failed to migrate test database")

	return db
}
