// Package testutil provides helpers shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// QueryTimeout is the repository deadline used in tests.
const QueryTimeout = 5 * time.Second

// NewDB opens a migrated in-memory SQLite ledger that is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	database, err := db.NewConnection(&config.DatabaseConfig{
		Driver:       db.DriverSQLite,
		URL:          ":memory:",
		QueryTimeout: QueryTimeout,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		_ = database.Close()
	})
	return database.DB()
}

// Money parses a decimal literal and fails the test on malformed input.
func Money(t testing.TB, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// SeedCategory inserts a category directly. A nil owner creates a global one.
func SeedCategory(t testing.TB, gdb *gorm.DB, owner *uuid.UUID, name string) int64 {
	t.Helper()
	m := &model.CategoryModel{Name: name, UserID: owner, IsActive: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, gdb.Create(m).Error)
	return m.ID
}
