package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iupui-soic/dhis2-android-sdk/internal/config"
	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestStorages opens a fresh in-memory database with all migrations
// applied.
func newTestStorages(t *testing.T) *Storages {
	t.Helper()

	cfg := config.ClientStorage{DB: config.ClientDB{DSN: ":memory:"}}
	storages, err := NewStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.DB.Close() })

	return storages
}

// newMockDB wraps a sqlmock connection in a store DB for error-path tests.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &DB{DB: conn, logger: logger.Nop()}, mock
}

func testContext() context.Context {
	return logger.Nop().WithContext(context.Background())
}

// inTx runs fn in a transaction and fails the test on any error.
func inTx(t *testing.T, db *DB, fn func(tx *sql.Tx) error) {
	t.Helper()
	require.NoError(t, db.WithinTx(testContext(), fn))
}
