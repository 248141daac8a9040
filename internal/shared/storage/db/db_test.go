package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-quality/internal/shared/telemetry"
)

// withMockDB routes openDB to a sqlmock pool that expects pings.
func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	prev := openDB
	openDB = func(driverName, dsn string) (*sql.DB, error) {
		return mockDB, nil
	}
	t.Cleanup(func() {
		openDB = prev
		mockDB.Close()
	})
	return mock
}

func TestConnectAppliesEnvOverrides(t *testing.T) {
	defer telemetry.SetOutput(io.Discard)()
	mock := withMockDB(t)
	mock.ExpectPing()

	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "1s")

	opts := OptionsFromEnv(DefaultServerOptions())
	assert.Equal(t, Options{
		MaxOpenConns:    7,
		MaxIdleConns:    3,
		ConnMaxLifetime: 20 * time.Minute,
		ConnMaxIdleTime: 45 * time.Second,
		PingTimeout:     time.Second,
	}, opts)

	pool, err := Connect(context.Background(), "postgres://workflows", opts)
	require.NoError(t, err)
	assert.Equal(t, 7, pool.Stats().MaxOpenConnections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectFailsWhenPingFails(t *testing.T) {
	defer telemetry.SetOutput(io.Discard)()
	mock := withMockDB(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	_, err := Connect(context.Background(), "postgres://workflows", DefaultMigrateOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping database")
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	_, err := Connect(context.Background(), "  ", DefaultServerOptions())
	assert.Error(t, err)
}

func TestConnectWrapsOpenError(t *testing.T) {
	prev := openDB
	openDB = func(driverName, dsn string) (*sql.DB, error) {
		return nil, driver.ErrBadConn
	}
	defer func() { openDB = prev }()

	_, err := Connect(context.Background(), "postgres://x", DefaultMigrateOptions())
	assert.ErrorIs(t, err, driver.ErrBadConn)
}

func TestOptionsFromEnvIgnoresInvalidValues(t *testing.T) {
	defer telemetry.SetOutput(io.Discard)()
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("DB_PING_TIMEOUT", "soon")

	defaults := DefaultMigrateOptions()
	assert.Equal(t, defaults, OptionsFromEnv(defaults))
}

func TestDefaultMigrateOptionsUseSingleConnection(t *testing.T) {
	opts := DefaultMigrateOptions()
	assert.Equal(t, 1, opts.MaxOpenConns)
	assert.Equal(t, 1, opts.MaxIdleConns)
	assert.Equal(t, DefaultServerOptions().PingTimeout, opts.PingTimeout)
}

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_workflows.sql", entries[0].Name())
}

func TestRunMigrationsNilDatabaseIsNoop(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil))
}
