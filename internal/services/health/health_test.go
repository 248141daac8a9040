package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusWithoutDatabase(t *testing.T) {
	got := NewService(nil).Status(context.Background())
	assert.Equal(t, map[string]any{"ok": true, "storage": "memory"}, got)
}

func TestStatusPingsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	got := NewService(db).Status(context.Background())
	assert.Equal(t, true, got["ok"])
	assert.Equal(t, "postgres", got["storage"])

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	got = NewService(db).Status(context.Background())
	assert.Equal(t, false, got["ok"])
	assert.Equal(t, "postgres_unreachable", got["storage"])
	require.NoError(t, mock.ExpectationsWereMet())
}
