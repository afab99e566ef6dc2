package db_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptovest/internal/auth/config"
	"cryptovest/internal/auth/db"
)

func TestMigrationsSource(t *testing.T) {
	t.Run("absolute path kept", func(t *testing.T) {
		dir := t.TempDir()

		got, err := db.MigrationsSource(dir)

		require.NoError(t, err)
		assert.Equal(t, "file://"+filepath.ToSlash(dir), got)
	})

	t.Run("relative path resolved", func(t *testing.T) {
		got, err := db.MigrationsSource(filepath.Join("migrations", "auth"))

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "file://"))
		assert.True(t, strings.HasSuffix(got, "migrations/auth"))
	})
}

func TestPoolOptions(t *testing.T) {
	cfg := &config.PostgresConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Database: "cryptovest",
		MinConn: 2, MaxConn: 8, ConnectTimeout: 3 * time.Second,
	}

	opts := db.PoolOptions(cfg)

	assert.Equal(t, cfg.GetDSN(), opts.DSN)
	assert.Equal(t, int32(2), opts.MinConns)
	assert.Equal(t, int32(8), opts.MaxConns)
	assert.Equal(t, 3*time.Second, opts.ConnectTimeout)
}
