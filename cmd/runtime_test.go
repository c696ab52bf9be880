package cmd

import (
	"context"
	"testing"

	"bibcleaner/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func withConnectCache(t *testing.T, fn func(database.Config) (*gorm.DB, error)) {
	t.Helper()
	prev := connectCache
	connectCache = fn
	t.Cleanup(func() { connectCache = prev })
}

func TestOpenCache(t *testing.T) {
	cfg := database.Config{Enabled: true, Driver: database.DriverSQLite, Name: ":memory:", TTLHours: 1}

	t.Run("migrated cache is returned open", func(t *testing.T) {
		db, store := openCache(context.Background(), cfg, zap.NewNop())
		require.NotNil(t, store)
		require.NotNil(t, db)
		t.Cleanup(func() { closeDB(db) })

		sqlDB, err := db.DB()
		require.NoError(t, err)
		assert.NoError(t, sqlDB.Ping())
	})

	t.Run("failed migration closes the connection", func(t *testing.T) {
		var opened *gorm.DB
		withConnectCache(t, func(c database.Config) (*gorm.DB, error) {
			db, err := database.Connect(c)
			opened = db
			return db, err
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		db, store := openCache(ctx, cfg, zap.NewNop())
		assert.Nil(t, db)
		assert.Nil(t, store)

		require.NotNil(t, opened)
		sqlDB, err := opened.DB()
		require.NoError(t, err)
		assert.ErrorContains(t, sqlDB.Ping(), "database is closed")
	})

	t.Run("connection failure yields no cache", func(t *testing.T) {
		db, store := openCache(context.Background(), database.Config{Driver: "oracle"}, zap.NewNop())
		assert.Nil(t, db)
		assert.Nil(t, store)
	})
}
