package lookupcache

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return gormDB, mock
}

func fixedNow(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestStore_GetHit(t *testing.T) {
	db, mock := setupMockDB(t)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	s := New(db, 24*time.Hour, zap.NewNop())
	s.now = fixedNow(now)

	rows := sqlmock.NewRows([]string{"url", "body", "fetched_at"}).
		AddRow("http://index/a", []byte("doc"), now.Add(-time.Hour))
	mock.ExpectQuery("SELECT \\* FROM `cached_documents`").WillReturnRows(rows)

	body, ok := s.Get(context.Background(), "http://index/a")
	assert.True(t, ok)
	assert.Equal(t, "doc", string(body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetExpired(t *testing.T) {
	db, mock := setupMockDB(t)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	s := New(db, time.Hour, nil)
	s.now = fixedNow(now)

	rows := sqlmock.NewRows([]string{"url", "body", "fetched_at"}).
		AddRow("http://index/a", []byte("doc"), now.Add(-2*time.Hour))
	mock.ExpectQuery("SELECT \\* FROM `cached_documents`").WillReturnRows(rows)

	_, ok := s.Get(context.Background(), "http://index/a")
	assert.False(t, ok)
}

func TestStore_GetMissAndError(t *testing.T) {
	db, mock := setupMockDB(t)
	s := New(db, time.Hour, nil)

	mock.ExpectQuery("SELECT \\* FROM `cached_documents`").
		WillReturnRows(sqlmock.NewRows([]string{"url", "body", "fetched_at"}))
	_, ok := s.Get(context.Background(), "http://index/missing")
	assert.False(t, ok)

	mock.ExpectQuery("SELECT \\* FROM `cached_documents`").WillReturnError(assert.AnError)
	_, ok = s.Get(context.Background(), "http://index/broken")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Put(t *testing.T) {
	db, mock := setupMockDB(t)
	s := New(db, time.Hour, nil)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `cached_documents`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	s.Put(context.Background(), "http://index/a", []byte("doc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_PutFailureIsSwallowed(t *testing.T) {
	db, mock := setupMockDB(t)
	s := New(db, time.Hour, nil)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `cached_documents`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	assert.NotPanics(t, func() {
		s.Put(context.Background(), "http://index/a", []byte("doc"))
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Purge(t *testing.T) {
	t.Run("deletes expired rows", func(t *testing.T) {
		db, mock := setupMockDB(t)
		s := New(db, time.Hour, nil)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `cached_documents`").WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		n, err := s.Purge(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no ttl keeps everything", func(t *testing.T) {
		db, mock := setupMockDB(t)
		s := New(db, 0, nil)

		n, err := s.Purge(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_Count(t *testing.T) {
	db, mock := setupMockDB(t)
	s := New(db, time.Hour, nil)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `cached_documents`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
