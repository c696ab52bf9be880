package lookupcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bibcleaner/core/dblp"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is a raw index response cached by URL.
type Document struct {
	URL       string    `gorm:"primaryKey;size:512"`
	Body      []byte    `gorm:"not null"`
	FetchedAt time.Time `gorm:"index;not null"`
}

// TableName pins the table name.
func (Document) TableName() string {
	return "cached_documents"
}

// Store is a GORM-backed dblp.Cache.
type Store struct {
	db     *gorm.DB
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
	sf     singleflight.Group
}

var _ dblp.Cache = (*Store)(nil)

// New creates a store. A non-positive ttl keeps documents forever.
func New(db *gorm.DB, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, ttl: ttl, logger: logger, now: time.Now}
}

// Migrate creates or updates the cache table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Document{}); err != nil {
		return fmt.Errorf("failed to migrate lookup cache: %w", err)
	}
	return nil
}

// Get returns a fresh cached body. Lookup failures count as misses.
func (s *Store) Get(ctx context.Context, url string) ([]byte, bool) {
	// Concurrent readers of one URL share a single query.
	v, err, _ := s.sf.Do(url, func() (interface{}, error) {
		var doc Document
		if err := s.db.WithContext(ctx).Where("url = ?", url).First(&doc).Error; err != nil {
			return nil, err
		}
		return &doc, nil
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("Lookup cache read failed", zap.String("url", url), zap.Error(err))
		}
		return nil, false
	}

	doc := v.(*Document)
	if s.expired(doc.FetchedAt) {
		return nil, false
	}
	return doc.Body, true
}

// Put stores or refreshes a body. Failures are logged and otherwise ignored.
func (s *Store) Put(ctx context.Context, url string, body []byte) {
	doc := Document{URL: url, Body: body, FetchedAt: s.now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&doc).Error
	if err != nil {
		s.logger.Warn("Lookup cache write failed", zap.String("url", url), zap.Error(err))
	}
}

// Purge deletes expired documents and returns how many were removed.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("fetched_at < ?", s.now().Add(-s.ttl)).
		Delete(&Document{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge lookup cache: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Count returns the number of cached documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Document{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count lookup cache: %w", err)
	}
	return n, nil
}

func (s *Store) expired(fetchedAt time.Time) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(fetchedAt) > s.ttl
}
