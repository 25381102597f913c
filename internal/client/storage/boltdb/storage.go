package boltdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/phoneauth/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketAuth     = []byte("auth")
	bucketMetadata = []byte("metadata")
)

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db         *bbolt.DB
	now        func() time.Time
	accessTTL  time.Duration
	refreshTTL time.Duration
	// sessionMu упорядочивает запись токенов относительно ClearAll
	sessionMu  sync.Mutex
	generation uint64
}

// Compile-time check that Storage implements TokenStore
var _ storage.TokenStore = (*Storage)(nil)

// Option настраивает Storage
type Option func(*Storage)

// WithTTL задает сроки жизни access и refresh токенов
func WithTTL(accessTTL, refreshTTL time.Duration) Option {
	return func(s *Storage) {
		s.accessTTL = accessTTL
		s.refreshTTL = refreshTTL
	}
}

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string, opts ...Option) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{
		db:         db,
		now:        time.Now,
		accessTTL:  storage.DefaultAccessTokenTTL,
		refreshTTL: storage.DefaultRefreshTokenTTL,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketAuth, bucketMetadata} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}
