package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/phoneauth/internal/client/storage"
	"github.com/iudanet/phoneauth/internal/models"
)

var (
	keyAccessToken  = []byte("access_token")
	keyRefreshToken = []byte("refresh_token")
	keyUser         = []byte("user")
)

// tokenRecord хранит значение токена вместе со сроком действия записи
type tokenRecord struct {
	Value     string `json:"value"`
	ExpiresAt int64  `json:"expires_at"` // unix seconds
}

// SetTokens stores both tokens in a single transaction
func (s *Storage) SetTokens(ctx context.Context, accessToken, refreshToken string) error {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	return s.putTokens(accessToken, refreshToken)
}

// SetTokensIfCurrent stores both tokens unless ClearAll ran after gen was read
func (s *Storage) SetTokensIfCurrent(ctx context.Context, gen uint64, accessToken, refreshToken string) error {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	if gen != s.generation {
		return storage.ErrSessionCleared
	}
	return s.putTokens(accessToken, refreshToken)
}

// Generation returns the number of ClearAll calls since the storage was opened
func (s *Storage) Generation() uint64 {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	return s.generation
}

func (s *Storage) putTokens(accessToken, refreshToken string) error {
	if accessToken == "" || refreshToken == "" {
		return fmt.Errorf("both tokens are required")
	}

	now := s.now()
	access, err := json.Marshal(tokenRecord{Value: accessToken, ExpiresAt: now.Add(s.accessTTL).Unix()})
	if err != nil {
		return fmt.Errorf("failed to marshal access token: %w", err)
	}
	refresh, err := json.Marshal(tokenRecord{Value: refreshToken, ExpiresAt: now.Add(s.refreshTTL).Unix()})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh token: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}
		if err := bucket.Put(keyAccessToken, access); err != nil {
			return fmt.Errorf("failed to save access token: %w", err)
		}
		if err := bucket.Put(keyRefreshToken, refresh); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}
		return nil
	})
}

// GetAccessToken returns the stored access token
func (s *Storage) GetAccessToken(ctx context.Context) (string, error) {
	return s.getToken(keyAccessToken)
}

// GetRefreshToken returns the stored refresh token
func (s *Storage) GetRefreshToken(ctx context.Context) (string, error) {
	return s.getToken(keyRefreshToken)
}

func (s *Storage) getToken(key []byte) (string, error) {
	var rec tokenRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data := bucket.Get(key)
		if data == nil {
			return storage.ErrTokenNotFound
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	// Истекшая запись ведет себя как отсутствующая
	if s.now().Unix() >= rec.ExpiresAt {
		return "", storage.ErrTokenNotFound
	}

	return rec.Value, nil
}

// SetUser caches the user profile
func (s *Storage) SetUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is nil")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}
		if err := bucket.Put(keyUser, data); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		return nil
	})
}

// GetUser returns the cached user profile
func (s *Storage) GetUser(ctx context.Context) (*models.User, error) {
	var user *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data := bucket.Get(keyUser)
		if data == nil {
			return storage.ErrUserNotFound
		}

		user = &models.User{}
		if err := json.Unmarshal(data, user); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ClearAll removes tokens and profile (logout)
func (s *Storage) ClearAll(ctx context.Context) error {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	s.generation++
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		// Delete отсутствующего ключа не является ошибкой
		for _, key := range [][]byte{keyAccessToken, keyRefreshToken, keyUser} {
			if err := bucket.Delete(key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}
		return nil
	})
}
