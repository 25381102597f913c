// Package encrypted provides a TokenStore decorator that seals token
// values before they reach the underlying storage.
package encrypted

import (
	"context"
	"fmt"

	"github.com/iudanet/phoneauth/internal/client/storage"
	"github.com/iudanet/phoneauth/internal/crypto"
	"github.com/iudanet/phoneauth/internal/models"
)

// Store encrypts tokens on SetTokens and decrypts them on read.
// Profile data is passed through as-is.
type Store struct {
	storage       storage.TokenStore
	encryptionKey []byte
}

// Compile-time check that Store implements TokenStore
var _ storage.TokenStore = (*Store)(nil)

// New creates an encrypting decorator; key must be 32 bytes
func New(inner storage.TokenStore, key []byte) (*Store, error) {
	if len(key) != crypto.KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", crypto.KeySize, len(key))
	}
	return &Store{storage: inner, encryptionKey: key}, nil
}

// SetTokens шифрует оба токена и сохраняет их вместе
func (s *Store) SetTokens(ctx context.Context, accessToken, refreshToken string) error {
	sealedAccess, sealedRefresh, err := s.seal(accessToken, refreshToken)
	if err != nil {
		return err
	}
	return s.storage.SetTokens(ctx, sealedAccess, sealedRefresh)
}

// SetTokensIfCurrent шифрует пару и сохраняет ее, если сессия gen еще не очищена
func (s *Store) SetTokensIfCurrent(ctx context.Context, gen uint64, accessToken, refreshToken string) error {
	sealedAccess, sealedRefresh, err := s.seal(accessToken, refreshToken)
	if err != nil {
		return err
	}
	return s.storage.SetTokensIfCurrent(ctx, gen, sealedAccess, sealedRefresh)
}

func (s *Store) seal(accessToken, refreshToken string) (string, string, error) {
	sealedAccess, err := crypto.SealString(accessToken, s.encryptionKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to encrypt access token: %w", err)
	}
	sealedRefresh, err := crypto.SealString(refreshToken, s.encryptionKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to encrypt refresh token: %w", err)
	}
	return sealedAccess, sealedRefresh, nil
}

// GetAccessToken возвращает расшифрованный access token
func (s *Store) GetAccessToken(ctx context.Context) (string, error) {
	sealed, err := s.storage.GetAccessToken(ctx)
	if err != nil {
		return "", err
	}
	token, err := crypto.OpenString(sealed, s.encryptionKey)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt access token: %w", err)
	}
	return token, nil
}

// GetRefreshToken возвращает расшифрованный refresh token
func (s *Store) GetRefreshToken(ctx context.Context) (string, error) {
	sealed, err := s.storage.GetRefreshToken(ctx)
	if err != nil {
		return "", err
	}
	token, err := crypto.OpenString(sealed, s.encryptionKey)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt refresh token: %w", err)
	}
	return token, nil
}

// SetUser сохраняет профиль без шифрования
func (s *Store) SetUser(ctx context.Context, user *models.User) error {
	return s.storage.SetUser(ctx, user)
}

// GetUser возвращает сохраненный профиль
func (s *Store) GetUser(ctx context.Context) (*models.User, error) {
	return s.storage.GetUser(ctx)
}

// ClearAll удаляет все данные сессии
func (s *Store) ClearAll(ctx context.Context) error {
	return s.storage.ClearAll(ctx)
}

// Generation возвращает поколение сессии нижележащего хранилища
func (s *Store) Generation() uint64 {
	return s.storage.Generation()
}
