package storage

import (
	"context"
	"time"

	"github.com/iudanet/phoneauth/internal/models"
)

// Сроки жизни сохраненных токенов по умолчанию
const (
	DefaultAccessTokenTTL  = 24 * time.Hour
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenStore defines the client-side store of the current session.
// It is the single source of truth for "am I logged in" and performs
// no validation of token contents.
type TokenStore interface {
	// SetTokens stores both tokens together with independent expirations
	SetTokens(ctx context.Context, accessToken, refreshToken string) error

	// GetAccessToken returns ErrTokenNotFound if the token is absent or expired
	GetAccessToken(ctx context.Context) (string, error)

	// GetRefreshToken returns ErrTokenNotFound if the token is absent or expired
	GetRefreshToken(ctx context.Context) (string, error)

	// SetUser caches the user profile (no expiry)
	SetUser(ctx context.Context, user *models.User) error

	// GetUser returns ErrUserNotFound if no profile is cached
	GetUser(ctx context.Context) (*models.User, error)

	// ClearAll removes tokens and profile in one operation; idempotent.
	// Every call starts a new session generation.
	ClearAll(ctx context.Context) error

	// Generation returns the current session generation
	Generation() uint64

	// SetTokensIfCurrent stores the pair only if ClearAll has not run since
	// gen was read; otherwise it returns ErrSessionCleared
	SetTokensIfCurrent(ctx context.Context, gen uint64, accessToken, refreshToken string) error
}
