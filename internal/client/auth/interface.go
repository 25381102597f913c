package auth

import (
	"context"

	"github.com/iudanet/phoneauth/internal/models"
	pkgapi "github.com/iudanet/phoneauth/pkg/api"
)

//go:generate moq -out backend_mock_test.go . Backend

// Backend - операции backend, которые использует контроллер сессии.
// Реализуется *api.Client; токены из заголовков ответа сохраняет он сам.
type Backend interface {
	// SendLoginOTP отправляет код входа, возвращает сообщение backend
	SendLoginOTP(ctx context.Context, phone string) (string, error)

	// VerifyLoginOTP проверяет код входа и сохраняет выданные токены
	VerifyLoginOTP(ctx context.Context, phone, otp string) (*models.User, error)

	// SendSignupOTP отправляет код регистрации
	SendSignupOTP(ctx context.Context, phone string) (string, error)

	// VerifySignupOTP проверяет код регистрации и возвращает temp token
	VerifySignupOTP(ctx context.Context, phone, otp string) (string, error)

	// CompleteRegistration создает пользователя по temp token
	CompleteRegistration(ctx context.Context, req pkgapi.RegistrationRequest, tempToken string) (*models.User, error)

	// RefreshTokens обменивает refresh token на новую пару и сохраняет ее
	RefreshTokens(ctx context.Context) error

	// Logout уведомляет backend о выходе
	Logout(ctx context.Context) error

	// LogoutNoRefresh уведомляет backend о выходе, не обновляя токены при 401
	LogoutNoRefresh(ctx context.Context) error

	// GetProfile загружает профиль по текущему access token
	GetProfile(ctx context.Context) (*models.User, error)

	// InitiateOAuth возвращает URL авторизации провайдера
	InitiateOAuth(ctx context.Context, provider string) (string, error)

	// OAuthCallback обменивает authorization code на сессию
	OAuthCallback(ctx context.Context, provider, code string) (*models.User, error)
}
