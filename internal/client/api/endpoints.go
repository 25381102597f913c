package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iudanet/phoneauth/internal/models"
	pkgapi "github.com/iudanet/phoneauth/pkg/api"
)

// SendLoginOTP запрашивает отправку кода входа и возвращает сообщение backend
func (c *Client) SendLoginOTP(ctx context.Context, phone string) (string, error) {
	return c.sendOTP(ctx, "/auth/login", phone)
}

// SendSignupOTP запрашивает отправку кода регистрации
func (c *Client) SendSignupOTP(ctx context.Context, phone string) (string, error) {
	return c.sendOTP(ctx, "/auth/signup", phone)
}

func (c *Client) sendOTP(ctx context.Context, path, phone string) (string, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   pkgapi.PhoneRequest{Phone: phone},
		Auth:   AuthNone,
	})
	if err != nil {
		return "", fmt.Errorf("send OTP failed: %w", err)
	}

	var status pkgapi.StatusResponse
	if err := decodeJSON(resp, &status); err != nil {
		return "", err
	}
	return status.Message, nil
}

// VerifyLoginOTP проверяет код входа. Токены приходят в заголовках ответа
// и сохраняются в хранилище, профиль возвращается из тела.
func (c *Client) VerifyLoginOTP(ctx context.Context, phone, otp string) (*models.User, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/verify-login-otp",
		Body:   pkgapi.OTPVerificationRequest{Phone: phone, OTP: otp},
		Auth:   AuthNone,
	})
	if err != nil {
		return nil, fmt.Errorf("verify OTP failed: %w", err)
	}
	return c.acceptSession(ctx, resp)
}

// VerifySignupOTP проверяет код регистрации и возвращает temp token
func (c *Client) VerifySignupOTP(ctx context.Context, phone, otp string) (string, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/verify-otp",
		Body:   pkgapi.OTPVerificationRequest{Phone: phone, OTP: otp},
		Auth:   AuthNone,
	})
	if err != nil {
		return "", fmt.Errorf("verify OTP failed: %w", err)
	}

	tempToken, err := decodeData[string](resp)
	if err != nil {
		return "", err
	}
	if *tempToken == "" {
		return "", fmt.Errorf("%w: empty temp token", ErrServer)
	}
	return *tempToken, nil
}

// CompleteRegistration завершает регистрацию. Temp token передается
// в заголовке X-Temp-Token, а не как bearer.
func (c *Client) CompleteRegistration(ctx context.Context, req pkgapi.RegistrationRequest, tempToken string) (*models.User, error) {
	header := http.Header{}
	header.Set(pkgapi.HeaderTempToken, tempToken)

	resp, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/complete-registration",
		Body:   req,
		Header: header,
		Auth:   AuthNone,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return c.acceptSession(ctx, resp)
}

// Logout сообщает backend о выходе
func (c *Client) Logout(ctx context.Context) error {
	return c.logout(ctx, AuthBearer)
}

// LogoutNoRefresh сообщает backend о выходе без обновления токенов при 401.
// Используется, когда сессия уже признана недействительной.
func (c *Client) LogoutNoRefresh(ctx context.Context) error {
	return c.logout(ctx, AuthBearerNoRefresh)
}

func (c *Client) logout(ctx context.Context, mode AuthMode) error {
	if _, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Auth:   mode,
	}); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// GetProfile загружает профиль текущего пользователя
func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/auth/profile",
		Auth:   AuthBearer,
	})
	if err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}

	payload, err := decodeData[pkgapi.UserPayload](resp)
	if err != nil {
		return nil, err
	}
	return &payload.User, nil
}

// InitiateOAuth возвращает URL авторизации у провайдера
func (c *Client) InitiateOAuth(ctx context.Context, provider string) (string, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/auth/oauth/" + url.PathEscape(provider),
		Auth:   AuthNone,
	})
	if err != nil {
		return "", fmt.Errorf("initiate OAuth failed: %w", err)
	}

	payload, err := decodeData[pkgapi.OAuthURLPayload](resp)
	if err != nil {
		return "", err
	}
	if payload.URL == "" {
		return "", fmt.Errorf("%w: empty OAuth URL", ErrServer)
	}
	return payload.URL, nil
}

// OAuthCallback обменивает authorization code на токены и профиль
func (c *Client) OAuthCallback(ctx context.Context, provider, code string) (*models.User, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/oauth/" + url.PathEscape(provider) + "/callback",
		Body:   pkgapi.OAuthCallbackRequest{Code: code},
		Auth:   AuthNone,
	})
	if err != nil {
		return nil, fmt.Errorf("OAuth callback failed: %w", err)
	}
	return c.acceptSession(ctx, resp)
}

// acceptSession сохраняет токены из заголовков и возвращает профиль из тела
func (c *Client) acceptSession(ctx context.Context, resp *Response) (*models.User, error) {
	payload, err := decodeData[pkgapi.UserPayload](resp)
	if err != nil {
		return nil, err
	}

	accessToken := resp.Header.Get(pkgapi.HeaderAccessToken)
	refreshToken := resp.Header.Get(pkgapi.HeaderRefreshToken)
	if accessToken == "" || refreshToken == "" {
		return nil, fmt.Errorf("%w: tokens missing in response headers", ErrServer)
	}
	if err := c.store.SetTokens(ctx, accessToken, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to save tokens: %w", err)
	}

	return &payload.User, nil
}
