package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/phoneauth/internal/client/api"
	"github.com/iudanet/phoneauth/internal/client/storage"
	"github.com/iudanet/phoneauth/internal/models"
	pkgapi "github.com/iudanet/phoneauth/pkg/api"
)

// Сообщения по умолчанию, когда backend не вернул своего
const (
	MsgLoginFailed        = "Login failed"
	MsgOTPSent            = "OTP sent successfully"
	MsgSignupFailed       = "Signup failed"
	MsgRegistrationFailed = "Registration failed"
	MsgOAuthInitFailed    = "OAuth initialization failed"
	MsgOAuthFailed        = "OAuth authentication failed"
	MsgVerificationFailed = "Verification failed"
)

// Listener получает предыдущее и новое состояние после каждого перехода
type Listener func(prev, next Session)

// Controller управляет сессией: выполняет операции через Backend,
// сохраняет данные в TokenStore и переводит Session через Reduce.
// Состояние защищено мьютексом, который не удерживается во время сетевых вызовов.
type Controller struct {
	backend   Backend
	store     storage.TokenStore
	logger    *slog.Logger
	listeners []Listener
	session   Session
	mu        sync.Mutex
}

// NewController создает контроллер в состоянии Initializing
func NewController(backend Backend, store storage.TokenStore, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		backend: backend,
		store:   store,
		logger:  logger,
		session: InitialSession(),
	}
}

// Session возвращает снимок текущего состояния
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Subscribe регистрирует слушателя переходов
func (c *Controller) Subscribe(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) dispatch(action Action) {
	c.mu.Lock()
	prev := c.session
	next := Reduce(prev, action)
	c.session = next
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(prev, next)
	}
}

// Initialize восстанавливает сессию из хранилища. Сохраненный access token
// проверяется запросом профиля; при отказе хранилище очищается без
// сообщения об ошибке.
func (c *Controller) Initialize(ctx context.Context) error {
	accessToken, accessErr := c.store.GetAccessToken(ctx)
	refreshToken, refreshErr := c.store.GetRefreshToken(ctx)
	_, userErr := c.store.GetUser(ctx)

	for _, err := range []error{accessErr, refreshErr, userErr} {
		if err != nil && !isNotFound(err) {
			return fmt.Errorf("failed to read session: %w", err)
		}
	}
	if accessErr != nil || refreshErr != nil || userErr != nil {
		c.dispatch(ClearAuth{})
		return nil
	}

	profile, err := c.backend.GetProfile(ctx)
	if err != nil {
		c.logger.Debug("stored session rejected", "error", err)
		if clearErr := c.store.ClearAll(ctx); clearErr != nil {
			return fmt.Errorf("failed to clear session: %w", clearErr)
		}
		c.dispatch(ClearAuth{})
		return nil
	}

	// Профиль мог обновить токены через повтор после 401
	if access, err := c.store.GetAccessToken(ctx); err == nil {
		accessToken = access
	}
	if refresh, err := c.store.GetRefreshToken(ctx); err == nil {
		refreshToken = refresh
	}
	if err := c.store.SetUser(ctx, profile); err != nil {
		c.logger.Warn("failed to cache profile", "error", err)
	}

	c.dispatch(SetAuth{User: profile, AccessToken: accessToken, RefreshToken: refreshToken})
	return nil
}

// SendLoginOTP отправляет код входа и возвращает сообщение для пользователя.
// Состояние аутентификации не меняется.
func (c *Controller) SendLoginOTP(ctx context.Context, phone string) (string, error) {
	msg, err := c.backend.SendLoginOTP(ctx, phone)
	if err != nil {
		c.dispatch(SetError{Message: api.UserMessage(err, MsgLoginFailed)})
		return "", err
	}
	if msg == "" {
		msg = MsgOTPSent
	}
	return msg, nil
}

// Login проверяет код входа. Токены приходят через заголовки и уже
// сохранены Backend, профиль кэшируется здесь.
func (c *Controller) Login(ctx context.Context, phone, otp string) error {
	c.dispatch(SetLoading{Loading: true})

	user, err := c.backend.VerifyLoginOTP(ctx, phone, otp)
	if err != nil {
		c.dispatch(SetError{Message: api.UserMessage(err, MsgLoginFailed)})
		return err
	}

	if err := c.establish(ctx, user); err != nil {
		c.dispatch(SetError{Message: MsgLoginFailed})
		return err
	}
	return nil
}

// Signup отправляет код регистрации и возвращает сообщение backend
func (c *Controller) Signup(ctx context.Context, phone string) (string, error) {
	c.dispatch(SetLoading{Loading: true})

	msg, err := c.backend.SendSignupOTP(ctx, phone)
	if err != nil {
		c.dispatch(SetError{Message: api.UserMessage(err, MsgSignupFailed)})
		return "", err
	}

	c.dispatch(SetLoading{Loading: false})
	if msg == "" {
		msg = MsgOTPSent
	}
	return msg, nil
}

// VerifySignupOTP проверяет код регистрации и возвращает temp token.
// Temp token не сохраняется: его держит поток регистрации.
func (c *Controller) VerifySignupOTP(ctx context.Context, phone, otp string) (string, error) {
	tempToken, err := c.backend.VerifySignupOTP(ctx, phone, otp)
	if err != nil {
		c.dispatch(SetError{Message: api.UserMessage(err, MsgVerificationFailed)})
		return "", err
	}
	return tempToken, nil
}

// CompleteRegistration завершает регистрацию, авторизуясь temp token
func (c *Controller) CompleteRegistration(ctx context.Context, req pkgapi.RegistrationRequest, tempToken string) error {
	c.dispatch(SetLoading{Loading: true})

	user, err := c.backend.CompleteRegistration(ctx, req, tempToken)
	if err != nil {
		c.dispatch(SetError{Message: api.UserMessage(err, MsgRegistrationFailed)})
		return err
	}

	if err := c.establish(ctx, user); err != nil {
		c.dispatch(SetError{Message: MsgRegistrationFailed})
		return err
	}
	return nil
}

// Logout всегда завершается локально: ошибка backend только логируется,
// хранилище очищается безусловно
func (c *Controller) Logout(ctx context.Context) {
	c.endSession(ctx, c.backend.Logout)
}

// ForceLogout завершает сессию, которую не удалось обновить. Устаревший
// access token уходит на backend без повторной попытки обновления.
func (c *Controller) ForceLogout(ctx context.Context) {
	c.endSession(ctx, c.backend.LogoutNoRefresh)
}

func (c *Controller) endSession(ctx context.Context, notify func(context.Context) error) {
	if err := notify(ctx); err != nil {
		c.logger.Warn("backend logout failed", "error", err)
	}
	if err := c.store.ClearAll(ctx); err != nil {
		c.logger.Error("failed to clear session storage", "error", err)
	}
	c.dispatch(ClearAuth{})
}

// ExpireSession сбрасывает сессию без сетевого вызова и без сообщения.
// Вызывается, когда обновление токенов не удалось.
func (c *Controller) ExpireSession(ctx context.Context) {
	if err := c.store.ClearAll(ctx); err != nil {
		c.logger.Error("failed to clear session storage", "error", err)
	}
	c.dispatch(ClearAuth{})
}

// InitiateOAuth возвращает URL провайдера; состояние не меняется до callback
func (c *Controller) InitiateOAuth(ctx context.Context, provider string) (string, error) {
	url, err := c.backend.InitiateOAuth(ctx, provider)
	if err != nil {
		c.dispatch(SetError{Message: api.UserMessage(err, MsgOAuthInitFailed)})
		return "", err
	}
	return url, nil
}

// HandleOAuthCallback обменивает authorization code на сессию
func (c *Controller) HandleOAuthCallback(ctx context.Context, provider, code string) error {
	c.dispatch(SetLoading{Loading: true})

	user, err := c.backend.OAuthCallback(ctx, provider, code)
	if err != nil {
		c.dispatch(SetError{Message: api.UserMessage(err, MsgOAuthFailed)})
		return err
	}

	if err := c.establish(ctx, user); err != nil {
		c.dispatch(SetError{Message: MsgOAuthFailed})
		return err
	}
	return nil
}

// RefreshTokens обновляет пару токенов и переносит ее в сессию.
// Если за время обновления сессию завершили, возвращает ErrSessionCleared.
func (c *Controller) RefreshTokens(ctx context.Context) error {
	gen := c.store.Generation()
	if err := c.backend.RefreshTokens(ctx); err != nil {
		return err
	}
	if c.store.Generation() != gen {
		return storage.ErrSessionCleared
	}

	accessToken, refreshToken, err := c.readTokens(ctx)
	if err != nil {
		return err
	}

	current := c.Session()
	if current.User == nil {
		return nil
	}
	c.dispatch(SetAuth{User: current.User, AccessToken: accessToken, RefreshToken: refreshToken})
	return nil
}

// ClearError снимает сообщение об ошибке
func (c *Controller) ClearError() {
	c.dispatch(SetError{Message: ""})
}

// establish кэширует профиль и переводит сессию в Authenticated
func (c *Controller) establish(ctx context.Context, user *models.User) error {
	accessToken, refreshToken, err := c.readTokens(ctx)
	if err != nil {
		return err
	}
	if err := c.store.SetUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	c.dispatch(SetAuth{User: user, AccessToken: accessToken, RefreshToken: refreshToken})
	return nil
}

func (c *Controller) readTokens(ctx context.Context) (string, string, error) {
	accessToken, err := c.store.GetAccessToken(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to read access token: %w", err)
	}
	refreshToken, err := c.store.GetRefreshToken(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to read refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrTokenNotFound) || errors.Is(err, storage.ErrUserNotFound)
}
