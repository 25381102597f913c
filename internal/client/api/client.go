package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/iudanet/phoneauth/internal/client/storage"
	pkgapi "github.com/iudanet/phoneauth/pkg/api"
)

// DefaultTimeout - таймаут HTTP клиента по умолчанию
const DefaultTimeout = 10 * time.Second

// AuthMode определяет, прикладывается ли bearer токен к запросу
type AuthMode int

const (
	// AuthBearer - прикладывать access token и обновлять его при 401
	AuthBearer AuthMode = iota
	// AuthNone - публичный эндпоинт, без токена и без перехвата 401
	AuthNone
	// AuthBearerNoRefresh - прикладывать access token, но 401 не перехватывать
	AuthBearerNoRefresh
)

// Request описывает исходящий запрос к backend
type Request struct {
	Body   any         // тело запроса, сериализуется в JSON
	Header http.Header // дополнительные заголовки
	Method string
	Path   string
	Auth   AuthMode
}

// Response содержит прочитанный ответ backend
type Response struct {
	Header     http.Header
	Body       []byte
	StatusCode int
}

// SessionExpiredFunc вызывается после неудачного обновления токенов,
// когда хранилище уже очищено
type SessionExpiredFunc func(ctx context.Context)

// Client представляет HTTP клиент для взаимодействия с backend
type Client struct {
	httpClient       *http.Client
	store            storage.TokenStore
	logger           *slog.Logger
	onSessionExpired SessionExpiredFunc
	refreshGroup     singleflight.Group
	baseURL          string
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient задает базовый http.Client (транспорт оборачивается логированием)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout задает таймаут одного HTTP запроса
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithSessionExpiredHandler задает реакцию на окончательную потерю сессии
func WithSessionExpiredHandler(fn SessionExpiredFunc) Option {
	return func(c *Client) {
		c.onSessionExpired = fn
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, store storage.TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		store:   store,
		logger:  slog.Default(),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	hc.Transport = newLoggingTransport(hc.Transport, c.logger)
	c.httpClient = &hc

	return c
}

// SetSessionExpiredHandler задает обработчик после создания клиента.
// Нужен, когда обработчик принадлежит компоненту, которому сам нужен Client.
func (c *Client) SetSessionExpiredHandler(fn SessionExpiredFunc) {
	c.onSessionExpired = fn
}

// Do выполняет запрос. Для AuthBearer прикладывает access token, а на 401
// один раз обновляет токены и повторяет запрос. Повторный 401 завершает
// запрос ошибкой ErrAuthRejected без второго обновления. AuthBearerNoRefresh
// прикладывает токен, но 401 возвращает сразу.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	accessToken := ""
	if req.Auth != AuthNone {
		accessToken = c.currentAccessToken(ctx)
	}

	resp, err := c.send(ctx, req, accessToken)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && req.Auth == AuthBearer {
		// Без refresh токена обновлять нечего - отдаем исходную ошибку
		if _, err := c.store.GetRefreshToken(ctx); err != nil {
			return nil, newHTTPError(resp)
		}

		newAccessToken, err := c.refresh(ctx)
		if err != nil {
			// Отмена вызывающим или уже завершенная сессия - не повод для выхода
			if !refreshAborted(ctx, err) {
				c.expireSession(ctx)
			}
			return nil, err
		}

		c.logger.Debug("tokens refreshed, retrying request", "method", req.Method, "path", req.Path)

		// Единственный повтор; его 401 уже не перехватывается
		resp, err = c.send(ctx, req, newAccessToken)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPError(resp)
	}

	return resp, nil
}

// RefreshTokens обменивает сохраненный refresh token на новую пару и
// сохраняет ее. Ошибка оборачивает ErrTokenExpired, кроме отмены ctx:
// тогда возвращается ctx.Err(), а общее обновление продолжается.
func (c *Client) RefreshTokens(ctx context.Context) error {
	_, err := c.refresh(ctx)
	return err
}

// refresh объединяет одновременные обновления в один запрос к backend.
// Общий запрос не зависит от отмены ctx отдельного вызывающего и
// ограничен таймаутом HTTP клиента.
func (c *Client) refresh(ctx context.Context) (string, error) {
	ch := c.refreshGroup.DoChan("refresh", func() (any, error) {
		return c.doRefresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// refreshAborted отличает прерванное обновление от отказа backend
func refreshAborted(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, storage.ErrSessionCleared)
}

func (c *Client) doRefresh(ctx context.Context) (string, error) {
	// Поколение фиксируется до запроса: если за это время сессию очистили,
	// полученная пара не сохраняется
	gen := c.store.Generation()

	refreshToken, err := c.store.GetRefreshToken(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: no refresh token: %w", ErrTokenExpired, err)
	}

	// Запрос обновления не проходит через перехват 401
	resp, err := c.send(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		Body:   pkgapi.RefreshRequest{RefreshToken: refreshToken},
		Auth:   AuthNone,
	}, "")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenExpired, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %w", ErrTokenExpired, newHTTPError(resp))
	}

	pair, err := decodeData[pkgapi.TokenPair](resp)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenExpired, err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return "", fmt.Errorf("%w: refresh response has no token pair", ErrTokenExpired)
	}

	if err := c.store.SetTokensIfCurrent(ctx, gen, pair.AccessToken, pair.RefreshToken); err != nil {
		return "", fmt.Errorf("%w: failed to save tokens: %w", ErrTokenExpired, err)
	}

	return pair.AccessToken, nil
}

// expireSession очищает хранилище и сообщает о потере сессии
func (c *Client) expireSession(ctx context.Context) {
	if err := c.store.ClearAll(ctx); err != nil {
		c.logger.Warn("failed to clear session storage", "error", err)
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired(ctx)
	}
}

func (c *Client) currentAccessToken(ctx context.Context) string {
	token, err := c.store.GetAccessToken(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrTokenNotFound) {
			c.logger.Warn("failed to read access token", "error", err)
		}
		return ""
	}
	return token
}

// send выполняет один HTTP запрос и читает тело ответа
func (c *Client) send(ctx context.Context, req Request, accessToken string) (*Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		jsonData, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(pkgapi.HeaderRequestID, uuid.NewString())
	if accessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrNetwork, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// newHTTPError извлекает сообщение из тела неуспешного ответа
func newHTTPError(resp *Response) *HTTPError {
	httpErr := &HTTPError{StatusCode: resp.StatusCode}

	var errResp pkgapi.ErrorResponse
	if err := json.Unmarshal(resp.Body, &errResp); err == nil {
		httpErr.Message = errResp.Message
		if httpErr.Message == "" {
			httpErr.Message = errResp.Error
		}
	}

	return httpErr
}

func decodeJSON(resp *Response, v any) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", ErrServer, err)
	}
	return nil
}

// decodeData декодирует конверт {success, message, data} и возвращает data
func decodeData[T any](resp *Response) (*T, error) {
	var envelope pkgapi.Response[T]
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrServer, err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("%w: response has no data", ErrServer)
	}
	return envelope.Data, nil
}
