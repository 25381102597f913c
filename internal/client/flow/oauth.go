package flow

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// Сообщения для пользователя при разборе callback
const (
	MsgOAuthCancelled  = "OAuth authentication was cancelled or failed"
	MsgInvalidCallback = "Invalid OAuth callback parameters"
)

var (
	// ErrOAuthCancelled - провайдер вернул параметр error
	ErrOAuthCancelled = errors.New("oauth authentication was cancelled or failed")
	// ErrInvalidCallback - в callback нет provider или code
	ErrInvalidCallback = errors.New("invalid oauth callback parameters")
)

// Provider - поддерживаемый OAuth провайдер
type Provider struct {
	ID   string
	Name string
}

// Providers - провайдеры, предлагаемые на шаге ввода номера
var Providers = []Provider{
	{ID: "google", Name: "Google"},
	{ID: "facebook", Name: "Facebook"},
	{ID: "github", Name: "GitHub"},
}

// IsKnownProvider проверяет идентификатор провайдера
func IsKnownProvider(id string) bool {
	for _, p := range Providers {
		if p.ID == id {
			return true
		}
	}
	return false
}

// OAuthCallback - параметры возврата от провайдера
type OAuthCallback struct {
	Provider string
	Code     string
}

// ParseOAuthCallback разбирает URL, на который провайдер вернул пользователя
func ParseOAuthCallback(rawURL string) (OAuthCallback, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return OAuthCallback{}, fmt.Errorf("%w: %w", ErrInvalidCallback, err)
	}

	q := u.Query()
	if q.Get("error") != "" {
		return OAuthCallback{}, ErrOAuthCancelled
	}

	cb := OAuthCallback{Provider: q.Get("provider"), Code: q.Get("code")}
	if cb.Provider == "" || cb.Code == "" {
		return OAuthCallback{}, ErrInvalidCallback
	}
	return cb, nil
}

// CallbackHandler завершает OAuth вход. Реализуется *auth.Controller.
type CallbackHandler interface {
	HandleOAuthCallback(ctx context.Context, provider, code string) error
}

// CompleteOAuth разбирает redirect URL и обменивает code на сессию
func CompleteOAuth(ctx context.Context, h CallbackHandler, rawURL string) error {
	cb, err := ParseOAuthCallback(rawURL)
	if err != nil {
		return err
	}
	return h.HandleOAuthCallback(ctx, cb.Provider, cb.Code)
}
