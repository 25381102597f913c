package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Виды ошибок сетевого слоя
var (
	// ErrNetwork - запрос не удалось выполнить (соединение, таймаут)
	ErrNetwork = errors.New("network error")

	// ErrAuthRejected - backend отклонил учетные данные (401/403)
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrTokenExpired - не удалось обновить токены, сессия недействительна
	ErrTokenExpired = errors.New("session expired")

	// ErrServer - ошибка backend (5xx) или неожиданный формат ответа
	ErrServer = errors.New("server error")
)

// HTTPError описывает ответ backend с неуспешным статусом
type HTTPError struct {
	Message    string // сообщение из тела ответа, пригодное для показа
	StatusCode int
}

// Error implements error
func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Unwrap сопоставляет статус с видом ошибки
func (e *HTTPError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return ErrAuthRejected
	case e.StatusCode >= http.StatusInternalServerError:
		return ErrServer
	default:
		return nil
	}
}

// UserMessage возвращает сообщение backend из цепочки ошибок или fallback
func UserMessage(err error, fallback string) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return fallback
}
