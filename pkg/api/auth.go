package api

import "github.com/iudanet/phoneauth/internal/models"

// Заголовки, через которые backend передает токены и temp token
const (
	HeaderAccessToken  = "X-Access-Token"
	HeaderRefreshToken = "X-Refresh-Token"
	HeaderTempToken    = "X-Temp-Token"
	HeaderRequestID    = "X-Request-ID"
)

// Response представляет общий конверт ответа backend
type Response[T any] struct {
	Data    *T     `json:"data,omitempty"` // полезная нагрузка
	Message string `json:"message"`        // сообщение для пользователя
	Success bool   `json:"success"`        // признак успеха
}

// StatusResponse представляет ответ без полезной нагрузки
type StatusResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// PhoneRequest представляет запрос на отправку OTP (login и signup)
type PhoneRequest struct {
	Phone string `json:"phone"` // номер телефона в формате E.164
}

// OTPVerificationRequest представляет запрос на проверку OTP
type OTPVerificationRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// RegistrationRequest представляет данные завершения регистрации
type RegistrationRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth,omitempty"` // YYYY-MM-DD
	Gender      string `json:"gender,omitempty"`      // male, female, other
}

// RefreshRequest представляет запрос на обновление токенов
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// OAuthCallbackRequest представляет обмен authorization code
type OAuthCallbackRequest struct {
	Code string `json:"code"`
}

// TokenPair представляет пару токенов доступа
type TokenPair struct {
	AccessToken  string `json:"accessToken"`  // короткоживущий токен (~1 день)
	RefreshToken string `json:"refreshToken"` // долгоживущий токен (~7 дней)
}

// UserPayload представляет поле data с профилем пользователя
type UserPayload struct {
	User models.User `json:"user"`
}

// OAuthURLPayload представляет поле data с URL провайдера
type OAuthURLPayload struct {
	URL string `json:"url"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}
