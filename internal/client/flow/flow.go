// Package flow реализует пошаговые сценарии входа и регистрации поверх
// контроллера сессии. Потоки не знают о токенах: каждый шаг вперед
// выполняется только после успешного вызова контроллера.
package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/phoneauth/internal/client/api"
	"github.com/iudanet/phoneauth/internal/validation"
	pkgapi "github.com/iudanet/phoneauth/pkg/api"
)

// ResendCooldown - через сколько можно запросить код повторно
const ResendCooldown = 60 * time.Second

// Сообщения, показываемые пользователю
const (
	MsgEnterAllDigits = "Please enter all 4 digits"
	MsgResendFailed   = "Failed to resend OTP"
	MsgInvalidOTP     = "Invalid OTP"
)

var (
	// ErrSubmitInProgress - запрос этого шага уже выполняется или выполнен
	ErrSubmitInProgress = errors.New("submission already in progress")
	// ErrStaleAttempt - ответ пришел после Back/Reset и отброшен
	ErrStaleAttempt = errors.New("response belongs to an abandoned attempt")
	// ErrWrongStep - операция недоступна на текущем шаге
	ErrWrongStep = errors.New("operation not allowed at this step")
	// ErrResendTooSoon - повторная отправка раньше окончания отсчета
	ErrResendTooSoon = errors.New("resend not available yet")
)

// Step - шаг сценария
type Step int

const (
	// StepPhone - ввод номера телефона
	StepPhone Step = iota
	// StepOTP - ввод кода подтверждения
	StepOTP
	// StepRegistration - заполнение профиля (только регистрация)
	StepRegistration
	// StepSuccess - сценарий завершен
	StepSuccess
)

// String implements fmt.Stringer
func (s Step) String() string {
	switch s {
	case StepPhone:
		return "phone"
	case StepOTP:
		return "otp"
	case StepRegistration:
		return "registration"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Authenticator - операции контроллера сессии, нужные сценариям.
// Реализуется *auth.Controller.
type Authenticator interface {
	SendLoginOTP(ctx context.Context, phone string) (string, error)
	Login(ctx context.Context, phone, otp string) error
	Signup(ctx context.Context, phone string) (string, error)
	VerifySignupOTP(ctx context.Context, phone, otp string) (string, error)
	CompleteRegistration(ctx context.Context, req pkgapi.RegistrationRequest, tempToken string) error
	InitiateOAuth(ctx context.Context, provider string) (string, error)
	ClearError()
}

// Snapshot - состояние сценария для отображения
type Snapshot struct {
	ResendAt time.Time
	Phone    string
	Message  string // последнее информационное сообщение backend
	Error    string // сообщение об ошибке, сбрасывается DismissError
	Digits   []string
	Step     Step
	Focus    int
	Busy     bool
}

// Option настраивает сценарий
type Option func(*core)

// WithClock подменяет источник времени для отсчета повторной отправки
func WithClock(now func() time.Time) Option {
	return func(c *core) {
		c.now = now
	}
}

// core - общая часть сценариев входа и регистрации
type core struct {
	auth     Authenticator
	now      func() time.Time
	otp      *OTPInput
	resendAt time.Time
	phone    string
	message  string
	errMsg   string
	attempt  uint64
	mu       sync.Mutex
	step     Step
	sending  bool // отправка номера в процессе
	sent     bool // номер принят, повторная отправка заблокирована
	busy     bool // проверка кода или регистрация в процессе
}

func (c *core) setup(auth Authenticator, opts []Option) {
	c.auth = auth
	c.now = time.Now
	c.otp = NewOTPInput()
	c.step = StepPhone
	for _, opt := range opts {
		opt(c)
	}
}

// Snapshot возвращает копию состояния
func (c *core) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Step:     c.step,
		Phone:    c.phone,
		Message:  c.message,
		Error:    c.errMsg,
		Digits:   c.otp.Digits(),
		Focus:    c.otp.Focus(),
		ResendAt: c.resendAt,
		Busy:     c.sending || c.busy,
	}
}

// Step возвращает текущий шаг
func (c *core) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// DismissError скрывает сообщение об ошибке
func (c *core) DismissError() {
	c.mu.Lock()
	c.errMsg = ""
	c.mu.Unlock()
	c.auth.ClearError()
}

// CanResend сообщает, закончился ли отсчет повторной отправки
func (c *core) CanResend() bool {
	return c.ResendIn() == 0
}

// ResendIn возвращает остаток отсчета повторной отправки
func (c *core) ResendIn() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != StepOTP {
		return 0
	}
	left := c.resendAt.Sub(c.now())
	if left < 0 {
		return 0
	}
	return left
}

// Backspace редактирует поле кода
func (c *core) Backspace() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.otp.Backspace()
}

// StartOAuth запрашивает URL провайдера. Ошибка сохраняется в сценарии.
func (c *core) StartOAuth(ctx context.Context, provider string) (string, error) {
	if !IsKnownProvider(provider) {
		err := fmt.Errorf("%w: unknown OAuth provider %q", validation.ErrValidation, provider)
		c.setError(err.Error())
		return "", err
	}

	url, err := c.auth.InitiateOAuth(ctx, provider)
	if err != nil {
		c.setError(api.UserMessage(err, "OAuth initialization failed"))
		return "", err
	}
	return url, nil
}

func (c *core) setError(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

// submitPhone проверяет номер и отправляет код. Повторный вызов во время
// отправки или после успеха не делает запроса.
func (c *core) submitPhone(ctx context.Context, input string, send func(context.Context, string) (string, error), fallback string) (string, error) {
	if err := validation.ValidatePhone(input); err != nil {
		c.setError(validationMessage(err))
		return "", err
	}
	phone := validation.FormatPhoneNumber(input)

	c.mu.Lock()
	if c.sending || c.sent {
		c.mu.Unlock()
		return "", ErrSubmitInProgress
	}
	if c.step != StepPhone {
		c.mu.Unlock()
		return "", ErrWrongStep
	}
	c.sending = true
	attempt := c.attempt
	c.mu.Unlock()

	msg, err := send(ctx, phone)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sending = false
	if attempt != c.attempt {
		return "", ErrStaleAttempt
	}
	if err != nil {
		c.errMsg = api.UserMessage(err, fallback)
		return "", err
	}

	c.sent = true
	c.phone = phone
	c.message = msg
	c.errMsg = ""
	c.step = StepOTP
	c.otp.Clear()
	c.resendAt = c.now().Add(ResendCooldown)
	return msg, nil
}

// enterDigit вводит цифру и при заполнении всех позиций отправляет код
func (c *core) enterDigit(ctx context.Context, d rune, verify func(context.Context, string) error) (bool, error) {
	c.mu.Lock()
	if c.step != StepOTP {
		c.mu.Unlock()
		return false, ErrWrongStep
	}
	code, complete := c.otp.Enter(d)
	c.errMsg = ""
	c.mu.Unlock()

	if !complete {
		return false, nil
	}
	return true, verify(ctx, code)
}

// verifyOTP проверяет код через check; при успехе вызывает advance под
// блокировкой, при ошибке очищает цифры и возвращает фокус на начало
func (c *core) verifyOTP(ctx context.Context, code string, check func(ctx context.Context, phone, code string) error, fallback string, advance func()) error {
	if err := validation.ValidateOTP(code); err != nil {
		c.setError(MsgEnterAllDigits)
		return err
	}

	c.mu.Lock()
	if c.step != StepOTP {
		c.mu.Unlock()
		return ErrWrongStep
	}
	if c.busy {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}
	c.busy = true
	attempt := c.attempt
	phone := c.phone
	c.mu.Unlock()

	err := check(ctx, phone, code)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if attempt != c.attempt {
		return ErrStaleAttempt
	}
	if err != nil {
		c.errMsg = api.UserMessage(err, fallback)
		c.otp.Clear()
		return err
	}

	c.errMsg = ""
	advance()
	return nil
}

// resend повторно отправляет код после окончания отсчета
func (c *core) resend(ctx context.Context, send func(context.Context, string) (string, error)) error {
	c.mu.Lock()
	if c.step != StepOTP {
		c.mu.Unlock()
		return ErrWrongStep
	}
	if c.now().Before(c.resendAt) {
		c.mu.Unlock()
		return ErrResendTooSoon
	}
	attempt := c.attempt
	phone := c.phone
	c.mu.Unlock()

	msg, err := send(ctx, phone)

	c.mu.Lock()
	defer c.mu.Unlock()
	if attempt != c.attempt {
		return ErrStaleAttempt
	}
	if err != nil {
		c.errMsg = api.UserMessage(err, MsgResendFailed)
		return err
	}

	c.message = msg
	c.errMsg = ""
	c.otp.Clear()
	c.resendAt = c.now().Add(ResendCooldown)
	return nil
}

// toPhone возвращает сценарий на ввод номера, сохраняя номер для показа.
// Вызывается под блокировкой.
func (c *core) toPhone() {
	c.step = StepPhone
	c.sent = false
	c.otp.Clear()
	c.resendAt = time.Time{}
}

// reset начинает сценарий заново. Вызывается под блокировкой.
func (c *core) reset() {
	c.attempt++
	c.toPhone()
	c.phone = ""
	c.message = ""
	c.errMsg = ""
	c.busy = false
	c.sending = false
}

// validationMessage убирает префикс ErrValidation для показа пользователю
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), validation.ErrValidation.Error()+": ")
}
