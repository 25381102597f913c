package flow

import (
	"context"
	"strings"

	"github.com/iudanet/phoneauth/internal/client/api"
	"github.com/iudanet/phoneauth/internal/validation"
	pkgapi "github.com/iudanet/phoneauth/pkg/api"
)

// RegistrationForm - данные шага регистрации
type RegistrationForm struct {
	validation.Registration
	DateOfBirth string // YYYY-MM-DD, опционально
	Gender      string // опционально
}

// SignupFlow - сценарий регистрации: phone → otp → registration → success.
// Temp token живет только в памяти сценария.
type SignupFlow struct {
	tempToken string
	core
}

// NewSignupFlow создает сценарий регистрации на шаге ввода номера
func NewSignupFlow(auth Authenticator, opts ...Option) *SignupFlow {
	f := &SignupFlow{}
	f.setup(auth, opts)
	return f
}

// SubmitPhone отправляет код регистрации
func (f *SignupFlow) SubmitPhone(ctx context.Context, phone string) (string, error) {
	return f.submitPhone(ctx, phone, f.auth.Signup, "Failed to send OTP")
}

// EnterDigit вводит цифру кода с автоматической проверкой
func (f *SignupFlow) EnterDigit(ctx context.Context, d rune) (bool, error) {
	return f.enterDigit(ctx, d, f.VerifyOTP)
}

// VerifyOTP проверяет код и сохраняет temp token для шага регистрации
func (f *SignupFlow) VerifyOTP(ctx context.Context, code string) error {
	var tempToken string
	check := func(ctx context.Context, phone, code string) error {
		token, err := f.auth.VerifySignupOTP(ctx, phone, code)
		tempToken = token
		return err
	}
	return f.verifyOTP(ctx, code, check, MsgInvalidOTP, func() {
		f.tempToken = tempToken
		f.step = StepRegistration
	})
}

// Resend повторно отправляет код регистрации
func (f *SignupFlow) Resend(ctx context.Context) error {
	return f.resend(ctx, f.auth.Signup)
}

// SubmitRegistration завершает регистрацию с temp token из шага otp
func (f *SignupFlow) SubmitRegistration(ctx context.Context, form RegistrationForm) error {
	if err := validation.ValidateRegistration(form.Registration); err != nil {
		f.setError(validationMessage(err))
		return err
	}

	f.mu.Lock()
	if f.step != StepRegistration {
		f.mu.Unlock()
		return ErrWrongStep
	}
	if f.busy {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}
	f.busy = true
	attempt := f.attempt
	tempToken := f.tempToken
	req := pkgapi.RegistrationRequest{
		Name:        form.FullName(),
		Email:       strings.TrimSpace(form.Email),
		Phone:       f.phone,
		DateOfBirth: form.DateOfBirth,
		Gender:      form.Gender,
	}
	f.mu.Unlock()

	err := f.auth.CompleteRegistration(ctx, req, tempToken)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if attempt != f.attempt {
		return ErrStaleAttempt
	}
	if err != nil {
		f.errMsg = api.UserMessage(err, "Registration failed")
		return err
	}

	f.errMsg = ""
	f.tempToken = ""
	f.step = StepSuccess
	return nil
}

// TempToken возвращает temp token текущей попытки (пустой вне шага registration)
func (f *SignupFlow) TempToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tempToken
}

// Back: otp → phone, registration → otp. Temp token отбрасывается,
// номер сохраняется.
func (f *SignupFlow) Back() {
	f.mu.Lock()
	switch f.step {
	case StepOTP:
		f.toPhone()
	case StepRegistration:
		f.step = StepOTP
		f.otp.Clear()
		f.tempToken = ""
	default:
		f.mu.Unlock()
		return
	}
	f.attempt++
	f.busy = false
	f.errMsg = ""
	f.mu.Unlock()

	f.auth.ClearError()
}

// Reset начинает сценарий заново
func (f *SignupFlow) Reset() {
	f.mu.Lock()
	f.reset()
	f.tempToken = ""
	f.mu.Unlock()
}
