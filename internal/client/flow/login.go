package flow

import (
	"context"
)

// LoginFlow - сценарий входа: phone → otp → success, с возвратом otp → phone
type LoginFlow struct {
	core
}

// NewLoginFlow создает сценарий входа на шаге ввода номера
func NewLoginFlow(auth Authenticator, opts ...Option) *LoginFlow {
	f := &LoginFlow{}
	f.setup(auth, opts)
	return f
}

// SubmitPhone отправляет код входа и переводит сценарий на шаг otp
func (f *LoginFlow) SubmitPhone(ctx context.Context, phone string) (string, error) {
	return f.submitPhone(ctx, phone, f.auth.SendLoginOTP, "login failed")
}

// EnterDigit вводит цифру кода; при заполнении всех позиций код
// отправляется автоматически. Возвращает true, если была попытка входа.
func (f *LoginFlow) EnterDigit(ctx context.Context, d rune) (bool, error) {
	return f.enterDigit(ctx, d, f.VerifyOTP)
}

// VerifyOTP выполняет вход по коду
func (f *LoginFlow) VerifyOTP(ctx context.Context, code string) error {
	return f.verifyOTP(ctx, code, f.auth.Login, "Login failed", func() {
		f.step = StepSuccess
	})
}

// Resend повторно отправляет код входа
func (f *LoginFlow) Resend(ctx context.Context) error {
	return f.resend(ctx, f.auth.SendLoginOTP)
}

// Back возвращает с шага otp на ввод номера; номер сохраняется для показа,
// введенные цифры отбрасываются
func (f *LoginFlow) Back() {
	f.mu.Lock()
	if f.step != StepOTP {
		f.mu.Unlock()
		return
	}
	f.attempt++
	f.busy = false
	f.errMsg = ""
	f.toPhone()
	f.mu.Unlock()

	f.auth.ClearError()
}

// Reset начинает сценарий заново
func (f *LoginFlow) Reset() {
	f.mu.Lock()
	f.reset()
	f.mu.Unlock()
}
