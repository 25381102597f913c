package flow

import (
	"strings"

	"github.com/iudanet/phoneauth/internal/validation"
)

// OTPInput - поле ввода кода из фиксированного числа цифр с позицией фокуса
type OTPInput struct {
	digits []rune // 0 - пустая позиция
	focus  int
}

// NewOTPInput создает пустое поле на validation.OTPLength цифр
func NewOTPInput() *OTPInput {
	return &OTPInput{digits: make([]rune, validation.OTPLength)}
}

// Enter записывает цифру в позицию фокуса и сдвигает фокус вперед.
// Возвращает код и true, когда заполнены все позиции.
func (o *OTPInput) Enter(d rune) (string, bool) {
	if d < '0' || d > '9' {
		return "", false
	}
	o.digits[o.focus] = d
	if o.focus < len(o.digits)-1 {
		o.focus++
	}
	if !o.Filled() {
		return "", false
	}
	return o.Code(), true
}

// Backspace очищает позицию фокуса, а на пустой позиции переводит фокус назад
func (o *OTPInput) Backspace() {
	if o.digits[o.focus] != 0 {
		o.digits[o.focus] = 0
		return
	}
	if o.focus > 0 {
		o.focus--
	}
}

// SetFocus переводит фокус на позицию i
func (o *OTPInput) SetFocus(i int) {
	if i >= 0 && i < len(o.digits) {
		o.focus = i
	}
}

// Clear очищает все позиции и возвращает фокус на первую
func (o *OTPInput) Clear() {
	for i := range o.digits {
		o.digits[i] = 0
	}
	o.focus = 0
}

// Filled истинно, когда заполнены все позиции
func (o *OTPInput) Filled() bool {
	for _, d := range o.digits {
		if d == 0 {
			return false
		}
	}
	return true
}

// Code возвращает введенные цифры
func (o *OTPInput) Code() string {
	var b strings.Builder
	for _, d := range o.digits {
		if d != 0 {
			b.WriteRune(d)
		}
	}
	return b.String()
}

// Focus возвращает позицию фокуса
func (o *OTPInput) Focus() int {
	return o.focus
}

// Digits возвращает позиции в виде строк, пустая позиция - ""
func (o *OTPInput) Digits() []string {
	out := make([]string, len(o.digits))
	for i, d := range o.digits {
		if d != 0 {
			out[i] = string(d)
		}
	}
	return out
}
