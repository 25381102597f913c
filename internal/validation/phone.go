package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// ErrValidation оборачивает все ошибки некорректного ввода.
// Такие ошибки обрабатываются локально и не доходят до сетевого слоя.
var ErrValidation = errors.New("validation failed")

// PhonePattern определяет допустимые символы номера телефона:
// необязательный +, цифры, пробелы, дефисы и скобки
var PhonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

// NamePattern - только латинские буквы и пробелы
var NamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

var (
	otpPattern       = regexp.MustCompile(`^\d{4}$`)
	legacyOTPPattern = regexp.MustCompile(`^\d{6}$`)
	nonPhoneChars    = regexp.MustCompile(`[^\d+]`)
)

const (
	// MinPhoneLen минимальная длина введенного номера
	MinPhoneLen = 10
	// OTPLength длина кода подтверждения, который принимает backend
	OTPLength = 4
	// LegacyOTPLength длина кода из старого правила валидации
	LegacyOTPLength = 6
	// MinNameLen минимальная длина имени
	MinNameLen = 2
	// MaxNameLen максимальная длина имени
	MaxNameLen = 50
	// DefaultCountryCode добавляется к номерам без кода страны
	DefaultCountryCode = "+1"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ValidatePhone проверяет введенный номер телефона
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return invalid("phone number cannot be empty")
	}
	if len(phone) < MinPhoneLen {
		return invalid("phone number must be at least %d digits", MinPhoneLen)
	}
	if !PhonePattern.MatchString(phone) {
		return invalid("invalid phone number format")
	}
	return nil
}

// FormatPhoneNumber нормализует номер: удаляет все символы кроме цифр и +,
// при отсутствии кода страны добавляет +1
func FormatPhoneNumber(phone string) string {
	cleaned := nonPhoneChars.ReplaceAllString(phone, "")
	if !strings.HasPrefix(cleaned, "+") {
		return DefaultCountryCode + cleaned
	}
	return cleaned
}

// ValidateOTP проверяет код подтверждения: ровно 4 цифры
func ValidateOTP(otp string) error {
	if !otpPattern.MatchString(otp) {
		return invalid("OTP must be exactly %d digits", OTPLength)
	}
	return nil
}

// ValidateOTPLegacy проверяет код по правилу из 6 цифр.
//
// Deprecated: backend и экран ввода используют 4-значные коды, правило
// не совпадает с ValidateOTP и не используется в потоках входа.
func ValidateOTPLegacy(otp string) error {
	if !legacyOTPPattern.MatchString(otp) {
		return invalid("OTP must be exactly %d digits", LegacyOTPLength)
	}
	return nil
}

// ValidateName проверяет полное имя пользователя: 2-50 символов, буквы и пробелы
func ValidateName(name string) error {
	if len(name) < MinNameLen {
		return invalid("name must be at least %d characters", MinNameLen)
	}
	if len(name) > MaxNameLen {
		return invalid("name cannot exceed %d characters", MaxNameLen)
	}
	if !NamePattern.MatchString(name) {
		return invalid("name can only contain letters and spaces")
	}
	return nil
}

// ValidateEmail проверяет адрес электронной почты
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("invalid email address")
	}
	return nil
}

// Registration содержит поля формы завершения регистрации
type Registration struct {
	FirstName string
	LastName  string // опционально
	Email     string // опционально
}

// FullName склеивает имя и фамилию для отправки на backend
func (r Registration) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}

// ValidateRegistration проверяет форму регистрации
func ValidateRegistration(r Registration) error {
	if len(strings.TrimSpace(r.FirstName)) < MinNameLen {
		return invalid("first name must be at least %d characters", MinNameLen)
	}
	if err := ValidateName(r.FullName()); err != nil {
		return err
	}
	if r.Email != "" {
		if err := ValidateEmail(r.Email); err != nil {
			return err
		}
	}
	return nil
}
