package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/phoneauth/internal/client/flow"
	"github.com/iudanet/phoneauth/internal/validation"
)

// otpFlow - общие шаги входа и регистрации: номер телефона и код
type otpFlow interface {
	SubmitPhone(ctx context.Context, phone string) (string, error)
	EnterDigit(ctx context.Context, d rune) (bool, error)
	Resend(ctx context.Context) error
	Back()
	Step() flow.Step
	Snapshot() flow.Snapshot
	ResendIn() time.Duration
}

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	if c.ctrl.Session().IsAuthenticated() {
		c.io.Println("Already logged in. Run 'phoneauth logout' first to switch accounts.")
		return nil
	}

	f := flow.NewLoginFlow(c.ctrl, flow.WithClock(c.now))
	if err := c.phoneAndCode(ctx, f); err != nil {
		return err
	}

	c.printWelcome("✓ Login successful!")
	return nil
}

// phoneAndCode проводит сценарий через шаги phone и otp. Возвращает nil,
// когда сценарий перешел дальше шага otp.
func (c *Cli) phoneAndCode(ctx context.Context, f otpFlow) error {
	for {
		switch f.Step() {
		case flow.StepPhone:
			if err := c.askPhone(ctx, f); err != nil {
				return err
			}
		case flow.StepOTP:
			if err := c.askCode(ctx, f); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (c *Cli) askPhone(ctx context.Context, f otpFlow) error {
	prompt := "Phone number: "
	if phone := f.Snapshot().Phone; phone != "" {
		prompt = fmt.Sprintf("Phone number [%s]: ", phone)
	}

	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return fmt.Errorf("failed to read phone number: %w", err)
	}
	if input == "" {
		input = f.Snapshot().Phone
	}

	msg, err := f.SubmitPhone(ctx, input)
	if err != nil {
		c.printFailure(f.Snapshot().Error)
		if retryable(err) {
			return nil
		}
		return err
	}

	c.io.Printf("✓ %s\n", msg)
	c.io.Printf("Code sent to %s\n", f.Snapshot().Phone)
	return nil
}

func (c *Cli) askCode(ctx context.Context, f otpFlow) error {
	input, err := c.io.ReadSecret(fmt.Sprintf("Code (%d digits, 'r' to resend, 'b' to go back): ", validation.OTPLength))
	if err != nil {
		return fmt.Errorf("failed to read code: %w", err)
	}

	switch strings.ToLower(input) {
	case "b":
		f.Back()
		return nil
	case "r":
		if err := f.Resend(ctx); err != nil {
			if errors.Is(err, flow.ErrResendTooSoon) {
				c.io.Printf("Resend available in %s\n", f.ResendIn().Round(time.Second))
				return nil
			}
			c.printFailure(f.Snapshot().Error)
			if retryable(err) {
				return nil
			}
			return err
		}
		c.io.Printf("✓ %s\n", f.Snapshot().Message)
		return nil
	}

	if err := validation.ValidateOTP(input); err != nil {
		c.printFailure(flow.MsgEnterAllDigits)
		return nil
	}

	// Цифры идут в поле кода по одной; последняя отправляет код на проверку
	for _, d := range input {
		complete, err := f.EnterDigit(ctx, d)
		if err != nil {
			c.printFailure(f.Snapshot().Error)
			if retryable(err) {
				return nil
			}
			return err
		}
		if complete {
			return nil
		}
	}
	c.printFailure(flow.MsgEnterAllDigits)
	return nil
}

func (c *Cli) printWelcome(title string) {
	c.io.Println()
	c.io.Println(title)
	if user := c.ctrl.Session().User; user != nil {
		c.io.Printf("Welcome, %s!\n", user.DisplayName())
	}
	c.io.Println("Your session has been saved.")
}
