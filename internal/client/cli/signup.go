package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/phoneauth/internal/client/flow"
)

const dateLayout = "2006-01-02"

func (c *Cli) runSignup(ctx context.Context) error {
	c.io.Println("=== Sign Up ===")
	c.io.Println()

	if c.ctrl.Session().IsAuthenticated() {
		c.io.Println("Already logged in. Run 'phoneauth logout' first to create another account.")
		return nil
	}

	f := flow.NewSignupFlow(c.ctrl, flow.WithClock(c.now))
	for {
		switch f.Step() {
		case flow.StepPhone, flow.StepOTP:
			if err := c.phoneAndCode(ctx, f); err != nil {
				return err
			}
		case flow.StepRegistration:
			if err := c.askRegistration(ctx, f); err != nil {
				return err
			}
		case flow.StepSuccess:
			c.printWelcome("✓ Registration successful!")
			return nil
		}
	}
}

func (c *Cli) askRegistration(ctx context.Context, f *flow.SignupFlow) error {
	c.io.Println()
	c.io.Println("Phone verified. Complete your profile ('b' in first name to go back).")

	form, back, err := c.readRegistrationForm()
	if err != nil {
		return err
	}
	if back {
		f.Back()
		c.io.Println("Request a new code with 'r'.")
		return nil
	}

	if err := f.SubmitRegistration(ctx, form); err != nil {
		c.printFailure(f.Snapshot().Error)
		if retryable(err) {
			return nil
		}
		return err
	}
	return nil
}

func (c *Cli) readRegistrationForm() (flow.RegistrationForm, bool, error) {
	var form flow.RegistrationForm

	firstName, err := c.io.ReadInput("First name: ")
	if err != nil {
		return form, false, fmt.Errorf("failed to read first name: %w", err)
	}
	if strings.EqualFold(firstName, "b") {
		return form, true, nil
	}
	form.FirstName = firstName

	fields := []struct {
		dst    *string
		prompt string
	}{
		{&form.LastName, "Last name (optional): "},
		{&form.Email, "Email (optional): "},
		{&form.Gender, "Gender (optional): "},
	}
	for _, field := range fields {
		if *field.dst, err = c.io.ReadInput(field.prompt); err != nil {
			return form, false, fmt.Errorf("failed to read input: %w", err)
		}
	}

	for {
		dob, err := c.io.ReadInput("Date of birth YYYY-MM-DD (optional): ")
		if err != nil {
			return form, false, fmt.Errorf("failed to read date of birth: %w", err)
		}
		if dob == "" {
			break
		}
		if _, err := time.Parse(dateLayout, dob); err != nil {
			c.printFailure("Date of birth must be in YYYY-MM-DD format")
			continue
		}
		form.DateOfBirth = dob
		break
	}

	return form, false, nil
}
