package cli

import (
	"context"
	"time"

	"github.com/iudanet/phoneauth/internal/client/refresh"
)

// runStatus - экран профиля аутентифицированного пользователя
func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	session := c.ctrl.Session()
	if !session.IsAuthenticated() {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'phoneauth login' or 'phoneauth signup' to authenticate.")
		return nil
	}

	user := session.User
	c.io.Println("Status: Authenticated")
	c.io.Printf("Name: %s\n", user.DisplayName())
	c.io.Printf("Phone: %s\n", user.Phone)
	if user.Email != "" {
		c.io.Printf("Email: %s\n", user.Email)
	}
	c.io.Printf("User ID: %s\n", user.ID)
	if !user.CreatedAt.IsZero() {
		c.io.Printf("Member since: %s\n", user.CreatedAt.Format(dateLayout))
	}

	expiresAt, err := refresh.ExpiresAt(session.AccessToken)
	if err != nil {
		c.io.Printf("\nWarning: access token cannot be decoded: %v\n", err)
		return nil
	}
	if expiresAt.IsZero() {
		c.io.Println("Token expires: never")
		return nil
	}

	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
	if remaining := expiresAt.Sub(c.now()); remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("⚠️  Token has expired. It will be refreshed on the next request.")
	}

	return nil
}
