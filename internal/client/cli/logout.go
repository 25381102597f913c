package cli

import (
	"context"
)

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	if !c.ctrl.Session().IsAuthenticated() {
		c.io.Println("No active session.")
		return nil
	}

	// Ошибка backend не мешает локальному выходу
	c.ctrl.Logout(ctx)

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session has been deleted.")

	return nil
}
