package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/iudanet/phoneauth/internal/client/flow"
)

func (c *Cli) runOAuth(ctx context.Context, provider string) error {
	c.io.Println("=== OAuth Sign-in ===")
	c.io.Println()

	f := flow.NewLoginFlow(c.ctrl)
	url, err := f.StartOAuth(ctx, provider)
	if err != nil {
		c.printFailure(f.Snapshot().Error)
		names := make([]string, 0, len(flow.Providers))
		for _, p := range flow.Providers {
			names = append(names, p.ID)
		}
		c.io.Printf("Available providers: %s\n", strings.Join(names, ", "))
		return err
	}

	c.io.Println("Open this URL in your browser:")
	c.io.Printf("  %s\n", url)
	c.io.Println()
	c.io.Println("After signing in, pass the redirect URL to:")
	c.io.Println("  phoneauth oauth-callback '<redirect-url>'")
	return nil
}

func (c *Cli) runOAuthCallback(ctx context.Context, redirectURL string) error {
	c.io.Println("=== OAuth Sign-in ===")
	c.io.Println()

	if err := flow.CompleteOAuth(ctx, c.ctrl, redirectURL); err != nil {
		switch {
		case errors.Is(err, flow.ErrOAuthCancelled):
			c.printFailure(flow.MsgOAuthCancelled)
		case errors.Is(err, flow.ErrInvalidCallback):
			c.printFailure(flow.MsgInvalidCallback)
		default:
			c.printFailure(c.ctrl.Session().Error)
		}
		return err
	}

	c.printWelcome("✓ Login successful!")
	return nil
}
