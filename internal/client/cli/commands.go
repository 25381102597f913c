package cli

import (
	"context"
	"fmt"
)

// Run выполняет команду; args - аргументы после имени команды
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "signup":
		return c.runSignup(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "oauth":
		provider, err := requireArg(args, "provider")
		if err != nil {
			return err
		}
		return c.runOAuth(ctx, provider)
	case "oauth-callback":
		redirectURL, err := requireArg(args, "redirect-url")
		if err != nil {
			return err
		}
		return c.runOAuthCallback(ctx, redirectURL)
	case "refresh":
		return c.runRefresh(ctx)
	case "watch":
		return c.runWatch(ctx)
	default:
		c.PrintUsage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}
