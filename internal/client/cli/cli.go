package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/phoneauth/internal/client/api"
	"github.com/iudanet/phoneauth/internal/client/iocli"
	"github.com/iudanet/phoneauth/internal/validation"
)

// ErrNotAuthenticated - команда требует активной сессии
var ErrNotAuthenticated = errors.New("not authenticated. Please run 'phoneauth login' first")

// ErrUsage - неверные аргументы команды
var ErrUsage = errors.New("invalid usage")

type Cli struct {
	io   iocli.IO
	ctrl Controller
	now  func() time.Time
}

func New(io iocli.IO, ctrl Controller) *Cli {
	return &Cli{
		io:   io,
		ctrl: ctrl,
		now:  time.Now,
	}
}

func (c *Cli) PrintUsage() {
	c.io.Println("PhoneAuth Client")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  phoneauth [OPTIONS] COMMAND")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  --version                   Show version information")
	c.io.Println("  --server URL                Server URL (default: http://localhost:8080)")
	c.io.Println("  --db PATH                   Path to local database (default: phoneauth-client.db)")
	c.io.Println("  --storage-passphrase TEXT   Encrypt stored tokens with a passphrase")
	c.io.Println("  --log-level LEVEL           debug, info, warn, error (default: warn)")
	c.io.Println("  --timeout DURATION          HTTP request timeout (default: 10s)")
	c.io.Println()
	c.io.Println("Every option can also be set via PHONEAUTH_* environment variables or a .env file.")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  login                       Login with phone number and one-time code")
	c.io.Println("  signup                      Create a new account")
	c.io.Println("  logout                      End the session")
	c.io.Println("  status                      Show session status and profile")
	c.io.Println("  oauth <provider>            Print the sign-in URL of google, facebook or github")
	c.io.Println("  oauth-callback <url>        Finish OAuth sign-in with the redirect URL")
	c.io.Println("  refresh                     Refresh the token pair now")
	c.io.Println("  watch                       Keep the session fresh until interrupted")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  phoneauth login")
	c.io.Println("  phoneauth --server https://api.example.com signup")
	c.io.Println("  phoneauth oauth github")
	c.io.Println("  phoneauth oauth-callback 'http://localhost:3000/auth/callback?provider=github&code=...'")
}

// printFailure выводит сообщение для пользователя, если оно есть
func (c *Cli) printFailure(msg string) {
	if msg != "" {
		c.io.Printf("✗ %s\n", msg)
	}
}

// retryable истинно для ошибок, после которых пользователь может
// исправить ввод: локальная проверка или отказ backend с кодом 4xx
func retryable(err error) bool {
	if errors.Is(err, validation.ErrValidation) {
		return true
	}
	var httpErr *api.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode < 500
}

func requireArg(args []string, name string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("%w: expected <%s>", ErrUsage, name)
	}
	return args[0], nil
}
