package cli

import (
	"context"

	"github.com/iudanet/phoneauth/internal/client/auth"
	"github.com/iudanet/phoneauth/internal/client/flow"
)

// Controller - операции сессии, которые используют команды.
// Реализуется *auth.Controller.
type Controller interface {
	flow.Authenticator
	flow.CallbackHandler
	Session() auth.Session
	Subscribe(fn auth.Listener)
	Logout(ctx context.Context)
	ForceLogout(ctx context.Context)
	RefreshTokens(ctx context.Context) error
}
