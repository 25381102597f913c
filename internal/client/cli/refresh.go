package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iudanet/phoneauth/internal/client/auth"
	"github.com/iudanet/phoneauth/internal/client/storage"
)

// ErrSessionExpired - сессия закончилась, нужен повторный вход
var ErrSessionExpired = errors.New("session expired, please login again")

func (c *Cli) runRefresh(ctx context.Context) error {
	if !c.ctrl.Session().IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if err := c.ctrl.RefreshTokens(ctx); err != nil {
		// Прерванное обновление сессию не завершает
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return err
		}
		if !errors.Is(err, storage.ErrSessionCleared) {
			c.ctrl.ForceLogout(ctx)
		}
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	c.io.Println("✓ Tokens refreshed")
	return nil
}

// runWatch держит процесс, пока фоновый монитор обновляет токены.
// Завершается по отмене ctx или когда сессия заканчивается.
func (c *Cli) runWatch(ctx context.Context) error {
	if !c.ctrl.Session().IsAuthenticated() {
		return ErrNotAuthenticated
	}

	ended := make(chan struct{})
	var once sync.Once
	c.ctrl.Subscribe(func(prev, next auth.Session) {
		switch {
		case prev.IsAuthenticated() && !next.IsAuthenticated():
			once.Do(func() { close(ended) })
		case next.IsAuthenticated() && prev.AccessToken != next.AccessToken:
			c.io.Printf("[%s] Tokens refreshed\n", c.now().Format(time.TimeOnly))
		}
	})

	// сессия могла закончиться до подписки
	if !c.ctrl.Session().IsAuthenticated() {
		return ErrSessionExpired
	}

	c.io.Println("Watching session. Press Ctrl+C to stop.")

	select {
	case <-ctx.Done():
		c.io.Println("Stopped.")
		return nil
	case <-ended:
		return ErrSessionExpired
	}
}
