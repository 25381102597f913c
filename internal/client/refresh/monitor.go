package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/phoneauth/internal/client/storage"
)

const (
	// DefaultInterval - период проверки срока действия access token
	DefaultInterval = 60 * time.Second
	// DefaultThreshold - остаток срока, при котором токены обновляются заранее
	DefaultThreshold = 5 * time.Minute
)

// Outcome - результат одной проверки
type Outcome int

const (
	// OutcomeNoToken - access token отсутствует, проверять нечего
	OutcomeNoToken Outcome = iota
	// OutcomeValid - токен действителен дольше порога
	OutcomeValid
	// OutcomeRefreshed - токены обновлены
	OutcomeRefreshed
	// OutcomeLoggedOut - обновление не удалось или токен не разбирается
	OutcomeLoggedOut
	// OutcomeAborted - проверку прервали остановка монитора или выход
	OutcomeAborted
)

// String implements fmt.Stringer
func (o Outcome) String() string {
	switch o {
	case OutcomeNoToken:
		return "no token"
	case OutcomeValid:
		return "valid"
	case OutcomeRefreshed:
		return "refreshed"
	case OutcomeLoggedOut:
		return "logged out"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Session - операции сессии, нужные монитору
type Session interface {
	RefreshTokens(ctx context.Context) error
	// ForceLogout не должен сам обновлять токены
	ForceLogout(ctx context.Context)
}

// TokenSource отдает текущий access token
type TokenSource interface {
	GetAccessToken(ctx context.Context) (string, error)
}

// Monitor периодически проверяет срок действия access token и обновляет
// токены до истечения. Подпись токена не проверяется: claims читаются
// только чтобы решить, когда обновлять.
type Monitor struct {
	session   Session
	tokens    TokenSource
	logger    *slog.Logger
	now       func() time.Time
	cancel    context.CancelFunc
	interval  time.Duration
	threshold time.Duration
	wg        sync.WaitGroup
	mu        sync.Mutex
}

// Option настраивает Monitor
type Option func(*Monitor)

// WithInterval задает период проверки
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		m.interval = d
	}
}

// WithThreshold задает порог заблаговременного обновления
func WithThreshold(d time.Duration) Option {
	return func(m *Monitor) {
		m.threshold = d
	}
}

// WithClock подменяет источник текущего времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

// NewMonitor создает монитор; проверки начинаются после Start
func NewMonitor(session Session, tokens TokenSource, logger *slog.Logger, opts ...Option) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Monitor{
		session:   session,
		tokens:    tokens,
		logger:    logger,
		now:       time.Now,
		interval:  DefaultInterval,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start запускает проверки: одну сразу и далее каждые interval.
// Повторный вызов на работающем мониторе ничего не делает.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.run(runCtx)
	}()
}

// Stop останавливает проверки и прерывает текущее обновление. Не ждет
// завершения проверки, поэтому безопасен в слушателях сессии, которые
// вызываются из самой проверки. Дождаться ее можно через Wait.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Wait блокируется, пока не завершатся все запущенные проверки.
// Нельзя вызывать из Session: проверка ждала бы сама себя.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

// Running сообщает, запущен ли монитор
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

func (m *Monitor) run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Check выполняет одну проверку токена
func (m *Monitor) Check(ctx context.Context) Outcome {
	if ctx.Err() != nil {
		return OutcomeNoToken
	}

	accessToken, err := m.tokens.GetAccessToken(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrTokenNotFound) {
			m.logger.Warn("failed to read access token", "error", err)
		}
		return OutcomeNoToken
	}

	expiresAt, err := ExpiresAt(accessToken)
	if err != nil {
		m.logger.Warn("access token cannot be decoded, logging out", "error", err)
		m.session.ForceLogout(ctx)
		return OutcomeLoggedOut
	}
	if expiresAt.IsZero() || expiresAt.Sub(m.now()) >= m.threshold {
		return OutcomeValid
	}

	if err := m.session.RefreshTokens(ctx); err != nil {
		// Остановка монитора и уже завершенная сессия не означают отказ backend
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, storage.ErrSessionCleared) {
			m.logger.Debug("token refresh aborted", "error", err)
			return OutcomeAborted
		}
		m.logger.Warn("token refresh failed, logging out", "error", err)
		m.session.ForceLogout(ctx)
		return OutcomeLoggedOut
	}

	m.logger.Debug("tokens refreshed ahead of expiry", "expires_at", expiresAt)
	return OutcomeRefreshed
}

// ExpiresAt читает claim exp без проверки подписи. Нулевое время означает,
// что срок не указан.
func ExpiresAt(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
