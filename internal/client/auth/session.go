package auth

import "github.com/iudanet/phoneauth/internal/models"

// State - состояние сессии
type State int

const (
	// StateInitializing - сессия еще не восстановлена из хранилища
	StateInitializing State = iota
	// StateUnauthenticated - пользователь не вошел
	StateUnauthenticated
	// StateAuthenticating - выполняется операция входа/регистрации
	StateAuthenticating
	// StateAuthenticated - сессия активна
	StateAuthenticated
	// StateError - последняя операция завершилась ошибкой
	StateError
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Session - снимок состояния аутентификации клиента
type Session struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	Error        string
	State        State
	IsLoading    bool
}

// InitialSession возвращает сессию в момент запуска процесса
func InitialSession() Session {
	return Session{State: StateInitializing, IsLoading: true}
}

// IsAuthenticated истинно, только когда есть профиль и оба токена
func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.AccessToken != "" && s.RefreshToken != ""
}

// Action - действие, переводящее сессию в новое состояние.
// Реализации: SetLoading, SetError, SetAuth, ClearAuth, SetUser.
type Action interface {
	isAction()
}

// SetLoading отмечает начало или конец операции
type SetLoading struct {
	Loading bool
}

// SetError записывает сообщение об ошибке
type SetError struct {
	Message string
}

// SetAuth устанавливает профиль и пару токенов
type SetAuth struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// ClearAuth сбрасывает сессию в неаутентифицированное состояние
type ClearAuth struct{}

// SetUser заменяет профиль, не трогая токены
type SetUser struct {
	User *models.User
}

func (SetLoading) isAction() {}
func (SetError) isAction()   {}
func (SetAuth) isAction()    {}
func (ClearAuth) isAction()  {}
func (SetUser) isAction()    {}

// Reduce вычисляет следующее состояние сессии. Функция чистая:
// никаких сетевых вызовов и обращений к хранилищу.
func Reduce(s Session, action Action) Session {
	switch a := action.(type) {
	case SetLoading:
		s.IsLoading = a.Loading
		switch {
		case a.Loading && !s.IsAuthenticated():
			s.State = StateAuthenticating
		case !a.Loading && s.State == StateAuthenticating:
			s.State = StateUnauthenticated
		}
		return s

	case SetError:
		s.IsLoading = false
		s.Error = a.Message
		if a.Message == "" {
			// снятие ошибки не меняет аутентификацию
			if s.State == StateError {
				s.State = stateOf(s)
			}
			return s
		}
		if !s.IsAuthenticated() {
			s.State = StateError
		}
		return s

	case SetAuth:
		next := Session{
			User:         a.User,
			AccessToken:  a.AccessToken,
			RefreshToken: a.RefreshToken,
		}
		next.State = stateOf(next)
		return next

	case ClearAuth:
		return Session{State: StateUnauthenticated}

	case SetUser:
		s.User = a.User
		if s.State != StateError {
			s.State = stateOf(s)
		}
		return s

	default:
		return s
	}
}

func stateOf(s Session) State {
	if s.IsAuthenticated() {
		return StateAuthenticated
	}
	return StateUnauthenticated
}
