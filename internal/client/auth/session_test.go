package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/phoneauth/internal/models"
)

func authenticated() Session {
	return Reduce(InitialSession(), SetAuth{
		User:         &models.User{ID: "u1"},
		AccessToken:  "a",
		RefreshToken: "r",
	})
}

func TestReduce_SetAuth(t *testing.T) {
	s := Reduce(Session{Error: "old", IsLoading: true, State: StateError}, SetAuth{
		User:         &models.User{ID: "u1"},
		AccessToken:  "a",
		RefreshToken: "r",
	})

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, StateAuthenticated, s.State)
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Error)
}

func TestReduce_ClearAuth(t *testing.T) {
	s := Reduce(authenticated(), ClearAuth{})

	assert.Nil(t, s.User)
	assert.Empty(t, s.AccessToken)
	assert.Empty(t, s.RefreshToken)
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsLoading)
	assert.Equal(t, StateUnauthenticated, s.State)
}

func TestReduce_LoadingAndError(t *testing.T) {
	s := Reduce(Session{State: StateUnauthenticated}, SetLoading{Loading: true})
	assert.Equal(t, StateAuthenticating, s.State)
	assert.True(t, s.IsLoading)

	s = Reduce(s, SetError{Message: "Login failed"})
	assert.Equal(t, StateError, s.State)
	assert.False(t, s.IsLoading)
	assert.Equal(t, "Login failed", s.Error)

	s = Reduce(s, SetError{})
	assert.Equal(t, StateUnauthenticated, s.State)
	assert.Empty(t, s.Error)
}

// TestReduce_ErrorKeepsAuthentication - ошибка поверх активной сессии
// не разлогинивает пользователя
func TestReduce_ErrorKeepsAuthentication(t *testing.T) {
	s := Reduce(authenticated(), SetError{Message: "OAuth initialization failed"})
	assert.Equal(t, StateAuthenticated, s.State)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "OAuth initialization failed", s.Error)

	s = Reduce(s, SetLoading{Loading: true})
	assert.Equal(t, StateAuthenticated, s.State)
}

func TestReduce_SetUser(t *testing.T) {
	s := Reduce(authenticated(), SetUser{User: &models.User{ID: "u1", Name: "Alice"}})
	assert.Equal(t, "Alice", s.User.Name)
	assert.Equal(t, "a", s.AccessToken)
	assert.Equal(t, StateAuthenticated, s.State)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := authenticated()
	_ = Reduce(before, ClearAuth{})
	assert.True(t, before.IsAuthenticated())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "unknown", State(42).String())
}
