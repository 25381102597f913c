package flow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/phoneauth/internal/client/api"
	"github.com/iudanet/phoneauth/internal/client/auth"
	"github.com/iudanet/phoneauth/internal/client/storage/boltdb"
	"github.com/iudanet/phoneauth/internal/models"
	"github.com/iudanet/phoneauth/internal/validation"
	pkgapi "github.com/iudanet/phoneauth/pkg/api"
)

// TestSignupFlow_EndToEnd проходит регистрацию через настоящие контроллер,
// HTTP клиент и хранилище против тестового backend
func TestSignupFlow_EndToEnd(t *testing.T) {
	var gotTempToken string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/signup":
			_ = json.NewEncoder(w).Encode(pkgapi.StatusResponse{Success: true, Message: "sent"})
		case "/auth/verify-otp":
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": "tmp_abc123"})
		case "/auth/complete-registration":
			gotTempToken = r.Header.Get(pkgapi.HeaderTempToken)
			var req pkgapi.RegistrationRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			w.Header().Set(pkgapi.HeaderAccessToken, "access-1")
			w.Header().Set(pkgapi.HeaderRefreshToken, "refresh-1")
			_ = json.NewEncoder(w).Encode(pkgapi.Response[pkgapi.UserPayload]{
				Success: true,
				Data:    &pkgapi.UserPayload{User: models.User{ID: "u1", Name: req.Name, Phone: req.Phone}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	ctx := context.Background()
	store, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	client := api.NewClient(backend.URL, store)
	ctrl := auth.NewController(client, store, nil)
	require.NoError(t, ctrl.Initialize(ctx))

	f := NewSignupFlow(ctrl)

	_, err = f.SubmitPhone(ctx, "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, StepOTP, f.Step())

	for _, d := range "1234" {
		_, err = f.EnterDigit(ctx, d)
		require.NoError(t, err)
	}
	assert.Equal(t, StepRegistration, f.Step())
	assert.Equal(t, "tmp_abc123", f.TempToken())

	// temp token не попадает в хранилище
	_, err = store.GetAccessToken(ctx)
	assert.Error(t, err)

	err = f.SubmitRegistration(ctx, RegistrationForm{
		Registration: validation.Registration{FirstName: "Alice", LastName: "Smith"},
	})
	require.NoError(t, err)

	assert.Equal(t, "tmp_abc123", gotTempToken)
	assert.Equal(t, StepSuccess, f.Step())
	assert.Empty(t, f.TempToken())

	s := ctrl.Session()
	assert.Equal(t, auth.StateAuthenticated, s.State)
	assert.Equal(t, "Alice Smith", s.User.Name)
}

func signupAt(t *testing.T, step Step) (*SignupFlow, *fakeAuth) {
	t.Helper()
	fa := &fakeAuth{
		signup: sentOK,
		verifySignupOTP: func(ctx context.Context, phone, otp string) (string, error) {
			return "tmp_abc123", nil
		},
		completeReg: func(ctx context.Context, req pkgapi.RegistrationRequest, tempToken string) error {
			return nil
		},
	}
	f := NewSignupFlow(fa)
	ctx := context.Background()

	if step >= StepOTP {
		_, err := f.SubmitPhone(ctx, "+15551234567")
		require.NoError(t, err)
	}
	if step >= StepRegistration {
		require.NoError(t, f.VerifyOTP(ctx, "1234"))
	}
	require.Equal(t, step, f.Step())
	return f, fa
}

func TestSignupFlow_BackTransitions(t *testing.T) {
	f, fa := signupAt(t, StepRegistration)

	f.Back()
	assert.Equal(t, StepOTP, f.Step())
	assert.Empty(t, f.TempToken())
	assert.Equal(t, "+15551234567", f.Snapshot().Phone)

	f.Back()
	assert.Equal(t, StepPhone, f.Step())
	assert.Equal(t, "+15551234567", f.Snapshot().Phone)

	f.Back()
	assert.Equal(t, StepPhone, f.Step())
	assert.Equal(t, int32(2), fa.clearErrorCalls.Load())
}

func TestSignupFlow_WrongCodeStaysOnOTP(t *testing.T) {
	f, fa := signupAt(t, StepOTP)
	fa.verifySignupOTP = func(ctx context.Context, phone, otp string) (string, error) {
		return "", &api.HTTPError{StatusCode: 400}
	}

	err := f.VerifyOTP(context.Background(), "0000")
	require.Error(t, err)

	s := f.Snapshot()
	assert.Equal(t, StepOTP, s.Step)
	assert.Equal(t, MsgInvalidOTP, s.Error)
	assert.Empty(t, f.TempToken())
}

func TestSignupFlow_SubmitRegistration(t *testing.T) {
	t.Run("invalid form", func(t *testing.T) {
		f, _ := signupAt(t, StepRegistration)
		err := f.SubmitRegistration(context.Background(), RegistrationForm{
			Registration: validation.Registration{FirstName: "A"},
		})
		assert.ErrorIs(t, err, validation.ErrValidation)
		assert.Equal(t, StepRegistration, f.Step())
		assert.Contains(t, f.Snapshot().Error, "first name")
	})

	t.Run("backend failure keeps step", func(t *testing.T) {
		f, fa := signupAt(t, StepRegistration)
		fa.completeReg = func(ctx context.Context, req pkgapi.RegistrationRequest, tempToken string) error {
			return &api.HTTPError{StatusCode: 409, Message: "Phone already registered"}
		}
		err := f.SubmitRegistration(context.Background(), RegistrationForm{
			Registration: validation.Registration{FirstName: "Alice"},
		})
		require.Error(t, err)
		assert.Equal(t, StepRegistration, f.Step())
		assert.Equal(t, "Phone already registered", f.Snapshot().Error)
		assert.Equal(t, "tmp_abc123", f.TempToken())
	})

	t.Run("payload", func(t *testing.T) {
		f, fa := signupAt(t, StepRegistration)
		var got pkgapi.RegistrationRequest
		var gotToken string
		fa.completeReg = func(ctx context.Context, req pkgapi.RegistrationRequest, tempToken string) error {
			got, gotToken = req, tempToken
			return nil
		}
		err := f.SubmitRegistration(context.Background(), RegistrationForm{
			Registration: validation.Registration{FirstName: "Alice", Email: "alice@example.com"},
			Gender:       "female",
		})
		require.NoError(t, err)
		assert.Equal(t, "tmp_abc123", gotToken)
		assert.Equal(t, "Alice", got.Name)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.Equal(t, "+15551234567", got.Phone)
		assert.Equal(t, "female", got.Gender)
	})

	t.Run("wrong step", func(t *testing.T) {
		f, _ := signupAt(t, StepOTP)
		err := f.SubmitRegistration(context.Background(), RegistrationForm{
			Registration: validation.Registration{FirstName: "Alice"},
		})
		assert.ErrorIs(t, err, ErrWrongStep)
	})
}
