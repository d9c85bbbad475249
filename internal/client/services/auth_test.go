package services

import (
	"context"
	"errors"
	"testing"

	"github.com/salemerge/quotedesk/internal/client/api"
	"github.com/salemerge/quotedesk/internal/client/models"
	"github.com/salemerge/quotedesk/internal/client/session"
	"github.com/salemerge/quotedesk/internal/common"
	"github.com/salemerge/quotedesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	api   *fakeAPI
	store *memStore
	toast *fakeNotifier
	nav   *fakeNav
	svc   AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{api: &fakeAPI{}, store: &memStore{}, toast: &fakeNotifier{}, nav: &fakeNav{}}
	f.svc = NewAuthService(f.api, f.store, f.toast, f.nav, logging.Discard())
	return f
}

func activeLogin(token string, u models.AccountUser) func(models.LoginRequest) (*models.LoginResult, error) {
	return func(models.LoginRequest) (*models.LoginResult, error) {
		return &models.LoginResult{Token: token, User: &u}, nil
	}
}

func TestLogin_Scenario(t *testing.T) {
	f := newAuthFixture()
	f.api.login = activeLogin("T", models.AccountUser{ID: 1, Email: "a@b.com", Role: "user", IsActive: true, ActiveFlag: true})

	require.NoError(t, f.svc.Login(context.Background(), "a@b.com", "Aa1!aaaa"))

	assert.Equal(t, session.Session{Token: "T", UserID: 1, Email: "a@b.com", Role: "user"}, f.store.sess)
	assert.Equal(t, []session.View{session.ViewDashboard}, f.nav.visited())
	assert.Equal(t, 1, f.api.count("Login"))
	assert.Equal(t, 1, f.api.count("GetUser"))
	assert.Equal(t, "success", f.toast.last().Kind)
}

func TestLogin_InvalidCredentialsMakeNoCalls(t *testing.T) {
	cases := []struct{ email, password string }{
		{"", "Aa1!aaaa"},
		{"not-an-email", "Aa1!aaaa"},
		{"a@b.com", ""},
		{"a@b.com", "short1!"},
		{"a@b.com", "alllower1!"},
		{"a@b.com", "NoDigits!!"},
		{"a@b.com", "NoSymbol11"},
	}
	for _, c := range cases {
		f := newAuthFixture()
		err := f.svc.Login(context.Background(), c.email, c.password)
		require.ErrorIs(t, err, common.ErrValidation, "%+v", c)
		assert.Zero(t, f.api.total(), "%+v", c)
		assert.Equal(t, "error", f.toast.last().Kind)
		assert.Empty(t, f.nav.visited())
	}
}

func TestLogin_FailureMessages(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		f := newAuthFixture()
		f.api.login = func(models.LoginRequest) (*models.LoginResult, error) {
			return nil, &api.APIError{Status: 200, Message: "Your account is DISABLED"}
		}
		err := f.svc.Login(context.Background(), "a@b.com", "Aa1!aaaa")
		require.ErrorIs(t, err, ErrAccountDisabled)
		assert.Equal(t, note{"error", MsgAccountDisabled}, f.toast.last())
	})
	t.Run("generic", func(t *testing.T) {
		f := newAuthFixture()
		f.api.login = func(models.LoginRequest) (*models.LoginResult, error) {
			return nil, &api.APIError{Status: 401, Message: "wrong password"}
		}
		err := f.svc.Login(context.Background(), "a@b.com", "Aa1!aaaa")
		require.ErrorIs(t, err, api.ErrUnauthorized)
		assert.Equal(t, note{"error", MsgInvalidCredentials}, f.toast.last())
		assert.Empty(t, f.store.sess.Token)
	})
}

func TestLogin_MissingTokenOrUserStoresNothing(t *testing.T) {
	for name, res := range map[string]*models.LoginResult{
		"no token": {User: &models.AccountUser{ID: 1}},
		"no user":  {Token: "T"},
	} {
		t.Run(name, func(t *testing.T) {
			f := newAuthFixture()
			f.api.login = func(models.LoginRequest) (*models.LoginResult, error) { return res, nil }
			err := f.svc.Login(context.Background(), "a@b.com", "Aa1!aaaa")
			require.ErrorIs(t, err, api.ErrProtocol)
			assert.Equal(t, session.Session{}, f.store.sess)
			assert.Equal(t, note{"error", MsgUnexpectedResponse}, f.toast.last())
			assert.Zero(t, f.api.count("GetUser"))
		})
	}
}

func TestLogin_VerificationSaysDisabled(t *testing.T) {
	for _, flag := range []any{float64(0), false, "0", "false"} {
		f := newAuthFixture()
		f.api.login = activeLogin("T", models.AccountUser{ID: 1, ActiveFlag: true})
		f.api.getUser = func(id int64) (*models.AccountUser, error) {
			return &models.AccountUser{ID: id, ActiveFlag: flag}, nil
		}
		err := f.svc.Login(context.Background(), "a@b.com", "Aa1!aaaa")
		require.ErrorIs(t, err, ErrAccountDisabled, "%#v", flag)
		assert.Equal(t, session.Session{}, f.store.sess)
		assert.Equal(t, 1, f.store.cleared)
		assert.Equal(t, note{"error", MsgAccountDisabled}, f.toast.last())
		assert.Empty(t, f.nav.visited())
	}
}

func TestLogin_VerificationFailsFallsBackToLoginPayload(t *testing.T) {
	t.Run("payload disabled", func(t *testing.T) {
		f := newAuthFixture()
		f.api.login = activeLogin("T", models.AccountUser{ID: 1, ActiveFlag: "0"})
		f.api.getUser = func(int64) (*models.AccountUser, error) { return nil, api.ErrUnavailable }
		require.ErrorIs(t, f.svc.Login(context.Background(), "a@b.com", "Aa1!aaaa"), ErrAccountDisabled)
		assert.Empty(t, f.store.sess.Token)
	})
	t.Run("payload active", func(t *testing.T) {
		f := newAuthFixture()
		f.api.login = activeLogin("T", models.AccountUser{ID: 2, Role: "admin"})
		f.api.getUser = func(int64) (*models.AccountUser, error) { return nil, errors.New("boom") }
		require.NoError(t, f.svc.Login(context.Background(), " a@b.com ", "Aa1!aaaa"))
		assert.Equal(t, session.Session{Token: "T", UserID: 2, Email: "a@b.com", Role: "admin"}, f.store.sess)
	})
}

func TestLogin_VerifiedRecordFillsMissingFields(t *testing.T) {
	f := newAuthFixture()
	f.api.login = activeLogin("T", models.AccountUser{ID: 3})
	f.api.getUser = func(id int64) (*models.AccountUser, error) {
		return &models.AccountUser{ID: id, Email: "srv@b.com", Role: "admin", ActiveFlag: 1}, nil
	}
	require.NoError(t, f.svc.Login(context.Background(), "a@b.com", "Aa1!aaaa"))
	assert.Equal(t, "srv@b.com", f.store.sess.Email)
	assert.Equal(t, "admin", f.store.sess.Role)
}

func TestLogin_SaveError(t *testing.T) {
	f := newAuthFixture()
	f.api.login = activeLogin("T", models.AccountUser{ID: 1})
	f.store.saveErr = errors.New("disk full")
	require.Error(t, f.svc.Login(context.Background(), "a@b.com", "Aa1!aaaa"))
	assert.Empty(t, f.nav.visited())

	tok, err := f.store.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok, "a half-written session must not keep the token")
	assert.Positive(t, f.store.cleared)
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	f.store.sess = session.Session{Token: "T", UserID: 1}
	require.NoError(t, f.svc.Logout(context.Background()))
	assert.Equal(t, session.Session{}, f.store.sess)
	assert.Equal(t, note{"success", MsgLoggedOut}, f.toast.last())
	assert.Equal(t, []session.View{session.ViewLogin}, f.nav.visited())
}
