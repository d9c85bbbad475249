package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/salemerge/quotedesk/internal/client/api"
	"github.com/salemerge/quotedesk/internal/client/models"
	"github.com/salemerge/quotedesk/internal/client/session"
	"github.com/salemerge/quotedesk/internal/client/validation"
	"github.com/salemerge/quotedesk/internal/logging"
)

// AuthService defines the login life cycle.
//
// Contract:
//   - Login: validate locally, authenticate, confirm the account is
//     active and persist the session.
//   - Logout: drop the session and return to the login view.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
}

type authService struct {
	api   api.Client
	store SessionStore
	toast Notifier
	nav   Navigator
	log   logging.Logger
}

func NewAuthService(c api.Client, store SessionStore, n Notifier, nav Navigator, log logging.Logger) AuthService {
	return &authService{api: c, store: store, toast: n, nav: nav, log: log}
}

// Login makes no network call unless the credentials pass validation.
// After the token is stored the account record is fetched again because
// the login payload may omit is_active; if that fetch fails the login
// payload's own flag is trusted.
func (a *authService) Login(ctx context.Context, email, password string) error {
	req := models.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := validation.Struct(req); err != nil {
		a.toast.Error(err.Error(), titleValidation)
		return err
	}

	res, err := a.api.Login(ctx, req)
	if err != nil {
		a.log.Warn(ctx, "login failed", "error", err)
		if isDisabledMessage(api.ErrorMessage(err, "")) {
			a.toast.Error(MsgAccountDisabled, titleError)
			return fmt.Errorf("%w: %w", ErrAccountDisabled, err)
		}
		a.toast.Error(MsgInvalidCredentials, titleError)
		return fmt.Errorf("login: %w", err)
	}

	if res.Token == "" || res.User == nil {
		a.toast.Error(MsgUnexpectedResponse, titleError)
		return fmt.Errorf("login: %w", api.ErrProtocol)
	}

	if err := a.store.SetToken(ctx, res.Token); err != nil {
		a.toast.Error("Could not save the session", titleError)
		return fmt.Errorf("save token: %w", err)
	}

	user := *res.User
	disabled := user.Disabled()
	fresh, err := a.api.GetUser(ctx, user.ID)
	if err != nil {
		a.log.Warn(ctx, "account verification failed, using login payload", "user_id", user.ID, "error", err)
	} else {
		disabled = fresh.Disabled()
		if user.Email == "" {
			user.Email = fresh.Email
		}
		if user.Role == "" {
			user.Role = fresh.Role
		}
	}

	if disabled {
		if err := a.store.Clear(ctx); err != nil {
			a.log.Error(ctx, "clear session failed", "error", err)
		}
		a.toast.Error(MsgAccountDisabled, titleError)
		return ErrAccountDisabled
	}

	if user.Email == "" {
		user.Email = req.Email
	}
	sess := session.Session{Token: res.Token, UserID: user.ID, Email: user.Email, Role: user.Role}
	if err := a.store.Save(ctx, sess); err != nil {
		if cerr := a.store.Clear(ctx); cerr != nil {
			a.log.Error(ctx, "clear session failed", "error", cerr)
		}
		a.toast.Error("Could not save the session", titleError)
		return fmt.Errorf("save session: %w", err)
	}

	a.log.Info(ctx, "logged in", "user_id", user.ID, "role", user.Role)
	a.toast.Success("Login successful", titleSuccess)
	a.nav.Navigate(ctx, session.ViewDashboard)
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		a.toast.Error("Could not clear the session", titleError)
		return fmt.Errorf("clear session: %w", err)
	}
	a.toast.Success(MsgLoggedOut)
	a.nav.Navigate(ctx, session.ViewLogin)
	return nil
}
