package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/salemerge/quotedesk/internal/client/services"
	"github.com/salemerge/quotedesk/internal/client/session"
	"github.com/salemerge/quotedesk/internal/client/validation"
	"github.com/salemerge/quotedesk/internal/common"
)

// Login prompts for credentials and hands them to the AuthService, which
// reports the outcome through toasts and moves to the dashboard on success.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	return a.auth.Login(ctx, email, string(password))
}

// Logout clears the persisted session.
func (a *App) Logout(ctx context.Context) error {
	return a.auth.Logout(ctx)
}

// Signup explains how accounts are created; there is no self-service
// registration.
func (a *App) Signup(ctx context.Context) error {
	a.printf("Accounts are created by an administrator. To get access, contact %s.\n", common.SupportEmail)
	a.Navigate(ctx, session.ViewLogin)
	return nil
}

// Forgot runs the OTP password reset: email, then the 6-digit code (typing
// "resend" asks for a new one once the countdown allows it), then the new
// password. A blank answer at any step cancels the flow.
func (a *App) Forgot(ctx context.Context) error {
	flow := a.newReset()
	defer flow.Teardown()

	for !flow.State().OTPSent {
		email, err := getSimpleText(a.reader, "Enter your account email (blank to cancel)", a.out)
		if err != nil || email == "" {
			a.Navigate(ctx, session.ViewLogin)
			return err
		}
		_ = flow.RequestOTP(ctx, email)
	}

	for !flow.State().OTPVerified {
		code, err := getSimpleText(a.reader, "Enter the 6-digit code ('resend' for a new one, blank to cancel)", a.out)
		if err != nil || code == "" {
			a.Navigate(ctx, session.ViewLogin)
			return err
		}
		if strings.EqualFold(code, "resend") {
			if err := flow.ResendOTP(ctx); errors.Is(err, services.ErrResendLocked) {
				a.printf("You can resend in %d seconds.\n", flow.State().Countdown)
			}
			continue
		}
		if !validation.IsOTP(code) {
			a.println("The code must be 6 digits.")
			continue
		}
		// entering the same code again must trigger a new verification
		_ = flow.SetOTP(ctx, "")
		_ = flow.SetOTP(ctx, code)
	}

	for !flow.State().Completed {
		password, err := getPassword("New password (blank to cancel)", a.out)
		if err != nil || len(password) == 0 {
			a.Navigate(ctx, session.ViewLogin)
			return err
		}
		err = flow.SetPassword(string(password))
		wipe(password)
		if err != nil {
			return err
		}
		if !flow.Fields().Submit {
			a.println("Use at least 8 characters with upper and lower case letters, a digit and one of @$!%*?&.")
			continue
		}
		_ = flow.Complete(ctx)
	}

	a.println("Returning to login...")
	select {
	case <-flow.Redirected():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// WhoAmI prints the persisted session and, for JWTs, the token's claims.
func (a *App) WhoAmI(ctx context.Context) error {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	a.printf("Email:   %s\n", sess.Email)
	a.printf("Role:    %s\n", sess.Role)
	a.printf("User ID: %d\n", sess.UserID)

	info, err := session.DescribeToken(sess.Token)
	if err != nil {
		a.println("Token:   opaque")
		return nil
	}
	if info.Subject != "" {
		a.printf("Subject: %s\n", info.Subject)
	}
	if !info.IssuedAt.IsZero() {
		a.printf("Issued:  %s\n", info.IssuedAt.Local().Format(time.DateTime))
	}
	if !info.ExpiresAt.IsZero() {
		state := "valid"
		if time.Now().After(info.ExpiresAt) {
			state = "expired"
		}
		a.printf("Expires: %s (%s)\n", info.ExpiresAt.Local().Format(time.DateTime), state)
	}
	return nil
}
