package services

import (
	"context"
	"errors"
	"strings"

	"github.com/salemerge/quotedesk/internal/client/session"
)

var (
	ErrAccountDisabled = errors.New("account disabled")
	ErrNotVerified     = errors.New("otp not verified")
	ErrResendLocked    = errors.New("otp resend locked")
	ErrFieldDisabled   = errors.New("field is disabled")
	ErrVideoNotReady   = errors.New("video is not ready")
	ErrNoVideoURL      = errors.New("video url not found")
)

// Notifier receives user-facing outcomes. *toast.Queue implements it.
type Notifier interface {
	Success(message string, title ...string)
	Error(message string, title ...string)
	Warning(message string, title ...string)
	Info(message string, title ...string)
}

// Navigator switches the active view.
type Navigator interface {
	Navigate(ctx context.Context, v session.View)
}

// SessionStore is the part of *session.Store the services use.
type SessionStore interface {
	Load(ctx context.Context) (session.Session, error)
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Save(ctx context.Context, s session.Session) error
	Clear(ctx context.Context) error
}

const (
	MsgAccountDisabled    = "Your account has been disabled. Please contact the administrator."
	MsgInvalidCredentials = "Invalid email or password"
	MsgUnexpectedResponse = "Unexpected response from server"
	MsgLoggedOut          = "Logged out successfully"

	titleError      = "Error"
	titleSuccess    = "Success"
	titleValidation = "Validation Error"
)

// isDisabledMessage is the backend's only signal for a deactivated
// account: the word "disabled" anywhere in the message.
func isDisabledMessage(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "disabled")
}
