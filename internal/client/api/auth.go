package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/salemerge/quotedesk/internal/client/models"
)

// Login returns whatever token and user the backend sent. Either may be
// empty; deciding what that means is up to the caller.
func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", req)
	if err != nil {
		return nil, err
	}

	res := &models.LoginResult{}
	if v, ok := env.lookup("token"); ok {
		res.Token = rawText(v)
	}
	if v, ok := env.lookup("user"); ok {
		var u models.AccountUser
		if err := decodeInto(v, &u); err != nil {
			return nil, err
		}
		res.User = &u
	}
	return res, nil
}

func (c *HTTPClient) RequestOTP(ctx context.Context, email string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/request-otp", models.OTPRequest{Email: email})
	if err != nil {
		return "", err
	}
	return env.stringMessage(), nil
}

// VerifyOTP exchanges the emailed code for a reset token.
func (c *HTTPClient) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/verify-otp-reset", req)
	if err != nil {
		return "", err
	}
	v, ok := env.lookup("resetToken")
	if !ok {
		return "", fmt.Errorf("%w: no reset token", ErrProtocol)
	}
	token := rawText(v)
	if token == "" {
		return "", fmt.Errorf("%w: empty reset token", ErrProtocol)
	}
	return token, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/reset-password", req)
	if err != nil {
		return "", err
	}
	return env.stringMessage(), nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/change-password", req)
	if err != nil {
		return "", err
	}
	return env.stringMessage(), nil
}
