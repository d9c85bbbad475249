package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/salemerge/quotedesk/internal/client/api"
	"github.com/salemerge/quotedesk/internal/client/models"
	"github.com/salemerge/quotedesk/internal/client/session"
	"github.com/salemerge/quotedesk/internal/common"
	"github.com/salemerge/quotedesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResetFixture(opts ...ResetOption) (*ResetFlow, *fakeAPI, *fakeNotifier, *fakeNav) {
	a, n, nav := &fakeAPI{}, &fakeNotifier{}, &fakeNav{}
	opts = append([]ResetOption{WithCountdownInterval(time.Millisecond), WithRedirectDelay(10 * time.Millisecond)}, opts...)
	f := NewResetFlow(a, n, nav, logging.Discard(), opts...)
	return f, a, n, nav
}

func TestReset_RequestOTPValidation(t *testing.T) {
	f, a, n, _ := newResetFixture()
	defer f.Teardown()

	require.ErrorIs(t, f.RequestOTP(context.Background(), ""), common.ErrValidation)
	assert.Equal(t, "Please enter your email first.", n.last().Message)

	require.ErrorIs(t, f.RequestOTP(context.Background(), "nope"), common.ErrValidation)
	assert.Equal(t, "Please enter a valid email address.", n.last().Message)

	assert.Zero(t, a.total())
	assert.Equal(t, PhaseIdle, f.State().Phase())
}

func TestReset_RequestOTPSuccess(t *testing.T) {
	f, a, n, _ := newResetFixture(WithCountdownInterval(time.Hour))
	defer f.Teardown()

	require.NoError(t, f.RequestOTP(context.Background(), "x@y.com"))
	s := f.State()
	assert.Equal(t, PhaseOTPSent, s.Phase())
	assert.Equal(t, "x@y.com", s.Email)
	assert.False(t, s.CanResend)
	assert.Equal(t, CountdownTicks, s.Countdown)
	assert.Equal(t, 1, a.count("RequestOTP"))
	assert.Equal(t, "success", n.last().Kind)

	fa := f.Fields()
	assert.False(t, fa.Email)
	assert.True(t, fa.OTP)
	assert.False(t, fa.Password)
	assert.False(t, fa.SendOTP)

	require.ErrorIs(t, f.ResendOTP(context.Background()), ErrResendLocked)
	assert.Equal(t, 1, a.count("RequestOTP"))
}

func TestReset_RequestOTPFailureDisabled(t *testing.T) {
	f, a, n, _ := newResetFixture()
	defer f.Teardown()
	a.requestOTP = func(string) (string, error) {
		return "", &api.APIError{Message: "This account is disabled"}
	}
	require.Error(t, f.RequestOTP(context.Background(), "x@y.com"))
	assert.Equal(t, note{"error", MsgAccountDisabled}, n.last())
	assert.Equal(t, PhaseIdle, f.State().Phase())
}

// Invalid OTP keeps the flow in the OTP step with the password locked.
func TestReset_InvalidOTPScenario(t *testing.T) {
	f, a, n, _ := newResetFixture()
	defer f.Teardown()
	a.verifyOTP = func(models.VerifyOTPRequest) (string, error) {
		return "", &api.APIError{Status: 200, Message: "Invalid OTP"}
	}

	require.NoError(t, f.RequestOTP(context.Background(), "x@y.com"))
	require.Error(t, f.SetOTP(context.Background(), "123456"))

	s := f.State()
	assert.Equal(t, PhaseOTPSent, s.Phase())
	assert.False(t, s.OTPVerified)
	assert.False(t, s.HasResetToken)
	assert.Equal(t, note{"error", "Invalid OTP"}, n.last())
	assert.False(t, f.Fields().Password)
	require.ErrorIs(t, f.SetPassword("Aa1!aaaa"), ErrFieldDisabled)
}

func TestReset_AutoVerifyOncePerValue(t *testing.T) {
	f, a, _, _ := newResetFixture()
	defer f.Teardown()
	a.verifyOTP = func(models.VerifyOTPRequest) (string, error) {
		return "", &api.APIError{Message: "Invalid OTP"}
	}
	ctx := context.Background()
	require.NoError(t, f.RequestOTP(ctx, "x@y.com"))

	require.NoError(t, f.SetOTP(ctx, "12345"))
	assert.Zero(t, a.count("VerifyOTP"))

	assert.Error(t, f.SetOTP(ctx, "123456"))
	assert.Equal(t, 1, a.count("VerifyOTP"))

	// same value again: no new attempt
	require.NoError(t, f.SetOTP(ctx, "123456"))
	assert.Equal(t, 1, a.count("VerifyOTP"))

	// cleared and typed again: exactly one new attempt
	require.NoError(t, f.SetOTP(ctx, ""))
	assert.Error(t, f.SetOTP(ctx, "123456"))
	assert.Equal(t, 2, a.count("VerifyOTP"))

	require.NoError(t, f.SetOTP(ctx, "12a456"))
	assert.Equal(t, 2, a.count("VerifyOTP"))
}

func TestReset_FullFlow(t *testing.T) {
	f, a, n, nav := newResetFixture(WithCountdownInterval(time.Hour))
	defer f.Teardown()
	var got models.ResetPasswordRequest
	a.verifyOTP = func(r models.VerifyOTPRequest) (string, error) {
		assert.Equal(t, models.VerifyOTPRequest{Email: "x@y.com", OTP: "654321"}, r)
		return "RT", nil
	}
	a.resetPassword = func(r models.ResetPasswordRequest) (string, error) {
		got = r
		return "", nil
	}
	ctx := context.Background()

	require.NoError(t, f.RequestOTP(ctx, "x@y.com"))
	require.NoError(t, f.SetOTP(ctx, "654321"))

	s := f.State()
	assert.Equal(t, PhaseOTPVerified, s.Phase())
	assert.True(t, s.HasResetToken)
	assert.False(t, f.countdown.Running())
	fa := f.Fields()
	assert.False(t, fa.OTP)
	assert.True(t, fa.Password)
	assert.False(t, fa.Submit)

	// a new value after verification is refused
	require.ErrorIs(t, f.SetOTP(ctx, "111111"), ErrFieldDisabled)

	require.NoError(t, f.SetPassword("Aa1!aaaa"))
	assert.True(t, f.Fields().Submit)
	require.NoError(t, f.Complete(ctx))

	assert.Equal(t, models.ResetPasswordRequest{Email: "x@y.com", ResetToken: "RT", NewPassword: "Aa1!aaaa"}, got)
	assert.Equal(t, note{"success", "Password has been successfully updated."}, n.last())
	assert.Equal(t, PhaseCompleted, f.State().Phase())
	assert.False(t, f.State().HasResetToken)

	select {
	case <-f.Redirected():
	case <-time.After(2 * time.Second):
		t.Fatal("no redirect")
	}
	assert.Equal(t, []session.View{session.ViewLogin}, nav.visited())
}

func TestReset_CompleteRequiresVerification(t *testing.T) {
	f, a, _, _ := newResetFixture()
	defer f.Teardown()
	ctx := context.Background()

	err := f.Complete(ctx)
	require.ErrorIs(t, err, ErrNotVerified)
	require.ErrorIs(t, err, common.ErrValidation)

	require.NoError(t, f.RequestOTP(ctx, "x@y.com"))
	require.ErrorIs(t, f.Complete(ctx), ErrNotVerified)
	assert.Zero(t, a.count("ResetPassword"))
}

func TestReset_CompleteWeakPasswordAndServerFailure(t *testing.T) {
	f, a, n, nav := newResetFixture()
	defer f.Teardown()
	ctx := context.Background()
	require.NoError(t, f.RequestOTP(ctx, "x@y.com"))
	require.NoError(t, f.SetOTP(ctx, "123456"))

	require.NoError(t, f.SetPassword("weak"))
	require.ErrorIs(t, f.Complete(ctx), common.ErrValidation)
	assert.Zero(t, a.count("ResetPassword"))

	a.resetPassword = func(models.ResetPasswordRequest) (string, error) {
		return "", &api.APIError{Message: "Token expired"}
	}
	require.NoError(t, f.SetPassword("Aa1!aaaa"))
	require.Error(t, f.Complete(ctx))
	assert.Equal(t, note{"error", "Token expired"}, n.last())
	assert.Equal(t, PhaseOTPVerified, f.State().Phase())
	assert.True(t, f.State().HasResetToken)

	a.resetPassword = nil
	require.NoError(t, f.Complete(ctx))
	assert.Equal(t, 2, a.count("ResetPassword"))
	assert.Equal(t, 1, a.count("VerifyOTP"))
	<-f.Redirected()
	assert.Len(t, nav.visited(), 1)
}

func TestReset_TeardownStopsCountdown(t *testing.T) {
	f, _, _, _ := newResetFixture(WithCountdownInterval(time.Hour))
	require.NoError(t, f.RequestOTP(context.Background(), "x@y.com"))
	require.True(t, f.countdown.Running())
	f.Teardown()
	assert.False(t, f.countdown.Running())
}

func TestDeriveFieldAvailability(t *testing.T) {
	idle := ResetState{Email: "x@y.com", CanResend: true}
	assert.Equal(t, FieldAvailability{Email: true, SendOTP: true}, DeriveFieldAvailability(idle))

	idle.Loading = true
	assert.False(t, DeriveFieldAvailability(idle).SendOTP)

	assert.False(t, DeriveFieldAvailability(ResetState{Email: "bad"}).SendOTP)

	sent := ResetState{Email: "x@y.com", OTPSent: true, OTP: "123456"}
	assert.Equal(t, FieldAvailability{OTP: true, Verify: true}, DeriveFieldAvailability(sent))
	sent.CanResend = true
	assert.True(t, DeriveFieldAvailability(sent).SendOTP)
	sent.Verifying = true
	assert.False(t, DeriveFieldAvailability(sent).Verify)

	verified := ResetState{OTPSent: true, OTPVerified: true, HasResetToken: true, Password: "Aa1!aaaa", CanResend: true}
	assert.Equal(t, FieldAvailability{Password: true, Submit: true}, DeriveFieldAvailability(verified))
	verified.HasResetToken = false
	assert.False(t, DeriveFieldAvailability(verified).Submit)

	assert.Equal(t, FieldAvailability{}, DeriveFieldAvailability(ResetState{Completed: true, OTPVerified: true}))
}

func TestCountdown_ReachesResendWithinTicks(t *testing.T) {
	c := NewCountdown(time.Millisecond)
	c.Start()
	require.False(t, c.CanResend())

	require.Eventually(t, c.CanResend, 2*time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return !c.Running() }, 2*time.Second, time.Millisecond)
	assert.Equal(t, CountdownTicks, c.Remaining())
}

func TestCountdown_RestartLeavesOneTimer(t *testing.T) {
	c := NewCountdown(time.Hour)
	c.Start()
	c.Start()
	assert.True(t, c.Running())
	c.Stop()
	assert.False(t, c.Running())
	assert.False(t, c.CanResend())
	c.Stop()
}

func TestCountdown_ConcurrentStarts(t *testing.T) {
	c := NewCountdown(time.Hour)
	var started atomic.Int32
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			c.Start()
			if started.Add(1) == 8 {
				close(done)
			}
		}()
	}
	<-done
	assert.True(t, c.Running())
	c.Stop()
	assert.False(t, c.Running())
}
