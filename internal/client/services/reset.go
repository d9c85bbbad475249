package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/salemerge/quotedesk/internal/client/api"
	"github.com/salemerge/quotedesk/internal/client/models"
	"github.com/salemerge/quotedesk/internal/client/session"
	"github.com/salemerge/quotedesk/internal/client/validation"
	"github.com/salemerge/quotedesk/internal/common"
	"github.com/salemerge/quotedesk/internal/logging"
)

const defaultRedirectDelay = 2 * time.Second

// ResetPhase is the position in the password reset.
type ResetPhase int

const (
	PhaseIdle ResetPhase = iota
	PhaseOTPSent
	PhaseOTPVerified
	PhaseCompleted
)

func (p ResetPhase) String() string {
	switch p {
	case PhaseOTPSent:
		return "otp-sent"
	case PhaseOTPVerified:
		return "otp-verified"
	case PhaseCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// ResetState is a snapshot of the reset form.
type ResetState struct {
	Email         string
	OTP           string
	Password      string
	Loading       bool
	Verifying     bool
	OTPSent       bool
	OTPVerified   bool
	HasResetToken bool
	Completed     bool
	Countdown     int
	CanResend     bool
}

func (s ResetState) Phase() ResetPhase {
	switch {
	case s.Completed:
		return PhaseCompleted
	case s.OTPVerified:
		return PhaseOTPVerified
	case s.OTPSent:
		return PhaseOTPSent
	default:
		return PhaseIdle
	}
}

// FieldAvailability says which inputs and buttons are usable.
type FieldAvailability struct {
	Email    bool
	OTP      bool
	Password bool
	SendOTP  bool
	Verify   bool
	Submit   bool
}

// DeriveFieldAvailability is a pure function of the form state.
func DeriveFieldAvailability(s ResetState) FieldAvailability {
	if s.Completed {
		return FieldAvailability{}
	}
	fa := FieldAvailability{
		Email:    !s.OTPSent,
		OTP:      s.OTPSent && !s.OTPVerified,
		Password: s.OTPVerified,
	}
	if !s.OTPSent {
		fa.SendOTP = !s.Loading && validation.IsEmail(s.Email)
	} else {
		fa.SendOTP = !s.Loading && !s.OTPVerified && s.CanResend
	}
	fa.Verify = fa.OTP && !s.Loading && !s.Verifying && validation.IsOTP(s.OTP)
	fa.Submit = s.OTPVerified && s.HasResetToken && !s.Loading && validation.IsStrongPassword(s.Password)
	return fa
}

type ResetOption func(*ResetFlow)

// WithCountdownInterval sets the resend tick interval.
func WithCountdownInterval(d time.Duration) ResetOption {
	return func(f *ResetFlow) { f.countdown = NewCountdown(d) }
}

// WithRedirectDelay sets the pause between a completed reset and the
// navigation to the login view.
func WithRedirectDelay(d time.Duration) ResetOption {
	return func(f *ResetFlow) { f.redirectDelay = d }
}

// ResetFlow drives the forgot-password form: request an OTP, verify it
// for a reset token, then set the new password. The reset token lives
// only in memory.
type ResetFlow struct {
	api   api.Client
	toast Notifier
	nav   Navigator
	log   logging.Logger

	countdown     *Countdown
	redirectDelay time.Duration
	redirected    chan struct{}

	mu          sync.Mutex
	email       string
	otp         string
	password    string
	loading     bool
	verifying   bool
	otpSent     bool
	otpVerified bool
	resetToken  string
	completed   bool
}

func NewResetFlow(c api.Client, n Notifier, nav Navigator, log logging.Logger, opts ...ResetOption) *ResetFlow {
	f := &ResetFlow{
		api:           c,
		toast:         n,
		nav:           nav,
		log:           log,
		countdown:     NewCountdown(defaultCountdownTick),
		redirectDelay: defaultRedirectDelay,
		redirected:    make(chan struct{}),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *ResetFlow) State() ResetState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *ResetFlow) stateLocked() ResetState {
	return ResetState{
		Email:         f.email,
		OTP:           f.otp,
		Password:      f.password,
		Loading:       f.loading,
		Verifying:     f.verifying,
		OTPSent:       f.otpSent,
		OTPVerified:   f.otpVerified,
		HasResetToken: f.resetToken != "",
		Completed:     f.completed,
		Countdown:     f.countdown.Remaining(),
		CanResend:     f.countdown.CanResend(),
	}
}

func (f *ResetFlow) Fields() FieldAvailability {
	return DeriveFieldAvailability(f.State())
}

// RequestOTP sends the first OTP for email. On success the email is
// locked and the resend countdown starts.
func (f *ResetFlow) RequestOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	f.mu.Lock()
	if f.otpSent || f.completed {
		f.mu.Unlock()
		return fmt.Errorf("email: %w", ErrFieldDisabled)
	}
	if email == "" {
		f.mu.Unlock()
		f.toast.Error("Please enter your email first.", titleError)
		return validation.Field("email", "Please enter your email first.")
	}
	if !validation.IsEmail(email) {
		f.mu.Unlock()
		f.toast.Error("Please enter a valid email address.", titleError)
		return validation.Field("email", "Please enter a valid email address.")
	}
	f.email = email
	f.mu.Unlock()

	return f.sendOTP(ctx, email)
}

// ResendOTP requests another code for the locked email once the
// countdown allows it.
func (f *ResetFlow) ResendOTP(ctx context.Context) error {
	f.mu.Lock()
	if !f.otpSent || f.otpVerified || f.completed {
		f.mu.Unlock()
		return fmt.Errorf("resend: %w", ErrFieldDisabled)
	}
	if !f.countdown.CanResend() {
		f.mu.Unlock()
		f.toast.Warning(fmt.Sprintf("You can request a new OTP in %d seconds.", f.countdown.Remaining()))
		return ErrResendLocked
	}
	email := f.email
	f.mu.Unlock()

	return f.sendOTP(ctx, email)
}

func (f *ResetFlow) sendOTP(ctx context.Context, email string) error {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return nil
	}
	f.loading = true
	f.mu.Unlock()

	_, err := f.api.RequestOTP(ctx, email)

	f.mu.Lock()
	f.loading = false
	if err != nil {
		f.mu.Unlock()
		f.log.Warn(ctx, "request otp failed", "error", err)
		f.reportFailure(err, "Failed to send OTP.")
		return fmt.Errorf("request otp: %w", err)
	}
	f.otpSent = true
	f.otp = ""
	f.mu.Unlock()

	f.countdown.Start()
	f.toast.Success("OTP sent successfully. Please check your mail.", titleSuccess)
	return nil
}

// SetOTP records the OTP field. Exactly six digits trigger verification
// unless one is already verified or in flight. Setting the value it
// already holds does nothing.
func (f *ResetFlow) SetOTP(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)

	f.mu.Lock()
	if !f.otpSent || f.otpVerified || f.completed {
		f.mu.Unlock()
		return fmt.Errorf("otp: %w", ErrFieldDisabled)
	}
	if value == f.otp {
		f.mu.Unlock()
		return nil
	}
	f.otp = value
	auto := validation.IsOTP(value) && !f.otpVerified && !f.verifying
	f.mu.Unlock()

	if !auto {
		return nil
	}
	return f.VerifyOTP(ctx)
}

// VerifyOTP exchanges the current OTP for a reset token. On failure the
// flow stays in the OTP step.
func (f *ResetFlow) VerifyOTP(ctx context.Context) error {
	f.mu.Lock()
	if !f.otpSent {
		f.mu.Unlock()
		f.toast.Error("Please request an OTP first.", titleError)
		return validation.Field("otp", "Please request an OTP first.")
	}
	if f.otpVerified || f.verifying {
		f.mu.Unlock()
		return nil
	}
	if !validation.IsOTP(f.otp) {
		f.mu.Unlock()
		f.toast.Error("Please enter the 6-digit OTP.", titleError)
		return validation.Field("otp", "Please enter the 6-digit OTP.")
	}
	f.verifying = true
	req := models.VerifyOTPRequest{Email: f.email, OTP: f.otp}
	f.mu.Unlock()

	token, err := f.api.VerifyOTP(ctx, req)

	f.mu.Lock()
	f.verifying = false
	if err != nil {
		f.mu.Unlock()
		f.log.Warn(ctx, "verify otp failed", "error", err)
		f.reportFailure(err, "Invalid OTP")
		return fmt.Errorf("verify otp: %w", err)
	}
	f.otpVerified = true
	f.resetToken = token
	f.mu.Unlock()

	f.countdown.Stop()
	f.toast.Success("OTP verified. You can now set a new password.", titleSuccess)
	return nil
}

// SetPassword records the new password. The field is enabled only after
// the OTP is verified.
func (f *ResetFlow) SetPassword(p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.otpVerified || f.completed {
		return fmt.Errorf("password: %w", ErrFieldDisabled)
	}
	f.password = p
	return nil
}

// Complete posts the new password with the reset token. A failure keeps
// the verified state so the user can retry without a new OTP. On success
// the login view is opened after the redirect delay.
func (f *ResetFlow) Complete(ctx context.Context) error {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return nil
	}
	if !f.otpVerified || f.resetToken == "" {
		f.mu.Unlock()
		f.toast.Error("Please verify the OTP first.", titleError)
		return fmt.Errorf("%w: %w", common.ErrValidation, ErrNotVerified)
	}
	if f.loading {
		f.mu.Unlock()
		return nil
	}
	req := models.ResetPasswordRequest{Email: f.email, ResetToken: f.resetToken, NewPassword: f.password}
	if err := validation.Struct(req); err != nil {
		f.mu.Unlock()
		f.toast.Error(err.Error(), titleValidation)
		return err
	}
	f.loading = true
	f.mu.Unlock()

	msg, err := f.api.ResetPassword(ctx, req)

	f.mu.Lock()
	f.loading = false
	if err != nil {
		f.mu.Unlock()
		f.log.Warn(ctx, "reset password failed", "error", err)
		f.reportFailure(err, "Failed to reset password.")
		return fmt.Errorf("reset password: %w", err)
	}
	f.completed = true
	f.resetToken = ""
	f.password = ""
	f.mu.Unlock()

	f.countdown.Stop()
	if msg == "" {
		msg = "Password has been successfully updated."
	}
	f.toast.Success(msg, titleSuccess)

	time.AfterFunc(f.redirectDelay, func() {
		f.nav.Navigate(context.Background(), session.ViewLogin)
		close(f.redirected)
	})
	return nil
}

// Redirected is closed once a completed reset has navigated to login.
func (f *ResetFlow) Redirected() <-chan struct{} {
	return f.redirected
}

// Teardown stops the countdown and forgets the reset token. A pending
// post-completion redirect still fires.
func (f *ResetFlow) Teardown() {
	f.countdown.Stop()

	f.mu.Lock()
	f.resetToken = ""
	f.password = ""
	f.mu.Unlock()
}

func (f *ResetFlow) reportFailure(err error, fallback string) {
	msg := api.ErrorMessage(err, fallback)
	if isDisabledMessage(msg) {
		f.toast.Error(MsgAccountDisabled, titleError)
		return
	}
	f.toast.Error(msg, titleError)
}
