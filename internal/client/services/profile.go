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

type Profile struct {
	ID            int64
	Name          string
	Email         string
	Role          string
	DownloadLimit int
	DownloadsUsed int
}

// ProfileForm is the settings form. The password pair is optional.
type ProfileForm struct {
	Name        string `json:"name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"old_password" validate:"-"`
	NewPassword string `json:"new_password" validate:"omitempty,strongpwd"`
}

// ProfileService manages the logged-in user's own account.
type ProfileService struct {
	api   api.Client
	store SessionStore
	toast Notifier
	nav   Navigator
	log   logging.Logger

	current Profile
}

func NewProfileService(c api.Client, store SessionStore, n Notifier, nav Navigator, log logging.Logger) *ProfileService {
	return &ProfileService{api: c, store: store, toast: n, nav: nav, log: log}
}

// Load reads the user's record, falling back to what the session knows
// when the backend cannot be reached.
func (p *ProfileService) Load(ctx context.Context) (Profile, error) {
	sess, err := p.store.Load(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("load session: %w", err)
	}
	if sess.UserID == 0 {
		return Profile{}, session.ErrNoSession
	}

	u, err := p.api.GetUser(ctx, sess.UserID)
	if err != nil {
		p.log.Warn(ctx, "load profile failed, using session", "user_id", sess.UserID, "error", err)
		p.current = Profile{ID: sess.UserID, Name: "User", Email: sess.Email, Role: sess.Role}
		return p.current, nil
	}

	name := u.Name
	if name == "" {
		name = "User"
	}
	id := u.ID
	if id == 0 {
		id = sess.UserID
	}
	p.current = Profile{
		ID:            id,
		Name:          name,
		Email:         u.Email,
		Role:          u.Role,
		DownloadLimit: u.DownloadLimit,
		DownloadsUsed: u.DownloadsUsed,
	}
	return p.current, nil
}

func (p *ProfileService) Current() Profile { return p.current }

// Update saves name and email, and the password when a new one is given.
// The password fields of form are cleared on success.
func (p *ProfileService) Update(ctx context.Context, form *ProfileForm) error {
	if err := validation.Struct(form); err != nil {
		p.toast.Error("Please check your input", titleValidation)
		return err
	}

	req := models.ProfileUpdate{Name: strings.TrimSpace(form.Name), Email: strings.TrimSpace(form.Email)}
	if form.NewPassword != "" {
		if form.OldPassword == "" {
			p.toast.Error("Current password is required to set a new password", titleValidation)
			return validation.Field("old_password", "Current password is required to set a new password")
		}
		req.OldPassword = form.OldPassword
		req.NewPassword = form.NewPassword
	}

	if _, err := p.api.UpdateProfile(ctx, req); err != nil {
		p.log.Warn(ctx, "update profile failed", "error", err)
		p.toast.Error(api.ErrorMessage(err, "Failed to update profile"), titleError)
		return fmt.Errorf("update profile: %w", err)
	}

	p.toast.Success("Profile updated successfully", titleSuccess)
	p.current.Name = req.Name
	p.current.Email = req.Email
	form.OldPassword = ""
	form.NewPassword = ""
	return nil
}

// ChangePassword uses the dedicated credentials endpoint.
func (p *ProfileService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	req := models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := validation.Struct(req); err != nil {
		p.toast.Error(err.Error(), titleValidation)
		return err
	}
	msg, err := p.api.ChangePassword(ctx, req)
	if err != nil {
		p.log.Warn(ctx, "change password failed", "error", err)
		p.toast.Error(api.ErrorMessage(err, "Failed to change password"), titleError)
		return fmt.Errorf("change password: %w", err)
	}
	if msg == "" {
		msg = "Password changed successfully"
	}
	p.toast.Success(msg, titleSuccess)
	return nil
}

// Deactivate disables the user's own account and logs out.
func (p *ProfileService) Deactivate(ctx context.Context) error {
	// The stored session is authoritative; the cached profile may belong to
	// an earlier login.
	sess, err := p.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	id := sess.UserID
	if id == 0 {
		return session.ErrNoSession
	}

	if _, err := p.api.SetUserStatus(ctx, id, false); err != nil {
		p.log.Warn(ctx, "deactivate failed", "user_id", id, "error", err)
		p.toast.Error("Failed to deactivate account", titleError)
		return fmt.Errorf("deactivate: %w", err)
	}

	p.toast.Success("Account deactivated successfully", titleSuccess)
	if err := p.store.Clear(ctx); err != nil {
		p.log.Error(ctx, "clear session failed", "error", err)
	}
	p.current = Profile{}
	p.nav.Navigate(ctx, session.ViewLogin)
	return nil
}
