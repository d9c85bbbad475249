package cli

import (
	"context"

	"github.com/salemerge/quotedesk/internal/client/services"
)

const profileUsage = "Usage: profile [edit | password | deactivate]"

// Profile shows or edits the logged-in user's own account.
func (a *App) Profile(ctx context.Context, args []string) error {
	p, err := a.profile.Load(ctx)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		a.printf("Name:      %s\n", p.Name)
		a.printf("Email:     %s\n", p.Email)
		a.printf("Role:      %s\n", p.Role)
		a.printf("Downloads: %d/%d\n", p.DownloadsUsed, p.DownloadLimit)
		return nil
	}

	switch args[0] {
	case "edit":
		return a.editProfile(ctx, p)

	case "password":
		old, err := getPassword("Current password", a.out)
		if err != nil {
			return err
		}
		defer wipe(old)
		next, err := getPassword("New password", a.out)
		if err != nil {
			return err
		}
		defer wipe(next)
		return a.profile.ChangePassword(ctx, string(old), string(next))

	case "deactivate":
		ok, err := GetConfirm(a.reader, "Deactivate your account? You will be logged out.", a.out)
		if err != nil || !ok {
			return err
		}
		return a.profile.Deactivate(ctx)

	default:
		a.println(profileUsage)
		return nil
	}
}

func (a *App) editProfile(ctx context.Context, p services.Profile) error {
	form := &services.ProfileForm{}
	var err error
	if form.Name, err = GetDefault(a.reader, "Name", p.Name, a.out); err != nil {
		return err
	}
	if form.Email, err = GetDefault(a.reader, "Email", p.Email, a.out); err != nil {
		return err
	}

	next, err := getPassword("New password (blank to keep)", a.out)
	if err != nil {
		return err
	}
	defer wipe(next)
	if len(next) > 0 {
		old, err := getPassword("Current password", a.out)
		if err != nil {
			return err
		}
		defer wipe(old)
		form.OldPassword = string(old)
		form.NewPassword = string(next)
	}
	return a.profile.Update(ctx, form)
}
