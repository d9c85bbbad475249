package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/salemerge/quotedesk/internal/client/models"
	"github.com/salemerge/quotedesk/internal/client/services"
	"github.com/salemerge/quotedesk/internal/common"
)

const usersUsage = "Usage: users [page N | next | prev | search TERM | add | edit ID | delete ID | toggle ID | limit ID N | resetdl ID]"

// Users is the user directory. Without arguments it reloads and prints the
// current page.
func (a *App) Users(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.showUsers(ctx, a.users.LoadUsers(ctx))
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "page":
		if len(rest) != 1 {
			a.println(usersUsage)
			return nil
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			a.println(usersUsage)
			return nil
		}
		return a.showUsers(ctx, a.users.GoToPage(ctx, n))

	case "next":
		return a.showUsers(ctx, a.users.NextPage(ctx))

	case "prev":
		return a.showUsers(ctx, a.users.PrevPage(ctx))

	case "search":
		return a.showUsers(ctx, a.users.Search(ctx, strings.Join(rest, " ")))

	case "add":
		form, err := a.promptUser(services.NewUserForm(), true)
		if err != nil {
			return err
		}
		return a.showUsers(ctx, a.users.Create(ctx, form))
	}

	if len(rest) == 0 {
		a.println(usersUsage)
		return nil
	}
	id, err := parseID(rest[0])
	if err != nil {
		a.println(err.Error())
		return err
	}

	switch sub {
	case "edit":
		u, err := a.findUser(ctx, id)
		if err != nil {
			return err
		}
		form, err := a.promptUser(services.EditForm(u), false)
		if err != nil {
			return err
		}
		return a.showUsers(ctx, a.users.Update(ctx, id, form))

	case "delete":
		ok, err := GetConfirm(a.reader, "Are you sure you want to delete this user?", a.out)
		if err != nil || !ok {
			return err
		}
		return a.showUsers(ctx, a.users.Delete(ctx, id))

	case "toggle":
		if _, err := a.findUser(ctx, id); err != nil {
			return err
		}
		return a.showUsers(ctx, a.users.ToggleStatus(ctx, id))

	case "limit":
		if len(rest) != 2 {
			a.println(usersUsage)
			return nil
		}
		limit, err := strconv.Atoi(rest[1])
		if err != nil {
			a.println(usersUsage)
			return nil
		}
		return a.showUsers(ctx, a.users.SetDownloadLimit(ctx, id, limit))

	case "resetdl":
		return a.showUsers(ctx, a.users.ResetDownloads(ctx, id))

	default:
		a.println(usersUsage)
		return nil
	}
}

func (a *App) showUsers(ctx context.Context, err error) error {
	if err != nil {
		a.log.Debug(ctx, "users command failed", "error", err)
		return err
	}
	printUsers(a.out, a.users)
	return nil
}

// findUser looks id up on the current page, loading it first if needed.
func (a *App) findUser(ctx context.Context, id int64) (models.AccountUser, error) {
	if u, ok := a.users.Find(id); ok {
		return u, nil
	}
	if len(a.users.Users()) == 0 {
		if err := a.users.LoadUsers(ctx); err != nil {
			return models.AccountUser{}, err
		}
		if u, ok := a.users.Find(id); ok {
			return u, nil
		}
	}
	a.println("User not found on the current page. Use 'users search' or 'users page N' first.")
	return models.AccountUser{}, common.ErrNotFound
}

// promptUser fills the user dialog. Blank answers keep the shown values.
func (a *App) promptUser(form services.UserForm, create bool) (services.UserForm, error) {
	var err error
	if form.Name, err = GetDefault(a.reader, "Name", form.Name, a.out); err != nil {
		return form, err
	}
	if form.Email, err = GetDefault(a.reader, "Email", form.Email, a.out); err != nil {
		return form, err
	}
	if create {
		pw, err := getPassword("Password", a.out)
		if err != nil {
			return form, err
		}
		form.Password = string(pw)
		wipe(pw)
	}
	if form.Role, err = GetDefault(a.reader, "Role (user/admin)", form.Role, a.out); err != nil {
		return form, err
	}

	if form.DownloadLimit, err = GetInt(a.reader, "Download limit", form.DownloadLimit, a.out); err != nil {
		return form, err
	}

	active, err := GetDefault(a.reader, "Active (y/n)", yesNo(form.IsActive), a.out)
	if err != nil {
		return form, err
	}
	switch strings.ToLower(active) {
	case "y", "yes":
		form.IsActive = true
	case "n", "no":
		form.IsActive = false
	default:
		return form, errors.New("answer y or n")
	}
	return form, nil
}
