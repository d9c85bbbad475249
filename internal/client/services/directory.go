package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/salemerge/quotedesk/internal/client/api"
	"github.com/salemerge/quotedesk/internal/client/models"
	"github.com/salemerge/quotedesk/internal/client/validation"
	"github.com/salemerge/quotedesk/internal/common"
	"github.com/salemerge/quotedesk/internal/logging"
)

const DirectoryPageSize = 10

// UserForm is the add/edit user dialog. Password is only read when
// creating.
type UserForm struct {
	Name          string `json:"name" validate:"required,min=3"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"-"`
	Role          string `json:"role" validate:"required,oneof=user admin"`
	DownloadLimit int    `json:"download_limit" validate:"gte=0"`
	IsActive      bool   `json:"is_active"`
}

// NewUserForm returns the defaults of an empty add dialog.
func NewUserForm() UserForm {
	return UserForm{Role: models.RoleUser, DownloadLimit: 10, IsActive: true}
}

// EditForm prefills the dialog from an existing account.
func EditForm(u models.AccountUser) UserForm {
	return UserForm{
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		DownloadLimit: u.DownloadLimit,
		IsActive:      u.IsActive,
	}
}

func (f UserForm) validate(create bool) error {
	errs := validation.Errors{}
	if err := validation.Struct(f); err != nil {
		if ve, ok := err.(validation.Errors); ok {
			errs = ve
		} else {
			return err
		}
	}
	if create {
		switch {
		case f.Password == "":
			errs["password"] = "The field 'password' is required."
		case !validation.IsStrongPassword(f.Password):
			errs["password"] = "The field 'password' must be at least 8 characters and include upper and lower case letters, a digit and one of @$!%*?&."
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Directory is the paginated user manager. Every successful mutation is
// followed by LoadUsers; the page is never patched locally.
type Directory struct {
	api   api.Client
	toast Notifier
	log   logging.Logger

	users    []models.AccountUser
	page     int
	pageSize int
	total    int
	pages    int
	search   string
	loading  bool
}

func NewDirectory(c api.Client, n Notifier, log logging.Logger) *Directory {
	return &Directory{api: c, toast: n, log: log, page: 1, pageSize: DirectoryPageSize}
}

// LoadUsers refreshes the current page.
func (d *Directory) LoadUsers(ctx context.Context) error {
	d.loading = true
	defer func() { d.loading = false }()

	res, err := d.api.ListUsers(ctx, models.ListUsersQuery{
		Page:   d.page,
		Limit:  d.pageSize,
		Search: strings.TrimSpace(d.search),
	})
	if err != nil {
		d.log.Warn(ctx, "load users failed", "page", d.page, "error", err)
		d.toast.Error("Failed to load users", titleError)
		return fmt.Errorf("load users: %w", err)
	}

	d.users = res.Users
	d.total = res.Pagination.Total
	d.pages = res.Pagination.Pages
	return nil
}

// Search filters by term and goes back to the first page.
func (d *Directory) Search(ctx context.Context, term string) error {
	d.search = term
	d.page = 1
	return d.LoadUsers(ctx)
}

// GoToPage ignores pages outside 1..Pages.
func (d *Directory) GoToPage(ctx context.Context, n int) error {
	if n < 1 || n > d.pages {
		return nil
	}
	d.page = n
	return d.LoadUsers(ctx)
}

func (d *Directory) NextPage(ctx context.Context) error { return d.GoToPage(ctx, d.page+1) }
func (d *Directory) PrevPage(ctx context.Context) error { return d.GoToPage(ctx, d.page-1) }

func (d *Directory) Create(ctx context.Context, form UserForm) error {
	if err := form.validate(true); err != nil {
		d.toast.Error("Please fill all required fields correctly", titleValidation)
		return err
	}
	msg, err := d.api.CreateUser(ctx, models.CreateUserRequest{
		Name:          strings.TrimSpace(form.Name),
		Email:         strings.TrimSpace(form.Email),
		Password:      form.Password,
		Role:          form.Role,
		DownloadLimit: form.DownloadLimit,
		IsActive:      form.IsActive,
	})
	return d.afterMutation(ctx, "create user", msg, err, "User created successfully", "Failed to create user")
}

// Update never sends a password.
func (d *Directory) Update(ctx context.Context, id int64, form UserForm) error {
	if err := form.validate(false); err != nil {
		d.toast.Error("Please fill all required fields correctly", titleValidation)
		return err
	}
	msg, err := d.api.UpdateUser(ctx, id, models.UpdateUserRequest{
		Name:          strings.TrimSpace(form.Name),
		Email:         strings.TrimSpace(form.Email),
		Role:          form.Role,
		DownloadLimit: form.DownloadLimit,
		IsActive:      form.IsActive,
	})
	return d.afterMutation(ctx, "update user", msg, err, "User updated successfully", "Failed to update user")
}

func (d *Directory) Delete(ctx context.Context, id int64) error {
	msg, err := d.api.DeleteUser(ctx, id)
	return d.afterMutation(ctx, "delete user", msg, err, "User deleted successfully", "Failed to delete user")
}

// ToggleStatus flips the active flag of a user on the current page.
func (d *Directory) ToggleStatus(ctx context.Context, id int64) error {
	u, ok := d.Find(id)
	if !ok {
		d.toast.Error(fmt.Sprintf("User %d is not on this page", id), titleError)
		return fmt.Errorf("user %d: %w", id, common.ErrNotFound)
	}
	active := !u.IsActive
	if _, err := d.api.SetUserStatus(ctx, id, active); err != nil {
		d.log.Warn(ctx, "toggle status failed", "user_id", id, "error", err)
		d.toast.Error(api.ErrorMessage(err, "Failed to update user status"), titleError)
		return fmt.Errorf("toggle status: %w", err)
	}
	verb := "deactivated"
	if active {
		verb = "activated"
	}
	d.toast.Success(fmt.Sprintf("User %s successfully", verb), titleSuccess)
	return d.LoadUsers(ctx)
}

func (d *Directory) SetDownloadLimit(ctx context.Context, id int64, limit int) error {
	if limit < 0 {
		d.toast.Error("Download limit cannot be negative", titleValidation)
		return validation.Field("download_limit", "The field 'download_limit' must be greater than or equal to 0.")
	}
	msg, err := d.api.SetDownloadLimit(ctx, id, limit)
	return d.afterMutation(ctx, "set download limit", msg, err, "Download limit updated successfully", "Failed to update download limit")
}

func (d *Directory) ResetDownloads(ctx context.Context, id int64) error {
	msg, err := d.api.ResetDownloads(ctx, id)
	return d.afterMutation(ctx, "reset downloads", msg, err, "Downloads reset successfully", "Failed to reset downloads")
}

func (d *Directory) afterMutation(ctx context.Context, op, msg string, err error, okMsg, failMsg string) error {
	if err != nil {
		d.log.Warn(ctx, op+" failed", "error", err)
		d.toast.Error(api.ErrorMessage(err, failMsg), titleError)
		return fmt.Errorf("%s: %w", op, err)
	}
	if msg == "" {
		msg = okMsg
	}
	d.toast.Success(msg, titleSuccess)
	return d.LoadUsers(ctx)
}

// Find looks id up on the loaded page.
func (d *Directory) Find(id int64) (models.AccountUser, bool) {
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.AccountUser{}, false
}

func (d *Directory) Users() []models.AccountUser {
	out := make([]models.AccountUser, len(d.users))
	copy(out, d.users)
	return out
}

func (d *Directory) Page() int { return d.page }
func (d *Directory) Pages() int { return d.pages }
func (d *Directory) Total() int { return d.total }
func (d *Directory) PageSize() int { return d.pageSize }
func (d *Directory) SearchTerm() string { return d.search }
func (d *Directory) Loading() bool { return d.loading }

func (d *Directory) HasNextPage() bool { return d.page < d.pages }
func (d *Directory) HasPrevPage() bool { return d.page > 1 }

func (d *Directory) PageNumbers() []int {
	out := make([]int, d.pages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
