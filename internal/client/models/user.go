package models

import (
	"encoding/json"
	"fmt"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AccountUser is an application account as the backend reports it.
type AccountUser struct {
	ID            int64
	Name          string
	Email         string
	Role          string
	IsActive      bool
	DownloadLimit int
	DownloadsUsed int
	CreatedAt     string
	UpdatedAt     string

	// ActiveFlag is the raw is_active/active value, nil when absent.
	ActiveFlag any
}

type accountUserWire struct {
	ID            json.RawMessage `json:"id"`
	UserID        json.RawMessage `json:"userid"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          string          `json:"role"`
	IsActive      json.RawMessage `json:"is_active"`
	Active        json.RawMessage `json:"active"`
	DownloadLimit json.RawMessage `json:"download_limit"`
	DownloadsUsed json.RawMessage `json:"downloads_used"`
	CreatedOn     json.RawMessage `json:"created_on"`
	CreatedAt     json.RawMessage `json:"created_at"`
	UpdatedOn     json.RawMessage `json:"updated_on"`
	UpdatedAt     json.RawMessage `json:"updated_at"`
}

// UnmarshalJSON accepts both naming variants the backend emits
// (id/userid, is_active/active, created_on/created_at).
func (u *AccountUser) UnmarshalJSON(b []byte) error {
	var w accountUserWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	idRaw := w.ID
	if len(idRaw) == 0 || string(idRaw) == "null" {
		idRaw = w.UserID
	}
	id, err := flexInt(idRaw)
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	limit, err := flexInt(w.DownloadLimit)
	if err != nil {
		return fmt.Errorf("download_limit: %w", err)
	}
	used, err := flexInt(w.DownloadsUsed)
	if err != nil {
		return fmt.Errorf("downloads_used: %w", err)
	}

	flag := decodeFlag(w.IsActive)
	if flag == nil {
		flag = decodeFlag(w.Active)
	}

	*u = AccountUser{
		ID:            id,
		Name:          w.Name,
		Email:         w.Email,
		Role:          w.Role,
		IsActive:      !IsDisabledFlag(flag),
		DownloadLimit: int(limit),
		DownloadsUsed: int(used),
		CreatedAt:     firstNonEmpty(flexString(w.CreatedOn), flexString(w.CreatedAt)),
		UpdatedAt:     firstNonEmpty(flexString(w.UpdatedOn), flexString(w.UpdatedAt)),
		ActiveFlag:    flag,
	}
	return nil
}

// Disabled applies IsDisabledFlag to the raw activity flag.
func (u AccountUser) Disabled() bool {
	return IsDisabledFlag(u.ActiveFlag)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// UserPage is one server-side page of the user directory.
type UserPage struct {
	Users      []AccountUser `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// ListUsersQuery is encoded with go-querystring.
type ListUsersQuery struct {
	Page   int    `url:"page"`
	Limit  int    `url:"limit"`
	Search string `url:"search,omitempty"`
	Active *bool  `url:"active,omitempty"`
}

type CreateUserRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	DownloadLimit int    `json:"download_limit"`
	IsActive      bool   `json:"is_active"`
}

// UpdateUserRequest never carries a password.
type UpdateUserRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	DownloadLimit int    `json:"download_limit"`
	IsActive      bool   `json:"is_active"`
}

type StatusRequest struct {
	IsActive bool `json:"is_active"`
}

type DownloadLimitRequest struct {
	DownloadLimit int `json:"download_limit"`
}

// ProfileUpdate is sent to PATCH /users/me. Password fields are only set
// when the user changes the password.
type ProfileUpdate struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	OldPassword string `json:"old_password,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
}
