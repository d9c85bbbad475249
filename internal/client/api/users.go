package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/go-querystring/query"
	"github.com/salemerge/quotedesk/internal/client/models"
)

const usersPath = "/admin/users"

func userPath(id int64, suffix string) string {
	return fmt.Sprintf("%s/%d%s", usersPath, id, suffix)
}

func (c *HTTPClient) ListUsers(ctx context.Context, q models.ListUsersQuery) (*models.UserPage, error) {
	values, err := query.Values(q)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	path := usersPath
	if enc := values.Encode(); enc != "" {
		path += "?" + enc
	}

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	page := &models.UserPage{}
	found := false
	for _, obj := range env.objects() {
		for _, key := range []string{"data", "users"} {
			if v, ok := obj[key]; ok && isArray(v) {
				if err := decodeInto(v, &page.Users); err != nil {
					return nil, err
				}
				found = true
				break
			}
		}
		if found {
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: no user list", ErrProtocol)
	}

	if v, ok := env.lookup("pagination"); ok {
		if err := decodeInto(v, &page.Pagination); err != nil {
			return nil, err
		}
	} else {
		page.Pagination = models.Pagination{Total: len(page.Users), Page: q.Page, Limit: q.Limit}
	}
	if page.Pagination.Pages == 0 && page.Pagination.Limit > 0 {
		p := page.Pagination
		page.Pagination.Pages = (p.Total + p.Limit - 1) / p.Limit
	}
	return page, nil
}

// GetUser reads a single account. The record may sit under data, under
// message or under user.
func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.AccountUser, error) {
	env, err := c.do(ctx, http.MethodGet, userPath(id, ""), nil)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{"data", "message"} {
		v, ok := env.get(key)
		if !ok || !hasUserID(v) {
			continue
		}
		var u models.AccountUser
		if err := decodeInto(v, &u); err != nil {
			return nil, err
		}
		return &u, nil
	}
	if v, ok := env.lookup("user"); ok {
		var u models.AccountUser
		if err := decodeInto(v, &u); err != nil {
			return nil, err
		}
		return &u, nil
	}
	return nil, fmt.Errorf("%w: no user record", ErrProtocol)
}

func hasUserID(v json.RawMessage) bool {
	var m map[string]json.RawMessage
	if json.Unmarshal(v, &m) != nil {
		return false
	}
	for _, key := range []string{"id", "userid"} {
		if raw, ok := m[key]; ok && !isNull(raw) {
			return true
		}
	}
	return false
}

func (c *HTTPClient) mutate(ctx context.Context, method, path string, body any) (string, error) {
	env, err := c.do(ctx, method, path, body)
	if err != nil {
		return "", err
	}
	return env.stringMessage(), nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, req models.CreateUserRequest) (string, error) {
	return c.mutate(ctx, http.MethodPost, usersPath, req)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (string, error) {
	return c.mutate(ctx, http.MethodPatch, userPath(id, ""), req)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) (string, error) {
	return c.mutate(ctx, http.MethodDelete, userPath(id, ""), nil)
}

func (c *HTTPClient) SetUserStatus(ctx context.Context, id int64, active bool) (string, error) {
	return c.mutate(ctx, http.MethodPatch, userPath(id, "/status"), models.StatusRequest{IsActive: active})
}

func (c *HTTPClient) SetDownloadLimit(ctx context.Context, id int64, limit int) (string, error) {
	return c.mutate(ctx, http.MethodPatch, userPath(id, "/download-limit"), models.DownloadLimitRequest{DownloadLimit: limit})
}

func (c *HTTPClient) ResetDownloads(ctx context.Context, id int64) (string, error) {
	return c.mutate(ctx, http.MethodPatch, userPath(id, "/reset-downloads"), struct{}{})
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req models.ProfileUpdate) (string, error) {
	return c.mutate(ctx, http.MethodPatch, "/users/me", req)
}
