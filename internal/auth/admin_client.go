package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUserNotFound is returned by FindUserIDByEmail when no account matches.
var ErrUserNotFound = errors.New("user not found")

// AdminClient talks to the Supabase Admin API. lorectl uses it to provision
// demo accounts; the server never holds a service role key.
type AdminClient struct {
	supabaseURL string
	serviceKey  string
	httpClient  *http.Client
}

func NewAdminClient(supabaseURL, serviceKey string) *AdminClient {
	return &AdminClient{
		supabaseURL: strings.TrimRight(supabaseURL, "/"),
		serviceKey:  serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type CreateUserRequest struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	EmailConfirm bool           `json:"email_confirm"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type listUsersResponse struct {
	Users []AdminUser `json:"users"`
}

// EnsureUser returns the id of the account with the given email, creating
// a confirmed account when none exists. displayName is stored as
// full_name so it surfaces in the user's access tokens.
func (c *AdminClient) EnsureUser(ctx context.Context, email, password, displayName string) (id string, created bool, err error) {
	id, err = c.FindUserIDByEmail(ctx, email)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return "", false, err
	}

	req := &CreateUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
	}
	if displayName != "" {
		req.UserMetadata = map[string]any{"full_name": displayName}
	}
	id, err = c.CreateUser(ctx, req)
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// FindUserIDByEmail scans the first page of users for a case-insensitive
// email match.
func (c *AdminClient) FindUserIDByEmail(ctx context.Context, email string) (string, error) {
	var list listUsersResponse
	if err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users?per_page=1000", nil, &list); err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}
	for _, user := range list.Users {
		if strings.EqualFold(user.Email, email) {
			return user.ID, nil
		}
	}
	return "", fmt.Errorf("%s: %w", email, ErrUserNotFound)
}

func (c *AdminClient) CreateUser(ctx context.Context, req *CreateUserRequest) (string, error) {
	var user AdminUser
	if err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", req, &user); err != nil {
		return "", fmt.Errorf("create user %s: %w", req.Email, err)
	}
	if user.ID == "" {
		return "", fmt.Errorf("create user %s: response has no id", req.Email)
	}
	return user.ID, nil
}

// DeleteUser is idempotent: a missing user is not an error.
func (c *AdminClient) DeleteUser(ctx context.Context, userID string) error {
	err := c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+url.PathEscape(userID), nil, nil)
	var statusErr *adminStatusError
	if errors.As(err, &statusErr) && statusErr.status == http.StatusNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	return nil
}

type adminStatusError struct {
	status int
	body   string
}

func (e *adminStatusError) Error() string {
	return fmt.Sprintf("supabase admin api returned %d: %s", e.status, e.body)
}

func (c *AdminClient) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.supabaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &adminStatusError{status: resp.StatusCode, body: strings.TrimSpace(string(msg))}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
