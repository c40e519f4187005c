package api

import (
	"context"
	"net/http"
)

// googleLoginResponse carries the provider authorization URL.
type googleLoginResponse struct {
	AuthURL string `json:"auth_url"`
}

// GoogleLoginURL fetches the Google OAuth authorization URL.
// The caller opens it in a browser; the provider redirects back to the
// client's loopback listener with the callback parameters.
func (c *Client) GoogleLoginURL(ctx context.Context) (string, error) {
	var resp googleLoginResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/google/login", nil, &resp); err != nil {
		return "", err
	}
	return resp.AuthURL, nil
}

// Login authenticates with email (and optional password) and returns a
// fresh token plus the server's user record.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and returns a fresh token plus user record.
func (c *Client) Register(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates mutable profile fields and returns the updated record.
func (c *Client) UpdateProfile(ctx context.Context, user User) (*User, error) {
	var updated User
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CompleteOnboarding submits the business profile collected by the wizard.
func (c *Client) CompleteOnboarding(ctx context.Context, data Onboarding) error {
	return c.do(ctx, http.MethodPost, "/api/onboarding", data, nil)
}

// Logout tells the server to invalidate the current token. Callers treat
// this as fire-and-forget: local state flips regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}
