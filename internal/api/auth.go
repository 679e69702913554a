package api

import (
	"context"
	"net/http"
)

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	req := map[string]string{"name": name, "email": email, "password": password}
	var user User
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

// Me verifies a token and returns the user it belongs to.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
