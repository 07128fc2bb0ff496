package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/SscSPs/dealflow/internal/dto"
)

// IssueToken exchanges an email and password for an access token.
func (c *Client) IssueToken(ctx context.Context, email, password string) (string, error) {
	var resp dto.TokenResponse
	form := url.Values{"username": {email}, "password": {password}}
	if err := c.do(ctx, http.MethodPost, "/auth/token", formBody(form), "application/x-www-form-urlencoded", false, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register creates a user account.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	var resp dto.UserResponse
	if err := c.doPublicJSON(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	user := resp.ToDomain()
	return &user, nil
}

// Me resolves the current token to its user.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var resp dto.UserResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	user := resp.ToDomain()
	return &user, nil
}

// Logout asks the server to revoke the current token.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}
