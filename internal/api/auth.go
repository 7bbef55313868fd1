package api

import (
	"context"
	"net/url"
)

// LoginResponse carries the bearer token issued on successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  string `json:"username"`
}

// CSRFInfo is the CSRF token plus the header and parameter names the
// backend expects it under.
type CSRFInfo struct {
	Token         string `json:"token"`
	HeaderName    string `json:"headerName"`
	ParameterName string `json:"parameterName"`
}

// Login exchanges username and password for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.post(ctx, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	return resp, err
}

// GoogleLoginURL returns the backend redirect URL that starts the Google
// OAuth flow. redirect is the path the backend sends the browser back to.
func (c *Client) GoogleLoginURL(redirect string) string {
	u := c.baseURL + "/api/auth/google"
	if redirect != "" {
		u += "?redirect=" + url.QueryEscape(redirect)
	}
	return u
}

// FetchCSRF retrieves the CSRF token and the names it must be sent under.
func (c *Client) FetchCSRF(ctx context.Context) (CSRFInfo, error) {
	var info CSRFInfo
	err := c.get(ctx, "/api/auth/csrf", nil, &info)
	return info, err
}

// Whoami returns the username the stored credentials resolve to.
func (c *Client) Whoami(ctx context.Context) (string, error) {
	var resp struct {
		Username string `json:"username"`
	}
	if err := c.get(ctx, "/api/auth/me", nil, &resp); err != nil {
		return "", err
	}
	return resp.Username, nil
}

// VerifyEmail confirms a registration with the emailed code.
func (c *Client) VerifyEmail(ctx context.Context, code string) error {
	return c.post(ctx, "/api/auth/verify", map[string]string{"code": code}, nil)
}

// ForgotPassword asks the backend to email a reset code.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword sets a new password using a reset code.
func (c *Client) ResetPassword(ctx context.Context, code, password string) error {
	return c.post(ctx, "/api/auth/reset-password", map[string]string{
		"code":     code,
		"password": password,
	}, nil)
}
