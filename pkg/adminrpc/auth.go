package adminrpc

import "time"

// LoginRequest authenticates against pkg/webui's bootstrap admin account or
// any user with the token method enabled.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by login/refresh.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ExpiresInDuration returns ExpiresIn as a time.Duration.
func (t *TokenResponse) ExpiresInDuration() time.Duration {
	return time.Duration(t.ExpiresIn) * time.Second
}

// Login exchanges a username/password for an access/refresh token pair.
func (c *Client) Login(username, password string) (*TokenResponse, error) {
	req := LoginRequest{Username: username, Password: password}
	var resp TokenResponse
	if err := c.post("/api/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshToken exchanges a refresh token for a new token pair.
func (c *Client) RefreshToken(refreshToken string) (*TokenResponse, error) {
	req := struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken}
	var resp TokenResponse
	if err := c.post("/api/v1/auth/refresh", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout revokes the current session's tokens server-side.
func (c *Client) Logout() error {
	return c.post("/api/v1/auth/logout", nil, nil)
}

// Identity is the caller's own account, as returned by GetCurrentUser.
type Identity struct {
	Username string   `json:"username"`
	Groups   []string `json:"groups,omitempty"`
	IsAdmin  bool      `json:"is_admin"`
}

// GetCurrentUser returns the identity of the authenticated caller.
func (c *Client) GetCurrentUser() (*Identity, error) {
	return getResource[Identity](c, "/api/v1/auth/me")
}
