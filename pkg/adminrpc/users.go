package adminrpc

// User mirrors pkg/auth's user record as exposed over the admin API; it
// never carries the credential hash itself.
type User struct {
	Name                 string   `json:"name"`
	Disabled             bool     `json:"disabled"`
	Methods              []string `json:"methods,omitempty"`
	Groups               []string `json:"groups,omitempty"`
	Mounts               []Mount  `json:"mounts,omitempty"`
	RateLimitBytesPerSec int64    `json:"rate_limit_bytes_per_sec,omitempty"`
	SessionCountLimit    int64    `json:"session_count_limit,omitempty"`
	DisallowedIPs        []string `json:"disallowed_ips,omitempty"`
	AllowedIPs           []string `json:"allowed_ips,omitempty"`
}

// CreateUserRequest is the request to create a user.
type CreateUserRequest struct {
	Name                 string   `json:"name"`
	Password             string   `json:"password"`
	Methods              []string `json:"methods,omitempty"`
	Groups               []string `json:"groups,omitempty"`
	Disabled             *bool    `json:"disabled,omitempty"`
	RateLimitBytesPerSec int64    `json:"rate_limit_bytes_per_sec,omitempty"`
	SessionCountLimit    int64    `json:"session_count_limit,omitempty"`
	DisallowedIPs        []string `json:"disallowed_ips,omitempty"`
	AllowedIPs           []string `json:"allowed_ips,omitempty"`
}

// UpdateUserRequest is the request to update an existing user. Nil fields
// are left unchanged.
type UpdateUserRequest struct {
	Methods              *[]string `json:"methods,omitempty"`
	Groups               *[]string `json:"groups,omitempty"`
	Disabled             *bool     `json:"disabled,omitempty"`
	RateLimitBytesPerSec *int64    `json:"rate_limit_bytes_per_sec,omitempty"`
	SessionCountLimit    *int64    `json:"session_count_limit,omitempty"`
	DisallowedIPs        *[]string `json:"disallowed_ips,omitempty"`
	AllowedIPs           *[]string `json:"allowed_ips,omitempty"`
}

// ChangePasswordRequest is the request to set or change a password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password"`
}

// ListUsers returns every configured user.
func (c *Client) ListUsers() ([]User, error) {
	return listResources[User](c, "/api/v1/users")
}

// GetUser returns a user by name.
func (c *Client) GetUser(name string) (*User, error) {
	return getResource[User](c, resourcePath("/api/v1/users/%s", name))
}

// CreateUser creates a new user.
func (c *Client) CreateUser(req *CreateUserRequest) (*User, error) {
	return createResource[User](c, "/api/v1/users", req)
}

// UpdateUser updates an existing user.
func (c *Client) UpdateUser(name string, req *UpdateUserRequest) (*User, error) {
	return updateResource[User](c, resourcePath("/api/v1/users/%s", name), req)
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(name string) error {
	return deleteResource(c, resourcePath("/api/v1/users/%s", name))
}

// ResetUserPassword resets a user's password as an administrator, without
// knowing the current password.
func (c *Client) ResetUserPassword(name, newPassword string) error {
	req := &ChangePasswordRequest{NewPassword: newPassword}
	return c.post(resourcePath("/api/v1/users/%s/password", name), req, nil)
}

// ChangeOwnPassword changes the caller's own password, returning a fresh
// token pair since the old tokens may have been derived from the old hash.
func (c *Client) ChangeOwnPassword(currentPassword, newPassword string) (*TokenResponse, error) {
	req := &ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	var resp TokenResponse
	if err := c.post("/api/v1/users/me/password", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
