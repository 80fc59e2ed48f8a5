package adminrpc

// Group mirrors pkg/auth's group record as exposed over the admin API.
type Group struct {
	Name                 string `json:"name"`
	Mounts               []Mount `json:"mounts,omitempty"`
	RateLimitBytesPerSec int64  `json:"rate_limit_bytes_per_sec,omitempty"`
	SessionCountLimit    int64  `json:"session_count_limit,omitempty"`
}

// CreateGroupRequest is the request to create a group.
type CreateGroupRequest struct {
	Name                 string `json:"name"`
	RateLimitBytesPerSec int64  `json:"rate_limit_bytes_per_sec,omitempty"`
	SessionCountLimit    int64  `json:"session_count_limit,omitempty"`
}

// UpdateGroupRequest is the request to update a group's limits.
type UpdateGroupRequest struct {
	RateLimitBytesPerSec *int64 `json:"rate_limit_bytes_per_sec,omitempty"`
	SessionCountLimit    *int64 `json:"session_count_limit,omitempty"`
}

// ListGroups returns all configured groups.
func (c *Client) ListGroups() ([]Group, error) {
	return listResources[Group](c, "/api/v1/groups")
}

// GetGroup returns a group by name.
func (c *Client) GetGroup(name string) (*Group, error) {
	return getResource[Group](c, resourcePath("/api/v1/groups/%s", name))
}

// CreateGroup creates a new group.
func (c *Client) CreateGroup(req *CreateGroupRequest) (*Group, error) {
	return createResource[Group](c, "/api/v1/groups", req)
}

// UpdateGroup updates an existing group's limits.
func (c *Client) UpdateGroup(name string, req *UpdateGroupRequest) (*Group, error) {
	return updateResource[Group](c, resourcePath("/api/v1/groups/%s", name), req)
}

// DeleteGroup deletes a group. Members keep their own mounts/limits but
// lose whatever this group contributed.
func (c *Client) DeleteGroup(name string) error {
	return deleteResource(c, resourcePath("/api/v1/groups/%s", name))
}

// AddGroupMember adds a user to a group.
func (c *Client) AddGroupMember(group, username string) error {
	req := map[string]string{"username": username}
	return c.post(resourcePath("/api/v1/groups/%s/members", group), req, nil)
}

// RemoveGroupMember removes a user from a group.
func (c *Client) RemoveGroupMember(group, username string) error {
	return deleteResource(c, resourcePath("/api/v1/groups/%s/members/%s", group, username))
}

// ListGroupMembers lists the usernames belonging to a group.
func (c *Client) ListGroupMembers(group string) ([]string, error) {
	var members []string
	if err := c.get(resourcePath("/api/v1/groups/%s/members", group), &members); err != nil {
		return nil, err
	}
	return members, nil
}
