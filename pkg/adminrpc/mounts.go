package adminrpc

// Mount is one tvfs.MountPoint as exposed over the admin API.
type Mount struct {
	Virtual    string `json:"virtual"`
	Native     string `json:"native"`
	Access     string `json:"access"`
	Recursion  string `json:"recursion"`
	Autocreate bool   `json:"autocreate,omitempty"`
}

// CreateMountRequest adds a mount point to a user or group.
type CreateMountRequest struct {
	Virtual    string `json:"virtual"`
	Native     string `json:"native"`
	Access     string `json:"access"`
	Recursion  string `json:"recursion"`
	Autocreate bool   `json:"autocreate,omitempty"`
}

// ListUserMounts returns the mount points owned directly by a user (not
// those inherited through group membership).
func (c *Client) ListUserMounts(username string) ([]Mount, error) {
	return listResources[Mount](c, resourcePath("/api/v1/users/%s/mounts", username))
}

// CreateUserMount adds a mount point to a user.
func (c *Client) CreateUserMount(username string, req *CreateMountRequest) (*Mount, error) {
	return createResource[Mount](c, resourcePath("/api/v1/users/%s/mounts", username), req)
}

// DeleteUserMount removes the mount point at virtual from a user.
func (c *Client) DeleteUserMount(username, virtual string) error {
	return deleteResource(c, resourcePath("/api/v1/users/%s/mounts%s", username, virtual))
}

// ListGroupMounts returns the mount points a group grants its members.
func (c *Client) ListGroupMounts(group string) ([]Mount, error) {
	return listResources[Mount](c, resourcePath("/api/v1/groups/%s/mounts", group))
}

// CreateGroupMount adds a mount point to a group.
func (c *Client) CreateGroupMount(group string, req *CreateMountRequest) (*Mount, error) {
	return createResource[Mount](c, resourcePath("/api/v1/groups/%s/mounts", group), req)
}

// DeleteGroupMount removes the mount point at virtual from a group.
func (c *Client) DeleteGroupMount(group, virtual string) error {
	return deleteResource(c, resourcePath("/api/v1/groups/%s/mounts%s", group, virtual))
}
