//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// ResourceItem is the compact resource reference embedded in users and roles.
type ResourceItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// RoleItem is the compact role reference embedded in users.
type RoleItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PolicyMappingValue is one bound argument of an attached policy.
type PolicyMappingValue struct {
	Static string `json:"static"`
}

// PolicyMapping binds policy arguments to values.
type PolicyMapping struct {
	Arguments map[string]PolicyMappingValue `json:"arguments"`
}

// PolicyItem is a policy attached to a user together with its argument bindings.
type PolicyItem struct {
	Name    string        `json:"name"`
	Mapping PolicyMapping `json:"mapping"`
}

// User is an end user managed under a project.
type User struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	ProjectID  string                  `json:"project_id"`
	Email      string                  `json:"email"`
	Phone      string                  `json:"phone"`
	Expiry     *string                 `json:"expiry"`
	ProfilePic string                  `json:"profile_pic,omitempty"`
	Resources  map[string]ResourceItem `json:"resources"`
	Roles      map[string]RoleItem     `json:"roles"`
	Policies   map[string]PolicyItem   `json:"policies,omitempty"`
	Enabled    bool                    `json:"enabled"`
	Audit
}

// UserPage is the paginated user list payload returned by the GoIAM API.
type UserPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// UserRoleUpdate adds or removes roles on a user.
type UserRoleUpdate struct {
	ToBeAdded   []RoleItem `json:"to_be_added,omitempty"`
	ToBeRemoved []RoleItem `json:"to_be_removed,omitempty"`
}

// UserPolicyUpdate replaces the policies attached to a user.
type UserPolicyUpdate struct {
	ToBeAdded   map[string]PolicyItem `json:"to_be_added,omitempty"`
	ToBeRemoved []string              `json:"to_be_removed,omitempty"`
}
