//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Role groups resources under a project and can be assigned to users.
type Role struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	ProjectID   string                  `json:"project_id"`
	Resources   map[string]ResourceItem `json:"resources"`
	Enabled     bool                    `json:"enabled"`
	Audit
}

// RolePage is the paginated role list payload returned by the GoIAM API.
type RolePage struct {
	Roles []Role `json:"roles"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}
