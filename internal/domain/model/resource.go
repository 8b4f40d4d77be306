//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Resource is a protected capability identified by its key
// (e.g. "@goiam:ui:users:read").
type Resource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Key         string `json:"key"`
	Enabled     bool   `json:"enabled"`
	Audit
}

// ResourcePage is the paginated resource search payload returned by the GoIAM API.
type ResourcePage struct {
	Resources []Resource `json:"resources"`
	Total     int        `json:"total"`
	Skip      int        `json:"skip"`
	Limit     int        `json:"limit"`
}
