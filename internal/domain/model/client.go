//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Client is an OAuth-style client registered with the GoIAM server.
// A client flagged GoIamClient is the service account the console itself
// uses to act as an OAuth client against the authorization server.
type Client struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	Secret                string   `json:"secret,omitempty"`
	Tags                  []string `json:"tags"`
	RedirectURLs          []string `json:"redirect_urls"`
	ProjectID             string   `json:"project_id"`
	DefaultAuthProviderID string   `json:"default_auth_provider_id"`
	GoIamClient           bool     `json:"go_iam_client"`
	Enabled               bool     `json:"enabled"`
	Audit
}
