//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Setup reports whether the deployment has a GoIAM client configured for
// the console. An empty ClientID means the deployment is unconfigured and
// the UI surfaces a setup banner.
type Setup struct {
	ClientAdded bool   `json:"client_added"`
	ClientID    string `json:"client_id"`
}

// DashboardSelf is the "who am I" payload returned by the dashboard endpoint.
type DashboardSelf struct {
	Setup Setup `json:"setup"`
	User  *User `json:"user"`
}
