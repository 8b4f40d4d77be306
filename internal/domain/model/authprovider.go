//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "strings"

// AuthProviderKind identifies the upstream identity provider type.
type AuthProviderKind string

const (
	AuthProviderGoogle    AuthProviderKind = "GOOGLE"
	AuthProviderMicrosoft AuthProviderKind = "MICROSOFT"
	AuthProviderGithub    AuthProviderKind = "GITHUB"
	AuthProviderOIDC      AuthProviderKind = "OIDC"
)

// AuthProviderParam is one provider configuration value
// (e.g. key "@GOOGLE/CLIENT_ID").
type AuthProviderParam struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Key      string `json:"key"`
	IsSecret bool   `json:"is_secret"`
}

// AuthProvider is an identity provider configured under a project.
type AuthProvider struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Provider  AuthProviderKind    `json:"provider"`
	ProjectID string              `json:"project_id"`
	Params    []AuthProviderParam `json:"params"`
	Enabled   bool                `json:"enabled"`
	Audit
}

// Param returns the value for the given param key, or "" when absent.
func (p *AuthProvider) Param(key string) string {
	for _, param := range p.Params {
		if param.Key == key {
			return param.Value
		}
	}
	return ""
}

// IssuerParamKey is the param key carrying the issuer URL of OIDC providers.
const IssuerParamKey = "@OIDC/ISSUER"

// IsOIDC reports whether the provider is a generic OIDC provider.
func (p *AuthProvider) IsOIDC() bool {
	return AuthProviderKind(strings.ToUpper(string(p.Provider))) == AuthProviderOIDC
}
