//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// PolicyArgument describes one parameter a policy accepts.
type PolicyArgument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DataType    string `json:"data_type"`
}

// PolicyDefinition lists the arguments a policy accepts.
type PolicyDefinition struct {
	Arguments []PolicyArgument `json:"arguments"`
}

// Policy is a reusable authorization policy definition.
type Policy struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Definition  PolicyDefinition `json:"definition"`
}

// PolicyPage is the paginated policy list payload returned by the GoIAM API.
type PolicyPage struct {
	Policies []Policy `json:"policies"`
	Total    int      `json:"total"`
	Skip     int      `json:"skip"`
	Limit    int      `json:"limit"`
}
