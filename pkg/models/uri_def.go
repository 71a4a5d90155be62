package models

// UriDef is a registered REST API definition. APIID is the business key that
// uri_paths reference; ObjID is the storage primary key.
type UriDef struct {
	ObjID       string     `json:"obj_id"`
	APIID       string     `json:"api_id"`
	SiteID      string     `json:"site_id"`
	ServiceName string     `json:"service_name"`
	Method      HTTPMethod `json:"method,omitempty"`
	APIName     string     `json:"api_name,omitempty"`
	Description string     `json:"description,omitempty"`
	BaseURI     string     `json:"base_uri,omitempty"`
	VersionInfo string     `json:"version_info,omitempty"`
	Audit
}

// UriPath is one ordered segment of a registered URI. Paths belong to exactly
// one UriDef via APIID and are removed with it.
type UriPath struct {
	ObjID        string `json:"obj_id"`
	APIID        string `json:"api_id"`
	PathOrder    int    `json:"path_order"`
	PathValue    string `json:"path_value"`
	IsParamUse   bool   `json:"is_param_use"`
	ParamName    string `json:"param_name,omitempty"`
	ParamType    string `json:"param_type,omitempty"`
	ParamDesc    string `json:"param_desc,omitempty"`
	ExampleValue string `json:"example_value,omitempty"`
	Audit
}
