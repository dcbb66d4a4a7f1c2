package ir

// IROperation represents a single API operation (endpoint + method)
type IROperation struct {
	OperationID  string         `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Method       string         `yaml:"method" json:"method"`
	Path         string         `yaml:"path" json:"path"`
	Tag          string         `yaml:"tag" json:"tag"`
	Tags         []string       `yaml:"tags,omitempty" json:"tags,omitempty"`
	Summary      string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Deprecated   bool           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Webhook      bool           `yaml:"webhook,omitempty" json:"webhook,omitempty"`
	PathParams   []IRParam      `yaml:"pathParams,omitempty" json:"pathParams,omitempty"`
	QueryParams  []IRParam      `yaml:"queryParams,omitempty" json:"queryParams,omitempty"`
	HeaderParams []IRParam      `yaml:"headerParams,omitempty" json:"headerParams,omitempty"`
	CookieParams []IRParam      `yaml:"cookieParams,omitempty" json:"cookieParams,omitempty"`
	RequestBody  *IRRequestBody `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	// Success and Error are the representative status codes, empty when absent.
	Success string `yaml:"success,omitempty" json:"success,omitempty"`
	Error   string `yaml:"error,omitempty" json:"error,omitempty"`
}

// IRService represents a group of operations, typically grouped by tag
type IRService struct {
	Tag        string        `yaml:"tag" json:"tag"`
	Operations []IROperation `yaml:"operations" json:"operations"`
}

// IR is an operation-level summary of an OpenAPI document
type IR struct {
	Title    string      `yaml:"title,omitempty" json:"title,omitempty"`
	Version  string      `yaml:"version,omitempty" json:"version,omitempty"`
	Services []IRService `yaml:"services" json:"services"`
}

// IRParam represents a parameter of any location
type IRParam struct {
	Name       string `yaml:"name" json:"name"`
	Required   bool   `yaml:"required" json:"required"`
	Deprecated bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	// Type is the schema type, or the component name for referenced schemas
	Type string `yaml:"type" json:"type"`
	// Description from the OpenAPI parameter
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// IRRequestBody represents a request body
type IRRequestBody struct {
	ContentTypes []string `yaml:"contentTypes" json:"contentTypes"`
	Required     bool     `yaml:"required" json:"required"`
}

// Operations returns every operation of every service
func (in IR) Operations() []IROperation {
	var out []IROperation
	for _, s := range in.Services {
		out = append(out, s.Operations...)
	}
	return out
}
