package openapi

// Methods lists the HTTP methods a path item may declare, in output order.
var Methods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Document is an OpenAPI 3.0/3.1 document with map order preserved
type Document struct {
	OpenAPI    string                 `yaml:"openapi"`
	Swagger    string                 `yaml:"swagger"`
	Info       Info                   `yaml:"info"`
	Paths      *OrderedMap[*PathItem] `yaml:"paths"`
	Webhooks   *OrderedMap[*PathItem] `yaml:"webhooks"`
	Components *Components            `yaml:"components"`
	Defs       *OrderedMap[*Schema]   `yaml:"$defs"`
}

// Info is the subset of the info object used for banners and manifests
type Info struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// Components holds the reusable objects of a document
type Components struct {
	Schemas       *OrderedMap[*Schema]      `yaml:"schemas"`
	Responses     *OrderedMap[*Response]    `yaml:"responses"`
	Parameters    *OrderedMap[*Parameter]   `yaml:"parameters"`
	RequestBodies *OrderedMap[*RequestBody] `yaml:"requestBodies"`
	Headers       *OrderedMap[*Header]      `yaml:"headers"`
	PathItems     *OrderedMap[*PathItem]    `yaml:"pathItems"`
}

// PathItem describes the operations available on a single path
type PathItem struct {
	Ref         string       `yaml:"$ref"`
	Summary     string       `yaml:"summary"`
	Description string       `yaml:"description"`
	Parameters  []*Parameter `yaml:"parameters"`

	Get     *Operation `yaml:"get"`
	Put     *Operation `yaml:"put"`
	Post    *Operation `yaml:"post"`
	Delete  *Operation `yaml:"delete"`
	Options *Operation `yaml:"options"`
	Head    *Operation `yaml:"head"`
	Patch   *Operation `yaml:"patch"`
	Trace   *Operation `yaml:"trace"`
}

// Operation returns the operation declared for method (lowercase), or nil
func (p *PathItem) Operation(method string) *Operation {
	if p == nil {
		return nil
	}
	switch method {
	case "get":
		return p.Get
	case "put":
		return p.Put
	case "post":
		return p.Post
	case "delete":
		return p.Delete
	case "options":
		return p.Options
	case "head":
		return p.Head
	case "patch":
		return p.Patch
	case "trace":
		return p.Trace
	}
	return nil
}

// SetOperation replaces the operation for method
func (p *PathItem) SetOperation(method string, op *Operation) {
	switch method {
	case "get":
		p.Get = op
	case "put":
		p.Put = op
	case "post":
		p.Post = op
	case "delete":
		p.Delete = op
	case "options":
		p.Options = op
	case "head":
		p.Head = op
	case "patch":
		p.Patch = op
	case "trace":
		p.Trace = op
	}
}

// Operation is a single API operation on a path
type Operation struct {
	OperationID string                 `yaml:"operationId"`
	Summary     string                 `yaml:"summary"`
	Description string                 `yaml:"description"`
	Deprecated  bool                   `yaml:"deprecated"`
	Tags        []string               `yaml:"tags"`
	Parameters  []*Parameter           `yaml:"parameters"`
	RequestBody *RequestBody           `yaml:"requestBody"`
	Responses   *OrderedMap[*Response] `yaml:"responses"`
}

// Parameter is a query, header, path or cookie parameter
type Parameter struct {
	Ref         string                  `yaml:"$ref"`
	Name        string                  `yaml:"name"`
	In          string                  `yaml:"in"`
	Description string                  `yaml:"description"`
	Required    bool                    `yaml:"required"`
	Deprecated  bool                    `yaml:"deprecated"`
	Schema      *Schema                 `yaml:"schema"`
	Content     *OrderedMap[*MediaType] `yaml:"content"`
}

// Header is a response header
type Header struct {
	Ref         string                  `yaml:"$ref"`
	Description string                  `yaml:"description"`
	Required    bool                    `yaml:"required"`
	Deprecated  bool                    `yaml:"deprecated"`
	Schema      *Schema                 `yaml:"schema"`
	Content     *OrderedMap[*MediaType] `yaml:"content"`
}

// RequestBody describes the body accepted by an operation
type RequestBody struct {
	Ref         string                  `yaml:"$ref"`
	Description string                  `yaml:"description"`
	Required    bool                    `yaml:"required"`
	Content     *OrderedMap[*MediaType] `yaml:"content"`
}

// Response is one response of an operation
type Response struct {
	Ref         string                  `yaml:"$ref"`
	Summary     string                  `yaml:"summary"`
	Description string                  `yaml:"description"`
	Headers     *OrderedMap[*Header]    `yaml:"headers"`
	Content     *OrderedMap[*MediaType] `yaml:"content"`
}

// MediaType pairs a content type with its schema
type MediaType struct {
	Ref     string  `yaml:"$ref"`
	Schema  *Schema `yaml:"schema"`
	Example any     `yaml:"example"`
}
