package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/pb33f/libopenapi"
	"gopkg.in/yaml.v3"
)

var readFromURI = openapi3.ReadFromURIs(openapi3.ReadFromHTTP(http.DefaultClient), openapi3.ReadFromFile)

// Parse decodes a YAML or JSON document and rejects unsupported versions
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, errors.New("document is empty")
	}
	node := unalias(root.Content[0])
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("document root must be a mapping")
	}
	var doc Document
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if err := CheckVersion(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadDocument returns the raw bytes of a local file or an HTTP(S) URL
func ReadDocument(ctx context.Context, input string) ([]byte, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true
	return readFromURI(loader, location(input))
}

// LoadDocument loads an OpenAPI document from a local file path or an HTTP(S) URL
func LoadDocument(ctx context.Context, input string) (*Document, error) {
	data, err := ReadDocument(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	return doc, nil
}

// ValidateDocument validates an OpenAPI document. kin-openapi checks the document
// against the 3.x rules and libopenapi builds the full v3 model; problems from
// both are reported together.
func ValidateDocument(ctx context.Context, input string) error {
	data, err := ReadDocument(ctx, input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	if _, err := Parse(data); err != nil {
		return err
	}

	var errs []error
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
	var kinDoc *openapi3.T
	if u := location(input); u.Scheme == "http" || u.Scheme == "https" {
		kinDoc, err = loader.LoadFromURI(u)
	} else {
		kinDoc, err = loader.LoadFromFile(input)
	}
	if err != nil {
		errs = append(errs, fmt.Errorf("kin-openapi: %w", err))
	} else if err := kinDoc.Validate(loader.Context); err != nil {
		errs = append(errs, fmt.Errorf("kin-openapi: %w", err))
	}

	lib, err := libopenapi.NewDocument(data)
	if err != nil {
		errs = append(errs, fmt.Errorf("libopenapi: %w", err))
	} else if strings.HasPrefix(lib.GetVersion(), "2.") {
		errs = append(errs, &VersionError{Version: lib.GetVersion(), Swagger: true})
	} else if _, modelErrs := lib.BuildV3Model(); len(modelErrs) > 0 {
		for _, e := range modelErrs {
			errs = append(errs, fmt.Errorf("libopenapi: %w", e))
		}
	}
	return errors.Join(errs...)
}

func location(input string) *url.URL {
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return u
	}
	return &url.URL{Path: input}
}
