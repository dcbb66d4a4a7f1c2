package openapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedVersion is returned for Swagger 2.0 and OpenAPI majors other than 3
	ErrUnsupportedVersion = errors.New("unsupported OpenAPI version")
	// ErrMissingVersion is returned when a document declares neither openapi nor swagger
	ErrMissingVersion = errors.New(`document has no "openapi" version field`)
)

// VersionError reports a declared version outside of [3, 4)
type VersionError struct {
	Version string
	Swagger bool
}

func (e *VersionError) Error() string {
	if e.Swagger {
		return fmt.Sprintf("swagger %s documents are not supported, convert to OpenAPI 3.x first", e.Version)
	}
	return fmt.Sprintf("openapi %q is not supported (expected 3.x)", e.Version)
}

func (e *VersionError) Unwrap() error { return ErrUnsupportedVersion }

// CheckVersion fails for anything that is not an OpenAPI 3.x document
func CheckVersion(doc *Document) error {
	if doc == nil {
		return errors.New("document is empty")
	}
	if doc.Swagger != "" {
		return &VersionError{Version: doc.Swagger, Swagger: true}
	}
	if strings.TrimSpace(doc.OpenAPI) == "" {
		return ErrMissingVersion
	}
	major, _, _ := strings.Cut(strings.TrimSpace(doc.OpenAPI), ".")
	n, err := strconv.Atoi(major)
	if err != nil || n < 3 || n >= 4 {
		return &VersionError{Version: doc.OpenAPI}
	}
	return nil
}
