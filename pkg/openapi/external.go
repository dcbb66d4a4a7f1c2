package openapi

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/jsonpointer"
	"gopkg.in/yaml.v3"
)

// FileResolver resolves $refs into sibling files (or URLs) of the root document.
// Loaded files are cached, so one resolver can be shared by concurrent transforms.
type FileResolver struct {
	base string

	mu   sync.Mutex
	docs map[string]*yaml.Node
}

// NewFileResolver creates a resolver for refs relative to rootLocation, the path or
// URL the root document was loaded from.
func NewFileResolver(rootLocation string) *FileResolver {
	return &FileResolver{base: rootLocation, docs: make(map[string]*yaml.Node)}
}

// ResolveRef decodes the node ref points at into target (for example a *Schema).
// Refs nested inside the decoded schema are rewritten relative to the file they came from.
func (r *FileResolver) ResolveRef(ref string, target any) error {
	file, fragment, _ := strings.Cut(ref, "#")
	if file == "" {
		return fmt.Errorf("%s: not an external reference", ref)
	}
	loc := r.join(file)
	root, err := r.load(loc)
	if err != nil {
		return err
	}
	node, err := lookupPointer(root, fragment)
	if err != nil {
		return fmt.Errorf("%s: %w", ref, err)
	}
	if err := node.Decode(target); err != nil {
		return fmt.Errorf("%s: %w", ref, err)
	}
	switch v := target.(type) {
	case *Schema:
		RebaseRefs(v, loc)
	case *Parameter:
		RebaseRefs(v.Schema, loc)
		rebaseContent(v.Content, loc)
	case *Header:
		RebaseRefs(v.Schema, loc)
		rebaseContent(v.Content, loc)
	case *RequestBody:
		rebaseContent(v.Content, loc)
	case *Response:
		for _, h := range v.Headers.All() {
			if h != nil {
				RebaseRefs(h.Schema, loc)
			}
		}
		rebaseContent(v.Content, loc)
	}
	return nil
}

func rebaseContent(content *OrderedMap[*MediaType], loc string) {
	for _, mt := range content.All() {
		if mt != nil {
			RebaseRefs(mt.Schema, loc)
		}
	}
}

func (r *FileResolver) join(file string) string {
	if u, err := url.Parse(file); err == nil && u.Scheme != "" {
		return file
	}
	if filepath.IsAbs(file) {
		return file
	}
	return joinLocation(r.base, file)
}

func (r *FileResolver) load(loc string) (*yaml.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.docs[loc]; ok {
		return n, nil
	}
	loader := openapi3.NewLoader()
	loader.Context = context.Background()
	data, err := readFromURI(loader, location(loc))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", loc, err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", loc, err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("%s is empty", loc)
	}
	r.docs[loc] = root.Content[0]
	return root.Content[0], nil
}

// RebaseRefs rewrites the refs inside s so that they stay valid outside the
// document at loc: local fragments get the file prefix, relative files are
// joined against loc's directory.
func RebaseRefs(s *Schema, loc string) {
	WalkSchema(s, func(n *Schema) {
		if n.Ref == "" {
			return
		}
		file, fragment, hasFragment := strings.Cut(n.Ref, "#")
		switch {
		case file == "":
			n.Ref = loc + "#" + fragment
		case isAbsLocation(file):
		default:
			n.Ref = joinLocation(loc, file)
			if hasFragment {
				n.Ref += "#" + fragment
			}
		}
	})
}

func isAbsLocation(file string) bool {
	if u, err := url.Parse(file); err == nil && u.Scheme != "" {
		return true
	}
	return filepath.IsAbs(file)
}

// joinLocation resolves rel against the directory of base (a path or URL).
func joinLocation(base, rel string) string {
	if u, err := url.Parse(base); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		u.Path = path.Join(path.Dir(u.Path), rel)
		return u.String()
	}
	return filepath.Join(filepath.Dir(base), filepath.FromSlash(rel))
}

func lookupPointer(root *yaml.Node, fragment string) (*yaml.Node, error) {
	if unescaped, err := url.PathUnescape(fragment); err == nil {
		fragment = unescaped
	}
	ptr, err := jsonpointer.New(fragment)
	if err != nil {
		return nil, err
	}
	node := unalias(root)
	for _, token := range ptr.DecodedTokens() {
		switch node.Kind {
		case yaml.MappingNode:
			var next *yaml.Node
			for i := 0; i+1 < len(node.Content); i += 2 {
				if node.Content[i].Value == token {
					next = node.Content[i+1]
					break
				}
			}
			if next == nil {
				return nil, fmt.Errorf("key %q not found", token)
			}
			node = unalias(next)
		case yaml.SequenceNode:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(node.Content) {
				return nil, fmt.Errorf("index %q out of range", token)
			}
			node = unalias(node.Content[i])
		default:
			return nil, fmt.Errorf("cannot descend into scalar at %q", token)
		}
	}
	return node, nil
}
