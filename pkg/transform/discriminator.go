package transform

import (
	"strings"

	"github.com/blimu-dev/typegen/pkg/openapi"
)

// DiscriminatorInfo describes how a variant is tagged.
type DiscriminatorInfo struct {
	// PropertyName is the discriminator property of the root.
	PropertyName string
	// Values are the tag literals. There is more than one only when several
	// mapping keys point at the same variant.
	Values []string
	// Root is the pointer of the schema that declares the discriminator.
	Root string
	// Mapped is set when Values come from an explicit mapping.
	Mapped bool
}

// Discriminators maps schema pointers to their role in a polymorphic hierarchy.
type Discriminators struct {
	roots    map[string]*openapi.Discriminator
	variants map[string]DiscriminatorInfo
}

// Root returns the discriminator declared by the schema at path
func (d *Discriminators) Root(path string) (*openapi.Discriminator, bool) {
	disc, ok := d.roots[canonicalRef(path)]
	return disc, ok
}

// Variant returns the tag information of the schema at path
func (d *Discriminators) Variant(path string) (DiscriminatorInfo, bool) {
	info, ok := d.variants[canonicalRef(path)]
	return info, ok
}

// propertyFor returns the discriminator property that an allOf member at path
// contributes, either as a root or as a variant of one.
func (d *Discriminators) propertyFor(path string) (string, bool) {
	if disc, ok := d.Root(path); ok {
		return disc.PropertyName, true
	}
	if info, ok := d.Variant(path); ok {
		return info.PropertyName, true
	}
	return "", false
}

// ScanDiscriminators finds every discriminator root and tags its variants.
// Members of a root's oneOf/anyOf are tagged first; schemas that extend a root
// (or another variant) through allOf are tagged after, until nothing changes.
// A tag is the mapping key whose target resolves to the variant, falling back
// to the variant's own name.
func ScanDiscriminators(resolver *Resolver) *Discriminators {
	d := &Discriminators{
		roots:    make(map[string]*openapi.Discriminator),
		variants: make(map[string]DiscriminatorInfo),
	}
	schemas := resolver.Schemas()

	for _, entry := range schemas {
		s := entry.Schema
		if s.IsRef() || s.Discriminator == nil || s.Discriminator.PropertyName == "" {
			continue
		}
		d.roots[entry.Path] = s.Discriminator
		for _, member := range append(append([]*openapi.Schema(nil), s.OneOf...), s.AnyOf...) {
			if !member.IsRef() {
				continue
			}
			target := resolver.Target(member.Ref)
			if _, seen := d.variants[target]; seen {
				continue
			}
			d.variants[target] = tagVariant(resolver, entry.Path, s.Discriminator, target)
		}
	}

	for changed := true; changed; {
		changed = false
		for _, entry := range schemas {
			if _, seen := d.variants[entry.Path]; seen || entry.Schema.IsRef() {
				continue
			}
			root, disc := d.allOfRoot(resolver, entry.Schema)
			if disc == nil {
				continue
			}
			d.variants[entry.Path] = tagVariant(resolver, root, disc, entry.Path)
			changed = true
		}
	}
	return d
}

// allOfRoot returns the root discriminator inherited through allOf, if any.
func (d *Discriminators) allOfRoot(resolver *Resolver, s *openapi.Schema) (string, *openapi.Discriminator) {
	for _, member := range s.AllOf {
		if member == nil {
			continue
		}
		if !member.IsRef() {
			if member.Discriminator != nil && member.Discriminator.PropertyName != "" {
				return "", member.Discriminator
			}
			continue
		}
		target := resolver.Target(member.Ref)
		if disc, ok := d.roots[target]; ok {
			return target, disc
		}
		if info, ok := d.variants[target]; ok {
			if disc, ok := d.roots[info.Root]; ok {
				return info.Root, disc
			}
		}
	}
	return "", nil
}

func tagVariant(resolver *Resolver, root string, disc *openapi.Discriminator, target string) DiscriminatorInfo {
	info := DiscriminatorInfo{PropertyName: disc.PropertyName, Root: root}
	for value, ref := range disc.Mapping.All() {
		if resolver.Target(mappingRef(ref)) == target {
			info.Values = append(info.Values, value)
		}
	}
	if len(info.Values) > 0 {
		info.Mapped = true
		return info
	}
	info.Values = []string{lastToken(target)}
	return info
}

// mappingRef expands a bare schema name in a discriminator mapping to a ref.
func mappingRef(ref string) string {
	if strings.Contains(ref, "#") || strings.Contains(ref, "/") {
		return ref
	}
	return joinPath("#", "components", "schemas", ref)
}
