package api

import "strings"

// Schema declaratively describes the field projection requested for one
// resource type, including the field subsets of nested entities, so a single
// round trip retrieves the full subgraph needed offline. It replaces one
// hand-written projection builder per entity type.
type Schema struct {
	// Resource is the collection name of the entity type (e.g. "programs").
	Resource string
	Fields   []Field
}

// Field is one projected field. A non-nil Nested schema projects a nested
// entity; Collection additionally marks the field as an owned child
// collection that the applier persists as records of Nested.Resource.
// References (Nested set, Collection unset) are projected but stay embedded
// in the parent body.
type Field struct {
	Name       string
	Nested     *Schema
	Collection bool
}

// F declares a plain field projection.
func F(name string) Field {
	return Field{Name: name}
}

// Ref declares a projected reference to a nested entity (not persisted
// separately).
func Ref(name string, nested Schema) Field {
	return Field{Name: name, Nested: &nested}
}

// Nest declares an owned child collection projected with its own schema and
// persisted by the applier as records of nested.Resource.
func Nest(name string, nested Schema) Field {
	return Field{Name: name, Nested: &nested, Collection: true}
}

// Encode renders the schema in the web API `fields` syntax:
// `id,name,child[id,grandchild[id]]`.
func (s Schema) Encode() string {
	parts := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Nested == nil {
			parts = append(parts, f.Name)
			continue
		}
		parts = append(parts, f.Name+"["+f.Nested.Encode()+"]")
	}
	return strings.Join(parts, ",")
}

// ChildCollections lists fields holding owned child collections, in
// declaration order.
func (s Schema) ChildCollections() []Field {
	var children []Field
	for _, f := range s.Fields {
		if f.Nested != nil && f.Collection {
			children = append(children, f)
		}
	}
	return children
}
