package apiclient

import (
	"context"
	"sort"

	"github.com/TerraSkye/api-client/schema/rel"
)

// Model is a typed in-memory instance of a registered model type. It
// owns a value table keyed by declared name; slots hold scalars, nested
// models, lists of models, or unresolved links. Instances are minted
// with Type.New and are not safe for concurrent use.
type Model struct {
	typ      *Type
	values   map[string]any
	resolver Resolver
	fallback Fallback
}

// Type returns the compiled registry entry backing the instance.
func (m *Model) Type() *Type {
	return m.typ
}

// WithResolver sets the transport collaborator used for link
// resolution. Models constructed while populating relation slots
// inherit the resolver.
func (m *Model) WithResolver(r Resolver) *Model {
	m.resolver = r
	return m
}

// WithFallback sets the handler for attribute names the model does not
// declare. Without a fallback, unknown names fail with
// *UnknownNameError.
func (m *Model) WithFallback(f Fallback) *Model {
	m.fallback = f
	return m
}

// Attr returns the raw slot value for the given declared name or alias.
// Unlike Get it never touches the resolver: an unresolved link comes
// back as *Link. Unknown names return nil.
func (m *Model) Attr(name string) any {
	if v, ok := m.values[name]; ok {
		return v
	}
	if canonical, ok := m.typ.aliases[name]; ok {
		return m.values[canonical]
	}
	return nil
}

// Get reads the attribute or relation with the given name.
//
// A slot holding an unresolved *Link is resolved through the instance
// resolver and the resolved value replaces the link in the slot, so a
// second read returns it without re-fetching. A list whose elements are
// links is resolved element by element, in place. Declared slots with
// no value return nil (or the empty List for many relations) without
// error; absence is not an error. Unknown names are delegated to the
// fallback exactly once when one is configured, and fail with
// *UnknownNameError otherwise.
func (m *Model) Get(ctx context.Context, name string) (any, error) {
	v, ok := m.values[name]
	if !ok {
		if canonical, aliased := m.typ.aliases[name]; aliased {
			return m.Get(ctx, canonical)
		}
		if m.fallback != nil {
			return m.fallback.GetFallback(name)
		}
		return nil, NewUnknownNameError(m.typ.Name, name)
	}
	switch v := v.(type) {
	case *Link:
		resolved, err := v.Resolve(ctx, m.resolver)
		if err != nil {
			return nil, err
		}
		m.values[name] = resolved
		return resolved, nil
	case *List:
		if err := m.resolveList(ctx, v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return v, nil
	}
}

// resolveList resolves link elements in place. Lists are homogeneous in
// practice; a cheap first-element check keeps the common no-link path
// allocation free.
func (m *Model) resolveList(ctx context.Context, l *List) error {
	if l.Len() == 0 {
		return nil
	}
	if _, ok := l.Get(0).(*Link); !ok {
		return nil
	}
	for i, v := range l.items {
		link, ok := v.(*Link)
		if !ok {
			continue
		}
		resolved, err := link.Resolve(ctx, m.resolver)
		if err != nil {
			return err
		}
		l.items[i] = resolved
	}
	return nil
}

// Set writes the attribute or relation with the given name.
//
// Nil values and the reserved links key are silent no-ops. Writing a
// many relation resets the list and repopulates it from the given
// sequence of mappings; prior contents are replaced, never appended to.
// Writing a one relation constructs and bulk-populates a fresh instance
// of the target type. Plain attributes store the value directly,
// last-write-wins, no coercion. Aliases recurse into the canonical
// name; unknown names go to the fallback exactly once when configured,
// and fail with *UnknownNameError otherwise.
func (m *Model) Set(name string, value any) error {
	if value == nil || name == LinksKey {
		return nil
	}
	if r, ok := m.typ.relIdx[name]; ok {
		return m.setRelation(r, value)
	}
	if _, ok := m.typ.attrIdx[name]; ok {
		m.values[name] = value
		return nil
	}
	if canonical, ok := m.typ.aliases[name]; ok {
		return m.Set(canonical, value)
	}
	if m.fallback != nil {
		return m.fallback.SetFallback(name, value)
	}
	return NewUnknownNameError(m.typ.Name, name)
}

func (m *Model) setRelation(r *RelationInfo, value any) error {
	target, err := r.Type()
	if err != nil {
		return err
	}
	if r.Cardinality == rel.Many {
		items, err := sequence(m.typ.Name, value)
		if err != nil {
			return err
		}
		list := m.values[r.Name].(*List)
		list.Reset()
		for _, item := range items {
			child, err := m.newChild(target, item)
			if err != nil {
				return err
			}
			list.Append(child)
		}
		return nil
	}
	child, err := m.newChild(target, value)
	if err != nil {
		return err
	}
	m.values[r.Name] = child
	return nil
}

// newChild constructs and populates a relation target instance. Already
// constructed models and links pass through unchanged.
func (m *Model) newChild(target *Type, value any) (any, error) {
	switch v := value.(type) {
	case *Model:
		return v, nil
	case *Link:
		return v, nil
	}
	child := target.New().WithResolver(m.resolver)
	if err := child.SetAttributes(value); err != nil {
		return nil, err
	}
	return child, nil
}

// SetAttributes bulk-populates the model from src: a plain mapping, or
// anything implementing BodyExtractor (the response-envelope
// collaborator). Entries are written in sorted key order; the first
// write error wins. Input that does not resolve to a mapping fails with
// *InvalidAttributesError.
func (m *Model) SetAttributes(src any) error {
	var attrs map[string]any
	switch src := src.(type) {
	case map[string]any:
		attrs = src
	case BodyExtractor:
		body, err := src.ExtractBody()
		if err != nil {
			return err
		}
		attrs = body
	default:
		return NewInvalidAttributesError(m.typ.Name, src)
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := m.Set(k, attrs[k]); err != nil {
			return err
		}
	}
	return nil
}

// sequence coerces the accepted wire forms of a many-relation payload
// to a uniform slice.
func sequence(typ string, value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = item
		}
		return items, nil
	case *List:
		return v.Values(), nil
	default:
		return nil, NewInvalidAttributesError(typ, value)
	}
}
