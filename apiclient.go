// Package apiclient provides the object-mapping runtime of a REST API
// client SDK: declared schemas are compiled into a per-type registry,
// registry types mint model instances that map JSON response bodies to
// attribute and relation slots, resolve lazy links, validate declared
// rules, and serialize back to request bodies.
package apiclient

import (
	"context"

	"github.com/TerraSkye/api-client/schema/attr"
	"github.com/TerraSkye/api-client/schema/rel"
)

type (
	// Attribute is the interface implemented by the builders in
	// schema/attr. It exists in this package so that schema
	// declarations depend on apiclient only.
	Attribute interface {
		Descriptor() *attr.Descriptor
	}

	// Relation is the interface implemented by the builders in
	// schema/rel.
	Relation interface {
		Descriptor() *rel.Descriptor
	}

	// Interface is the contract every concrete model schema fulfills.
	// Embedding Schema gives a declaration the default (empty)
	// implementations, so a schema overrides only what it declares.
	Interface interface {
		// Attributes returns the declared plain attributes of the model.
		Attributes() []Attribute
		// Relations returns the declared relations of the model.
		Relations() []Relation
		// Aliases returns the alias table of the model: alternate wire
		// name to canonical declared name.
		Aliases() map[string]string
		// Mixin returns the declaration fragments merged in front of
		// the schema's own attributes and relations.
		Mixin() []Mixin
	}

	// Mixin is a reusable fragment of attribute and relation
	// declarations shared between schemas.
	Mixin interface {
		Attributes() []Attribute
		Relations() []Relation
	}
)

// Schema is the default implementation of the Interface contract.
// Concrete model schemas embed it and override the methods they need:
//
//	type User struct {
//	    apiclient.Schema
//	}
//
//	func (User) Attributes() []apiclient.Attribute {
//	    return []apiclient.Attribute{
//	        attr.String("name").Required(),
//	    }
//	}
type Schema struct{}

// Attributes of the schema.
func (Schema) Attributes() []Attribute { return nil }

// Relations of the schema.
func (Schema) Relations() []Relation { return nil }

// Aliases of the schema.
func (Schema) Aliases() map[string]string { return nil }

// Mixin of the schema.
func (Schema) Mixin() []Mixin { return nil }

// Type is a marker method used as a method-expression in relation
// declarations: rel.ToOne("owner", User.Type) extracts the type name
// "User" from the expression's receiver.
func (Schema) Type() {}

// compile-time check.
var _ Interface = (*Schema)(nil)

// Resolver is the transport collaborator consumed by the model read
// path: it fetches the resource a link points at and returns the
// populated *Model, or a *List of models for collection resources.
type Resolver interface {
	Resolve(ctx context.Context, l *Link) (any, error)
}

// ResolverFunc is an adapter allowing an ordinary function to be used
// as a Resolver.
type ResolverFunc func(ctx context.Context, l *Link) (any, error)

// Resolve calls f(ctx, l).
func (f ResolverFunc) Resolve(ctx context.Context, l *Link) (any, error) {
	return f(ctx, l)
}

// Fallback handles attribute names the model does not own. When a model
// carries a fallback, unknown names on read and write are delegated to
// it exactly once instead of failing with *UnknownNameError.
type Fallback interface {
	// GetFallback is consulted when a read misses every declared
	// attribute, relation and alias.
	GetFallback(name string) (any, error)
	// SetFallback is consulted when a write misses every declared
	// attribute, relation and alias.
	SetFallback(name string, value any) error
}

// BodyExtractor unwraps a response envelope into the plain mapping
// consumed by bulk population. The rest package's Envelope implements it.
type BodyExtractor interface {
	ExtractBody() (map[string]any, error)
}
