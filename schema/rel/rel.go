// Package rel provides builders for declaring relations between models.
//
// A relation points at another registered model type with a cardinality of
// one or many. The target is usually given with the Type method-expression
// of the target schema, which lets the builder extract the type name at
// declaration time without the target being registered yet:
//
//	func (User) Relations() []apiclient.Relation {
//	    return []apiclient.Relation{
//	        rel.ToMany("posts", Post.Type),
//	        rel.ToOne("manager", User.Type),
//	    }
//	}
package rel

import (
	"fmt"
	"reflect"
)

// A Cardinality is the declared arity of a relation.
type Cardinality string

// Relation cardinalities.
const (
	// One relations hold a single model instance, or nil when unset.
	One Cardinality = "one"
	// Many relations hold an ordered, resettable list of model
	// instances, never nil.
	Many Cardinality = "many"
)

// Valid reports if c is a declared cardinality.
func (c Cardinality) Valid() bool {
	return c == One || c == Many
}

// A Descriptor for relation configuration.
type Descriptor struct {
	Name        string      // relation name as it appears on the wire.
	Type        string      // target model type name.
	Cardinality Cardinality // one or many.
	Required    bool        // required relations must hold a value.
	Comment     string      // optional comment for codegen.
	Err         error       // first builder error, checked at registration.
}

// Builder is the builder for relations of either cardinality.
type Builder struct {
	desc *Descriptor
}

// ToOne returns a builder for a relation holding a single target model.
// The target t is the Type method-expression of the target schema, a
// schema value, or the type name itself.
func ToOne(name string, t any) *Builder {
	return newBuilder(name, t, One)
}

// ToMany returns a builder for a relation holding an ordered list of
// target models.
func ToMany(name string, t any) *Builder {
	return newBuilder(name, t, Many)
}

func newBuilder(name string, t any, c Cardinality) *Builder {
	d := &Descriptor{Name: name, Cardinality: c}
	d.Type, d.Err = typ(t)
	return &Builder{desc: d}
}

// Required marks the relation as required: validation fails when the
// relation holds no value.
func (b *Builder) Required() *Builder {
	b.desc.Required = true
	return b
}

// Comment sets the comment of the relation.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the apiclient.Relation interface by returning
// the descriptor of the relation.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

// typ extracts the target type name from the declaration. Method
// expressions (User.Type) resolve to the name of their receiver type,
// schema values to the name of their dynamic type, and strings pass
// through unchanged.
func typ(t any) (string, error) {
	switch t := t.(type) {
	case nil:
		return "", fmt.Errorf("rel: missing relation target")
	case string:
		if t == "" {
			return "", fmt.Errorf("rel: empty relation target name")
		}
		return t, nil
	}
	rt := reflect.TypeOf(t)
	if rt.Kind() == reflect.Func {
		if rt.NumIn() == 0 {
			return "", fmt.Errorf("rel: relation target %T is not a schema method-expression", t)
		}
		return indirect(rt.In(0)).Name(), nil
	}
	if name := indirect(rt).Name(); name != "" {
		return name, nil
	}
	return "", fmt.Errorf("rel: cannot derive relation target from %T", t)
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
