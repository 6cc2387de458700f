package apiclient

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"

	"github.com/TerraSkye/api-client/schema/attr"
	"github.com/TerraSkye/api-client/schema/rel"
)

// LinksKey is the reserved link-collection key carried by server
// envelopes. Writes to it are a silent no-op.
const LinksKey = "links"

type (
	// Type is the compiled registry entry for one model type. It is
	// built once when the schema is registered on a catalog and shared
	// by every instance the type mints: ordered attribute descriptors,
	// relation descriptors, the alias table and the per-attribute rule
	// sets all live here, not on instances.
	Type struct {
		// Name is the model type name, taken from the schema's Go type.
		Name string

		catalog *Catalog
		attrs   []*AttributeInfo
		attrIdx map[string]*AttributeInfo
		rels    []*RelationInfo
		relIdx  map[string]*RelationInfo
		aliases map[string]string
	}

	// AttributeInfo is the compiled form of a declared attribute.
	AttributeInfo struct {
		// Name of the attribute on the wire.
		Name string
		// Type is the declared wire type.
		Type attr.Type
		// Rules holds the declarative rule tokens accumulated for this
		// attribute (e.g. attr.RuleRequired).
		Rules []string
		// Sensitive attributes are redacted from transport logs.
		Sensitive bool
		// Comment of the attribute, carried through to codegen.
		Comment string
		// MixedIn indicates the attribute came from a mixin.
		MixedIn bool

		validators []func(any) error
	}

	// RelationInfo is the immutable compiled form of a declared
	// relation: its cardinality and target type name. The target *Type
	// is linked through the owning catalog on first use and memoized.
	RelationInfo struct {
		// Name of the relation on the wire.
		Name string
		// Cardinality is one or many.
		Cardinality rel.Cardinality
		// Target is the target model type name.
		Target string
		// Required relations must hold a value to validate.
		Required bool
		// MixedIn indicates the relation came from a mixin.
		MixedIn bool

		owner *Type
		typ   *Type
	}
)

// Required reports if the attribute carries the required rule.
func (a *AttributeInfo) Required() bool {
	return slices.Contains(a.Rules, attr.RuleRequired)
}

// Validate runs the attribute's declared validators against v.
func (a *AttributeInfo) Validate(v any) error {
	for _, fn := range a.validators {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

// Validators returns the number of validators declared on the attribute.
func (a *AttributeInfo) Validators() int {
	return len(a.validators)
}

// Type returns the compiled registry entry of the relation target,
// resolving it through the catalog on first call.
func (r *RelationInfo) Type() (*Type, error) {
	if r.typ != nil {
		return r.typ, nil
	}
	t, ok := r.owner.catalog.Lookup(r.Target)
	if !ok {
		return nil, NewSchemaError(r.owner.Name, r.Name, fmt.Sprintf("unknown relation target %q", r.Target), nil)
	}
	r.typ = t
	return t, nil
}

// Attributes returns the compiled attributes in declaration order,
// mixed-in attributes first.
func (t *Type) Attributes() []*AttributeInfo {
	return t.attrs
}

// Relations returns the compiled relations in declaration order.
func (t *Type) Relations() []*RelationInfo {
	return t.rels
}

// Attribute returns the compiled attribute with the given name.
func (t *Type) Attribute(name string) (*AttributeInfo, bool) {
	a, ok := t.attrIdx[name]
	return a, ok
}

// Relation returns the compiled relation with the given name.
func (t *Type) Relation(name string) (*RelationInfo, bool) {
	r, ok := t.relIdx[name]
	return r, ok
}

// Alias returns the canonical name the given alias maps to.
func (t *Type) Alias(name string) (string, bool) {
	canonical, ok := t.aliases[name]
	return canonical, ok
}

// Has reports whether name is a declared attribute or relation.
func (t *Type) Has(name string) bool {
	_, a := t.attrIdx[name]
	_, r := t.relIdx[name]
	return a || r
}

// New mints a model instance of this type. Every declared attribute
// slot exists from construction: plain attributes and one relations
// start nil, many relations start as an empty List.
func (t *Type) New() *Model {
	values := make(map[string]any, len(t.attrs)+len(t.rels))
	for _, a := range t.attrs {
		values[a.Name] = nil
	}
	for _, r := range t.rels {
		if r.Cardinality == rel.Many {
			values[r.Name] = NewList()
		} else {
			values[r.Name] = nil
		}
	}
	return &Model{typ: t, values: values}
}

// Catalog holds the compiled types of an API surface and links relation
// targets between them by name. Registration is not safe for concurrent
// use; a catalog is expected to be built once at program start.
type Catalog struct {
	types map[string]*Type
	names []string // registration order
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{types: make(map[string]*Type)}
}

// Register compiles the given schema declarations into the catalog.
// Declaration problems (invalid or duplicate names, bad cardinality,
// builder errors) surface as *SchemaError. Relation targets may be
// registered in any order; they are linked lazily on first use.
func (c *Catalog) Register(schemas ...Interface) error {
	for _, s := range schemas {
		t, err := c.compile(s)
		if err != nil {
			return err
		}
		if _, ok := c.types[t.Name]; ok {
			return NewSchemaError(t.Name, "", "type already registered", nil)
		}
		c.types[t.Name] = t
		c.names = append(c.names, t.Name)
	}
	return nil
}

// Lookup returns the compiled type with the given name.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	t, ok := c.types[name]
	return t, ok
}

// MustLookup is like Lookup but panics when the type is not registered.
// It is intended for generated bindings, where the type is known to be
// part of the catalog.
func (c *Catalog) MustLookup(name string) *Type {
	t, ok := c.types[name]
	if !ok {
		panic(fmt.Sprintf("apiclient: type %q is not registered", name))
	}
	return t
}

// Types returns the compiled types in registration order.
func (c *Catalog) Types() []*Type {
	ts := make([]*Type, 0, len(c.names))
	for _, name := range c.names {
		ts = append(ts, c.types[name])
	}
	return ts
}

func (c *Catalog) compile(s Interface) (*Type, error) {
	name := indirectType(reflect.TypeOf(s)).Name()
	if err := ValidTypeName(name); err != nil {
		return nil, NewSchemaError(name, "", "invalid type name", err)
	}
	t := &Type{
		Name:    name,
		catalog: c,
		attrIdx: make(map[string]*AttributeInfo),
		relIdx:  make(map[string]*RelationInfo),
		aliases: make(map[string]string),
	}
	// Mixed-in declarations come first, the schema's own follow.
	for _, mx := range s.Mixin() {
		if err := t.addAttributes(mx.Attributes(), true); err != nil {
			return nil, err
		}
		if err := t.addRelations(mx.Relations(), true); err != nil {
			return nil, err
		}
	}
	if err := t.addAttributes(s.Attributes(), false); err != nil {
		return nil, err
	}
	if err := t.addRelations(s.Relations(), false); err != nil {
		return nil, err
	}
	for alias, canonical := range s.Aliases() {
		if alias == "" || canonical == "" {
			return nil, NewSchemaError(name, alias, "empty alias mapping", nil)
		}
		if t.Has(alias) {
			return nil, NewSchemaError(name, alias, "alias shadows a declared name", nil)
		}
		if !t.Has(canonical) {
			return nil, NewSchemaError(name, alias, fmt.Sprintf("alias target %q is not declared", canonical), nil)
		}
		t.aliases[alias] = canonical
	}
	return t, nil
}

func (t *Type) addAttributes(attrs []Attribute, mixedIn bool) error {
	for _, a := range attrs {
		d := a.Descriptor()
		if d.Err != nil {
			return NewSchemaError(t.Name, d.Name, "attribute builder failed", d.Err)
		}
		if err := validName(d.Name); err != nil {
			return NewSchemaError(t.Name, d.Name, "invalid attribute name", err)
		}
		if !d.Type.Valid() {
			return NewSchemaError(t.Name, d.Name, fmt.Sprintf("invalid attribute type %q", d.Type), nil)
		}
		if t.Has(d.Name) {
			return NewSchemaError(t.Name, d.Name, "duplicate attribute name", nil)
		}
		info := &AttributeInfo{
			Name:       d.Name,
			Type:       d.Type,
			Rules:      slices.Clone(d.Rules),
			Sensitive:  d.Sensitive,
			Comment:    d.Comment,
			MixedIn:    mixedIn,
			validators: slices.Clone(d.Validators),
		}
		t.attrs = append(t.attrs, info)
		t.attrIdx[d.Name] = info
	}
	return nil
}

func (t *Type) addRelations(rels []Relation, mixedIn bool) error {
	for _, r := range rels {
		d := r.Descriptor()
		if d.Err != nil {
			return NewSchemaError(t.Name, d.Name, "relation builder failed", d.Err)
		}
		if err := validName(d.Name); err != nil {
			return NewSchemaError(t.Name, d.Name, "invalid relation name", err)
		}
		if !d.Cardinality.Valid() {
			return NewSchemaError(t.Name, d.Name, fmt.Sprintf("invalid cardinality %q", d.Cardinality), nil)
		}
		if t.Has(d.Name) {
			return NewSchemaError(t.Name, d.Name, "duplicate relation name", nil)
		}
		info := &RelationInfo{
			Name:        d.Name,
			Cardinality: d.Cardinality,
			Target:      d.Type,
			Required:    d.Required,
			MixedIn:     mixedIn,
			owner:       t,
		}
		t.rels = append(t.rels, info)
		t.relIdx[d.Name] = info
	}
	return nil
}

var nameRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidTypeName reports whether name can serve as a registered model
// type name.
func ValidTypeName(name string) error {
	if name == "" {
		return fmt.Errorf("type name cannot be empty")
	}
	if !nameRE.MatchString(name) {
		return fmt.Errorf("type name %q is not a valid identifier", name)
	}
	return nil
}

// validName checks a declared attribute, relation or alias name. Wire
// names follow the snake_case identifier convention; the reserved links
// key cannot be declared.
func validName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if name == LinksKey {
		return fmt.Errorf("name %q is reserved", LinksKey)
	}
	if !nameRE.MatchString(name) {
		return fmt.Errorf("name %q is not a valid identifier", name)
	}
	return nil
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
