// Package load extracts schema declarations into a plain snapshot the
// generator can consume, with user-written declaration methods wrapped
// in recover so a panicking schema reports an error instead of killing
// the process.
package load

import (
	"encoding/json"
	"fmt"
	"reflect"

	apiclient "github.com/TerraSkye/api-client"
	"github.com/TerraSkye/api-client/schema/attr"
	"github.com/TerraSkye/api-client/schema/rel"
)

// Schema is an apiclient schema declaration loaded into a serializable
// snapshot.
type Schema struct {
	Name    string            `json:"name,omitempty"`
	Attrs   []*Attr           `json:"attrs,omitempty"`
	Rels    []*Rel            `json:"rels,omitempty"`
	Aliases map[string]string `json:"aliases,omitempty"`
}

// Position describes where a declaration came from within its schema.
type Position struct {
	Index      int  // Index in the attribute/relation list.
	MixedIn    bool // Indicates if the declaration was mixed-in.
	MixinIndex int  // Mixin index in the mixin list.
}

// Attr is a loaded attribute declaration.
type Attr struct {
	Name       string    `json:"name,omitempty"`
	Type       attr.Type `json:"type,omitempty"`
	Rules      []string  `json:"rules,omitempty"`
	Validators int       `json:"validators,omitempty"`
	Sensitive  bool      `json:"sensitive,omitempty"`
	Comment    string    `json:"comment,omitempty"`
	Position   *Position `json:"position,omitempty"`
}

// Rel is a loaded relation declaration.
type Rel struct {
	Name        string          `json:"name,omitempty"`
	Type        string          `json:"type,omitempty"`
	Cardinality rel.Cardinality `json:"cardinality,omitempty"`
	Required    bool            `json:"required,omitempty"`
	Comment     string          `json:"comment,omitempty"`
	Position    *Position       `json:"position,omitempty"`
}

// NewAttr creates a loaded attribute from its descriptor. It returns
// an error if the descriptor recorded a builder error.
func NewAttr(d *attr.Descriptor) (*Attr, error) {
	if d.Err != nil {
		return nil, fmt.Errorf("attribute %q: %w", d.Name, d.Err)
	}
	if !d.Type.Valid() {
		return nil, fmt.Errorf("attribute %q: invalid type", d.Name)
	}
	return &Attr{
		Name:       d.Name,
		Type:       d.Type,
		Rules:      d.Rules,
		Validators: len(d.Validators),
		Sensitive:  d.Sensitive,
		Comment:    d.Comment,
	}, nil
}

// NewRel creates a loaded relation from its descriptor.
func NewRel(d *rel.Descriptor) (*Rel, error) {
	if d.Err != nil {
		return nil, fmt.Errorf("relation %q: %w", d.Name, d.Err)
	}
	if !d.Cardinality.Valid() {
		return nil, fmt.Errorf("relation %q: invalid cardinality %q", d.Name, d.Cardinality)
	}
	return &Rel{
		Name:        d.Name,
		Type:        d.Type,
		Cardinality: d.Cardinality,
		Required:    d.Required,
		Comment:     d.Comment,
	}, nil
}

// MarshalSchema encodes a schema declaration into JSON that can be
// decoded back into the Schema objects declared above. Mixed-in
// declarations come first, matching registration order.
func MarshalSchema(schema apiclient.Interface) ([]byte, error) {
	s := &Schema{
		Name: indirect(reflect.TypeOf(schema)).Name(),
	}
	if err := apiclient.ValidTypeName(s.Name); err != nil {
		return nil, err
	}
	if err := s.loadMixin(schema); err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	if err := s.loadAttrs(schema); err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	if err := s.loadRels(schema); err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	aliases, err := safeAliases(schema)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	s.Aliases = aliases
	return json.Marshal(s)
}

// UnmarshalSchema decodes the given buffer to a loaded schema.
func UnmarshalSchema(buf []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(buf, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) loadMixin(schema apiclient.Interface) error {
	mixin, err := safeMixin(schema)
	if err != nil {
		return err
	}
	for i, mx := range mixin {
		name := indirect(reflect.TypeOf(mx)).Name()
		attrs, err := safeAttributes(mx)
		if err != nil {
			return fmt.Errorf("mixin %q: %w", name, err)
		}
		for j, a := range attrs {
			sa, err := NewAttr(a.Descriptor())
			if err != nil {
				return fmt.Errorf("mixin %q: %w", name, err)
			}
			sa.Position = &Position{Index: j, MixedIn: true, MixinIndex: i}
			s.Attrs = append(s.Attrs, sa)
		}
		rels, err := safeRelations(mx)
		if err != nil {
			return fmt.Errorf("mixin %q: %w", name, err)
		}
		for j, r := range rels {
			sr, err := NewRel(r.Descriptor())
			if err != nil {
				return fmt.Errorf("mixin %q: %w", name, err)
			}
			sr.Position = &Position{Index: j, MixedIn: true, MixinIndex: i}
			s.Rels = append(s.Rels, sr)
		}
	}
	return nil
}

func (s *Schema) loadAttrs(schema apiclient.Interface) error {
	attrs, err := safeAttributes(schema)
	if err != nil {
		return err
	}
	for i, a := range attrs {
		sa, err := NewAttr(a.Descriptor())
		if err != nil {
			return err
		}
		sa.Position = &Position{Index: i}
		s.Attrs = append(s.Attrs, sa)
	}
	return nil
}

func (s *Schema) loadRels(schema apiclient.Interface) error {
	rels, err := safeRelations(schema)
	if err != nil {
		return err
	}
	for i, r := range rels {
		sr, err := NewRel(r.Descriptor())
		if err != nil {
			return err
		}
		sr.Position = &Position{Index: i}
		s.Rels = append(s.Rels, sr)
	}
	return nil
}

// safeAttributes wraps the schema.Attributes and mixin.Attributes
// methods with recover to ensure no panics in marshaling.
func safeAttributes(ad interface{ Attributes() []apiclient.Attribute }) (attrs []apiclient.Attribute, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%T.Attributes panics: %v", ad, v)
			attrs = nil
		}
	}()
	return ad.Attributes(), nil
}

// safeRelations wraps the schema.Relations and mixin.Relations
// methods with recover to ensure no panics in marshaling.
func safeRelations(rd interface{ Relations() []apiclient.Relation }) (rels []apiclient.Relation, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%T.Relations panics: %v", rd, v)
			rels = nil
		}
	}()
	return rd.Relations(), nil
}

// safeAliases wraps the schema.Aliases method with recover to ensure
// no panics in marshaling.
func safeAliases(schema apiclient.Interface) (aliases map[string]string, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("schema.Aliases panics: %v", v)
			aliases = nil
		}
	}()
	return schema.Aliases(), nil
}

// safeMixin wraps the schema.Mixin method with recover to ensure no
// panics in marshaling.
func safeMixin(schema apiclient.Interface) (mixin []apiclient.Mixin, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("schema.Mixin panics: %v", v)
			mixin = nil
		}
	}()
	return schema.Mixin(), nil
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
