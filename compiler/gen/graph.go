package gen

import (
	apiclient "github.com/TerraSkye/api-client"
	"github.com/TerraSkye/api-client/compiler/load"
	"github.com/TerraSkye/api-client/internal/naming"
	"github.com/TerraSkye/api-client/schema/attr"
	"github.com/TerraSkye/api-client/schema/rel"
)

// Config holds the generation settings.
type Config struct {
	// Package is the output package import path,
	// e.g. "github.com/org/project/models".
	Package string
	// Schema is the schema package import path the runtime file
	// registers declarations from, e.g. "github.com/org/project/schema".
	Schema string
	// Target is the directory generated code is written to.
	Target string
	// Header overrides the default file header comment.
	Header string
	// Workers caps parallel file emission. Zero means GOMAXPROCS.
	Workers int
}

// Graph holds the model types of one generation run, in snapshot
// order.
type Graph struct {
	Config *Config
	Nodes  []*Type
}

// Type is the generator's view of one loaded schema.
type Type struct {
	Name    string
	Attrs   []*Attr
	Rels    []*Rel
	Aliases map[string]string
}

// Attr wraps a loaded attribute with the naming helpers templates and
// jennifer calls need.
type Attr struct {
	*load.Attr
}

// StructMethod returns the attribute's exported accessor name,
// e.g. "created_at" to "CreatedAt".
func (a *Attr) StructMethod() string {
	return naming.Pascal(a.Name)
}

// Required reports whether the attribute carries the required rule.
func (a *Attr) Required() bool {
	for _, r := range a.Rules {
		if r == attr.RuleRequired {
			return true
		}
	}
	return false
}

// Rel wraps a loaded relation with naming helpers.
type Rel struct {
	*load.Rel
}

// StructMethod returns the relation's exported accessor name.
func (r *Rel) StructMethod() string {
	return naming.Pascal(r.Name)
}

// Many reports whether the relation holds a list of models.
func (r *Rel) Many() bool {
	return r.Cardinality == rel.Many
}

// NewGraph creates a graph from loaded schema snapshots, validating
// the same declaration rules the runtime catalog enforces: legal
// names, no duplicates, and every relation target present in the
// batch.
func NewGraph(c *Config, schemas ...*load.Schema) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	g := &Graph{Config: c, Nodes: make([]*Type, 0, len(schemas))}
	byName := make(map[string]*Type, len(schemas))
	for _, s := range schemas {
		if err := apiclient.ValidTypeName(s.Name); err != nil {
			return nil, NewSchemaError(s.Name, "", "invalid type name", err)
		}
		if _, ok := byName[s.Name]; ok {
			return nil, NewSchemaError(s.Name, "", "type declared twice", nil)
		}
		t, err := newType(s)
		if err != nil {
			return nil, err
		}
		byName[s.Name] = t
		g.Nodes = append(g.Nodes, t)
	}
	// Relation targets resolve within the batch.
	for _, t := range g.Nodes {
		for _, r := range t.Rels {
			if _, ok := byName[r.Type]; !ok {
				return nil, NewRelationError(t.Name, r.Type, r.Name, "target type is not part of the generation run")
			}
		}
	}
	return g, nil
}

func newType(s *load.Schema) (*Type, error) {
	t := &Type{Name: s.Name, Aliases: s.Aliases}
	seen := make(map[string]struct{}, len(s.Attrs)+len(s.Rels))
	for _, a := range s.Attrs {
		if !a.Type.Valid() {
			return nil, NewSchemaError(s.Name, a.Name, "invalid attribute type", nil)
		}
		if _, ok := seen[a.Name]; ok {
			return nil, NewSchemaError(s.Name, a.Name, "declared twice", nil)
		}
		seen[a.Name] = struct{}{}
		t.Attrs = append(t.Attrs, &Attr{Attr: a})
	}
	for _, r := range s.Rels {
		if _, ok := seen[r.Name]; ok {
			return nil, NewSchemaError(s.Name, r.Name, "declared twice", nil)
		}
		seen[r.Name] = struct{}{}
		t.Rels = append(t.Rels, &Rel{Rel: r})
	}
	for alias, target := range s.Aliases {
		if _, ok := seen[alias]; ok {
			return nil, NewSchemaError(s.Name, alias, "alias shadows a declared name", nil)
		}
		if _, ok := seen[target]; !ok {
			return nil, NewSchemaError(s.Name, alias, "alias target is not declared", nil)
		}
	}
	return t, nil
}

// Receiver returns the short receiver name for the type's generated
// methods.
func (t *Type) Receiver() string {
	return naming.Receiver(t.Name)
}

// FileName returns the output file name of the type's binding file.
func (t *Type) FileName() string {
	return naming.Snake(t.Name) + ".go"
}
