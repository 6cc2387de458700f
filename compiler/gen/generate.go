package gen

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/TerraSkye/api-client/schema/attr"
)

// apiclientPkg is the import path of the runtime package generated
// bindings are built on.
const apiclientPkg = "github.com/TerraSkye/api-client"

// DefaultHeader is the comment placed at the top of generated files.
const DefaultHeader = "Code generated by apigen. DO NOT EDIT."

// Generator emits typed model bindings with jennifer. Import tracking
// and formatting happen at render time, so files stream straight to
// disk.
type Generator struct {
	graph   *Graph
	workers int
	header  string
}

// NewGenerator creates a generator for the graph.
func NewGenerator(g *Graph) *Generator {
	gen := &Generator{
		graph:   g,
		workers: runtime.GOMAXPROCS(0),
		header:  DefaultHeader,
	}
	if c := g.Config; c != nil {
		if c.Workers > 0 {
			gen.workers = c.Workers
		}
		if c.Header != "" {
			gen.header = c.Header
		}
	}
	return gen
}

// Generate writes one binding file per model type in parallel, then
// the runtime registration file when a schema package is configured.
func (g *Generator) Generate(ctx context.Context) error {
	c := g.graph.Config
	if c == nil || c.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	if c.Package == "" {
		return NewConfigError("Package", nil, "missing output package in config")
	}
	if err := os.MkdirAll(c.Target, 0o755); err != nil {
		return err
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for _, t := range g.graph.Nodes {
		errg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.writeFile(g.genType(t), t.FileName())
			}
		})
	}
	if err := errg.Wait(); err != nil {
		return err
	}

	// The runtime file needs the schema package to register from.
	if c.Schema != "" {
		return NewRuntimeWriter(g.graph).WithHeader(g.header).Write()
	}
	return nil
}

// genType builds the binding file for one model type: the struct
// embedding *apiclient.Model, a constructor, typed getters and
// setters per attribute, and context-taking accessors per relation.
func (g *Generator) genType(t *Type) *jen.File {
	c := g.graph.Config
	f := jen.NewFilePathName(c.Package, path.Base(c.Package))
	f.HeaderComment(g.header)

	recv := t.Receiver()

	f.Commentf("%s is the typed binding for the %q model.", t.Name, t.Name)
	f.Type().Id(t.Name).Struct(
		jen.Op("*").Qual(apiclientPkg, "Model"),
	)

	f.Commentf("New%s creates an empty %s from the catalog.", t.Name, t.Name)
	f.Func().Id("New" + t.Name).
		Params(jen.Id("c").Op("*").Qual(apiclientPkg, "Catalog")).
		Op("*").Id(t.Name).
		Block(
			jen.Return(jen.Op("&").Id(t.Name).Values(jen.Dict{
				jen.Id("Model"): jen.Id("c").Dot("MustLookup").Call(jen.Lit(t.Name)).Dot("New").Call(),
			})),
		)

	for _, a := range t.Attrs {
		g.genAttr(f, t, recv, a)
	}
	for _, r := range t.Rels {
		g.genRel(f, t, recv, r)
	}
	return f
}

func (g *Generator) genAttr(f *jen.File, t *Type, recv string, a *Attr) {
	method := a.StructMethod()
	raw := jen.Id(recv).Dot("Attr").Call(jen.Lit(a.Name))

	f.Commentf("%s returns the %q attribute.", method, a.Name)
	getter := f.Func().Params(jen.Id(recv).Op("*").Id(t.Name)).Id(method).Params()
	if as := asHelper(a.Type); as != "" {
		getter.Add(goType(a.Type)).Block(
			jen.Return(jen.Qual(apiclientPkg, as).Call(raw)),
		)
	} else {
		// JSON attributes pass through untyped.
		getter.Any().Block(jen.Return(raw))
	}

	f.Commentf("Set%s sets the %q attribute.", method, a.Name)
	f.Func().Params(jen.Id(recv).Op("*").Id(t.Name)).Id("Set"+method).
		Params(jen.Id("v").Add(goType(a.Type))).
		Error().
		Block(
			jen.Return(jen.Id(recv).Dot("Set").Call(jen.Lit(a.Name), jen.Id("v"))),
		)
}

func (g *Generator) genRel(f *jen.File, t *Type, recv string, r *Rel) {
	method := r.StructMethod()
	kind := "Model"
	if r.Many() {
		kind = "List"
	}

	f.Commentf("%s resolves the %q relation, fetching it through the model's resolver on first read.", method, r.Name)
	f.Func().Params(jen.Id(recv).Op("*").Id(t.Name)).Id(method).
		Params(jen.Id("ctx").Qual("context", "Context")).
		Params(jen.Op("*").Qual(apiclientPkg, kind), jen.Error()).
		Block(
			jen.List(jen.Id("v"), jen.Err()).Op(":=").Id(recv).Dot("Get").Call(jen.Id("ctx"), jen.Lit(r.Name)),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Nil(), jen.Err()),
			),
			jen.List(jen.Id("out"), jen.Id("_")).Op(":=").Id("v").Assert(jen.Op("*").Qual(apiclientPkg, kind)),
			jen.Return(jen.Id("out"), jen.Nil()),
		)

	f.Commentf("Set%s replaces the %q relation.", method, r.Name)
	f.Func().Params(jen.Id(recv).Op("*").Id(t.Name)).Id("Set"+method).
		Params(jen.Id("v").Any()).
		Error().
		Block(
			jen.Return(jen.Id(recv).Dot("Set").Call(jen.Lit(r.Name), jen.Id("v"))),
		)
}

// goType returns the jennifer code for an attribute's Go type.
func goType(t attr.Type) jen.Code {
	switch t {
	case attr.TypeString:
		return jen.String()
	case attr.TypeInt:
		return jen.Int64()
	case attr.TypeFloat:
		return jen.Float64()
	case attr.TypeBool:
		return jen.Bool()
	case attr.TypeTime:
		return jen.Qual("time", "Time")
	case attr.TypeUUID:
		return jen.Qual("github.com/google/uuid", "UUID")
	case attr.TypeBytes:
		return jen.Index().Byte()
	default:
		return jen.Any()
	}
}

// asHelper names the runtime coercion helper for an attribute type.
// JSON attributes have none and read raw.
func asHelper(t attr.Type) string {
	switch t {
	case attr.TypeString:
		return "AsString"
	case attr.TypeInt:
		return "AsInt"
	case attr.TypeFloat:
		return "AsFloat"
	case attr.TypeBool:
		return "AsBool"
	case attr.TypeTime:
		return "AsTime"
	case attr.TypeUUID:
		return "AsUUID"
	case attr.TypeBytes:
		return "AsBytes"
	default:
		return ""
	}
}

// writeFile renders a jennifer file straight to disk.
func (g *Generator) writeFile(f *jen.File, filename string) error {
	full := filepath.Join(g.graph.Config.Target, filename)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	out, err := os.Create(full)
	if err != nil {
		return NewGenerationError(filename, "creating output file", err)
	}
	defer out.Close()
	if err := f.Render(out); err != nil {
		return NewGenerationError(filename, "rendering bindings", err)
	}
	return nil
}

// Generate is the convenience entry point: it builds a generator for
// the graph and runs it.
func Generate(ctx context.Context, g *Graph) error {
	return NewGenerator(g).Generate(ctx)
}
