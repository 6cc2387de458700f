package gen

import (
	"bytes"
	"os"
	"path"
	"path/filepath"
	"text/template"

	"golang.org/x/tools/imports"
)

// runtimeFile is the name of the registration file the writer emits.
const runtimeFile = "runtime.go"

// runtimeTemplate emits the catalog registration file. It is rendered
// with text/template and run through goimports, so the template stays
// readable without hand-managing the import block.
var runtimeTemplate = template.Must(template.New(runtimeFile).Parse(`// {{ .Header }}

package {{ .Package }}

import (
	apiclient "{{ .RuntimePkg }}"

	schema "{{ .SchemaPkg }}"
)

// NewCatalog registers every schema declaration and returns the
// compiled catalog.
func NewCatalog() (*apiclient.Catalog, error) {
	c := apiclient.NewCatalog()
	if err := c.Register(
{{- range .Types }}
		schema.{{ .Name }}{},
{{- end }}
	); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on registration errors.
// Intended for package-level catalog variables.
func MustNewCatalog() *apiclient.Catalog {
	c, err := NewCatalog()
	if err != nil {
		panic(err)
	}
	return c
}
`))

// RuntimeWriter emits the registration file binding the generated
// package to its schema declarations.
type RuntimeWriter struct {
	graph  *Graph
	header string
}

// NewRuntimeWriter creates a writer for the graph.
func NewRuntimeWriter(g *Graph) *RuntimeWriter {
	return &RuntimeWriter{graph: g, header: DefaultHeader}
}

// WithHeader overrides the generated file header.
func (w *RuntimeWriter) WithHeader(header string) *RuntimeWriter {
	if header != "" {
		w.header = header
	}
	return w
}

// Write renders the registration file, formats it, and writes it to
// the target directory.
func (w *RuntimeWriter) Write() error {
	c := w.graph.Config
	if c == nil || c.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	if c.Schema == "" {
		return NewConfigError("Schema", nil, "missing schema package in config")
	}

	var buf bytes.Buffer
	err := runtimeTemplate.Execute(&buf, struct {
		Header     string
		Package    string
		RuntimePkg string
		SchemaPkg  string
		Types      []*Type
	}{
		Header:     w.header,
		Package:    path.Base(c.Package),
		RuntimePkg: apiclientPkg,
		SchemaPkg:  c.Schema,
		Types:      w.graph.Nodes,
	})
	if err != nil {
		return NewGenerationError(runtimeFile, "executing template", err)
	}

	full := filepath.Join(c.Target, runtimeFile)
	formatted, err := imports.Process(full, buf.Bytes(), nil)
	if err != nil {
		// Keep the unformatted output next to the target for debugging.
		_ = os.WriteFile(full+".error", buf.Bytes(), 0o644)
		return NewGenerationError(runtimeFile, "formatting output", err)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(full, formatted, 0o644); err != nil {
		return NewGenerationError(runtimeFile, "writing output", err)
	}
	return nil
}
