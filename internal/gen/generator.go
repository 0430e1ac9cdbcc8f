package gen

import (
	"bytes"
	"fmt"
	"text/template"

	"golang.org/x/tools/imports"

	"arbitrary-generator/internal/derive"
	"arbitrary-generator/internal/shape"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir receives an .unformatted.go sidecar when formatting fails.
	// Empty disables the sidecar.
	OutputDir string
	// QuickGenerator also emits testing/quick.Generator methods for
	// struct types.
	QuickGenerator bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{}
}

// Generator renders construction routines into a Go source file.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "arbitrary_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// FileSpec names the file being generated.
type FileSpec struct {
	PackageName string
	Filename    string
}

// templateData holds all data needed for the file template.
type templateData struct {
	PackageName string
	Imports     []shape.Import
	Routines    []*derive.Routine
	Bodies      []string
	Quick       []quickMethod
}

// quickMethod is a testing/quick.Generator implementation for a struct type.
type quickMethod struct {
	Type    string
	Routine string
}

// QuickImports are the imports of the quick.Generator methods.
var QuickImports = []shape.Import{{Path: "math/rand"}, {Path: "reflect"}}

// Generate renders routines, in order, into one file.
func (g *Generator) Generate(target FileSpec, routines []*derive.Routine) (*GeneratedFile, error) {
	if len(routines) == 0 {
		return nil, fmt.Errorf("generating %s: no routines", target.Filename)
	}

	data := &templateData{
		PackageName: target.PackageName,
		Routines:    routines,
	}

	for _, r := range routines {
		body, err := r.Source()
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", r.Result, err)
		}

		data.Bodies = append(data.Bodies, string(body))
		data.Imports = append(data.Imports, r.Imports...)

		if g.config.QuickGenerator && isStruct(r) {
			data.Quick = append(data.Quick, quickMethod{Type: r.Result, Routine: r.Name})
		}
	}

	if len(data.Quick) > 0 {
		data.Imports = append(data.Imports, QuickImports...)
	}

	data.Imports = shape.SortImports(data.Imports)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := imports.Process(target.Filename, buf.Bytes(), nil)
	if err != nil {
		// Best-effort: keep the unformatted code around for debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, target.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: target.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: target.Filename,
		Content:  formatted,
	}, nil
}

// isStruct reports whether r builds a plain struct type, i.e. the one
// alternative is the type itself.
func isStruct(r *derive.Routine) bool {
	return len(r.Arms) == 1 && r.Arms[0].Label == r.Result && !r.Arms[0].AddressOf
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by arbitrary-generator. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{.Spec}}
{{end}})

func init() {
{{range .Routines}}	arbitrary.Register({{.Name}})
{{end}}}
{{range .Bodies}}
{{.}}{{end}}
{{- range .Quick}}
// Generate implements quick.Generator. Size bounds the length of strings,
// slices and maps.
func ({{.Type}}) Generate(r *rand.Rand, size int) reflect.Value {
	return reflect.ValueOf({{.Routine}}(arbitrary.New(r, arbitrary.WithSize(size))))
}
{{end}}`))
