package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbitrary-generator/internal/diagnostic"
	"arbitrary-generator/internal/shape"
)

const (
	shapesPkg    = "arbitrary-generator/examples/shapes"
	edgePkg      = "arbitrary-generator/examples/edge"
	multifilePkg = "arbitrary-generator/examples/multifile"
	collidePkg   = "arbitrary-generator/examples/collide"
)

func loadShapes(t *testing.T) *Analyzer {
	t.Helper()

	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages(shapesPkg, edgePkg)
	require.NoError(t, err)

	return analyzer
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(shapesPkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	require.Contains(t, graph.Packages, shapesPkg)

	pkg := graph.Packages[shapesPkg]
	assert.Equal(t, "shapes", pkg.Name)
	assert.NotEmpty(t, pkg.Dir)

	// Declaration order, not alphabetical.
	var names []string
	for _, id := range pkg.Types {
		names = append(names, id.Name)
	}

	assert.Equal(t, []string{
		"Point", "Marker", "Pair", "Shape", "Dot", "Segment", "Circle", "Void", "Stamp",
	}, names)

	assert.Equal(t, TypeKindStruct, graph.GetType(TypeID{PkgPath: shapesPkg, Name: "Point"}).Kind)
	assert.Equal(t, TypeKindInterface, graph.GetType(TypeID{PkgPath: shapesPkg, Name: "Shape"}).Kind)
}

func TestAnalyzer_LoadPackages_Error(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("arbitrary-generator/examples/does-not-exist")
	require.Error(t, err)
}

func TestAnalyzer_Shape_NamedStruct(t *testing.T) {
	analyzer := loadShapes(t)

	var diags diagnostic.Diagnostics

	s, err := analyzer.Shape(TypeID{PkgPath: shapesPkg, Name: "Point"}, Options{}, &diags)
	require.NoError(t, err)

	assert.Equal(t, shape.TypeShape{
		PkgPath: shapesPkg,
		Name:    "Point",
		Alternatives: []shape.Alternative{
			shape.Named("Point",
				shape.Field{Name: "X", Type: shape.Ref("int")},
				shape.Field{Name: "Y", Type: shape.Ref("int")},
			),
		},
	}, s)
	assert.Empty(t, diags.All())
}

func TestAnalyzer_Shape_UnitStruct(t *testing.T) {
	analyzer := loadShapes(t)

	s, err := analyzer.Shape(TypeID{PkgPath: shapesPkg, Name: "Marker"}, Options{}, &diagnostic.Diagnostics{})
	require.NoError(t, err)

	require.Len(t, s.Alternatives, 1)
	assert.Equal(t, shape.KindUnit, s.Alternatives[0].Kind)
	assert.Equal(t, "Marker", s.Alternatives[0].Label)
}

func TestAnalyzer_Shape_Positional(t *testing.T) {
	analyzer := loadShapes(t)

	opts := Options{Positional: map[string]bool{"Pair": true}}

	s, err := analyzer.Shape(TypeID{PkgPath: shapesPkg, Name: "Pair"}, opts, &diagnostic.Diagnostics{})
	require.NoError(t, err)

	require.Len(t, s.Alternatives, 1)
	assert.Equal(t, shape.Positional("Pair", shape.Ref("uint8"), shape.Ref("bool")), s.Alternatives[0])
}

func TestAnalyzer_Shape_ExternalImports(t *testing.T) {
	analyzer := loadShapes(t)

	s, err := analyzer.Shape(TypeID{PkgPath: shapesPkg, Name: "Stamp"}, Options{}, &diagnostic.Diagnostics{})
	require.NoError(t, err)

	require.Len(t, s.Alternatives, 1)

	fields := s.Alternatives[0].Fields
	require.Len(t, fields, 4)

	assert.Equal(t, shape.TypeRef{Expr: "time.Time", Imports: []shape.Import{{Path: "time"}}}, fields[0].Type)
	assert.Equal(t, shape.TypeRef{Expr: "time.Duration", Imports: []shape.Import{{Path: "time"}}}, fields[1].Type)
	assert.Equal(t, "[]string", fields[2].Type.Expr)
	assert.Equal(t, "Shape", fields[3].Type.Expr)
	assert.Empty(t, fields[3].Type.Imports)

	assert.Equal(t, []shape.Import{{Path: "time"}}, s.Imports())
}

func TestAnalyzer_Shape_SealedInterface(t *testing.T) {
	analyzer := loadShapes(t)

	var diags diagnostic.Diagnostics

	opts := Options{Positional: map[string]bool{"Segment": true}}

	s, err := analyzer.Shape(TypeID{PkgPath: shapesPkg, Name: "Shape"}, opts, &diags)
	require.NoError(t, err)

	require.Len(t, s.Alternatives, 3)

	assert.Equal(t, shape.Unit("Dot"), s.Alternatives[0])
	assert.Equal(t, shape.Positional("Segment", shape.Ref("Point"), shape.Ref("Point")), s.Alternatives[1])

	circle := s.Alternatives[2]
	assert.Equal(t, "Circle", circle.Label)
	assert.True(t, circle.AddressOf)
	assert.Equal(t, shape.KindNamed, circle.Kind)
	assert.Equal(t, []shape.Field{
		{Name: "Center", Type: shape.Ref("Point")},
		{Name: "Radius", Type: shape.Ref("float64")},
	}, circle.Fields)

	assert.Empty(t, diags.All(), "sealed interfaces produce no notes")
}

func TestAnalyzer_Shape_ExplicitVariantOrder(t *testing.T) {
	analyzer := loadShapes(t)

	opts := Options{Variants: []string{"Circle", "Dot"}}

	s, err := analyzer.Shape(TypeID{PkgPath: shapesPkg, Name: "Shape"}, opts, &diagnostic.Diagnostics{})
	require.NoError(t, err)

	require.Len(t, s.Alternatives, 2)
	assert.Equal(t, "Circle", s.Alternatives[0].Label)
	assert.Equal(t, "Dot", s.Alternatives[1].Label)
}

func TestAnalyzer_Shape_ExplicitVariantErrors(t *testing.T) {
	analyzer := loadShapes(t)
	id := TypeID{PkgPath: shapesPkg, Name: "Shape"}

	_, err := analyzer.Shape(id, Options{Variants: []string{"Missing"}}, &diagnostic.Diagnostics{})
	require.ErrorIs(t, err, ErrTypeNotFound)

	_, err = analyzer.Shape(id, Options{Variants: []string{"Point"}}, &diagnostic.Diagnostics{})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestAnalyzer_Shape_EmptySumType(t *testing.T) {
	analyzer := loadShapes(t)

	s, err := analyzer.Shape(TypeID{PkgPath: shapesPkg, Name: "Void"}, Options{}, &diagnostic.Diagnostics{})
	require.NoError(t, err, "an empty sum type is a valid shape; deriving it is what fails")

	assert.Empty(t, s.Alternatives)
	assert.Equal(t, "Void", s.Name)
}

func TestAnalyzer_Shape_OpenInterface(t *testing.T) {
	analyzer := loadShapes(t)

	var diags diagnostic.Diagnostics

	s, err := analyzer.Shape(TypeID{PkgPath: edgePkg, Name: "Stringer"}, Options{}, &diags)
	require.NoError(t, err)

	var labels []string
	for _, alt := range s.Alternatives {
		labels = append(labels, alt.Label)
	}

	assert.Equal(t, []string{"Name", "Label", "Wrapper"}, labels)
	assert.False(t, s.Alternatives[0].AddressOf)
	assert.True(t, s.Alternatives[1].AddressOf)

	require.Len(t, diags.Infos, 1)
	assert.Equal(t, diagnostic.CodeOpenInterface, diags.Infos[0].Code)
}

func TestAnalyzer_Shape_SkipsGenericVariants(t *testing.T) {
	analyzer := loadShapes(t)

	var diags diagnostic.Diagnostics

	s, err := analyzer.Shape(TypeID{PkgPath: edgePkg, Name: "Token"}, Options{}, &diags)
	require.NoError(t, err)

	require.Len(t, s.Alternatives, 1)
	assert.Equal(t, "Word", s.Alternatives[0].Label)

	// Keyword implements Token but is a string type.
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeNonStructVariant, diags.Warnings[0].Code)
	assert.Contains(t, diags.Warnings[0].Message, "Keyword")
	assert.Equal(t, edgePkg+".Token", diags.Warnings[0].Type)
}

func TestAnalyzer_Shape_AliasesSameNamePackages(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Reserved = []shape.Import{{Path: "arbitrary-generator/arbitrary"}, {Path: "math/rand"}}

	_, err := analyzer.LoadPackages(collidePkg)
	require.NoError(t, err)

	s, err := analyzer.Shape(TypeID{PkgPath: collidePkg, Name: "Page"}, Options{}, &diagnostic.Diagnostics{})
	require.NoError(t, err)

	require.Len(t, s.Alternatives, 1)
	assert.Equal(t, shape.Named("Page",
		shape.Field{Name: "Body", Type: shape.TypeRef{
			Expr:    "template.HTML",
			Imports: []shape.Import{{Path: "html/template"}},
		}},
		shape.Field{Name: "Funcs", Type: shape.TypeRef{
			Expr:    "template2.FuncMap",
			Imports: []shape.Import{{Path: "text/template", Name: "template2"}},
		}},
		shape.Field{Name: "Seed", Type: shape.TypeRef{
			Expr:    "rand2.PCG",
			Imports: []shape.Import{{Path: "math/rand/v2", Name: "rand2"}},
		}},
	), s.Alternatives[0])

	// A second shape of the same package reuses the allocated names.
	again, err := analyzer.Shape(TypeID{PkgPath: collidePkg, Name: "Page"}, Options{}, &diagnostic.Diagnostics{})
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestAnalyzer_Shape_VariantsAcrossFiles(t *testing.T) {
	want := []string{"Opened", "Renamed", "Copied", "Moved", "Closed", "Archived", "Deleted"}

	// Parsing is concurrent, so a single load could pass by luck.
	for range 20 {
		analyzer := NewAnalyzer()
		_, err := analyzer.LoadPackages(multifilePkg)
		require.NoError(t, err)

		var diags diagnostic.Diagnostics

		s, err := analyzer.Shape(TypeID{PkgPath: multifilePkg, Name: "Event"}, Options{}, &diags)
		require.NoError(t, err)

		labels := make([]string, 0, len(s.Alternatives))
		for _, alt := range s.Alternatives {
			labels = append(labels, alt.Label)
		}

		require.Equal(t, want, labels)
		assert.True(t, s.Alternatives[3].AddressOf)
		assert.Empty(t, diags.All())
	}
}

func TestAnalyzer_Shape_BlankFields(t *testing.T) {
	analyzer := loadShapes(t)

	var diags diagnostic.Diagnostics

	opts := Options{Positional: map[string]bool{"Padded": true, "OnlyBlank": true}}

	s, err := analyzer.Shape(TypeID{PkgPath: edgePkg, Name: "Padded"}, opts, &diags)
	require.NoError(t, err)

	assert.Equal(t, shape.Named("Padded",
		shape.Field{Name: "A", Type: shape.Ref("int")},
		shape.Field{Name: "B", Type: shape.Ref("string")},
	), s.Alternatives[0])

	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodePositionalBlankField, diags.Warnings[0].Code)
	assert.Equal(t, "Padded._", diags.Warnings[0].FieldPath)

	s, err = analyzer.Shape(TypeID{PkgPath: edgePkg, Name: "OnlyBlank"}, opts, &diags)
	require.NoError(t, err)
	assert.Equal(t, shape.Unit("OnlyBlank"), s.Alternatives[0])
}

func TestAnalyzer_Shape_EmbeddedAndUnexported(t *testing.T) {
	analyzer := loadShapes(t)

	s, err := analyzer.Shape(TypeID{PkgPath: edgePkg, Name: "Wrapper"}, Options{}, &diagnostic.Diagnostics{})
	require.NoError(t, err)

	assert.Equal(t, []shape.Field{
		{Name: "Name", Type: shape.Ref("Name")},
		{Name: "Extra", Type: shape.Ref("*int")},
	}, s.Alternatives[0].Fields)

	s, err = analyzer.Shape(TypeID{PkgPath: edgePkg, Name: "point"}, Options{}, &diagnostic.Diagnostics{})
	require.NoError(t, err)

	assert.Equal(t, []shape.Field{
		{Name: "x", Type: shape.Ref("int")},
		{Name: "y", Type: shape.Ref("int")},
	}, s.Alternatives[0].Fields)
}

func TestAnalyzer_Shape_Unsupported(t *testing.T) {
	analyzer := loadShapes(t)

	tests := []struct {
		name    string
		wantErr error
	}{
		{name: "Box", wantErr: ErrUnsupportedType},
		{name: "Celsius", wantErr: ErrUnsupportedType},
		{name: "Anything", wantErr: ErrUnsupportedType},
		{name: "Missing", wantErr: ErrTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.Shape(TypeID{PkgPath: edgePkg, Name: tt.name}, Options{}, &diagnostic.Diagnostics{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTypePath(t *testing.T) {
	root := NewTypePath("Stamp")
	field := root.Field("Tags")

	assert.Equal(t, "Stamp", root.String())
	assert.Equal(t, "Stamp.Tags", field.String())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "interface", TypeKindInterface.String())
	assert.Equal(t, "other", TypeKindOther.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}
