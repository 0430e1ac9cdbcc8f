package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"arbitrary-generator/internal/config"
)

const repoRoot = "../.."

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestGen_Shapes(t *testing.T) {
	out := filepath.Join(t.TempDir(), "arbitrary_gen.go")

	_, stderr, err := execute(t, "gen",
		"--dir", repoRoot,
		"--config", filepath.Join(repoRoot, "examples", "shapes", "arbitrary.yaml"),
		"--pkg", "./examples/shapes",
		"--out", out,
		"--log-level", "info",
	)
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "wrote generated file")

	got, err := os.ReadFile(out)
	require.NoError(t, err)

	want, err := os.ReadFile(filepath.Join(repoRoot, "examples", "shapes", "arbitrary_gen.go"))
	require.NoError(t, err)

	assert.Equal(t, string(want), string(got))
}

func TestGen_NoAlternativesFails(t *testing.T) {
	out := filepath.Join(t.TempDir(), "arbitrary_gen.go")

	_, stderr, err := execute(t, "gen",
		"--dir", repoRoot,
		"--pkg", "./examples/shapes",
		"--type", "Point,Void",
		"--out", out,
	)
	require.Error(t, err)
	assert.Contains(t, stderr, "[NO_ALTERNATIVES] cannot derive Arbitrary for a sum type with no variants")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no partial output")
}

func TestGen_NoTypes(t *testing.T) {
	_, _, err := execute(t, "gen", "--dir", repoRoot, "--pkg", "./examples/shapes")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestGen_Quick(t *testing.T) {
	out := filepath.Join(t.TempDir(), "arbitrary_gen.go")

	_, stderr, err := execute(t, "gen",
		"--dir", repoRoot,
		"--pkg", "./examples/shapes",
		"--type", "Point",
		"--quick",
		"--out", out,
	)
	require.NoError(t, err, stderr)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), "func (Point) Generate(r *rand.Rand, size int) reflect.Value {")
}

func TestInspect_YAML(t *testing.T) {
	stdout, stderr, err := execute(t, "inspect",
		"--dir", repoRoot,
		"--pkg", "./examples/shapes",
		"--type", "Shape",
	)
	require.NoError(t, err, stderr)

	var shapes []struct {
		Name         string `yaml:"name"`
		Alternatives []struct {
			Label     string `yaml:"label"`
			AddressOf bool   `yaml:"address_of"`
			Kind      string `yaml:"kind"`
		} `yaml:"alternatives"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &shapes))
	require.Len(t, shapes, 1)

	s := shapes[0]
	assert.Equal(t, "Shape", s.Name)
	require.Len(t, s.Alternatives, 3)
	assert.Equal(t, "Dot", s.Alternatives[0].Label)
	assert.Equal(t, "Unit", s.Alternatives[0].Kind)
	assert.Equal(t, "Segment", s.Alternatives[1].Label)
	assert.Equal(t, "Named", s.Alternatives[1].Kind)
	assert.Equal(t, "Circle", s.Alternatives[2].Label)
	assert.True(t, s.Alternatives[2].AddressOf)
}

func TestInspect_Spew(t *testing.T) {
	stdout, stderr, err := execute(t, "inspect",
		"--dir", repoRoot,
		"--pkg", "./examples/shapes",
		"--type", "Pair",
		"--format", "spew",
	)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "shape.TypeShape")
	assert.Contains(t, stdout, `Label: (string) (len=4) "Pair"`)
}

func TestInspect_UnknownFormat(t *testing.T) {
	_, _, err := execute(t, "inspect",
		"--dir", repoRoot,
		"--pkg", "./examples/shapes",
		"--type", "Pair",
		"--format", "xml",
	)
	require.Error(t, err)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arbitrary.yaml")

	stdout, _, err := execute(t, "init", "Shape", "Point", "--file", path, "--positional", "Segment")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote "+path)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shape", "Point"}, cfg.Types)
	assert.Equal(t, []string{"Segment"}, cfg.Positional)
	assert.Equal(t, config.DefaultOutput, cfg.Output)

	_, _, err = execute(t, "init", "Shape", "--file", path)
	require.Error(t, err)

	_, _, err = execute(t, "init", "Marker", "--file", path, "--force")
	require.NoError(t, err)

	cfg, err = config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Marker"}, cfg.Types)
}

func TestInspect_Table(t *testing.T) {
	stdout, stderr, err := execute(t, "inspect",
		"--dir", repoRoot,
		"--config", filepath.Join(repoRoot, "examples", "shapes", "arbitrary.yaml"),
		"--pkg", "./examples/shapes",
		"--type", "Shape",
		"--format", "table",
	)
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "ALTERNATIVE")
	assert.Contains(t, stdout, "&Circle")
	assert.Contains(t, stdout, "Center Point, Radius float64")
	assert.Contains(t, stdout, "Positional")
	assert.Contains(t, stdout, "Point, Point")
}
