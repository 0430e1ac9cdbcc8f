package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"arbitrary-generator/internal/analyze"
)

const (
	// CurrentVersion is the only supported file version.
	CurrentVersion = "1"
	// DefaultOutput is the generated file name inside the package directory.
	DefaultOutput = "arbitrary_gen.go"
	// DefaultPackage is the package pattern used when none is configured.
	DefaultPackage = "."
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// supportedVersions accepts every file version compatible with CurrentVersion.
var supportedVersions = mustConstraint("^" + CurrentVersion)

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}

	return constraint
}

// File is the root of an arbitrary.yaml file.
type File struct {
	Version string `yaml:"version"`
	// Package is the package pattern holding the types, relative to the
	// working directory.
	Package string `yaml:"package,omitempty"`
	// Output is the generated file name, written into the package directory.
	Output string `yaml:"output,omitempty"`
	// Types lists the type names to generate routines for, in output order.
	Types []string `yaml:"types"`
	// Positional lists struct types built with unkeyed composite literals.
	Positional []string `yaml:"positional,omitempty"`
	// Variants fixes the variant order of interface types.
	Variants map[string][]string `yaml:"variants,omitempty"`
	// QuickGenerator also emits testing/quick.Generator methods for structs.
	QuickGenerator bool `yaml:"quick_generator,omitempty"`
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&f)

	return &f, nil
}

// Default returns a File for the given types with every default applied.
func Default(types ...string) *File {
	f := &File{Types: types}
	applyDefaults(f)

	return f
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	if f.Package == "" {
		f.Package = DefaultPackage
	}

	if f.Output == "" {
		f.Output = DefaultOutput
	}
}

// Validate checks the file for errors that would make generation pointless.
func (f *File) Validate() error {
	var errs []error

	if v, err := semver.NewVersion(f.Version); err != nil || !supportedVersions.Check(v) {
		errs = append(errs, fmt.Errorf("unsupported version %q", f.Version))
	}

	if len(f.Types) == 0 {
		errs = append(errs, errors.New("no types selected"))
	}

	seen := make(map[string]bool, len(f.Types))
	for _, name := range f.Types {
		if seen[name] {
			errs = append(errs, fmt.Errorf("type %s listed twice", name))
		}

		seen[name] = true
	}

	for name, order := range f.Variants {
		if len(order) == 0 {
			errs = append(errs, fmt.Errorf("variants of %s: empty list", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// Options returns the analyzer options for one type.
func (f *File) Options(typeName string) analyze.Options {
	opts := analyze.Options{
		Positional: make(map[string]bool, len(f.Positional)),
		Variants:   slices.Clone(f.Variants[typeName]),
	}

	for _, name := range f.Positional {
		opts.Positional[name] = true
	}

	return opts
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
