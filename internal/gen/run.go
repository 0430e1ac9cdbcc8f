package gen

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"arbitrary-generator/internal/analyze"
	"arbitrary-generator/internal/config"
	"arbitrary-generator/internal/derive"
	"arbitrary-generator/internal/diagnostic"
	"arbitrary-generator/internal/match"
	"arbitrary-generator/internal/shape"
)

// Result is the outcome of a generation run.
type Result struct {
	// Package is the analyzed package.
	Package *analyze.PackageInfo
	// Shapes holds the extracted shapes, in config order.
	Shapes []shape.TypeShape
	// File is nil when Diagnostics has errors.
	File *GeneratedFile
	// Diagnostics collects per-type failures and warnings.
	Diagnostics diagnostic.Diagnostics
}

// OutputPath returns where File belongs on disk.
func (r *Result) OutputPath() string {
	if r.File == nil || r.Package == nil {
		return ""
	}

	return filepath.Join(r.Package.Dir, r.File.Filename)
}

// Extract loads cfg.Package from dir and extracts the shape of every
// configured type. Types that cannot be extracted become error diagnostics.
func Extract(cfg *config.File, dir string, logger *slog.Logger) (*Result, error) {
	analyzer := analyze.NewAnalyzer()
	analyzer.Dir = dir
	analyzer.Reserved = []shape.Import{{Path: derive.RuntimeImport}}

	if cfg.QuickGenerator {
		analyzer.Reserved = append(analyzer.Reserved, QuickImports...)
	}

	graph, err := analyzer.LoadPackages(cfg.Package)
	if err != nil {
		return nil, err
	}

	if len(graph.Packages) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, want 1", cfg.Package, len(graph.Packages))
	}

	res := &Result{}
	for _, pkg := range graph.Packages {
		res.Package = pkg
	}

	logger.Debug("loaded package", "path", res.Package.Path, "dir", res.Package.Dir, "types", len(res.Package.Types))

	for _, name := range cfg.Types {
		id := analyze.TypeID{PkgPath: res.Package.Path, Name: name}

		s, err := analyzer.Shape(id, cfg.Options(name), &res.Diagnostics)
		if err != nil {
			res.Diagnostics.AddError(errorCode(err), withHint(err, name, res.Package), id.String(), "")
			continue
		}

		logger.Debug("extracted shape", "type", id, "alternatives", len(s.Alternatives))

		res.Shapes = append(res.Shapes, s)
	}

	return res, nil
}

// Run extracts shapes, derives a routine for each and renders the file.
// A type that fails to derive aborts the file: Result.File stays nil and the
// failure is in Result.Diagnostics. The returned error is reserved for
// failures unrelated to individual types.
func Run(cfg *config.File, dir string, logger *slog.Logger) (*Result, error) {
	res, err := Extract(cfg, dir, logger)
	if err != nil {
		return nil, err
	}

	var routines []*derive.Routine

	for _, s := range res.Shapes {
		id := analyze.TypeID{PkgPath: s.PkgPath, Name: s.Name}

		r, err := derive.Generate(s)
		if err != nil {
			res.Diagnostics.AddError(errorCode(err), derive.ErrNoAlternatives.Error(), id.String(), "")
			continue
		}

		logger.Debug("derived routine", "type", id, "func", r.Name, "dispatch", r.Dispatch())

		routines = append(routines, r)
	}

	if res.Diagnostics.HasErrors() {
		return res, nil
	}

	generator := NewGenerator(GeneratorConfig{
		OutputDir:      res.Package.Dir,
		QuickGenerator: cfg.QuickGenerator,
	})

	file, err := generator.Generate(FileSpec{PackageName: res.Package.Name, Filename: cfg.Output}, routines)
	if err != nil {
		return nil, err
	}

	res.File = file

	return res, nil
}

// withHint appends the closest declared type names to a not-found error.
func withHint(err error, name string, pkg *analyze.PackageInfo) string {
	if !errors.Is(err, analyze.ErrTypeNotFound) {
		return err.Error()
	}

	declared := make([]string, 0, len(pkg.Types))
	for _, id := range pkg.Types {
		declared = append(declared, id.Name)
	}

	// A declared name means a configured variant is missing, not the type.
	if slices.Contains(declared, name) {
		return err.Error()
	}

	suggestions := match.Suggest(name, declared, match.DefaultThreshold, match.DefaultLimit)
	if len(suggestions) == 0 {
		return err.Error()
	}

	return fmt.Sprintf("%s (did you mean %s?)", err, strings.Join(suggestions, ", "))
}

// errorCode maps an error to its diagnostic code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, derive.ErrNoAlternatives):
		return diagnostic.CodeNoAlternatives
	case errors.Is(err, analyze.ErrTypeNotFound):
		return diagnostic.CodeTypeNotFound
	default:
		return diagnostic.CodeUnsupportedType
	}
}
