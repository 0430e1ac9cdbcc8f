package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"arbitrary-generator/internal/diagnostic"
	"arbitrary-generator/internal/gen"
	"arbitrary-generator/internal/shape"
)

const (
	formatYAML  = "yaml"
	formatTable = "table"
	formatSpew  = "spew"
)

func newInspectCmd() *cobra.Command {
	var (
		sel    selection
		format string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the shapes extracted for the selected types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, logger, err := env(cmd)
			if err != nil {
				return err
			}

			cfg, err := sel.load()
			if err != nil {
				return err
			}

			res, err := gen.Extract(cfg, dir, logger)
			if err != nil {
				return err
			}

			if err := diagnostic.Fprint(cmd.ErrOrStderr(), &res.Diagnostics); err != nil {
				return err
			}

			if err := encodeShapes(cmd.OutOrStdout(), format, res.Shapes); err != nil {
				return err
			}

			if res.Diagnostics.HasErrors() {
				return fmt.Errorf("extraction failed with %d error(s)", len(res.Diagnostics.Errors))
			}

			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format: yaml|table|spew")

	return cmd
}

func encodeShapes(w io.Writer, format string, shapes []shape.TypeShape) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(shapes); err != nil {
			return fmt.Errorf("encoding shapes: %w", err)
		}

		return enc.Close()
	case formatTable:
		encodeShapesAsTable(w, shapes)
		return nil
	case formatSpew:
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		cfg.Fdump(w, shapes)

		return nil
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}

func encodeShapesAsTable(w io.Writer, shapes []shape.TypeShape) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Type", "Index", "Alternative", "Kind", "Fields"})

	for _, s := range shapes {
		for i, alt := range s.Alternatives {
			label := alt.Label
			if alt.AddressOf {
				label = "&" + label
			}

			t.AppendRow(table.Row{s.Name, strconv.Itoa(i), label, alt.Kind.String(), fieldList(alt.Fields)})
		}
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	t.Render()
}

func fieldList(fields []shape.Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			parts = append(parts, f.Type.Expr)
			continue
		}

		parts = append(parts, f.Name+" "+f.Type.Expr)
	}

	return strings.Join(parts, ", ")
}
